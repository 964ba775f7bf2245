package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/physbox/sandbox"
	"gopkg.in/yaml.v3"
)

// Tuning is the layout of a tuning file. Missing keys keep their defaults.
type Tuning struct {
	Sandbox sandbox.Config `yaml:"sandbox"`
	Theme   Theme          `yaml:"theme"`
}

// Theme holds the draw colors.
type Theme struct {
	Background YAMLColor `yaml:"background"`
	Ground     YAMLColor `yaml:"ground"`
	Water      YAMLColor `yaml:"water"`
	WaterLine  YAMLColor `yaml:"water_line"`
	Body       YAMLColor `yaml:"body"`
	Outline    YAMLColor `yaml:"outline"`
	Selected   YAMLColor `yaml:"selected"`
	Bouncy     YAMLColor `yaml:"bouncy"`
	Slippery   YAMLColor `yaml:"slippery"`
	Sticky     YAMLColor `yaml:"sticky"`
	Glass      YAMLColor `yaml:"glass"`
	Weld       YAMLColor `yaml:"weld"`
	Wheel      YAMLColor `yaml:"wheel"`
	Shard      YAMLColor `yaml:"shard"`
	Chunk      YAMLColor `yaml:"chunk"`
	Preview    YAMLColor `yaml:"preview"`
	Text       YAMLColor `yaml:"text"`
}

func rgb(r, g, b uint8) YAMLColor {
	return YAMLColor{Color: color.NRGBA{R: r, G: g, B: b, A: 255}}
}

func DefaultTheme() Theme {
	return Theme{
		Background: rgb(0x1b, 0x1e, 0x26),
		Ground:     rgb(0x4a, 0x4f, 0x5c),
		Water:      YAMLColor{Color: color.NRGBA{R: 0x2d, G: 0x6c, B: 0xb5, A: 0x90}},
		WaterLine:  rgb(0x8f, 0xc6, 0xff),
		Body:       rgb(0xd8, 0xa4, 0x5b),
		Outline:    rgb(0x24, 0x1c, 0x12),
		Selected:   rgb(0xff, 0xf1, 0x76),
		Bouncy:     rgb(0x7c, 0xd9, 0x6b),
		Slippery:   rgb(0x6b, 0xc5, 0xd9),
		Sticky:     rgb(0xc9, 0x6b, 0xd9),
		Glass:      YAMLColor{Color: color.NRGBA{R: 0xcf, G: 0xee, B: 0xff, A: 0xa0}},
		Weld:       rgb(0xff, 0x8a, 0x3d),
		Wheel:      rgb(0x3d, 0xb4, 0xff),
		Shard:      rgb(0xe6, 0xf6, 0xff),
		Chunk:      rgb(0xa9, 0xd8, 0xff),
		Preview:    YAMLColor{Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x70}},
		Text:       rgb(0xee, 0xee, 0xee),
	}
}

func DefaultTuningValues() Tuning {
	return Tuning{Sandbox: sandbox.DefaultConfig(), Theme: DefaultTheme()}
}

// LoadTuning reads a named tuning file (disk first, then embedded) and
// overlays it onto the defaults.
func LoadTuning(name string) (Tuning, error) {
	data, err := Load(name)
	if err != nil {
		return Tuning{}, fmt.Errorf("prefabs: load %s: %w", cleanTuningPath(name), err)
	}
	t, err := DecodeTuning(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("prefabs: unmarshal %s: %w", cleanTuningPath(name), err)
	}
	return t, nil
}

// LoadTuningFile reads a tuning file from an explicit path.
func LoadTuningFile(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	t, err := DecodeTuning(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	return t, nil
}

func DecodeTuning(data []byte) (Tuning, error) {
	t := DefaultTuningValues()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var channels [4]uint8
	channels[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		channels[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}
	return nil
}

// NRGBA returns the color as non-premultiplied channels, falling back to
// white when unset.
func (c YAMLColor) NRGBA() color.NRGBA {
	if c.Color == nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}
