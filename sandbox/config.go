package sandbox

import (
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/physics"
	"github.com/milk9111/physbox/water"
)

// Config carries every tuning constant of a scene. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	StartInWater   bool    `yaml:"start_in_water"`
	Seed           int64   `yaml:"seed"`

	Solver   physics.ChipmunkConfig `yaml:"solver"`
	Spawn    SpawnConfig            `yaml:"spawn"`
	Surface  SurfaceTuning          `yaml:"surface"`
	Fracture FractureConfig         `yaml:"fracture"`
	Water    WaterConfig            `yaml:"water"`
	Drag     DragConfig             `yaml:"drag"`
	Driver   DriverConfig           `yaml:"driver"`
}

type SpawnConfig struct {
	BaseSize float64 `yaml:"base_size"`
	Margin   float64 `yaml:"margin"`
	// HistoryCap bounds the spawn-order stack. Past it the oldest half is
	// dropped.
	HistoryCap      int     `yaml:"history_cap"`
	MaxStrokePoints int     `yaml:"max_stroke_points"`
	StrokeSpacing   float64 `yaml:"stroke_spacing"`

	MinQuadSide     float64 `yaml:"min_quad_side"`
	MinQuadDim      float64 `yaml:"min_quad_dim"`
	MaxQuadAspect   float64 `yaml:"max_quad_aspect"`
	MinCircleDiam   float64 `yaml:"min_circle_diameter"`
	MinTriangleSide float64 `yaml:"min_triangle_side"`
	MinDensity      float64 `yaml:"min_density"`
	MaxDensity      float64 `yaml:"max_density"`

	GroundHalfThickness float64 `yaml:"ground_half_thickness"`
	GroundWidthRatio    float64 `yaml:"ground_width_ratio"`
	LandGroundRatio     float64 `yaml:"land_ground_ratio"`
	WaterGroundRatio    float64 `yaml:"water_ground_ratio"`
	GroundFriction      float64 `yaml:"ground_friction"`
}

type FractureConfig struct {
	Decay        float64 `yaml:"decay"`
	GraceTicks   int     `yaml:"grace_ticks"`
	ImpulseFloor float64 `yaml:"impulse_floor"`
	ImpulseScale float64 `yaml:"impulse_scale"`
	LoadRatio    float64 `yaml:"load_ratio"`
	LoadScale    float64 `yaml:"load_scale"`
	LoadMargin   float64 `yaml:"load_margin"`
	HitScale     float64 `yaml:"hit_scale"`

	Base      float64 `yaml:"base"`
	AreaScale float64 `yaml:"area_scale"`
	MinScale  float64 `yaml:"min_scale"`
	MassScale float64 `yaml:"mass_scale"`
}

type WaterConfig struct {
	Field         water.Params `yaml:"field"`
	BaselineRatio float64      `yaml:"baseline_ratio"`

	Buoyancy      float64 `yaml:"buoyancy"`
	BuoyancyBase  float64 `yaml:"buoyancy_base"`
	BuoyancyDepth float64 `yaml:"buoyancy_depth"`
	MaxDepth      float64 `yaml:"max_depth"`

	DampX    float64 `yaml:"damp_x"`
	DampY    float64 `yaml:"damp_y"`
	DampSpin float64 `yaml:"damp_spin"`

	DisturbScale float64 `yaml:"disturb_scale"`
	SampleWidth  float64 `yaml:"sample_width"`
	MaxSamples   int     `yaml:"max_samples"`

	Splash      bool    `yaml:"splash"`
	SplashJump  float64 `yaml:"splash_jump"`
	DryDepth    float64 `yaml:"dry_depth"`
	WetDepth    float64 `yaml:"wet_depth"`
	SplashSpeed float64 `yaml:"splash_speed"`
}

type DragConfig struct {
	MaxReleaseSpeed float64 `yaml:"max_release_speed"`
	SpinFactor      float64 `yaml:"spin_factor"`
	PickPadding     float64 `yaml:"pick_padding"`
	SnapDegrees     float64 `yaml:"snap_degrees"`
}

type DriverConfig struct {
	TickRate         float64 `yaml:"tick_rate"`
	MaxTicksPerFrame int     `yaml:"max_ticks_per_frame"`

	IterationsHigh int `yaml:"iterations_high"`
	IterationsBase int `yaml:"iterations_base"`
	IterationsLow  int `yaml:"iterations_low"`
	FewBodies      int `yaml:"few_bodies"`
	ManyBodies     int `yaml:"many_bodies"`

	TimeScaleEase float64 `yaml:"time_scale_ease"`
	MinTimeScale  float64 `yaml:"min_time_scale"`
	MaxTimeScale  float64 `yaml:"max_time_scale"`
	Debug         bool    `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Width:          1400,
		Height:         900,
		PixelsPerMeter: common.DefaultPixelsPerMeter,
		Seed:           1,
		Solver:         physics.DefaultChipmunkConfig(),
		Spawn: SpawnConfig{
			BaseSize:            56,
			Margin:              4,
			HistoryCap:          4096,
			MaxStrokePoints:     48,
			StrokeSpacing:       5,
			MinQuadSide:         10,
			MinQuadDim:          22,
			MaxQuadAspect:       12,
			MinCircleDiam:       12,
			MinTriangleSide:     12,
			MinDensity:          0.25,
			MaxDensity:          1,
			GroundHalfThickness: 24,
			GroundWidthRatio:    0.7,
			LandGroundRatio:     0.74,
			WaterGroundRatio:    0.94,
			GroundFriction:      1.4,
		},
		Surface: DefaultSurfaceTuning(),
		Fracture: FractureConfig{
			Decay:        10,
			GraceTicks:   60,
			ImpulseFloor: 0.85,
			ImpulseScale: 0.75,
			LoadRatio:    2.2,
			LoadScale:    4,
			LoadMargin:   4,
			HitScale:     0.9,
			Base:         28,
			AreaScale:    22,
			MinScale:     0.08,
			MassScale:    8,
		},
		Water: WaterConfig{
			Field:         water.DefaultParams(),
			BaselineRatio: 0.58,
			Buoyancy:      24,
			BuoyancyBase:  0.72,
			BuoyancyDepth: 0.78,
			MaxDepth:      1.25,
			DampX:         0.45,
			DampY:         0.65,
			DampSpin:      0.6,
			DisturbScale:  0.055,
			SampleWidth:   30,
			MaxSamples:    7,
			Splash:        true,
			SplashJump:    0.18,
			DryDepth:      0.02,
			WetDepth:      0.08,
			SplashSpeed:   3,
		},
		Drag: DragConfig{
			MaxReleaseSpeed: 30,
			SpinFactor:      0.8,
			PickPadding:     0.3,
			SnapDegrees:     15,
		},
		Driver: DriverConfig{
			TickRate:         55,
			MaxTicksPerFrame: 1,
			IterationsHigh:   20,
			IterationsBase:   14,
			IterationsLow:    10,
			FewBodies:        24,
			ManyBodies:       80,
			TimeScaleEase:    0.25,
			MinTimeScale:     0.1,
			MaxTimeScale:     4,
		},
	}
}

// normalized fills zero fields that would otherwise break the scene.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.PixelsPerMeter <= 0 {
		c.PixelsPerMeter = def.PixelsPerMeter
	}
	if c.Spawn.BaseSize <= 0 {
		c.Spawn.BaseSize = def.Spawn.BaseSize
	}
	if c.Spawn.HistoryCap < 2 {
		c.Spawn.HistoryCap = def.Spawn.HistoryCap
	}
	if c.Spawn.MaxStrokePoints < 3 {
		c.Spawn.MaxStrokePoints = def.Spawn.MaxStrokePoints
	}
	if c.Driver.TickRate <= 0 {
		c.Driver.TickRate = def.Driver.TickRate
	}
	if c.Driver.MaxTicksPerFrame < 1 {
		c.Driver.MaxTicksPerFrame = 1
	}
	if c.Driver.MaxTimeScale <= 0 {
		c.Driver.MaxTimeScale = def.Driver.MaxTimeScale
	}
	return c
}
