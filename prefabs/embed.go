package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultTuning is the tuning file loaded when no other is named.
const DefaultTuning = "sandbox.yaml"

//go:embed *.yaml
var TuningFS embed.FS

//go:embed scenes/*.tengo
var ScenesFS embed.FS

// Load returns a tuning file, preferring a copy on disk under prefabs/ so
// edits show up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanTuningPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return TuningFS.ReadFile(clean)
}

// LoadScene returns a scene script by name, with or without the scenes/
// prefix and .tengo extension. Disk copies win here too.
func LoadScene(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

// SceneNames lists the embedded scene scripts without extension, sorted.
func SceneNames() []string {
	entries, err := fs.ReadDir(ScenesFS, "scenes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsSceneFile(e.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanTuningPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanTuningPath(p string) string {
	if p == "" {
		return DefaultTuning
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	return s
}

func cleanScenePath(p string) string {
	s := filepath.ToSlash(p)
	for _, prefix := range []string{"prefabs/", "scenes/"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			s = after
		}
	}
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return "scenes/" + s
}

func diskPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
