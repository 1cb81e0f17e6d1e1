package waypoint

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/taskedit/internal/core/logging"
)

// ParseYAML reads a YAML list of waypoints.
func ParseYAML(r io.Reader) ([]Waypoint, error) {
	var out []Waypoint
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode waypoints: %w", err)
	}

	for i, w := range out {
		if strings.TrimSpace(w.Name) == "" {
			return nil, fmt.Errorf("waypoint %d: name is required", i)
		}
	}
	return out, nil
}

// Load expands the glob patterns and reads every matching .cup, .yaml or
// .yml file into one database. Patterns that match nothing are skipped.
func Load(patterns []string) (*Database, error) {
	logger := logging.Component("waypoint")

	var (
		all  []Waypoint
		seen = make(map[string]bool)
	)

	for _, pattern := range patterns {
		matches, err := Glob(pattern)
		if err != nil {
			return nil, err
		}

		for _, path := range matches {
			if seen[path] {
				continue
			}
			seen[path] = true

			items, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			logger.Debug().Str("file", path).Int("count", len(items)).Msg("loaded waypoints")
			all = append(all, items...)
		}
	}

	return NewDatabase(all), nil
}

// Glob expands a waypoint file pattern. A leading ~ is the home directory.
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(expandHome(pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	return matches, nil
}

// LoadFile reads a single waypoint file, choosing the parser by extension.
func LoadFile(path string) ([]Waypoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open waypoint file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var items []Waypoint
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cup":
		items, err = ParseCUP(f)
	case ".yaml", ".yml":
		items, err = ParseYAML(f)
	default:
		return nil, fmt.Errorf("unsupported waypoint file %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
