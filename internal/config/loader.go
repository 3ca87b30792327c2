package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// validator is satisfied by every game config.
type validator interface {
	Validate() error
}

// LoadRacer loads Crypto Racer configuration.
// Search order: customPath -> ~/.arcade/configs/racer.yaml -> ./configs/racer.yaml -> embedded default
func LoadRacer(customPath string) (RacerConfig, error) {
	return load("racer", customPath, defaultRacerYAML, DefaultRacerConfig)
}

// LoadMaze loads Try Harder configuration.
// Search order: customPath -> ~/.arcade/configs/maze.yaml -> ./configs/maze.yaml -> embedded default
func LoadMaze(customPath string) (MazeConfig, error) {
	return load("maze", customPath, defaultMazeYAML, DefaultMazeConfig)
}

// load resolves a game config along the search order. A custom path that
// cannot be read, parsed or validated is an error; the implicit locations
// are skipped silently when unusable.
func load[T validator](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	if customPath != "" {
		return parseFile(customPath, fallback)
	}

	candidates := []string{userConfigPath(name + ".yaml"), filepath.Join("configs", name+".yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := parseFile(path, fallback); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(embedded, fallback)
	if err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseFile[T validator](path string, fallback func() T) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data, fallback)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hardcoded defaults, so a file only needs
// the keys it overrides, and validates the result.
func Parse[T validator](data []byte, fallback func() T) (T, error) {
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
