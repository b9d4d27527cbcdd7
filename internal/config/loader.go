package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"MorphScanner/internal/transcription"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from MORPHSCANNER_CONFIG
// (fallback "./morphscanner.yaml"); a missing fallback file is not an error.
func Load() (*Config, error) {
	path := os.Getenv(configPathEnv)
	explicitPath := path != ""
	if !explicitPath {
		path = defaultConfigPath
	}
	return load(path, explicitPath)
}

// LoadFile reads the given file, which must exist.
func LoadFile(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, required bool) (*Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if required {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if len(cfg.Corpus.Sections) == 0 {
		cfg.Corpus.Sections = transcription.DefaultRanges()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
