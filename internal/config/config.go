package config

import (
	"MorphScanner/internal/evidence"
	"MorphScanner/internal/transcription"
)

const (
	configPathEnv     = "MORPHSCANNER_CONFIG"
	defaultConfigPath = "./morphscanner.yaml"
)

// Config holds high-level settings required across the application.
type Config struct {
	Log       LogConfig      `yaml:"log"`
	Corpus    CorpusConfig   `yaml:"corpus"`
	Morphemes MorphemeConfig `yaml:"morphemes"`
	Evidence  EvidenceConfig `yaml:"evidence"`
	Storage   StorageConfig  `yaml:"storage"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"  env:"MORPHSCANNER_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"MORPHSCANNER_LOG_FORMAT" env-default:"text"`
}

// CorpusConfig lists the transcription documents and how folios map to sections.
type CorpusConfig struct {
	Sources  []SourceConfig             `yaml:"sources"`
	Sections []transcription.FolioRange `yaml:"sections"`
}

// SourceConfig describes one transcription document and the reader that parses it.
type SourceConfig struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// MorphemeConfig points at an optional morpheme table file; empty means the built-in table.
type MorphemeConfig struct {
	TablePath string   `yaml:"table_path" env:"MORPHSCANNER_MORPHEME_TABLE"`
	Glue      []string `yaml:"glue"       env:"MORPHSCANNER_GLUE" env-separator:","`
}

// EvidenceConfig tunes statistics aggregation and scoring.
type EvidenceConfig struct {
	Window     int                 `yaml:"window"  env:"MORPHSCANNER_WINDOW"  env-default:"3"`
	Workers    int                 `yaml:"workers" env:"MORPHSCANNER_WORKERS" env-default:"1"`
	Matcher    string              `yaml:"matcher" env:"MORPHSCANNER_MATCHER" env-default:"containment"`
	Thresholds evidence.Thresholds `yaml:"thresholds"`
}

// StorageConfig selects where snapshots and round reports live.
type StorageConfig struct {
	Driver         string `yaml:"driver"          env:"MORPHSCANNER_STORAGE_DRIVER" env-default:"file"`
	VocabularyPath string `yaml:"vocabulary_path" env:"MORPHSCANNER_VOCABULARY"     env-default:"./vocabulary.json"`
	ReportDir      string `yaml:"report_dir"      env:"MORPHSCANNER_REPORT_DIR"     env-default:"./rounds"`
	SQLitePath     string `yaml:"sqlite_path"     env:"MORPHSCANNER_SQLITE"         env-default:"./morphscanner.db"`
}

func defaultConfig() Config {
	return Config{
		Corpus: CorpusConfig{
			Sections: transcription.DefaultRanges(),
		},
		Evidence: EvidenceConfig{
			Thresholds: evidence.DefaultThresholds(),
		},
	}
}
