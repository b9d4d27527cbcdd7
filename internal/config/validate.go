package config

import (
	"fmt"
	"slices"
	"strings"

	"MorphScanner/internal/transcription"
)

var (
	logLevels   = []string{"debug", "info", "warn", "warning", "error"}
	logFormats  = []string{"text", "json"}
	matchers    = []string{"containment", "boundary"}
	storageKind = []string{"file", "sqlite"}
)

// Validate performs rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level %q is not one of %v", c.Log.Level, logLevels)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format %q is not one of %v", c.Log.Format, logFormats)
	}
	if err := c.Corpus.validate(); err != nil {
		return fmt.Errorf("corpus: %w", err)
	}
	if err := c.Evidence.validate(); err != nil {
		return fmt.Errorf("evidence: %w", err)
	}
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

func (c *CorpusConfig) validate() error {
	seen := make(map[string]struct{}, len(c.Sources))
	for i, src := range c.Sources {
		if src.Name == "" || src.Format == "" || src.Path == "" {
			return fmt.Errorf("source #%d needs name, format and path", i+1)
		}
		if _, dup := seen[src.Name]; dup {
			return fmt.Errorf("duplicate source %q", src.Name)
		}
		seen[src.Name] = struct{}{}
	}
	if _, err := transcription.NewSectionMap(c.Sections); err != nil {
		return err
	}
	return nil
}

func (e *EvidenceConfig) validate() error {
	if e.Window < 1 {
		return fmt.Errorf("window must be >= 1 (got %d)", e.Window)
	}
	if e.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", e.Workers)
	}
	if !slices.Contains(matchers, e.Matcher) {
		return fmt.Errorf("matcher %q is not one of %v", e.Matcher, matchers)
	}
	if err := e.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case "file":
		if s.VocabularyPath == "" || s.ReportDir == "" {
			return fmt.Errorf("vocabulary_path and report_dir are required for the file driver")
		}
	case "sqlite":
		if s.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("driver %q is not one of %v", s.Driver, storageKind)
	}
	return nil
}
