package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLanguages()
	c.normalizeEngine()
	c.normalizeBatch()
	c.normalizeFormat()
	c.normalizeVocabulary()
	c.normalizeModel()
	if err := c.normalizeMemory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ModelDir) == "" {
		c.Paths.ModelDir = defaultModelDir
	}
	if c.Paths.ModelDir, err = expandPath(c.Paths.ModelDir); err != nil {
		return fmt.Errorf("paths.model_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLanguages() {
	c.Languages.Source = strings.ToLower(strings.TrimSpace(c.Languages.Source))
	if c.Languages.Source == "" {
		c.Languages.Source = defaultSourceLanguage
	}
	c.Languages.Target = strings.ToLower(strings.TrimSpace(c.Languages.Target))
	if c.Languages.Target == "" {
		c.Languages.Target = defaultTargetLanguage
	}
}

func (c *Config) normalizeEngine() {
	c.Engine.BaseURL = strings.TrimRight(strings.TrimSpace(c.Engine.BaseURL), "/")
	if c.Engine.BaseURL == "" {
		c.Engine.BaseURL = defaultEngineBaseURL
	}
	c.Engine.APIKey = strings.TrimSpace(c.Engine.APIKey)
	if c.Engine.APIKey == "" {
		if value, ok := os.LookupEnv("SUBTRAN_API_KEY"); ok {
			c.Engine.APIKey = strings.TrimSpace(value)
		}
	}
	if c.Engine.TimeoutSeconds <= 0 {
		c.Engine.TimeoutSeconds = defaultEngineTimeoutSeconds
	}
	if c.Engine.MaxRetries < 0 {
		c.Engine.MaxRetries = defaultEngineMaxRetries
	}
}

func (c *Config) normalizeBatch() {
	if c.Batch.MaxSentences <= 0 {
		c.Batch.MaxSentences = defaultBatchMaxSentences
	}
	if c.Batch.MaxChars <= 0 {
		c.Batch.MaxChars = defaultBatchMaxChars
	}
}

func (c *Config) normalizeFormat() {
	if c.Format.MaxCharsPerLine <= 0 {
		c.Format.MaxCharsPerLine = defaultMaxCharsPerLine
	}
}

func (c *Config) normalizeVocabulary() {
	c.Vocabulary.Marker = strings.TrimSpace(c.Vocabulary.Marker)
	if c.Vocabulary.Marker == "" {
		c.Vocabulary.Marker = defaultMarker
	}
	terms := make([]string, 0, len(c.Vocabulary.ProtectedTerms))
	seen := make(map[string]struct{}, len(c.Vocabulary.ProtectedTerms))
	for _, term := range c.Vocabulary.ProtectedTerms {
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		terms = append(terms, trimmed)
	}
	c.Vocabulary.ProtectedTerms = terms
}

func (c *Config) normalizeModel() {
	c.Model.DownloadURL = strings.TrimSpace(c.Model.DownloadURL)
	if c.Model.DownloadURL == "" {
		c.Model.DownloadURL = defaultModelDownloadURL
	}
	if c.Model.MinFreeGiB <= 0 {
		c.Model.MinFreeGiB = defaultModelMinFreeGiB
	}
	if c.Model.TimeoutSeconds <= 0 {
		c.Model.TimeoutSeconds = defaultModelTimeoutSeconds
	}
}

func (c *Config) normalizeMemory() error {
	var err error
	if strings.TrimSpace(c.Memory.Path) == "" {
		c.Memory.Path = defaultMemoryPath
	}
	if c.Memory.Path, err = expandPath(c.Memory.Path); err != nil {
		return fmt.Errorf("memory.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
