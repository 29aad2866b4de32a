package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLanguages(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateFormat(); err != nil {
		return err
	}
	if err := c.validateVocabulary(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLanguages() error {
	for key, code := range map[string]string{
		"languages.source": c.Languages.Source,
		"languages.target": c.Languages.Target,
	} {
		if len(code) != 2 {
			return fmt.Errorf("%s must be a two-letter ISO 639-1 code, got %q", key, code)
		}
	}
	if c.Languages.Source == c.Languages.Target {
		return errors.New("languages.source and languages.target must differ")
	}
	return nil
}

func (c *Config) validateEngine() error {
	parsed, err := url.Parse(c.Engine.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("engine.base_url must be an absolute URL, got %q", c.Engine.BaseURL)
	}
	if err := ensurePositiveMap(map[string]int{
		"engine.timeout_seconds": c.Engine.TimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Engine.MaxRetries < 0 {
		return errors.New("engine.max_retries must be >= 0")
	}
	return nil
}

func (c *Config) validateBatch() error {
	return ensurePositiveMap(map[string]int{
		"batch.max_sentences": c.Batch.MaxSentences,
		"batch.max_chars":     c.Batch.MaxChars,
	})
}

func (c *Config) validateFormat() error {
	return ensurePositiveMap(map[string]int{
		"format.max_chars_per_line": c.Format.MaxCharsPerLine,
	})
}

func (c *Config) validateVocabulary() error {
	if utf8.RuneCountInString(c.Vocabulary.Marker) != 1 {
		return fmt.Errorf("vocabulary.marker must be a single character, got %q", c.Vocabulary.Marker)
	}
	for _, term := range c.Vocabulary.ProtectedTerms {
		if strings.ContainsAny(term, c.Vocabulary.Marker) {
			return fmt.Errorf("vocabulary.protected_terms entry %q contains the marker character", term)
		}
	}
	return nil
}

func (c *Config) validateModel() error {
	if !c.Model.AutoInstall {
		return nil
	}
	if strings.TrimSpace(c.Model.DownloadURL) == "" {
		return errors.New("model.download_url must be set when model.auto_install is true")
	}
	return ensurePositiveMap(map[string]int{
		"model.min_free_gib":    c.Model.MinFreeGiB,
		"model.timeout_seconds": c.Model.TimeoutSeconds,
	})
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
