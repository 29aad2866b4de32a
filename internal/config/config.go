package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	ModelDir string `toml:"model_dir"`
	CacheDir string `toml:"cache_dir"`
}

// Languages contains the source and target language pair.
type Languages struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// Engine contains configuration for the translation engine endpoint.
type Engine struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxRetries     int    `toml:"max_retries"`
}

// Batch contains the sentence batching limits.
type Batch struct {
	MaxSentences int `toml:"max_sentences"`
	MaxChars     int `toml:"max_chars"`
}

// Format contains output formatting settings.
type Format struct {
	MaxCharsPerLine int  `toml:"max_chars_per_line"`
	Wrap            bool `toml:"wrap"`
}

// Vocabulary contains terms shielded from translation.
type Vocabulary struct {
	ProtectedTerms []string `toml:"protected_terms"`
	Marker         string   `toml:"marker"`
}

// Model contains configuration for offline model provisioning.
type Model struct {
	DownloadURL    string `toml:"download_url"`
	AutoInstall    bool   `toml:"auto_install"`
	MinFreeGiB     int    `toml:"min_free_gib"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Memory contains configuration for the translation memory cache.
type Memory struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subtran.
//
// Configuration sections by subsystem:
//   - Paths: log, model, and cache directories
//   - Languages: source and target language codes
//   - Engine: translation endpoint, credentials, and retry budget
//   - Batch: sentence-count and character limits per translation call
//   - Format: line wrapping for the output subtitle file
//   - Vocabulary: protected terms and the shield marker
//   - Model: offline model download and installation
//   - Memory: persistent translation cache
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Languages  Languages  `toml:"languages"`
	Engine     Engine     `toml:"engine"`
	Batch      Batch      `toml:"batch"`
	Format     Format     `toml:"format"`
	Vocabulary Vocabulary `toml:"vocabulary"`
	Model      Model      `toml:"model"`
	Memory     Memory     `toml:"memory"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subtran/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subtran.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a translation run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, c.Paths.ModelDir, c.Paths.CacheDir}
	if c.Memory.Enabled && strings.TrimSpace(c.Memory.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.Memory.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
