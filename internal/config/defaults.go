package config

const (
	defaultLogDir               = "~/.local/share/subtran/logs"
	defaultModelDir             = "~/.local/share/subtran/models"
	defaultCacheDir             = "~/.cache/subtran"
	defaultSourceLanguage       = "en"
	defaultTargetLanguage       = "hu"
	defaultEngineBaseURL        = "http://127.0.0.1:5000"
	defaultEngineTimeoutSeconds = 60
	defaultEngineMaxRetries     = 3
	defaultBatchMaxSentences    = 5
	defaultBatchMaxChars        = 512
	defaultMaxCharsPerLine      = 65
	defaultMarker               = "§"
	defaultModelDownloadURL     = "https://argos-net.com/v1/translate-en_hu-1_9.argosmodel"
	defaultModelMinFreeGiB      = 1
	defaultModelTimeoutSeconds  = 300
	defaultMemoryPath           = "~/.local/share/subtran/memory.db"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// defaultProtectedTerms are technology names that must survive translation
// untouched.
func defaultProtectedTerms() []string {
	return []string{
		"Angular", "React", "React Native", "Python", "Vue", "Node.js", "Docker", "Kubernetes",
		"Git", "GitHub", "TypeScript", "JavaScript", "AWS", "Azure",
		"History API", "Zero to Mastery", "C++", "C#", "C-sharp", "Java", "Objective-C", "SQL",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			ModelDir: defaultModelDir,
			CacheDir: defaultCacheDir,
		},
		Languages: Languages{
			Source: defaultSourceLanguage,
			Target: defaultTargetLanguage,
		},
		Engine: Engine{
			BaseURL:        defaultEngineBaseURL,
			TimeoutSeconds: defaultEngineTimeoutSeconds,
			MaxRetries:     defaultEngineMaxRetries,
		},
		Batch: Batch{
			MaxSentences: defaultBatchMaxSentences,
			MaxChars:     defaultBatchMaxChars,
		},
		Format: Format{
			MaxCharsPerLine: defaultMaxCharsPerLine,
			Wrap:            true,
		},
		Vocabulary: Vocabulary{
			ProtectedTerms: defaultProtectedTerms(),
			Marker:         defaultMarker,
		},
		Model: Model{
			DownloadURL:    defaultModelDownloadURL,
			AutoInstall:    true,
			MinFreeGiB:     defaultModelMinFreeGiB,
			TimeoutSeconds: defaultModelTimeoutSeconds,
		},
		Memory: Memory{
			Enabled: true,
			Path:    defaultMemoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
