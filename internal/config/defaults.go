package config

const (
	defaultBaseURL   = "https://ankiweb.net"
	defaultEditorURL = "https://ankiuser.net"
	defaultSyncURL   = "https://sync.ankiweb.net"

	// Basic (and reversed card) note type observed in the editor UI.
	defaultModelID = 1763445109221

	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

	defaultImageMaxBytes = 2 << 20
)

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		Remote: Remote{
			BaseURL:        defaultBaseURL,
			EditorURL:      defaultEditorURL,
			SyncURL:        defaultSyncURL,
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: 10,
			ModelID:        defaultModelID,
		},
		Cache: Cache{
			Enabled: true,
			Path:    "~/.rememberit/cache.db",
		},
		Format: Format{
			DefaultTheme:  "random",
			ImageMaxBytes: defaultImageMaxBytes,
			TemplatesDir:  "~/.rememberit/templates",
		},
		Assets: Assets{
			OutputDir:      "~/.rememberit/assets",
			TimeoutSeconds: 30,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
