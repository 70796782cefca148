package config

const (
	defaultConfigPath     = "~/.config/museo/config.toml"
	defaultBaseURL        = "http://127.0.0.1:8000/api"
	defaultTimeoutSeconds = 30
	defaultBurst          = 1
	defaultUserAgent      = "museo-cli/dev"
	defaultAuthStore      = StoreFile
	defaultStateDir       = "~/.local/share/museo"
	defaultTokenKey       = "token"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"

	tokenFileName = "credentials.json"
	tokenDBName   = "credentials.db"
)

// Token store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
			Burst:          defaultBurst,
			UserAgent:      defaultUserAgent,
		},
		Auth: Auth{
			Store:    defaultAuthStore,
			StateDir: defaultStateDir,
			TokenKey: defaultTokenKey,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
