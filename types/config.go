package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	CurrentUser   string                `yaml:"currentUser"`
	ServerURL     string                `yaml:"serverUrl"`
	Concurrency   int                   `yaml:"concurrency"`
	Language      string                `yaml:"language"`
	LogLevel      string                `yaml:"logLevel"`
	SpeedLimit    int64                 `yaml:"speedLimit"` // bytes per second per file, 0 = unlimited
	SkipTLSVerify bool                  `yaml:"skipTlsVerify,omitempty"`
	Users         map[string]UserConfig `yaml:"users"`
}

// UserConfig holds the credentials of one Immich account.
type UserConfig struct {
	APIKey string `yaml:"apiKey"`
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log           string // log level override: debug|info|warn|error
	UseConfigPath string
	UseLogDir     string
	NoLogFile     bool // if true, only log to stderr.
}
