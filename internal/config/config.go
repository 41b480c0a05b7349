package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Dispatcher DispatcherConfig `mapstructure:"dispatcher" validate:"required"`
}

// ServerConfig contains all HTTP server related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the on-device SQLite storage settings.
type DatabaseConfig struct {
	// Path is the filesystem location of the SQLite database file.
	// The special value ":memory:" keeps the database in memory, which is
	// used by tests.
	Path string `mapstructure:"path" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// DispatcherConfig contains settings for the background reminder dispatcher.
type DispatcherConfig struct {
	WorkerCount         int `mapstructure:"worker_count"          validate:"required,gt=0,lte=32"`
	QueueSize           int `mapstructure:"queue_size"            validate:"required,gt=0"`
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" validate:"required,gt=0"`
}
