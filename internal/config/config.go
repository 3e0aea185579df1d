package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Review   ReviewConfig   `mapstructure:"review"   validate:"required"`
	Dispatch DispatchConfig `mapstructure:"dispatch" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// ReviewConfig contains the scheduling and statistics policy knobs.
type ReviewConfig struct {
	// IntervalDays is the default gap between a word being marked learned
	// and it coming due for review again.
	IntervalDays int `mapstructure:"interval_days" validate:"required,gt=0"`

	// DailyGoal is the default number of words a user aims to learn per day.
	DailyGoal int `mapstructure:"daily_goal" validate:"required,gt=0"`

	// StreakLookbackDays bounds how far back the streak computation scans.
	StreakLookbackDays int `mapstructure:"streak_lookback_days" validate:"required,gt=0"`
}

// DispatchConfig contains all reminder dispatcher settings.
type DispatchConfig struct {
	// CronSpec is the cadence at which the dispatcher scans for due
	// reminders, in standard cron syntax.
	CronSpec string `mapstructure:"cron_spec" validate:"required"`

	// BatchSize caps how many reminders a single dispatch pass processes.
	BatchSize int `mapstructure:"batch_size" validate:"required,gt=0"`

	// Workers is the number of concurrent delivery workers.
	Workers int `mapstructure:"workers" validate:"required,gt=0"`
}
