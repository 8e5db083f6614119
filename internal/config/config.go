package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	AWS      AWSConfig      `mapstructure:"aws"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the primary (relational) store settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication and authorization settings.
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"        validate:"required,min=32"`
	TokenLifetimeMn int    `mapstructure:"token_lifetime_mn" validate:"required,gt=0"`
}

// AWSConfig contains the secondary-store and notification settings.
// Table names fall back to fixed per-entity defaults when unset, matching
// the tables the setup tooling provisions.
type AWSConfig struct {
	Region      string `mapstructure:"region"       validate:"required"`
	BooksTable  string `mapstructure:"books_table"  validate:"required"`
	OrdersTable string `mapstructure:"orders_table" validate:"required"`
	UsersTable  string `mapstructure:"users_table"  validate:"required"`

	// SNSTopicARN selects the notification implementation: empty or the
	// known placeholder means log-only notifications.
	SNSTopicARN string `mapstructure:"sns_topic_arn"`
}
