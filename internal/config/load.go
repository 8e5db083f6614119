package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default secondary-store table names, used when the environment does not
// provide one. These match the tables created by the AWS setup tooling.
const (
	DefaultBooksTable  = "BookBazaarBooks"
	DefaultOrdersTable = "BookBazaarOrders"
	DefaultUsersTable  = "BookBazaarUsers"
)

// PlaceholderTopicARN is the sample value shipped in .env templates. When the
// configured SNS topic still carries it, notifications stay local.
const PlaceholderTopicARN = "your-topic-arn"

// Load reads configuration from environment variables.
// Application settings use the BOOKBAZAAR_ prefix (BOOKBAZAAR_SERVER_PORT,
// BOOKBAZAAR_DATABASE_URL, ...); the AWS settings additionally honor the
// conventional unprefixed names (AWS_REGION, DYNAMODB_BOOKS_TABLE,
// SNS_TOPIC_ARN) so the service and the seeding tools read the same .env.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_mn", 60)
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.books_table", DefaultBooksTable)
	v.SetDefault("aws.orders_table", DefaultOrdersTable)
	v.SetDefault("aws.users_table", DefaultUsersTable)

	// Environment variables: BOOKBAZAAR_SECTION_KEY overrides section.key.
	v.SetEnvPrefix("BOOKBAZAAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults must be bound explicitly for Unmarshal to see
	// their environment values.
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	// Conventional AWS variable names shared with the operational tooling.
	for key, env := range map[string]string{
		"aws.region":        "AWS_REGION",
		"aws.books_table":   "DYNAMODB_BOOKS_TABLE",
		"aws.orders_table":  "DYNAMODB_ORDERS_TABLE",
		"aws.users_table":   "DYNAMODB_USERS_TABLE",
		"aws.sns_topic_arn": "SNS_TOPIC_ARN",
	} {
		if err := v.BindEnv(key, "BOOKBAZAAR_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
