package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig
	Nilvera    NilveraConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// AuthConfig holds the supabase project settings used to resolve bearer
// tokens to a user and tenant.
type AuthConfig struct {
	Supabase SupabaseConfig
	// Secret is the JWT signing secret of the supabase project
	Secret string
}

type SupabaseConfig struct {
	BaseURL    string
	ServiceKey string
}

// NilveraConfig holds the e-invoice provider settings. Environment switches
// between the provider's test and production base URLs.
type NilveraConfig struct {
	APIKey      string
	Environment types.NilveraEnvironment
	Timeout     time.Duration
}

const (
	nilveraTestBaseURL = "https://apitest.nilvera.com"
	nilveraProdBaseURL = "https://api.nilvera.com"
)

// BaseURL returns the provider API base URL for the configured environment
func (c NilveraConfig) BaseURL() string {
	if c.Environment == types.NilveraEnvironmentProduction {
		return nilveraProdBaseURL
	}
	return nilveraTestBaseURL
}

// GetTimeout returns the configured provider timeout with a sane default
func (c NilveraConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return c.Timeout
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pafta")

	// Set up environment variables support
	v.SetEnvPrefix("PAFTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Nilvera:    NilveraConfig{Environment: types.NilveraEnvironmentTest},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
