package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// TILI_AUTH_BOT_TOKEN for auth.bot_token.
const EnvPrefix = "TILI"

var defaults = map[string]any{
	"server.port":             8080,
	"server.log_level":        "info",
	"server.frontend_url":     "",
	"server.shutdown_timeout": 10 * time.Second,

	"database.driver": "sqlite",
	"database.url":    "tili.db",

	"auth.bot_token": "",
	"auth.max_age":   time.Hour,

	"llm.provider":           "anthropic",
	"llm.model":              "",
	"llm.anthropic_api_key":  "",
	"llm.openai_api_key":     "",
	"llm.gemini_api_key":     "",
	"llm.anthropic_base_url": "https://api.anthropic.com",
	"llm.openai_base_url":    "https://api.openai.com",
	"llm.gemini_base_url":    "",
	"llm.max_tokens":         512,
	"llm.retry_base_delay":   time.Second,
	"llm.http_timeout":       time.Duration(0),
}

// Load reads configuration from defaults, an optional YAML file and
// TILI_-prefixed environment variables, in increasing order of precedence.
//
// With an empty configFile, ./config.yaml is used if it exists. An explicit
// configFile that cannot be read is an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Server.LogLevel = strings.ToLower(cfg.Server.LogLevel)
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
