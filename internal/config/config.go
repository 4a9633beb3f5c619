package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	FrontendURL     string        `mapstructure:"frontend_url" validate:"omitempty,url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects the SQL driver and where to connect.
// For sqlite the URL is a file path or modernc DSN.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains the Telegram bot settings used to verify init data.
type AuthConfig struct {
	BotToken string        `mapstructure:"bot_token" validate:"required"`
	MaxAge   time.Duration `mapstructure:"max_age" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
// The provider name is checked when the backend is built, not here, so an
// unknown name surfaces as an unsupported backend.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required"`
	Model    string `mapstructure:"model"`

	AnthropicAPIKey string `mapstructure:"anthropic_api_key" validate:"required_if=Provider anthropic"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	GeminiAPIKey    string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`

	AnthropicBaseURL string `mapstructure:"anthropic_base_url" validate:"omitempty,url"`
	OpenAIBaseURL    string `mapstructure:"openai_base_url" validate:"omitempty,url"`
	GeminiBaseURL    string `mapstructure:"gemini_base_url" validate:"omitempty,url"`

	MaxTokens      int           `mapstructure:"max_tokens" validate:"gt=0"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" validate:"gt=0"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout" validate:"gte=0"`
}
