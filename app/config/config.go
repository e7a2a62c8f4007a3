package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log        Log        `yaml:"log"`
	Telegram   Telegram   `yaml:"telegram"`
	OpenRouter OpenRouter `yaml:"openrouter"`
	Bot        Bot        `yaml:"bot"`
	Supervisor Supervisor `yaml:"supervisor"`
}

type Telegram struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789" validate:"required"`
}

type OpenRouter struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1"`
	// API token; completions degrade to an error reply when empty
	Token string `yaml:"token" example:"sk-or-v1-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// Default model, switchable at runtime via /setmodel
	Model string `yaml:"model" example:"meta-llama/llama-3.1-8b-instruct"`
	// Total request timeout in seconds
	TimeoutSeconds int `yaml:"timeout_seconds" example:"45"`
}

type Bot struct {
	// Context depth, in user/assistant pairs
	MaxTurns int `yaml:"max_turns" example:"8"`
	// Outgoing message size cap, longer replies are split
	MaxMessageLength int `yaml:"max_message_length" example:"3900"`
}

type Supervisor struct {
	// Liveness server port; falls back to the PORT env variable
	Port int `yaml:"port" example:"10000"`
	// Child command to supervise
	Command []string `yaml:"command"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	return LoadFrom("config.yaml")
}

func LoadFrom(path string) (*Config, error) {
	var result Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.OpenRouter.BaseURL == "" {
		result.OpenRouter.BaseURL = "https://openrouter.ai/api/v1"
	}
	if result.OpenRouter.Model == "" {
		result.OpenRouter.Model = "meta-llama/llama-3.1-8b-instruct"
	}
	if result.OpenRouter.TimeoutSeconds == 0 {
		result.OpenRouter.TimeoutSeconds = 45
	}
	if result.Bot.MaxTurns == 0 {
		result.Bot.MaxTurns = 8
	}
	if result.Bot.MaxMessageLength == 0 {
		result.Bot.MaxMessageLength = 3900
	}
	if result.Supervisor.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			result.Supervisor.Port = port
		}
	}
	if result.Supervisor.Port == 0 {
		result.Supervisor.Port = 10000
	}
	if len(result.Supervisor.Command) == 0 {
		result.Supervisor.Command = []string{"./companion"}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
