package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AI struct {
		APIKey         string
		BaseURL        string
		VisionModel    string
		ChatModel      string
		PlannerModel   string
		RequestTimeout time.Duration
	}
	Server struct {
		Port           string
		AllowedOrigins []string
	}
	ShutdownTimeout time.Duration
}

// Load loads the configuration
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("$HOME/.shapeplan")

	// Defaults mirror the AI gateway setup: one endpoint, a model per task.
	v.SetDefault("ShutdownTimeout", 10*time.Second)
	v.SetDefault("AI.BaseURL", "https://ai-gateway.vercel.sh/v1/ai")
	v.SetDefault("AI.VisionModel", "google/gemini-2.5-pro")
	v.SetDefault("AI.ChatModel", "google/gemini-2.5-flash")
	v.SetDefault("AI.PlannerModel", "openai/gpt-5")
	v.SetDefault("AI.RequestTimeout", 90*time.Second)
	v.SetDefault("Server.Port", "8080")
	v.SetDefault("Server.AllowedOrigins", []string{"*"})

	v.AutomaticEnv()

	err := v.ReadInConfig()

	// No config file: build the config from environment variables alone.
	if err != nil {
		cfg := &Config{}

		cfg.AI.APIKey = os.Getenv("AI_GATEWAY_API_KEY")
		cfg.AI.BaseURL = getEnvOr("AI_BASE_URL", "https://ai-gateway.vercel.sh/v1/ai")
		cfg.AI.VisionModel = getEnvOr("AI_VISION_MODEL", "google/gemini-2.5-pro")
		cfg.AI.ChatModel = getEnvOr("AI_CHAT_MODEL", "google/gemini-2.5-flash")
		cfg.AI.PlannerModel = getEnvOr("AI_PLANNER_MODEL", "openai/gpt-5")
		cfg.AI.RequestTimeout = 90 * time.Second
		cfg.Server.Port = getEnvOr("SERVER_PORT", "8080")
		cfg.Server.AllowedOrigins = strings.Split(getEnvOr("CORS_ALLOWED_ORIGINS", "*"), ",")
		cfg.ShutdownTimeout = 10 * time.Second

		return cfg, nil
	}

	// Process any ${ENV_VAR} syntax in the config values
	for _, key := range v.AllKeys() {
		value := v.GetString(key)
		if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
			envVar := strings.TrimPrefix(strings.TrimSuffix(value, "}"), "${")
			envValue := os.Getenv(envVar)
			if envValue != "" {
				v.Set(key, envValue)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("AI_GATEWAY_API_KEY")
	}

	return &cfg, nil
}

func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
