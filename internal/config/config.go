package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name            string `envconfig:"APP_NAME" default:"VyaparX"`
		Port            int    `envconfig:"PORT" default:"8080"`
		DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" default:"en"`
		DemoData        bool   `envconfig:"DEMO_DATA" default:"true"`
	}

	Server struct {
		Timeout            time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout    time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
		RateLimitPerMinute int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
		AllowedOrigins     []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Voice struct {
		SuggestionThreshold float64 `envconfig:"VOICE_SUGGESTION_THRESHOLD" default:"0.3"`
		MaxSuggestions      int     `envconfig:"VOICE_MAX_SUGGESTIONS" default:"2"`
	}

	TUI struct {
		LogFile string `envconfig:"TUI_LOG_FILE" default:"vyaparx-tui.log"`
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Voice.MaxSuggestions < 1 {
		return nil, fmt.Errorf("VOICE_MAX_SUGGESTIONS must be at least 1, got %d", cfg.Voice.MaxSuggestions)
	}

	return &cfg, nil
}
