package config

import (
	"fmt"
	"time"
)

type Config struct {
	APIBaseURL     string        `env:"RECETARIO_API_URL"`
	DataDir        string        `env:"RECETARIO_DATA_DIR"`
	RequestTimeout time.Duration `env:"RECETARIO_REQUEST_TIMEOUT"`
	LogLevel       string        `env:"RECETARIO_LOG_LEVEL"`
}

func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.DataDir = ".recetario"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file, the environment and
// finally the flags found in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	return cfg, nil
}
