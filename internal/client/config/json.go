package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recetario/internal/flagx"
	"github.com/dmitrijs2005/recetario/internal/timex"
)

// jsonConfig mirrors Config for unmarshalling. Pointer fields tell "absent"
// apart from the zero value so a partial file only overrides what it names.
type jsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	DataDir        *string         `json:"data_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
