package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recetario/internal/flagx"
	"github.com/dmitrijs2005/recetario/internal/timex"
)

// jsonConfig is the on-disk shape of the optional -c/-config file.
// Durations accept both "30m" strings and integer seconds.
type jsonConfig struct {
	ListenAddr                  *string         `json:"listen_addr"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	S3AccessKey                 *string         `json:"s3_access_key"`
	S3SecretKey                 *string         `json:"s3_secret_key"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	S3PublicURL                 *string         `json:"s3_public_url"`
	CORSAllowedOrigins          []string        `json:"cors_allowed_origins"`
	Environment                 *string         `json:"environment"`
	LogLevel                    *string         `json:"log_level"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
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

	setString(&cfg.ListenAddr, jc.ListenAddr)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.SecretKey, jc.SecretKey)
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3PublicURL, jc.S3PublicURL)
	if jc.CORSAllowedOrigins != nil {
		cfg.CORSAllowedOrigins = jc.CORSAllowedOrigins
	}
	setString(&cfg.Environment, jc.Environment)
	setString(&cfg.LogLevel, jc.LogLevel)
	return nil
}
