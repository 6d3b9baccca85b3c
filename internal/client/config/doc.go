// Package config loads runtime configuration for the recetario terminal client.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. A .env file in the working directory, then the process environment.
//  4. Command-line flags.
//
// Flags
//
//	-a string   backend base URL (RECETARIO_API_URL)
//	-d string   data directory for the local database and log (RECETARIO_DATA_DIR)
//	-t int      per-request timeout in seconds (RECETARIO_REQUEST_TIMEOUT, e.g. "15s")
//	-l string   log level: debug, info, warn, error (RECETARIO_LOG_LEVEL)
//
// JSON file
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "data_dir": ".recetario",
//	  "request_timeout": "15s",
//	  "log_level": "info"
//	}
package config
