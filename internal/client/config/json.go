package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/geosick-health/geosick/internal/flagx"
	"github.com/geosick-health/geosick/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the auth delay either as a string like
// "500ms" or as integer nanoseconds.
type JsonConfig struct {
	DatabasePath  string         `json:"database_path"`
	DirectoryAddr string         `json:"directory_addr"`
	AuthMinDelay  timex.Duration `json:"auth_min_delay"`
}

// parseJson overlays Config with values loaded from a JSON file, resolved
// via the -c/-config flags. If no file is given, nothing happens. Read or
// unmarshal errors panic; the entry point treats a broken config file as
// unrecoverable.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.DirectoryAddr != "" {
		cfg.DirectoryAddr = jc.DirectoryAddr
	}
	if jc.AuthMinDelay.Duration != 0 {
		cfg.AuthMinDelay = time.Duration(jc.AuthMinDelay.Duration)
	}
}
