package config

import (
	"encoding/json"
	"os"

	"github.com/osmansemir/mindvale-cli/internal/flagx"
	"github.com/osmansemir/mindvale-cli/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be given either as strings like "500ms" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	TokenFile      *string         `json:"token_file"`
	PageSize       *int            `json:"page_size"`
	SearchDebounce *timex.Duration `json:"search_debounce"`
}

// parseJSON overlays cfg with values from the file named by -c / -config.
// Absent file means no overlay; absent keys keep their current values.
// Read or unmarshal errors panic, as a broken config file should not be
// silently ignored.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.TokenFile != nil {
		cfg.TokenFile = *jc.TokenFile
	}
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
	}
	if jc.SearchDebounce != nil {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
}
