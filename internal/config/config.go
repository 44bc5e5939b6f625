// Package config handles HomeAI configuration loading and management.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".homeai")

	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Provider: ProviderConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-3.5-turbo",
			TimeoutSeconds: 60,
		},
		Valuation: ValuationConfig{
			BaseURL: "https://api.openwebninja.com/realtime-zillow-data/property-details-address",
		},
		Places: PlacesConfig{
			BaseURL: "https://maps.googleapis.com/maps/api/place",
		},
		Weather: WeatherConfig{
			BaseURL:   "https://api.open-meteo.com/v1/forecast",
			Latitude:  41.8781,
			Longitude: -87.6298,
			Timezone:  "America/Chicago",
			Location:  "Chicago, IL",
		},
		Agent: AgentConfig{
			MaxPropertyToolCalls: 2,
		},
		Paths: PathsConfig{
			DataDir:      dataDir,
			DatabasePath: filepath.Join(dataDir, "homeai.db"),
			DocumentsDir: filepath.Join(dataDir, "documents"),
		},
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return expandPaths(cfg), nil
}

// Save saves the configuration to the given path.
func (c *Config) Save(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	return encoder.Encode(c)
}

// expandPaths expands a leading ~ in configured paths.
func expandPaths(cfg *Config) *Config {
	homeDir, _ := os.UserHomeDir()

	expand := func(p string) string {
		if len(p) > 0 && p[0] == '~' {
			return filepath.Join(homeDir, p[1:])
		}
		return p
	}

	cfg.Paths.DataDir = expand(cfg.Paths.DataDir)
	cfg.Paths.DatabasePath = expand(cfg.Paths.DatabasePath)
	cfg.Paths.DocumentsDir = expand(cfg.Paths.DocumentsDir)

	return cfg
}
