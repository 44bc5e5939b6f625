package config

// Config represents the main HomeAI configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Provider  ProviderConfig  `toml:"provider"`
	Valuation ValuationConfig `toml:"valuation"`
	Places    PlacesConfig    `toml:"places"`
	Weather   WeatherConfig   `toml:"weather"`
	Agent     AgentConfig     `toml:"agent"`
	Paths     PathsConfig     `toml:"paths"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// Tokens maps bearer tokens to user ids. A real deployment would
	// validate sessions against the user store instead.
	Tokens map[string]int64 `toml:"tokens"`
}

// ProviderConfig configures the text-generation provider.
type ProviderConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ValuationConfig configures the home-value lookup provider.
type ValuationConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// PlacesConfig configures the place-search provider.
type PlacesConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// WeatherConfig configures the weather provider. Coordinates are fixed:
// the agent only reports weather for its home metro.
type WeatherConfig struct {
	BaseURL   string  `toml:"base_url"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Timezone  string  `toml:"timezone"`
	Location  string  `toml:"location"`
}

// AgentConfig tunes the dialogue orchestrator.
type AgentConfig struct {
	// MaxPropertyToolCalls caps tool invocations per turn on the
	// property path. The general path is uncapped.
	MaxPropertyToolCalls int `toml:"max_property_tool_calls"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	DataDir      string `toml:"data_dir"`
	DatabasePath string `toml:"database_path"`
	DocumentsDir string `toml:"documents_dir"`
}
