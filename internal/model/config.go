package model

import "time"

// Config holds the complete finx configuration
type Config struct {
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Backend     BackendConfig     `yaml:"backend" json:"backend"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// CacheConfig controls the seen-message dedupe cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"` // Disk cache directory (default ~/.finx/cache)
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// LLMConfig configures the optional expense categorization step
type LLMConfig struct {
	Provider          string  `yaml:"provider" json:"provider"` // "openai", "ollama", "" (disabled)
	Model             string  `yaml:"model" json:"model"`
	APIKey            string  `yaml:"-" json:"-"` // Never serialized; from env
	BaseURL           string  `yaml:"base_url" json:"base_url"`
	Timeout           int     `yaml:"timeout" json:"timeout"` // Seconds
	MaxTokens         int     `yaml:"max_tokens" json:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
	HTTPProxy         string  `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy        string  `yaml:"https_proxy" json:"https_proxy"`
	NoProxy           string  `yaml:"no_proxy" json:"no_proxy"`
}

// BackendConfig configures submission of confirmed candidates to the FinShare
// backend
type BackendConfig struct {
	BaseURL    string        `yaml:"base_url" json:"base_url"`
	APIToken   string        `yaml:"-" json:"-"` // From FINX_API_TOKEN
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	HTTPProxy  string        `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy" json:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy" json:"no_proxy"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   30 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Provider:          "", // Disabled by default
			Timeout:           30,
			MaxTokens:         100,
			RequestsPerSecond: 2,
			Burst:             2,
		},
		Backend: BackendConfig{
			BaseURL: "https://api.finshare.app",
			Timeout: 15 * time.Second,
		},
		Output: OutputConfig{},
	}
}
