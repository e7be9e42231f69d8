package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Model is the provider-qualified model identifier
	Model string `yaml:"model" mapstructure:"model"`

	// SystemPrompt is the fixed instruction applied to every run
	SystemPrompt string `yaml:"system_prompt" mapstructure:"system_prompt"`

	// API configuration
	API APIConfig `yaml:"api" mapstructure:"api"`
}

// APIConfig holds provider credentials and their storage preference
type APIConfig struct {
	GoogleKey   string `yaml:"google_key" mapstructure:"google_key"`
	OpenAIKey   string `yaml:"openai_key" mapstructure:"openai_key"`
	UseKeychain bool   `yaml:"use_keychain" mapstructure:"use_keychain"` // Prefer keychain over config file
}

// Default returns default configuration, matching the hello-world
// defaults: Gemini Flash with a one-sentence system prompt.
func Default() *Config {
	return &Config{
		Model:        "google-gla:gemini-1.5-flash",
		SystemPrompt: "Be concise, reply with one sentence.",
	}
}

// DefaultPath returns the standard config file location
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".promptrun", "config.yaml")
}

// Load loads configuration from file with env overrides applied on top
func Load(path string) (*Config, error) {
	// Load .env files first so overrides see them
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("model", cfg.Model)
	v.SetDefault("system_prompt", cfg.SystemPrompt)
	v.SetDefault("api", cfg.API)

	v.SetEnvPrefix("PROMPTRUN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".promptrun")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".promptrun"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence. The original
// workflow keeps local secrets in .env.local, so it wins over .env.
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	// Also try loading from home directory
	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".promptrun", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config.
// Precedence: 1. Env var (highest) 2. Keychain 3. Config file (lowest)
func applyEnvOverrides(cfg *Config) {
	if model := os.Getenv("PROMPTRUN_MODEL"); model != "" {
		cfg.Model = model
	}
	if prompt := os.Getenv("PROMPTRUN_SYSTEM_PROMPT"); prompt != "" {
		cfg.SystemPrompt = prompt
	}

	// GOOGLE_API_KEY matches the Gemini console docs; GEMINI_API_KEY is
	// accepted as the common alternative spelling.
	if key := firstEnv("GOOGLE_API_KEY", "GEMINI_API_KEY"); key != "" {
		cfg.API.GoogleKey = key
	} else if cfg.API.GoogleKey == "" {
		km := NewKeyringManager()
		if km.IsAvailable() {
			if keychainKey, err := km.GetGoogleKey(); err == nil && keychainKey != "" {
				cfg.API.GoogleKey = keychainKey
			}
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.API.OpenAIKey = key
	} else if cfg.API.OpenAIKey == "" {
		km := NewKeyringManager()
		if km.IsAvailable() {
			if keychainKey, err := km.GetOpenAIKey(); err == nil && keychainKey != "" {
				cfg.API.OpenAIKey = keychainKey
			}
		}
	}
}

// firstEnv returns the first non-empty value among the named variables
func firstEnv(names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("model", c.Model)
	v.Set("system_prompt", c.SystemPrompt)
	v.Set("api", c.API)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
