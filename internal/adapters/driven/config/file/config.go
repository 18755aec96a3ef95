package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration, mirrored one-to-one from
// the TOML file.
type Config struct {
	Asana     AsanaConfig     `toml:"asana"`
	Webhook   WebhookConfig   `toml:"webhook"`
	Storage   StorageConfig   `toml:"storage"`
	Qdrant    QdrantConfig    `toml:"qdrant"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Crawl     CrawlConfig     `toml:"crawl"`
}

// AsanaConfig holds upstream API access settings.
type AsanaConfig struct {
	// AccessToken is the personal access token. The ASANA_ACCESS_TOKEN
	// environment variable takes precedence over the file value.
	AccessToken string `toml:"access_token"`

	// BaseURL overrides the API root. Empty means the production API.
	BaseURL string `toml:"base_url"`

	// WorkspaceID is the workspace to mirror (required for crawling).
	WorkspaceID string `toml:"workspace_id"`

	// RequestsPerSecond caps outbound request rate. Zero uses the
	// client default.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// WebhookConfig holds the change-notification service settings.
type WebhookConfig struct {
	// BaseURL is the root of the webhook establishment service.
	// Empty disables webhook registration during crawls.
	BaseURL string `toml:"base_url"`
}

// StorageConfig holds document store settings.
type StorageConfig struct {
	// DataDir is the directory holding the SQLite database.
	// Empty means ~/.workmirror/data.
	DataDir string `toml:"data_dir"`
}

// QdrantConfig holds vector index settings.
type QdrantConfig struct {
	// Enabled turns the vector index leg on. When false, crawls write
	// documents only.
	Enabled    bool   `toml:"enabled"`
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Collection string `toml:"collection"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama".
	Provider string `toml:"provider"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// APIKey authenticates against hosted providers. The OPENAI_API_KEY
	// environment variable takes precedence for the openai provider.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `toml:"base_url"`

	// Dimensions overrides the embedding vector size.
	Dimensions int `toml:"dimensions"`
}

// CrawlConfig tunes crawl execution.
type CrawlConfig struct {
	// Workers bounds concurrent project expansions in the detail phase.
	// Zero uses the service default.
	Workers int `toml:"workers"`
}

// DefaultConfigDir returns ~/.workmirror.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".workmirror"), nil
}

// Load reads config.toml from configDir, creating the directory when
// missing. A missing file yields defaults rather than an error. Secrets
// from the environment override file values.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		var err error
		configDir, err = DefaultConfigDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	cfg := defaults()
	path := filepath.Join(configDir, "config.toml")

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file yet, defaults apply.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the configuration back to config.toml with restricted
// permissions, since it may carry access tokens.
func Save(configDir string, cfg *Config) error {
	if configDir == "" {
		var err error
		configDir, err = DefaultConfigDir()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0600)
}

func defaults() *Config {
	return &Config{
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "workmirror",
		},
		Embedding: EmbeddingConfig{
			Provider: "openai",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("ASANA_ACCESS_TOKEN"); token != "" {
		cfg.Asana.AccessToken = token
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.Embedding.Provider == "openai" {
		cfg.Embedding.APIKey = key
	}
}
