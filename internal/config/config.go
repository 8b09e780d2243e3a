package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Search   SearchConfig   `yaml:"search"`
	Share    ShareConfig    `yaml:"share"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         string `yaml:"port"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// SQLiteConfig contains SQLite settings (local development)
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// CORSConfig contains cross-origin settings. Origins is a comma-separated
// allow-list; AllowPreviewSubdomains additionally admits ephemeral
// *.vercel.app preview deployments.
type CORSConfig struct {
	Origins                string `yaml:"origins"`
	AllowPreviewSubdomains bool   `yaml:"allow_preview_subdomains"`
}

// OriginList returns the configured static origins with trailing slashes stripped.
func (c *CORSConfig) OriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.Origins, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// ShareConfig controls the link-preview endpoint
type ShareConfig struct {
	SiteOrigin   string `yaml:"site_origin"`
	DefaultImage string `yaml:"default_image"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	LogRequests bool   `yaml:"log_requests"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			MaxBodyBytes: 2 << 20, // 2 MB request body cap
		},
		Database: DatabaseConfig{
			Type: "mysql",
		},
		CORS: CORSConfig{
			Origins:                "https://realo-realestate.com,https://www.realo-realestate.com",
			AllowPreviewSubdomains: true,
		},
		Share: ShareConfig{
			SiteOrigin:   "https://www.realo-realestate.com",
			DefaultImage: "/og.png",
		},
		Logging: LoggingConfig{
			Level:       "info",
			LogRequests: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies environment
// overrides. A missing file is not an error: defaults plus env apply.
func LoadConfig(filepath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(filepath); err == nil {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnv()
	return config, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Database.Type = getEnv("DB_TYPE", c.Database.Type)
	c.Database.MySQL.Host = getEnv("DB_HOST", c.Database.MySQL.Host)
	c.Database.MySQL.User = getEnv("DB_USER", c.Database.MySQL.User)
	c.Database.MySQL.Password = getEnv("DB_PASSWORD", c.Database.MySQL.Password)
	c.Database.MySQL.Database = getEnv("DB_NAME", c.Database.MySQL.Database)
	c.Database.Postgres.Host = getEnv("DB_HOST", c.Database.Postgres.Host)
	c.Database.Postgres.User = getEnv("DB_USER", c.Database.Postgres.User)
	c.Database.Postgres.Password = getEnv("DB_PASSWORD", c.Database.Postgres.Password)
	c.Database.Postgres.Database = getEnv("DB_NAME", c.Database.Postgres.Database)
	c.Database.SQLite.Path = getEnv("SQLITE_PATH", c.Database.SQLite.Path)
	c.CORS.Origins = getEnv("CORS_ORIGINS", c.CORS.Origins)
	c.Search.Meilisearch.Host = getEnv("MEILISEARCH_HOST", c.Search.Meilisearch.Host)
	c.Search.Meilisearch.APIKey = getEnv("MEILISEARCH_KEY", c.Search.Meilisearch.APIKey)
	c.Share.SiteOrigin = getEnv("SITE_ORIGIN", c.Share.SiteOrigin)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
