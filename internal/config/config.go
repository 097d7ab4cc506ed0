// Package config handles application configuration. Process-level settings
// come from environment variables; site-level settings (languages,
// categories, media types) come from JSON files in the content workspace.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all process configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Content workspace layout. ContentRoot is the checkout of the static
	// site; the per-kind dirs default to subdirectories of it but can be
	// pointed elsewhere individually.
	ContentRoot string
	DataDir     string
	ConfigDir   string
	LangDir     string

	// AdminDir is the directory holding the static admin UI bundle.
	AdminDir string

	// UploadDir is the staging area for multipart uploads before they are
	// pushed to a media backend.
	UploadDir string

	// Cloudinary CDN credentials
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// GitHub token for release-asset uploads and deletes
	GitHubToken string

	// S3-compatible object storage (optional)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for local use. Returns an error if values that must parse do not.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("HOST", "0.0.0.0"),
		Port: envOrDefault("PORT", "5001"),
		Env:  envOrDefault("APP_ENV", "development"),

		ContentRoot: envOrDefault("PORTFOLIO_CONTENT_ROOT", "."),
		DataDir:     os.Getenv("DATA_DIR"),
		ConfigDir:   os.Getenv("CONFIG_DIR"),
		LangDir:     os.Getenv("LANG_DIR"),

		AdminDir:  envOrDefault("ADMIN_DIR", "."),
		UploadDir: envOrDefault("UPLOAD_FOLDER", "temp_uploads"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		GitHubToken: os.Getenv("GITHUB_TOKEN"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "auto"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DataPath returns the directory holding per-category data files.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(c.ContentRoot, "data")
}

// ConfigPath returns the directory holding the site JSON configuration.
func (c *Config) ConfigPath() string {
	if c.ConfigDir != "" {
		return c.ConfigDir
	}
	return filepath.Join(c.ContentRoot, "config")
}

// LangPath returns the directory holding translation files.
func (c *Config) LangPath() string {
	if c.LangDir != "" {
		return c.LangDir
	}
	return filepath.Join(c.ContentRoot, "lang")
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
