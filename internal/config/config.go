package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ushay-etl/internal/domain"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML
// config file.
const ConfigFileEnv = "USHAY_CONFIG"

// AppConfig implements the domain.Config interface
type AppConfig struct {
	LogLevel       string   `yaml:"log_level"`
	InputGlob      string   `yaml:"input_glob"`
	OutputDir      string   `yaml:"output_dir"`
	ExtractionDir  string   `yaml:"extraction_dir"`
	Workers        int      `yaml:"workers"`
	ChunkMaxTokens int      `yaml:"chunk_max_tokens"`
	ChunkOverlap   int      `yaml:"chunk_overlap"`
	PageTimeoutSec int      `yaml:"page_timeout_sec"`
	WantedKeys     []string `yaml:"wanted_keys"`

	ServerPort  string `yaml:"server_port"`
	MaxFileSize int64  `yaml:"max_file_size"`

	SupabaseURL    string `yaml:"supabase_url"`
	SupabaseKey    string `yaml:"supabase_key"`
	SupabaseBucket string `yaml:"supabase_bucket"`
	DatabaseURL    string `yaml:"database_url"`

	AWSRegion    string `yaml:"aws_region"`
	AWSAccessKey string `yaml:"aws_access_key"`
	AWSSecretKey string `yaml:"aws_secret_key"`
	S3Bucket     string `yaml:"s3_bucket"`
	S3Prefix     string `yaml:"s3_prefix"`
}

// Defaults returns the built-in configuration.
func Defaults() *AppConfig {
	wanted := make([]string, len(domain.DefaultWantedKeys))
	copy(wanted, domain.DefaultWantedKeys)
	return &AppConfig{
		LogLevel:       "info",
		InputGlob:      "data_raw/ushay/*.ushay",
		OutputDir:      "data_curated",
		Workers:        1,
		ChunkMaxTokens: 80,
		ChunkOverlap:   10,
		PageTimeoutSec: 90,
		WantedKeys:     wanted,
		ServerPort:     "8080",
		MaxFileSize:    50 * 1024 * 1024, // 50MB default
		S3Prefix:       "ushay",
	}
}

// NewConfig creates a configuration from defaults and the environment.
func NewConfig() *AppConfig {
	cfg := Defaults()
	cfg.applyEnv()
	return cfg
}

// Load layers defaults, the YAML file named by USHAY_CONFIG (if any) and the
// environment, in increasing precedence, then validates the result.
func Load() (*AppConfig, error) {
	cfg := Defaults()
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *AppConfig) applyEnv() {
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.InputGlob = getEnvOrDefault("INPUT_GLOB", c.InputGlob)
	c.OutputDir = getEnvOrDefault("OUTPUT_DIR", c.OutputDir)
	c.ExtractionDir = getEnvOrDefault("EXTRACTION_DIR", c.ExtractionDir)
	c.Workers = getEnvIntOrDefault("WORKERS", c.Workers)
	c.ChunkMaxTokens = getEnvIntOrDefault("CHUNK_MAX_TOKENS", c.ChunkMaxTokens)
	c.ChunkOverlap = getEnvIntOrDefault("CHUNK_OVERLAP", c.ChunkOverlap)
	c.PageTimeoutSec = getEnvIntOrDefault("PAGE_TIMEOUT_SEC", c.PageTimeoutSec)
	c.WantedKeys = getEnvListOrDefault("WANTED_KEYS", c.WantedKeys)

	// Cloud Run (and many PaaS) provide the listening port via PORT.
	// Keep SERVER_PORT for local/dev compatibility.
	c.ServerPort = getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", c.ServerPort))
	c.MaxFileSize = getEnvInt64OrDefault("MAX_FILE_SIZE", c.MaxFileSize)

	c.SupabaseURL = getEnvOrDefault("SUPABASE_URL", c.SupabaseURL)
	c.SupabaseKey = getEnvOrDefault("SUPABASE_KEY", c.SupabaseKey)
	c.SupabaseBucket = getEnvOrDefault("SUPABASE_BUCKET", c.SupabaseBucket)
	c.DatabaseURL = getEnvOrDefault("DATABASE_URL", c.DatabaseURL)

	c.AWSRegion = getEnvOrDefault("AWS_REGION", c.AWSRegion)
	c.AWSAccessKey = getEnvOrDefault("AWS_ACCESS_KEY", c.AWSAccessKey)
	c.AWSSecretKey = getEnvOrDefault("AWS_SECRET_KEY", c.AWSSecretKey)
	c.S3Bucket = getEnvOrDefault("S3_BUCKET", c.S3Bucket)
	c.S3Prefix = getEnvOrDefault("S3_PREFIX", c.S3Prefix)
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *AppConfig) Validate() error {
	if c.Workers < 1 {
		return &domain.ValidationError{Field: "workers", Message: "must be at least 1"}
	}
	if c.ChunkMaxTokens < 1 {
		return &domain.ValidationError{Field: "chunk_max_tokens", Message: "must be at least 1"}
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkMaxTokens {
		return &domain.ValidationError{
			Field:   "chunk_overlap",
			Message: fmt.Sprintf("must be in [0, %d)", c.ChunkMaxTokens),
		}
	}
	if c.InputGlob == "" {
		return &domain.ValidationError{Field: "input_glob", Message: "must not be empty"}
	}
	return nil
}

func (c *AppConfig) GetLogLevel() string      { return c.LogLevel }
func (c *AppConfig) GetInputGlob() string     { return c.InputGlob }
func (c *AppConfig) GetOutputDir() string     { return c.OutputDir }
func (c *AppConfig) GetExtractionDir() string { return c.ExtractionDir }
func (c *AppConfig) GetWorkers() int          { return c.Workers }
func (c *AppConfig) GetChunkMaxTokens() int   { return c.ChunkMaxTokens }
func (c *AppConfig) GetChunkOverlap() int     { return c.ChunkOverlap }
func (c *AppConfig) GetPageTimeoutSec() int   { return c.PageTimeoutSec }

// GetWantedKeys returns the metadata tags kept by the wanted-only projection.
func (c *AppConfig) GetWantedKeys() []string { return c.WantedKeys }

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

func (c *AppConfig) GetSupabaseBucket() string { return c.SupabaseBucket }
func (c *AppConfig) GetDatabaseURL() string    { return c.DatabaseURL }
func (c *AppConfig) GetAWSRegion() string      { return c.AWSRegion }
func (c *AppConfig) GetAWSAccessKey() string   { return c.AWSAccessKey }
func (c *AppConfig) GetAWSSecretKey() string   { return c.AWSSecretKey }
func (c *AppConfig) GetS3Bucket() string       { return c.S3Bucket }
func (c *AppConfig) GetS3Prefix() string       { return c.S3Prefix }

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
