package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig `envconfig:"DB"`
	Redis      RedisConfig
	Groq       GroqConfig
	AssemblyAI AssemblyAIConfig
	Notion     NotionConfig
	SMTP       SMTPConfig
	Notify     NotifyConfig
	Storage    StorageConfig
	Scheduler  SchedulerConfig
	JWT        JWTConfig
	Sync       SyncConfig
	Report     ReportConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `split_words:"true" default:"8080"`
	Host            string   `split_words:"true" default:"0.0.0.0"`
	Environment     string   `split_words:"true" default:"development"`
	AllowedOrigins  []string `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout int      `split_words:"true" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `split_words:"true" default:"localhost"`
	Port        string `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true" default:"zenai"`
	SSLMode     string `split_words:"true" default:"disable"`
	MaxConns    int    `split_words:"true" default:"25"`
	MinConns    int    `split_words:"true" default:"5"`
	AutoMigrate bool   `split_words:"true" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `split_words:"true" default:"true"`
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"6379"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0"`
}

// GroqConfig holds the inference provider configuration
type GroqConfig struct {
	APIKey           string        `split_words:"true"`
	BaseURL          string        `split_words:"true" default:"https://api.groq.com"`
	Timeout          time.Duration `split_words:"true" default:"60s"`
	ModelPreferences []string      `split_words:"true"`
}

// AssemblyAIConfig holds transcription configuration
type AssemblyAIConfig struct {
	APIKey       string `split_words:"true"`
	BaseURL      string `split_words:"true" default:"https://api.assemblyai.com"`
	LanguageCode string `split_words:"true" default:"en"`
}

// NotionConfig holds task store configuration
type NotionConfig struct {
	APIKey     string        `split_words:"true"`
	DatabaseID string        `split_words:"true"`
	BaseURL    string        `split_words:"true" default:"https://api.notion.com"`
	Version    string        `split_words:"true" default:"2022-06-28"`
	Timeout    time.Duration `split_words:"true" default:"30s"`
}

// SMTPConfig holds outgoing mail configuration
type SMTPConfig struct {
	Host     string `split_words:"true"`
	Port     int    `split_words:"true" default:"587"`
	Username string `split_words:"true"`
	Password string `split_words:"true"`
	From     string `split_words:"true"`
	FromName string `split_words:"true" default:"ZenAI Project Manager"`
}

// NotifyConfig holds notification routing configuration
type NotifyConfig struct {
	DefaultRecipient string        `split_words:"true"`
	DigestRecipients []string      `split_words:"true"`
	Concurrency      int           `split_words:"true" default:"4"`
	DedupTTL         time.Duration `split_words:"true" default:"24h"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool   `split_words:"true" default:"false"`
	Endpoint        string `split_words:"true" default:"localhost:9000"`
	AccessKeyID     string `split_words:"true" default:"minioadmin"`
	SecretAccessKey string `split_words:"true" default:"minioadmin"`
	BucketName      string `split_words:"true" default:"zenai-meetings"`
	UseSSL          bool   `split_words:"true" default:"false"`
	PublicURL       string `split_words:"true"`
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	Enabled    bool   `split_words:"true" default:"true"`
	AlertSpec  string `split_words:"true" default:"@every 1h"`
	DigestSpec string `split_words:"true" default:"0 9 * * *"`
	Timezone   string `split_words:"true" default:"UTC"`
	MaxRetries int    `split_words:"true" default:"3"`
}

// JWTConfig holds API token configuration. An empty secret disables auth.
type JWTConfig struct {
	Secret string `split_words:"true"`
	Issuer string `split_words:"true" default:"zenai"`
}

// SyncConfig holds task synchronization configuration
type SyncConfig struct {
	Concurrency int `split_words:"true" default:"4"`
}

// ReportConfig holds report cache configuration
type ReportConfig struct {
	CacheTTL time.Duration `split_words:"true" default:"24h"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv reads the process environment without loading .env or validating
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.Sync.Concurrency < 1 {
		return fmt.Errorf("SYNC_CONCURRENCY must be at least 1")
	}
	if c.Notify.Concurrency < 1 {
		return fmt.Errorf("NOTIFY_CONCURRENCY must be at least 1")
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// NotionEnabled reports whether task synchronization can run
func (c *Config) NotionEnabled() bool {
	return c.Notion.APIKey != "" && c.Notion.DatabaseID != ""
}

// SMTPEnabled reports whether outgoing mail is configured
func (c *Config) SMTPEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}
