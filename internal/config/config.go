package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Business  BusinessConfig  `yaml:"business"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP and gRPC listener settings
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`      // HTTP API
	GRPCPort int    `yaml:"grpc_port"` // health endpoint
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// AuthConfig describes the external identity provider tokens
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
	Audience  string `yaml:"audience"`
}

// BusinessConfig holds the rules the back office applies to reservations and payments
type BusinessConfig struct {
	TimeZone              string  `yaml:"time_zone"`
	Currency              string  `yaml:"currency"`
	AlertWindowDays       int     `yaml:"alert_window_days"`
	PendingBalanceEpsilon float64 `yaml:"pending_balance_epsilon"`
	ConfirmedPaymentsOnly bool    `yaml:"confirmed_payments_only"`
	StaffEmail            string  `yaml:"staff_email"`
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// FirebaseConfig contains push notification settings
type FirebaseConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	StaffTopic      string `yaml:"staff_topic"`
}

// KafkaConfig contains domain event publishing settings
type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	TopicPrefix string   `yaml:"topic_prefix"`
}

// RedisConfig contains read cache settings
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SendDailyDigest       string `yaml:"send_daily_digest"`
	CompleteFinishedStays string `yaml:"complete_finished_stays"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Identity provider
	if val := os.Getenv("AUTH_JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}
	if val := os.Getenv("AUTH_ISSUER"); val != "" {
		c.Auth.Issuer = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("GRPC_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.GRPCPort)
	}

	// Integrations
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Firebase.CredentialsFile = val
	}
	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		c.Kafka.Brokers = strings.Split(val, ",")
	}
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Business
	if val := os.Getenv("BUSINESS_TIME_ZONE"); val != "" {
		c.Business.TimeZone = val
	}
	if val := os.Getenv("STAFF_EMAIL"); val != "" {
		c.Business.StaffEmail = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = c.Server.Port + 1
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRPCPort)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("identity provider JWT secret is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("identity provider JWT secret must be at least 32 characters")
	}

	// Business defaults
	if c.Business.TimeZone == "" {
		c.Business.TimeZone = "America/Santiago"
	}
	if _, err := time.LoadLocation(c.Business.TimeZone); err != nil {
		return fmt.Errorf("invalid business time zone %q: %w", c.Business.TimeZone, err)
	}
	if c.Business.Currency == "" {
		c.Business.Currency = "CLP"
	}
	if c.Business.AlertWindowDays <= 0 {
		c.Business.AlertWindowDays = 3
	}
	if c.Business.PendingBalanceEpsilon <= 0 {
		c.Business.PendingBalanceEpsilon = 0.1
	}

	if c.Redis.TTLSeconds <= 0 {
		c.Redis.TTLSeconds = 60
	}
	if c.Kafka.TopicPrefix == "" {
		c.Kafka.TopicPrefix = "cabanas"
	}
	if c.Firebase.StaffTopic == "" {
		c.Firebase.StaffTopic = "staff"
	}

	// Scheduler defaults
	if c.Scheduler.SendDailyDigest == "" {
		c.Scheduler.SendDailyDigest = "0 0 7 * * *" // 7 AM local
	}
	if c.Scheduler.CompleteFinishedStays == "" {
		c.Scheduler.CompleteFinishedStays = "0 0 12 * * *" // noon local, after check-out time
	}

	return nil
}

// Location returns the business time zone. Validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Business.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// CacheTTL returns the read cache expiry
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP API address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetGRPCAddress returns the gRPC health endpoint address
func (c *Config) GetGRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}
