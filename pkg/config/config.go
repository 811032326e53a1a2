package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Mongo   MongoConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Payment PaymentConfig
	CORS    CORSConfig
	Log     LogConfig
	Reports ReportsConfig
	Audit   AuditConfig
}

type MongoConfig struct {
	URI      string
	User     string
	Password string
	Cluster  string
	Name     string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// PaymentConfig holds the payment provider credentials.
type PaymentConfig struct {
	SecretKey string
	Currency  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ReportsConfig governs caching of the reporting endpoints.
type ReportsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// AuditConfig configures the optional Postgres audit sink.
type AuditConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Mongo = MongoConfig{
		URI:      v.GetString("MONGO_URI"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASS"),
		Cluster:  v.GetString("DB_CLUSTER"),
		Name:     v.GetString("DB_NAME"),
		Timeout:  parseDuration(v.GetString("DB_TIMEOUT"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("ACCESS_TOKEN_SECRET")}

	cfg.Payment = PaymentConfig{
		SecretKey: v.GetString("STRIPE_SECRET_KEY"),
		Currency:  strings.ToLower(v.GetString("PAYMENT_CURRENCY")),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Reports = ReportsConfig{
		CacheEnabled: v.GetBool("ENABLE_REPORT_CACHE"),
		CacheTTL:     parseDuration(v.GetString("REPORTS_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Audit = AuditConfig{
		Enabled:  v.GetBool("ENABLE_AUDIT"),
		Host:     v.GetString("AUDIT_DB_HOST"),
		Port:     v.GetInt("AUDIT_DB_PORT"),
		User:     v.GetString("AUDIT_DB_USER"),
		Password: v.GetString("AUDIT_DB_PASSWORD"),
		Name:     v.GetString("AUDIT_DB_NAME"),
		SSLMode:  v.GetString("AUDIT_DB_SSL_MODE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports missing secrets. The server refuses to start without them.
func (c *Config) Validate() error {
	var missing []string
	if c.Mongo.URI == "" {
		if c.Mongo.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Mongo.Password == "" {
			missing = append(missing, "DB_PASS")
		}
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "ACCESS_TOKEN_SECRET")
	}
	if c.Payment.SecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MongoURI returns the explicit URI or builds an Atlas SRV URI from the credentials.
func (m MongoConfig) MongoURI() string {
	if m.URI != "" {
		return m.URI
	}
	return fmt.Sprintf("mongodb+srv://%s@%s/?retryWrites=true&w=majority&appName=Cluster0",
		url.UserPassword(m.User, m.Password).String(),
		m.Cluster,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)

	v.SetDefault("MONGO_URI", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_CLUSTER", "cluster0.kygk2l2.mongodb.net")
	v.SetDefault("DB_NAME", "EduSparkDB")
	v.SetDefault("DB_TIMEOUT", "10s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ACCESS_TOKEN_SECRET", "")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("PAYMENT_CURRENCY", "usd")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_REPORT_CACHE", false)
	v.SetDefault("REPORTS_CACHE_TTL", "5m")

	v.SetDefault("ENABLE_AUDIT", false)
	v.SetDefault("AUDIT_DB_HOST", "localhost")
	v.SetDefault("AUDIT_DB_PORT", 5432)
	v.SetDefault("AUDIT_DB_USER", "postgres")
	v.SetDefault("AUDIT_DB_PASSWORD", "")
	v.SetDefault("AUDIT_DB_NAME", "eduspark_audit")
	v.SetDefault("AUDIT_DB_SSL_MODE", "disable")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
