package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// AuthConfig holds JWT issuance/verification settings and the single client
// credential accepted by the token endpoint.
type AuthConfig struct {
	JWTSecret    string
	Issuer       string
	TokenTTL     time.Duration
	Username     string
	PasswordHash string
}

// KafkaConfig holds change-event publishing settings. Publishing is disabled
// when Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port           string
	LogLevel       string
	SwaggerEnabled bool
	Database       DatabaseConfig
	Auth           AuthConfig
	Kafka          KafkaConfig
}

// Load reads configuration from environment variables, and from CONFIG_FILE
// when it points to a readable file. Environment variables take precedence.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	v := viper.New()
	v.AutomaticEnv()
	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		// A missing or malformed file leaves env-only configuration in place.
		_ = v.ReadInConfig()
	}

	return &AppConfig{
		Port:           getEnv(v, "PORT", "8080"),
		LogLevel:       getEnv(v, "LOG_LEVEL", "info"),
		SwaggerEnabled: getEnvBool(v, "SWAGGER_ENABLED", true),
		Database: DatabaseConfig{
			Host:               getEnv(v, "DB_HOST", ""),
			Port:               getEnv(v, "DB_PORT", "5432"),
			User:               getEnv(v, "DB_USER", ""),
			Password:           getEnv(v, "DB_PASSWORD", ""),
			Name:               getEnv(v, "DB_NAME", ""),
			SSLMode:            getEnv(v, "DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt(v, "DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt(v, "DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt(v, "DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv(v, "JWT_SECRET", ""),
			Issuer:       getEnv(v, "JWT_ISSUER", "entityapi"),
			TokenTTL:     time.Duration(getEnvInt(v, "JWT_TTL_SEC", 3600)) * time.Second,
			Username:     getEnv(v, "AUTH_USERNAME", ""),
			PasswordHash: getEnv(v, "AUTH_PASSWORD_HASH", ""),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList(v, "KAFKA_BROKERS"),
			Topic:   getEnv(v, "KAFKA_TOPIC", "entity-events"),
		},
	}
}

func getEnv(v *viper.Viper, key, def string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return def
}

func getEnvBool(v *viper.Viper, key string, def bool) bool {
	if s := v.GetString(key); s != "" {
		b, err := strconv.ParseBool(s)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(v *viper.Viper, key string, def int) int {
	if s := v.GetString(key); s != "" {
		i, err := strconv.Atoi(s)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma-separated value, dropping blanks.
func getEnvList(v *viper.Viper, key string) []string {
	var out []string
	for _, p := range strings.Split(v.GetString(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
