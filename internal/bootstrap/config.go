package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go-rrhh/internal/shared/connection"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string

	DB        connection.DBConfig
	RedisAddr string

	KafkaBroker  string
	KafkaGroupID string
	OutboxPoll   time.Duration

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	GCSBucket      string
	GCSCredentials string
	UploadDir      string

	CIE10PrimaryURL  string
	CIE10FallbackURL string
	CIE10Timeout     time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	Server ServerConfig
}

// LoadConfig reads .env when present; real environment variables win.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv: getEnvString("APP_ENV", "development"),
		Port:   getEnvString("PORT", "3000"),

		DB: connection.DBConfig{
			Host:            getEnvString("DB_HOST", "localhost"),
			User:            getEnvString("DB_USER", "postgres"),
			Password:        getEnvString("DB_PASSWORD", ""),
			Name:            getEnvString("DB_NAME", "rrhh"),
			Port:            getEnvString("DB_PORT", "5432"),
			SSLMode:         getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		RedisAddr: getEnvString("REDIS_ADDR", ""),

		KafkaBroker:  getEnvString("KAFKA_BROKER", ""),
		KafkaGroupID: getEnvString("KAFKA_GROUP_ID", "go-rrhh-notifications"),
		OutboxPoll:   getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),

		JWTSecret:  getEnvString("JWT_SECRET", ""),
		AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),

		GCSBucket:      getEnvString("GCS_BUCKET", ""),
		GCSCredentials: getEnvString("GCS_CREDENTIALS_JSON", ""),
		UploadDir:      getEnvString("UPLOAD_DIR", "uploads"),

		CIE10PrimaryURL:  getEnvString("CIE10_PRIMARY_URL", ""),
		CIE10FallbackURL: getEnvString("CIE10_FALLBACK_URL", ""),
		CIE10Timeout:     getEnvDuration("CIE10_TIMEOUT", 12*time.Second),

		SMTPHost:     getEnvString("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnvString("SMTP_USERNAME", ""),
		SMTPPassword: getEnvString("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnvString("SMTP_FROM", "rrhh@localhost"),

		Server: ServerConfig{
			Port:         getEnvString("PORT", "3000"),
			ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnvString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnvString(key, ""))
	if err != nil {
		return def
	}
	return v
}

// getEnvDuration accepts Go durations ("12s") or plain seconds ("12").
func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := getEnvString(key, "")
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
