package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	LogFile           string `mapstructure:"LOG_FILE"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	LoginPerMin       int    `mapstructure:"LOGIN_PER_MIN"`
	PublicBaseURL     string `mapstructure:"PUBLIC_BASE_URL"`
	Timezone          string `mapstructure:"TIMEZONE"`

	// Remote persistence backend.
	RemoteDriver     string        `mapstructure:"REMOTE_DRIVER"`
	RemoteURL        string        `mapstructure:"REMOTE_URL"`
	RemoteKey        string        `mapstructure:"REMOTE_KEY"`
	RemoteURLPattern string        `mapstructure:"REMOTE_URL_PATTERN"`
	RemoteDatabase   string        `mapstructure:"REMOTE_DATABASE"`
	RemoteTimeout    time.Duration `mapstructure:"REMOTE_TIMEOUT"`

	// Local fallback persistence.
	LocalStore     string `mapstructure:"LOCAL_STORE"`
	LocalStorePath string `mapstructure:"LOCAL_STORE_PATH"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Admin gate.
	AdminDefaultPassword string        `mapstructure:"ADMIN_DEFAULT_PASSWORD"`
	JWTSecret            string        `mapstructure:"JWT_SECRET"`
	AdminSessionTTL      time.Duration `mapstructure:"ADMIN_SESSION_TTL"`

	// Booking.
	BookingSessionStore string        `mapstructure:"BOOKING_SESSION_STORE"`
	BookingSessionTTL   time.Duration `mapstructure:"BOOKING_SESSION_TTL"`
	PaymentProvider     string        `mapstructure:"PAYMENT_PROVIDER"`
	PaymentDelay        time.Duration `mapstructure:"PAYMENT_DELAY"`
	StripeKey           string        `mapstructure:"STRIPE_KEY"`
	StripePaymentMethod string        `mapstructure:"STRIPE_PAYMENT_METHOD"`
	PhoneRegion         string        `mapstructure:"PHONE_REGION"`

	// AI recommendations.
	GeminiAPIKey string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string        `mapstructure:"GEMINI_MODEL"`
	AICacheTTL   time.Duration `mapstructure:"AI_CACHE_TTL"`

	// Reports.
	ReportTemplates     map[string]string `mapstructure:"REPORT_TEMPLATES"`
	CloudinaryCloudName string            `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string            `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string            `mapstructure:"CLOUDINARY_API_SECRET"`

	// Email notifications.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	NotifyQueue  string `mapstructure:"NOTIFY_QUEUE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("LOGIN_PER_MIN", 10)
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("TIMEZONE", "Asia/Kolkata")

	viper.SetDefault("REMOTE_DRIVER", "postgres")
	viper.SetDefault("REMOTE_URL", "")
	viper.SetDefault("REMOTE_KEY", "")
	viper.SetDefault("REMOTE_URL_PATTERN", "")
	viper.SetDefault("REMOTE_DATABASE", "pathlab")
	viper.SetDefault("REMOTE_TIMEOUT", 10*time.Second)

	viper.SetDefault("LOCAL_STORE", "file")
	viper.SetDefault("LOCAL_STORE_PATH", "data/local.json")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)

	viper.SetDefault("ADMIN_DEFAULT_PASSWORD", "admin123")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("ADMIN_SESSION_TTL", 12*time.Hour)

	viper.SetDefault("BOOKING_SESSION_STORE", "memory")
	viper.SetDefault("BOOKING_SESSION_TTL", 30*time.Minute)
	viper.SetDefault("PAYMENT_PROVIDER", "simulated")
	viper.SetDefault("PAYMENT_DELAY", 2*time.Second)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_PAYMENT_METHOD", "pm_card_visa")
	viper.SetDefault("PHONE_REGION", "IN")

	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("AI_CACHE_TTL", 30*time.Minute)

	viper.SetDefault("REPORT_TEMPLATES", map[string]string{})
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")

	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "reports@ravidiagnostic.com")
	viper.SetDefault("NOTIFY_QUEUE", "inline")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves the lab timezone, falling back to UTC when unknown.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

// RedisEnabled reports whether any component was configured to use Redis.
func (c Config) RedisEnabled() bool {
	return c.LocalStore == "redis" || c.BookingSessionStore == "redis" || c.NotifyQueue == "asynq"
}
