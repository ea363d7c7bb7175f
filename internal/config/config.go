package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	Provider ProviderConfig
	Quiz     QuizConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URI      string
	Exchange string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// ProviderConfig holds everything needed to talk to the payment provider:
// the query API credentials and the webhook trust parameters.
type ProviderConfig struct {
	APIKey           string
	BaseURL          string
	Timeout          time.Duration
	WebhookSecret    string
	WebhookTolerance time.Duration
	PriceID          string
	SuccessURL       string
	CancelURL        string
	LockTTL          time.Duration
}

type QuizConfig struct {
	SampleSize int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("HOST", "0.0.0.0"),
			Port:         getEnv("PORT", "4000"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DB", "quizbank_service"),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "quizbank.events"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", 7*24*time.Hour),
		},
		Provider: ProviderConfig{
			APIKey:           getEnv("PROVIDER_API_KEY", ""),
			BaseURL:          getEnv("PROVIDER_BASE_URL", "https://api.stripe.com"),
			Timeout:          getEnvAsDuration("PROVIDER_TIMEOUT", 10*time.Second),
			WebhookSecret:    getEnv("WEBHOOK_SECRET", ""),
			WebhookTolerance: getEnvAsDuration("WEBHOOK_TOLERANCE", 5*time.Minute),
			PriceID:          getEnv("PRICE_ID", ""),
			SuccessURL:       getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/success"),
			CancelURL:        getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/cancel"),
			LockTTL:          getEnvAsDuration("CHECKOUT_LOCK_TTL", 10*time.Second),
		},
		Quiz: QuizConfig{
			SampleSize: getEnvAsInt("SAMPLE_SIZE", 15),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("error retrieve int env var %s: %s", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		duration, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("error retrieve duration env var %s: %s", key, err)
			return defaultValue
		}
		return duration
	}
	return defaultValue
}
