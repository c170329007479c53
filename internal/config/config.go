package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server Server
	Store  Store
	Kafka  Kafka
	Shop   Shop
	Admin  Admin
}

type Server struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Store selects and configures the key-value persistence backend.
// Backend is one of "memory", "sqlite", "postgres", "redis".
type Store struct {
	Backend     string
	SQLitePath  string
	PostgresDSN string
	RedisAddr   string
}

type Kafka struct {
	Brokers  []string
	Enabled  bool
	MockMode bool
	Topics   Topics
}

type Topics struct {
	OrderPlaced  string
	OrderStatus  string
	OrderDeleted string
}

// Shop holds storefront pricing behavior. TaxRate is the fixed sales-tax
// rate applied to cart subtotals; AutoConfirmDelay is how long a placed
// order sits in "pending" before the simulated confirmation fires.
type Shop struct {
	TaxRate          float64
	AutoConfirmDelay time.Duration
}

type Admin struct {
	PIN       string
	JWTSecret string
	TokenTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Server: Server{
			Port:         getEnv("PORT", ":8085"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Store: Store{
			Backend:     getEnv("STORE_BACKEND", "sqlite"),
			SQLitePath:  getEnv("STORE_SQLITE_PATH", "storefront.db"),
			PostgresDSN: getEnv("STORE_POSTGRES_DSN", ""),
			RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: Kafka{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Enabled:  getEnvBool("KAFKA_ENABLED", false),
			MockMode: getEnvBool("KAFKA_MOCK_MODE", false),
			Topics: Topics{
				OrderPlaced:  getEnv("KAFKA_TOPIC_ORDER_PLACED", "storefront.order.placed"),
				OrderStatus:  getEnv("KAFKA_TOPIC_ORDER_STATUS", "storefront.order.status"),
				OrderDeleted: getEnv("KAFKA_TOPIC_ORDER_DELETED", "storefront.order.deleted"),
			},
		},
		Shop: Shop{
			TaxRate:          getEnvFloat("SALES_TAX_RATE", 0.0825),
			AutoConfirmDelay: time.Duration(getEnvInt("AUTO_CONFIRM_DELAY_MS", 2000)) * time.Millisecond,
		},
		Admin: Admin{
			PIN:       getEnv("ADMIN_PIN", "4242"),
			JWTSecret: getEnv("ADMIN_JWT_SECRET", "storefront-dev-secret"),
			TokenTTL:  time.Duration(getEnvInt("ADMIN_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
