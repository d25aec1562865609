package config

import (
	"os"
	"strconv"
)

const (
	ServiceName = "order-service"
	Version     = "1.0.0"
)

type Config struct {
	Port          int
	OrderBackend  string // "memory" or "mysql"
	MySQLUser     string
	MySQLPassword string
	MySQLHost     string
	MySQLPort     string
	MySQLDatabase string
	RedisAddr     string // empty disables response caching
	RabbitMQURL   string // empty disables event publishing
	OrderExchange string
}

func LoadConfig() *Config {
	return &Config{
		Port:          getEnvInt("PORT", 3002),
		OrderBackend:  getEnv("ORDER_BACKEND", "memory"),
		MySQLUser:     getEnv("MYSQL_USER", "root"),
		MySQLPassword: getEnv("MYSQL_PASSWORD", ""),
		MySQLHost:     getEnv("MYSQL_HOST", "localhost"),
		MySQLPort:     getEnv("MYSQL_PORT", "3306"),
		MySQLDatabase: getEnv("MYSQL_DATABASE", "ecommerce"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		OrderExchange: getEnv("ORDER_EXCHANGE", "order.exchange"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
