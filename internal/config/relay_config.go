package config

import "github.com/joho/godotenv"

// RelayConfig is the subset of configuration the outbox relay needs.
type RelayConfig struct {
	DatabaseURL        string
	RabbitMQURL        string
	NotificationsQueue string
}

func LoadRelayConfig() *RelayConfig {
	_ = godotenv.Load()

	return &RelayConfig{
		DatabaseURL:        mustEnv("DB_CONNECTION_STRING"),
		RabbitMQURL:        mustEnv("RABBITMQ_URL"),
		NotificationsQueue: envOr("NOTIFICATIONS_QUEUE_NAME", "notifications"),
	}
}
