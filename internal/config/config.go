package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	MongoURI         string
	MongoDatabase    string
	RabbitMQURI      string
	RabbitMQExchange string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	KakaoAccessKey   string
	KakaoRedirectURI string
	Salt             string
}

// Load reads .env (when present) and the process environment into a
// Config. The returned value is passed down explicitly; there is no
// package-level AppConfig.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:             getEnvOrDefault("PORT", "8443"),
		MongoURI:         getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnvOrDefault("MONGO_DATABASE", "mind_service"),
		RabbitMQURI:      os.Getenv("RABBITMQ_URI"),
		RabbitMQExchange: os.Getenv("RABBITMQ_EXCHANGE"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		KakaoAccessKey:   os.Getenv("KAKAO_ACCESS_KEY"),
		KakaoRedirectURI: os.Getenv("KAKAO_REDIRECT_URI"),
		Salt:             os.Getenv("SALT"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
