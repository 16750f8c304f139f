package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	StreamAPIKey    string `env:"STREAM_API_KEY"`
	StreamAPISecret string `env:"STREAM_API_SECRET"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL" envDefault:"https://api.chatanywhere.tech/v1"`
	OpenAIModel     string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	DatabaseURL     string `env:"DATABASE_URL" envDefault:"chat.db"`
	HTTPPort        string `env:"HTTP_PORT" envDefault:"5000"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"INFO"`
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{}
	if err := env.Parse(&AppConfig); err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}

	if AppConfig.StreamAPIKey == "" || AppConfig.StreamAPISecret == "" {
		log.Fatal("STREAM_API_KEY and STREAM_API_SECRET environment variables are required")
	}
}
