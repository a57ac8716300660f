package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Environment  string
	QuizDir      string
	ManifestPath string
	RedisURL     string
	CacheTTLSec  int
	ExamDuration int // seconds
	EventTopic   string
}

func LoadConfig() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		QuizDir:      getEnv("QUIZ_DIR", "./quiz-files"),
		ManifestPath: getEnv("MANIFEST_PATH", "./quiz-files/quiz-files.json"),
		RedisURL:     getEnv("REDIS_URL", ""),
		CacheTTLSec:  getEnvInt("CACHE_TTL_SECONDS", 3600),
		ExamDuration: getEnvInt("EXAM_DURATION_SECONDS", 7200),
		EventTopic:   getEnv("EVENT_TOPIC", "quiz-events"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
