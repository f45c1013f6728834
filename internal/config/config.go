package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Helpdesk HelpdeskConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	EmbeddingProvider   string // "gemini" or "ollama"
	OllamaBaseURL       string
	OllamaModel         string
	LLMProvider         string // "ollama" or "none"
	LLMModel            string // e.g. "llama3", "qwen2.5"
	SimilarityThreshold float64
	TopK                int
}

type HelpdeskConfig struct {
	RulesFilePath      string
	PatternsFilePath   string // empty = built-in pattern tables
	MinConfidence      float64
	BusinessHoursStart int
	BusinessHoursEnd   int
	EmbedTopicName     string
	KnowledgeDir       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "HelpDesk"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:         getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:         getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:            getEnv("LLM_MODEL", "llama3"),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.3),
			TopK:                getEnvAsInt("RETRIEVAL_TOP_K", 3),
		},
		Helpdesk: HelpdeskConfig{
			RulesFilePath:      getEnv("ESCALATION_RULES_FILE", "escalation_rules.json"),
			PatternsFilePath:   getEnv("CLASSIFIER_PATTERNS_FILE", ""),
			MinConfidence:      getEnvAsFloat("CLASSIFIER_MIN_CONFIDENCE", 0.3),
			BusinessHoursStart: getEnvAsInt("BUSINESS_HOURS_START", 9),
			BusinessHoursEnd:   getEnvAsInt("BUSINESS_HOURS_END", 17),
			EmbedTopicName:     getEnv("EMBED_KB_DOCUMENT_TOPIC_NAME", "EMBED_KB_DOCUMENT"),
			KnowledgeDir:       getEnv("KNOWLEDGE_DIR", "./knowledge"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
