package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	AppEnv string
	Port   string
	DBPath string

	// OpenAI settings; when OpenAIAPIKey is empty the app falls back to
	// canned mock responses.
	OpenAIAPIKey string
	OpenAIModel  string
	MaxTokens    int
	Temperature  float64

	// CORS origins for the React front end
	FrontendURL  string
	FrontendURL2 string

	// rate limit tunables (window seconds / capacity per client IP)
	GlobalRateWindowSeconds  int
	GlobalRateCapacity       int
	MessageRateWindowSeconds int
	MessageRateCapacity      int
	ChatRateWindowSeconds    int
	ChatRateCapacity         int

	// cache tunables for hot list/stats reads
	CacheTTLSeconds int
	CacheMaxItems   int
)

// loadDotEnv loads .env for local development. Production deployments are
// expected to configure everything through the host environment.
func loadDotEnv() {
	if os.Getenv("APP_ENV") == "production" {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}
}

func init() {
	loadDotEnv()

	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "" {
		AppEnv = "development"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}
	DBPath = os.Getenv("DB_PATH")
	if DBPath == "" {
		DBPath = "minichat.db"
	}

	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	OpenAIModel = os.Getenv("OPENAI_MODEL")
	if OpenAIModel == "" {
		OpenAIModel = "gpt-3.5-turbo"
	}
	MaxTokens = atoiOr(os.Getenv("MAX_TOKENS"), 500)
	Temperature = atofOr(os.Getenv("TEMPERATURE"), 0.7)

	FrontendURL = os.Getenv("FRONTEND_URL")
	if FrontendURL == "" {
		FrontendURL = "http://localhost:3000"
	}
	FrontendURL2 = os.Getenv("FRONTEND_URL2")
	if FrontendURL2 == "" {
		FrontendURL2 = FrontendURL
	}

	GlobalRateWindowSeconds = atoiOr(os.Getenv("GLOBAL_RATE_WINDOW_SECONDS"), 900)
	GlobalRateCapacity = atoiOr(os.Getenv("GLOBAL_RATE_CAPACITY"), 100)
	MessageRateWindowSeconds = atoiOr(os.Getenv("MESSAGE_RATE_WINDOW_SECONDS"), 600)
	MessageRateCapacity = atoiOr(os.Getenv("MESSAGE_RATE_CAPACITY"), 50)
	ChatRateWindowSeconds = atoiOr(os.Getenv("CHAT_RATE_WINDOW_SECONDS"), 1800)
	ChatRateCapacity = atoiOr(os.Getenv("CHAT_RATE_CAPACITY"), 50)

	CacheTTLSeconds = atoiOr(os.Getenv("CACHE_TTL_SECONDS"), 60)
	CacheMaxItems = atoiOr(os.Getenv("CACHE_MAX_ITEMS"), 500)

	log.Printf("[config] AppEnv=%s Port=%s DBPath=%s", AppEnv, Port, DBPath)
	log.Printf("[config] OpenAIKeyPresent=%v model=%s maxTokens=%d temperature=%.2f",
		OpenAIAPIKey != "", OpenAIModel, MaxTokens, Temperature)
	log.Printf("[config] RateLimit global=%d/%ds messages=%d/%ds chats=%d/%ds",
		GlobalRateCapacity, GlobalRateWindowSeconds,
		MessageRateCapacity, MessageRateWindowSeconds,
		ChatRateCapacity, ChatRateWindowSeconds)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func atofOr(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return def
}
