package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	GenerationApiURL string // External explainer-video generation service
	GenerationApiKey string

	LLMApiURL string // External chat-completion endpoint for the tutor
	LLMApiKey string
	LLMModel  string

	CredentialApiURL string // External wallet/contract service minting completion credentials
	CredentialApiKey string

	SendGridKey string
	EmailSender string

	PollIntervalMinutes int // How often the scheduler checks pending video jobs
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3000/auth/google/callback"),

		GenerationApiURL: getEnv("GENERATION_API_URL", "http://localhost:8000"),
		GenerationApiKey: getEnv("GENERATION_API_KEY", ""),

		LLMApiURL: getEnv("LLM_API_URL", "https://api.openai.com"),
		LLMApiKey: getEnv("LLM_API_KEY", ""),
		LLMModel:  getEnv("LLM_MODEL", "gpt-4o-mini"),

		CredentialApiURL: getEnv("CREDENTIAL_API_URL", ""),
		CredentialApiKey: getEnv("CREDENTIAL_API_KEY", ""),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "no-reply@edvid.app"),

		PollIntervalMinutes: getEnvInt("GENERATION_POLL_MINUTES", 1),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.GoogleClientID == "" || AppConfig.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set. Google sign-in will not work.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
