package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings
type Config struct {
	MongoURI  string
	RedisAddr string
	HTTPPort  string

	// Forms provider (schema source)
	FormsAPIBase  string
	FormsAPIToken string

	// Submission sink (spreadsheet append API)
	SheetAPIBase  string
	SheetAPIToken string
	SheetID       string

	// Confirmation mail
	MailAPIBase  string
	MailAPIToken string
	MailFrom     string
}

// Load reads configuration from the environment, falling back to local
// development defaults. A .env file is honored when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		FormsAPIBase:  getEnv("FORMS_API_BASE", "https://forms.example.com/api/v1"),
		FormsAPIToken: getEnv("FORMS_API_TOKEN", ""),
		SheetAPIBase:  getEnv("SHEET_API_BASE", "https://sheets.example.com/api/v1"),
		SheetAPIToken: getEnv("SHEET_API_TOKEN", ""),
		SheetID:       getEnv("SHEET_ID", ""),
		MailAPIBase:   getEnv("MAIL_API_BASE", "https://mail.example.com/api/v1"),
		MailAPIToken:  getEnv("MAIL_API_TOKEN", ""),
		MailFrom:      getEnv("MAIL_FROM", "orders@example.com"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
