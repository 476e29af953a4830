package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config carries everything read from the environment at startup.
type Config struct {
	Port        string
	AgentEmails []string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// ServiceBaseURL is the public base URL embedded in confirmation links.
	ServiceBaseURL string

	LogFilePath string

	// ServicedThreshold is the fill level below which a confirmation-link
	// visit reports "already serviced" instead of resetting the bin.
	ServicedThreshold int
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honored.
func Load() Config {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		AgentEmails:       splitList(os.Getenv("AGENT_EMAILS")),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		MailFrom:          os.Getenv("MAIL_FROM"),
		ServiceBaseURL:    getEnv("SERVICE_BASE_URL", "http://localhost:8080"),
		LogFilePath:       getEnv("LOG_FILE_PATH", "./data/logs.json"),
		ServicedThreshold: getEnvInt("SERVICED_THRESHOLD", 10),
	}

	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
