package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	GinMode    string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string
	JWTExpiry time.Duration

	RemindersEnabled bool
	ReminderInterval time.Duration
	ReminderSubject  string
	ReminderText     string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtExpiry := 7 * 24 * time.Hour
	if exp := os.Getenv("JWT_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			jwtExpiry = parsed
		}
	}

	reminderInterval := time.Minute
	if iv := os.Getenv("REMINDER_INTERVAL"); iv != "" {
		if parsed, err := time.ParseDuration(iv); err == nil && parsed > 0 {
			reminderInterval = parsed
		}
	}

	smtpPort := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			smtpPort = parsed
		}
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "taskuser"),
		DBPassword: getEnv("DB_PASSWORD", "taskpassword"),
		DBName:     getEnv("DB_NAME", "calmtasks"),

		JWTSecret: getEnv("JWT_SECRET", "default-secret-key-change-me"),
		JWTExpiry: jwtExpiry,

		RemindersEnabled: os.Getenv("DISABLE_REMINDERS") != "true",
		ReminderInterval: reminderInterval,
		ReminderSubject:  getEnv("REMINDER_SUBJECT", "Reminder from CalmTasks"),
		ReminderText:     getEnv("REMINDER_TEXT", ""),

		SMTPHost:  getEnv("SMTP_HOST", ""),
		SMTPPort:  smtpPort,
		SMTPUser:  getEnv("SMTP_USER", ""),
		SMTPPass:  getEnv("SMTP_PASS", ""),
		FromEmail: getEnv("FROM_EMAIL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
