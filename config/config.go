package config

import (
	"context"
	"log"
	"strings"
	"time"

	"os"
)

type Config struct {
	Port string
	Env  string

	DataDir string

	MongoURI     string
	DatabaseName string
	MirrorWrites bool

	JWTSecret     string
	JWTExpiration time.Duration

	AdminAccessCode string

	MatcherBaseURL  string
	MessagesAPIBase string

	B2ApplicationKeyID string
	B2ApplicationKey   string
	B2BucketName       string

	AllowedEmailDomains []string
	AllowedOrigins      []string

	SyncInterval time.Duration
}

var AppConfig *Config

func LoadConfig() {
	AppConfig = &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DataDir: getEnv("DATA_DIR", "data"),

		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DATABASE_NAME", "lostfound"),
		MirrorWrites: getEnv("MIRROR_WRITES", "true") == "true",

		JWTSecret:     getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
		JWTExpiration: parseDuration(getEnv("JWT_EXPIRATION", "24h")),

		AdminAccessCode: getEnv("ADMIN_ACCESS_CODE", "ADMIN2024"),

		MatcherBaseURL:  getEnv("MATCHER_BASE_URL", "http://localhost:5000"),
		MessagesAPIBase: getEnv("MESSAGES_API_BASE_URL", "http://localhost:5000"),

		B2ApplicationKeyID: getB2KeyID(),
		B2ApplicationKey:   getB2AppKey(),
		B2BucketName:       getEnv("B2_BUCKET_NAME", ""),

		AllowedEmailDomains: parseStringSlice(getEnv("ALLOWED_EMAIL_DOMAINS", "klu.ac.in")),
		AllowedOrigins:      parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),

		SyncInterval: parseDuration(getEnv("SYNC_INTERVAL", "5m")),
	}

	logConfig()
	validateConfig()
}

func getB2KeyID() string {
	possibleKeys := []string{"B2_APPLICATION_KEY_ID", "B2_KEY_ID", "BACKBLAZE_KEY_ID"}
	for _, key := range possibleKeys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getB2AppKey() string {
	possibleKeys := []string{"B2_APPLICATION_KEY", "B2_APP_KEY", "BACKBLAZE_APP_KEY"}
	for _, key := range possibleKeys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func logConfig() {
	log.Println("Configuration loaded:")
	log.Printf("  Port: %s", AppConfig.Port)
	log.Printf("  Environment: %s", AppConfig.Env)
	log.Printf("  Data directory: %s", AppConfig.DataDir)
	log.Printf("  Database: %s", AppConfig.DatabaseName)
	log.Printf("  MongoDB URI: %s", maskConnectionString(AppConfig.MongoURI))
	log.Printf("  Mirror writes: %t", AppConfig.MirrorWrites)
	log.Printf("  JWT Secret: %s", maskSecret(AppConfig.JWTSecret))
	log.Printf("  JWT Expiration: %v", AppConfig.JWTExpiration)
	log.Printf("  Matcher base URL: %s", AppConfig.MatcherBaseURL)
	log.Printf("  Messages API base URL: %s", AppConfig.MessagesAPIBase)
	log.Printf("  B2 Key ID: %s", maskSecret(AppConfig.B2ApplicationKeyID))
	log.Printf("  B2 Bucket: %s", AppConfig.B2BucketName)
	log.Printf("  Allowed email domains: %v", AppConfig.AllowedEmailDomains)
	log.Printf("  Allowed origins: %v", AppConfig.AllowedOrigins)
	log.Printf("  Sync interval: %v", AppConfig.SyncInterval)
}

func maskSecret(secret string) string {
	if secret == "" {
		return "[NOT SET]"
	}
	if len(secret) <= 8 {
		return "[HIDDEN]"
	}
	return secret[:4] + "***" + secret[len(secret)-4:]
}

func maskConnectionString(uri string) string {
	if uri == "" {
		return "[NOT SET]"
	}
	if strings.Contains(uri, "@") {
		parts := strings.Split(uri, "@")
		if len(parts) >= 2 {
			return "[CREDENTIALS_HIDDEN]@" + parts[len(parts)-1]
		}
	}
	return uri
}

func validateConfig() {
	var missingVars []string

	required := map[string]string{
		"JWT_SECRET":       AppConfig.JWTSecret,
		"MATCHER_BASE_URL": AppConfig.MatcherBaseURL,
		"DATA_DIR":         AppConfig.DataDir,
	}

	for key, value := range required {
		if value == "" {
			missingVars = append(missingVars, key)
		}
	}

	if len(missingVars) > 0 {
		log.Printf("Missing required environment variables: %v", missingVars)
		log.Fatal("Please set all required environment variables")
	}

	log.Println("All required environment variables are set")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("Failed to parse duration: %s", s)
	}
	return d
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	var result []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func CreateContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
