package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type FirebaseConfig struct {
	// ServiceAccount is either inline JSON or a path to a credentials file.
	ServiceAccount string
	ProjectID      string
}

type AppConfig struct {
	HTTPAddr     string
	DBConnString string
	JWTSecret    string
	JWTExpiry    time.Duration
	CORSOrigins  []string
	RedisAddr    string
	RedisPass    string
	Cloudinary   CloudinaryConfig
	Firebase     FirebaseConfig
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	return AppConfig{
		HTTPAddr:     ":" + getEnv("PORT", "3000"),
		DBConnString: dbConnString(),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiry:    parseDuration(getEnv("JWT_EXPIRES_IN", "2160h"), 90*24*time.Hour),
		CORSOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:    getEnv("REDIS_PASS", ""),
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "company-module"),
		},
		Firebase: FirebaseConfig{
			ServiceAccount: getEnv("FIREBASE_SERVICE_ACCOUNT", ""),
			ProjectID:      getEnv("FIREBASE_PROJECT_ID", ""),
		},
	}
}

// dbConnString prefers a single DATABASE_URL and falls back to the
// discrete PG* variables.
func dbConnString() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	sslmode := getEnv("PGSSLMODE", "disable")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("PGUSER", "postgres"),
		getEnv("PGPASSWORD", "postgres"),
		getEnv("PGHOST", "localhost"),
		getEnv("PGPORT", "5432"),
		getEnv("PGDATABASE", "company_db"),
		sslmode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(v string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] invalid duration %q, using %s", v, fallback)
		return fallback
	}
	return d
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
