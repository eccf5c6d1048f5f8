package config

import (
	"os"
	"strings"
)

type Config struct {
	PostgresURI string
	RedisURI    string
	MongoURI    string
	Port        string
	Environment string

	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL

	// Cloudinary stores submitted crop images.
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// External pest-inference service.
	InferenceURL    string
	InferenceAPIKey string

	// Seed identity for the single administrator record.
	AdminEmail    string
	AdminMobile   string
	AdminPassword string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		if u := strings.TrimSpace(getEnv("FRONTEND_URL", "http://localhost:3000")); u != "" {
			allowedOrigins = append(allowedOrigins, u)
		}
	}

	return &Config{
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/paddyguard?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/paddyguard")),
		Port:                getEnv("PORT", "8080"),
		Environment:         env,
		AllowedOrigins:      allowedOrigins,
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		InferenceURL:        getEnv("INFERENCE_URL", ""),
		InferenceAPIKey:     getEnv("INFERENCE_API_KEY", ""),
		AdminEmail:          getEnv("ADMIN_EMAIL", "admin@paddy.com"),
		AdminMobile:         getEnv("ADMIN_MOBILE", "0000000000"),
		AdminPassword:       getEnv("ADMIN_PASSWORD", "adminpassword"),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
