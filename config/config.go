package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"facultypay/workload"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL       string
	JWTSecret         string
	JWTExpiration     time.Duration
	ServerPort        string
	AllowedOrigins    []string
	Rates             workload.RateTable
	InstitutionName   string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	LogSQL            bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; variables already set
// in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	return &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/facultypay"),
		JWTSecret:         getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration:     getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		AllowedOrigins:    getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5000"}),
		InstitutionName:   getEnv("INSTITUTION_NAME", "LOKNETE SHAMRAO PEJE GOVERNMENT COLLEGE OF ENGINEERING, RATNAGIRI"),
		Rates:             loadRates(),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		LogSQL:            getEnvBool("LOG_SQL", false),
	}
}

func loadRates() workload.RateTable {
	rates := workload.DefaultRates()
	keys := map[workload.ActivityType]string{
		workload.ActivityLecture:  "RATE_LECTURE",
		workload.ActivityTutorial: "RATE_TUTORIAL",
		workload.ActivityLab:      "RATE_LAB",
	}
	for activity, key := range keys {
		rates[activity] = int64(getEnvInt(key, int(rates[activity])))
	}
	return rates
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("Ignoring invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
