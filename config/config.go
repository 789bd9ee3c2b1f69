package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the grader reads from the environment.
type Config struct {
	Port        string
	Environment string // "dev" or "prod"

	TelegramToken string

	DetectorMode     string // "remote", "local" or "mock"
	DetectorEndpoint string
	DetectorAPIKey   string

	BlobDir       string // empty keeps artifacts in memory
	PublicBaseURL string
	DBPath        string // empty keeps history in memory
	FontPath      string

	MockSeed int64
}

func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),

		DetectorMode:     getEnv("DETECTOR_MODE", "mock"),
		DetectorEndpoint: os.Getenv("DETECTOR_ENDPOINT"),
		DetectorAPIKey:   os.Getenv("DETECTOR_API_KEY"),

		BlobDir:       os.Getenv("BLOB_DIR"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		DBPath:        os.Getenv("DB_PATH"),
		FontPath:      os.Getenv("FONT_PATH"),

		MockSeed: getEnvAsInt64("MOCK_SEED", 0),
	}

	return cfg, nil
}

// IsDev reports whether the service runs with development conveniences
// such as the mock fallback detector.
func (c *Config) IsDev() bool {
	return c.Environment != "prod"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
