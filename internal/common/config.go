package common

import (
	"os"
	"strconv"
	"time"

	"github.com/musmankhan/cnic-ocr/constants"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Vision   VisionConfig
	Database DatabaseConfig
	Cache    CacheConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// VisionConfig selects and configures the OCR engine
type VisionConfig struct {
	Engine        string // constants.EngineGemini | EngineGoogleVision | EngineTesseract
	GeminiAPIKey  string
	GeminiModel   string
	VisionAPIKey  string
	TesseractLang string
	Timeout       time.Duration
}

// DatabaseConfig holds the extraction history store settings.
// When DSN is empty the service falls back to SQLitePath; when that is also
// empty, history is disabled.
type DatabaseConfig struct {
	DSN             string
	SQLitePath      string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// CacheConfig holds the optional Redis result cache settings.
type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("ADDR", ":8080"),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", constants.MaxUploadBytes),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Vision: VisionConfig{
			Engine:        getEnv("VISION_ENGINE", constants.EngineGemini),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			VisionAPIKey:  getEnv("GOOGLE_VISION_API_KEY", ""),
			TesseractLang: getEnv("TESSERACT_LANG", "eng+urd"),
			Timeout:       getEnvAsDuration("VISION_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			SQLitePath:      getEnv("SQLITE_PATH", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Cache: CacheConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
			TTL:       getEnvAsDuration("CACHE_TTL", 24*time.Hour),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Vision.Engine {
	case constants.EngineGemini:
		if c.Vision.GeminiAPIKey == "" {
			return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required for the gemini engine", ErrInvalidInput)
		}
	case constants.EngineGoogleVision:
		if c.Vision.VisionAPIKey == "" {
			return NewAppError("CONFIG_ERROR", "GOOGLE_VISION_API_KEY is required for the google-vision engine", ErrInvalidInput)
		}
	case constants.EngineTesseract:
		// no credentials needed
	default:
		return NewAppError("CONFIG_ERROR", "unknown VISION_ENGINE: "+c.Vision.Engine, ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "ADDR is required", ErrInvalidInput)
	}
	return nil
}
