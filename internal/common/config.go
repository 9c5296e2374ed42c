package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	OCR    OCRConfig
	LLM    LLMConfig
	Videos VideosConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Addr           string
	FrontendOrigin string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// UploadConfig holds upload-related configuration
type UploadConfig struct {
	Dir         string
	MaxBodySize int64
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Pdftoppm    string
	Tesseract   string
	TessdataDir string
	DPI         int
	MaxPages    int
	Workers     int
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	GeminiAPIKey   string
	GeminiBaseURL  string
	GeminiModel    string
	GroqAPIKey     string
	GroqBaseURL    string
	GroqModel      string
	GroqTemp       float32
	RequestTimeout time.Duration
}

// VideosConfig holds video-search API configuration
type VideosConfig struct {
	APIKey     string
	BaseURL    string
	MaxResults int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           getEnv("HTTP_ADDR", ":8080"),
			FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://127.0.0.1:5173"),
			ReadTimeout:    getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("HTTP_WRITE_TIMEOUT", 2*time.Minute),
		},
		Upload: UploadConfig{
			Dir:         getEnv("UPLOAD_DIR", "uploads"),
			MaxBodySize: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 20<<20)),
		},
		OCR: OCRConfig{
			Pdftoppm:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			DPI:         getEnvAsInt("OCR_DPI", 300),
			MaxPages:    getEnvAsInt("OCR_MAX_PAGES", 5),
			Workers:     getEnvAsInt("OCR_WORKERS", 2),
		},
		LLM: LLMConfig{
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiBaseURL:  getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-pro-latest"),
			GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:    getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			GroqModel:      getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			GroqTemp:       getEnvAsFloat32("GROQ_TEMPERATURE", 0.6),
			RequestTimeout: getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
		},
		Videos: VideosConfig{
			APIKey:     getEnv("YOUTUBE_API_KEY", ""),
			BaseURL:    getEnv("YOUTUBE_BASE_URL", "https://www.googleapis.com/youtube/v3/search"),
			MaxResults: getEnvAsInt("YOUTUBE_MAX_RESULTS", 5),
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

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.LLM.GeminiAPIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	if c.LLM.GroqAPIKey == "" {
		return NewAppError("CONFIG_ERROR", "GROQ_API_KEY is required", ErrInvalidInput)
	}
	if c.Videos.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "YOUTUBE_API_KEY is required", ErrInvalidInput)
	}
	if c.Upload.Dir == "" {
		return NewAppError("CONFIG_ERROR", "UPLOAD_DIR is required", ErrInvalidInput)
	}
	return nil
}
