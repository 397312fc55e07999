package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultVimeoURL     = "https://api.vimeo.com"
	DefaultPageSize     = 100
	DefaultDownloadPath = "downloads"
)

type Config struct {
	VimeoURL        string
	VimeoToken      string
	VimeoUserID     string
	PageSize        int
	RateLimit       float64
	DownloadPath    string
	ApiURL          string
	AccessKey       string
	SecretKey       string
	BucketName      string
	Region          string
	DestinationPath string
	BlobURL         string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables only")
	}

	pageSize, err := getEnvInt("VIMEO_PAGE_SIZE", DefaultPageSize)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getEnvFloat("VIMEO_RATE_LIMIT", 0)
	if err != nil {
		return nil, err
	}

	config := &Config{
		VimeoURL:        getEnv("VIMEO_API_URL", DefaultVimeoURL),
		VimeoToken:      getEnv("VIMEO_API_KEY", ""),
		VimeoUserID:     getEnv("VIMEO_USER_ID", ""),
		PageSize:        pageSize,
		RateLimit:       rateLimit,
		DownloadPath:    getEnv("DOWNLOAD_PATH", DefaultDownloadPath),
		ApiURL:          getEnv("API_URL", ""),
		AccessKey:       getEnv("ACCESS_KEY", ""),
		SecretKey:       getEnv("SECRET_KEY", ""),
		BucketName:      getEnv("BUCKET_NAME", ""),
		Region:          getEnv("REGION", ""),
		DestinationPath: getEnv("DESTINATION_PREFIX", ""),
		BlobURL:         getEnv("BLOB_URL", ""),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive whole number", key, value)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative number", key, value)
	}
	return f, nil
}
