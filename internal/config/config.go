package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the server.
type Config struct {
	Port                   string
	DownloadsDir           string
	CookiesFile            string
	MaxConcurrentDownloads int
	Retention              time.Duration
	SweepInterval          time.Duration
	CORSOrigins            []string

	YTDLPBinary        string
	YTDLPPlayerClients []string
	YTDLPSkip          []string
	YTDLPUserAgent     string
	YTDLPRetries       int
	YTDLPSleepMin      time.Duration
	YTDLPSleepMax      time.Duration
}

// Load reads environment variables and returns normalized runtime config.
func Load() Config {
	return Config{
		Port:                   getEnv("PORT", "5000"),
		DownloadsDir:           getEnv("DOWNLOADS_DIR", "./downloads"),
		CookiesFile:            getEnv("COOKIES_FILE", "cookies.txt"),
		MaxConcurrentDownloads: getEnvInt("MAX_CONCURRENT_DOWNLOADS", 2),
		Retention:              time.Duration(getEnvInt("RETENTION_MINUTES", 60)) * time.Minute,
		SweepInterval:          time.Duration(getEnvInt("SWEEP_INTERVAL_SECONDS", 600)) * time.Second,
		CORSOrigins:            getEnvList("CORS_ORIGINS", []string{"*"}),

		YTDLPBinary:        getEnv("YTDLP_BINARY", "yt-dlp"),
		YTDLPPlayerClients: getEnvList("YTDLP_PLAYER_CLIENTS", []string{"android", "web"}),
		YTDLPSkip:          getEnvList("YTDLP_SKIP", []string{"hls", "dash"}),
		YTDLPUserAgent:     strings.TrimSpace(os.Getenv("YTDLP_USER_AGENT")),
		YTDLPRetries:       getEnvInt("YTDLP_RETRIES", 3),
		YTDLPSleepMin:      time.Duration(getEnvNonNegative("YTDLP_SLEEP_MIN", 0)) * time.Second,
		YTDLPSleepMax:      time.Duration(getEnvNonNegative("YTDLP_SLEEP_MAX", 0)) * time.Second,
	}
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	var out int
	_, err := fmt.Sscanf(value, "%d", &out)
	if err != nil || out <= 0 {
		return fallback
	}
	return out
}

func getEnvNonNegative(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	var out int
	_, err := fmt.Sscanf(value, "%d", &out)
	if err != nil || out < 0 {
		return fallback
	}
	return out
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
