package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DOWNLOADS_DIR", "MAX_CONCURRENT_DOWNLOADS", "RETENTION_MINUTES", "YTDLP_PLAYER_CLIENTS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Addr() != ":5000" {
		t.Fatalf("expected :5000, got %s", cfg.Addr())
	}
	if cfg.DownloadsDir != "./downloads" || cfg.CookiesFile != "cookies.txt" {
		t.Fatalf("unexpected paths %q %q", cfg.DownloadsDir, cfg.CookiesFile)
	}
	if cfg.Retention != time.Hour || cfg.MaxConcurrentDownloads != 2 {
		t.Fatalf("unexpected retention/concurrency %s %d", cfg.Retention, cfg.MaxConcurrentDownloads)
	}
	if len(cfg.YTDLPPlayerClients) != 2 {
		t.Fatalf("unexpected player clients %v", cfg.YTDLPPlayerClients)
	}
	if len(cfg.YTDLPSkip) != 2 || cfg.YTDLPSkip[0] != "hls" {
		t.Fatalf("unexpected skipped protocols %v", cfg.YTDLPSkip)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("MAX_CONCURRENT_DOWNLOADS", "5")
	t.Setenv("RETENTION_MINUTES", "bogus")
	t.Setenv("YTDLP_PLAYER_CLIENTS", " web , ,ios")
	t.Setenv("YTDLP_SLEEP_MIN", "2")

	cfg := Load()
	if cfg.Addr() != ":8081" || cfg.MaxConcurrentDownloads != 5 {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.Retention != time.Hour {
		t.Fatalf("expected invalid retention to fall back, got %s", cfg.Retention)
	}
	if len(cfg.YTDLPPlayerClients) != 2 || cfg.YTDLPPlayerClients[1] != "ios" {
		t.Fatalf("unexpected player clients %v", cfg.YTDLPPlayerClients)
	}
	if cfg.YTDLPSleepMin != 2*time.Second {
		t.Fatalf("unexpected sleep min %s", cfg.YTDLPSleepMin)
	}
}
