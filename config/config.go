package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nonsonwune/result_report/assets"
)

// DefaultAssetID is the shared background template of the weekly report.
const DefaultAssetID = "1QDEhCo7_ZEfZk8a2UhLWVngmidzfcvfi"

type Config struct {
	HTTPAddr    string
	CORSOrigins []string
	MaxUploadMB int64

	BackgroundAssetID     string
	AllowedAssetIDs       []string
	BackgroundURLTemplate string
	FetchTimeout          time.Duration

	RowsPerPage   int
	PassMark      float64
	TelegramLink  string
	InstagramLink string
	ReportAuthor  string

	OutputDir string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),
		MaxUploadMB: int64(envInt("MAX_UPLOAD_MB", 10)),

		BackgroundAssetID:     envOr("BACKGROUND_ASSET_ID", DefaultAssetID),
		AllowedAssetIDs:       csvOr("ALLOWED_ASSET_IDS", ""),
		BackgroundURLTemplate: envOr("BACKGROUND_URL_TEMPLATE", assets.DefaultURLTemplate),
		FetchTimeout:          envDuration("FETCH_TIMEOUT", 20*time.Second),

		RowsPerPage:   envInt("ROWS_PER_PAGE", 23),
		PassMark:      envFloat("PASS_MARK", 50),
		TelegramLink:  envOr("TELEGRAM_LINK", "https://t.me/MurlidharAcademy"),
		InstagramLink: envOr("INSTAGRAM_LINK", "https://www.instagram.com/murlidhar_academy_official/"),
		ReportAuthor:  os.Getenv("REPORT_AUTHOR"),

		OutputDir: envOr("OUTPUT_DIR", "."),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envFloat(k string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(k)), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
