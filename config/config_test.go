package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/nonsonwune/result_report/assets"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "CORS_ORIGINS", "BACKGROUND_ASSET_ID", "ROWS_PER_PAGE", "PASS_MARK", "FETCH_TIMEOUT", "BACKGROUND_URL_TEMPLATE"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" || cfg.RowsPerPage != 23 || cfg.PassMark != 50 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.BackgroundAssetID != DefaultAssetID || cfg.BackgroundURLTemplate != assets.DefaultURLTemplate {
		t.Fatalf("background = %q %q", cfg.BackgroundAssetID, cfg.BackgroundURLTemplate)
	}
	if cfg.FetchTimeout != 20*time.Second {
		t.Fatalf("FetchTimeout = %v", cfg.FetchTimeout)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("ROWS_PER_PAGE", "30")
	t.Setenv("PASS_MARK", "40.5")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")
	t.Setenv("ALLOWED_ASSET_IDS", "bg-a, bg-b")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" || cfg.RowsPerPage != 30 || cfg.PassMark != 40.5 || cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if !reflect.DeepEqual(cfg.AllowedAssetIDs, []string{"bg-a", "bg-b"}) {
		t.Fatalf("AllowedAssetIDs = %v", cfg.AllowedAssetIDs)
	}
	if cfg.MaxUploadMB != 10 {
		t.Fatalf("MaxUploadMB = %d, want default", cfg.MaxUploadMB)
	}
}
