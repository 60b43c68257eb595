package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/nonsonwune/result_report/assets"
	"github.com/nonsonwune/result_report/config"
	"github.com/nonsonwune/result_report/generate"
	"github.com/nonsonwune/result_report/models"
	"github.com/nonsonwune/result_report/report"
	"github.com/nonsonwune/result_report/server"
)

func init() {
	// Load .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: error loading .env file: %v", err)
	}
}

// app wires the shared pieces used by every front end.
type app struct {
	cfg   config.Config
	cache *assets.Cache
	gen   *generate.Generator
}

func newApp(cfg config.Config) *app {
	cache := assets.NewCache(assets.NewHTTPFetcher(cfg.BackgroundURLTemplate, cfg.FetchTimeout))
	renderer := report.NewRenderer(report.Layout{
		RowsPerPage: cfg.RowsPerPage,
		PassMark:    cfg.PassMark,
		Links:       report.DefaultLinks(cfg.TelegramLink, cfg.InstagramLink),
		Author:      cfg.ReportAuthor,
	})
	return &app{
		cfg:   cfg,
		cache: cache,
		gen: &generate.Generator{
			Backgrounds:    cache,
			Renderer:       renderer,
			DefaultAssetID: cfg.BackgroundAssetID,
			PassMark:       cfg.PassMark,
		},
	}
}

func main() {
	cfg := config.FromEnv()

	var (
		flagCSV      string
		flagSubjects string
		flagTitle    string
		flagOut      string
		flagBG       string
		flagAsset    string
		flagPreview  bool
		flagServe    bool
		flagAddr     string
		flagRows     int
	)
	flag.StringVar(&flagCSV, "csv", "", "marks CSV to convert (runs once without the menu)")
	flag.StringVar(&flagSubjects, "subjects", models.FormatSubjects(models.DefaultSubjects()), "subjects as name:start-end:max,... (wrap names containing , or : in double quotes)")
	flag.StringVar(&flagTitle, "title", "", "main title printed on every page")
	flag.StringVar(&flagOut, "out", "", "output PDF filename")
	flag.StringVar(&flagBG, "bg", "", "custom background image (PNG/JPEG/WebP/BMP)")
	flag.StringVar(&flagAsset, "asset", "", "background asset ID to fetch instead of the default")
	flag.BoolVar(&flagPreview, "preview", false, "print the ranked table and summary to the terminal")
	flag.BoolVar(&flagServe, "serve", false, "start the web upload form")
	flag.StringVar(&flagAddr, "addr", "", "listen address for -serve (overrides HTTP_ADDR)")
	flag.IntVar(&flagRows, "rows", 0, "rows per main page (overrides ROWS_PER_PAGE)")
	flag.Parse()

	if flagAddr != "" {
		cfg.HTTPAddr = flagAddr
	}
	if flagRows > 0 {
		cfg.RowsPerPage = flagRows
	}
	a := newApp(cfg)

	switch {
	case flagServe:
		if err := a.serve(); err != nil {
			log.Fatal(err)
		}
	case flagCSV != "":
		subjects, err := models.ParseSubjects(flagSubjects)
		if err != nil {
			color.Red("Invalid subjects: %v", err)
			os.Exit(2)
		}
		s := &session{
			title:    flagTitle,
			filename: flagOut,
			subjects: subjects,
			csvPath:  flagCSV,
			bgPath:   flagBG,
			assetID:  flagAsset,
		}
		if flagPreview {
			a.preview(s)
		}
		if err := a.generate(s); err != nil {
			os.Exit(1)
		}
	default:
		a.runMenu()
	}
}

func (a *app) serve() error {
	handler := server.NewRouter(a.gen, a.cache, server.Options{
		CORSOrigins:     a.cfg.CORSOrigins,
		MaxUploadBytes:  a.cfg.MaxUploadMB << 20,
		DefaultAssetID:  a.cfg.BackgroundAssetID,
		AllowedAssetIDs: a.cfg.AllowedAssetIDs,
	})
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	color.Green("Report form listening on %s", a.cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// generate runs one report for the session and writes it to OUTPUT_DIR.
func (a *app) generate(s *session) error {
	req, closeFn, err := s.request()
	if err != nil {
		color.Red("%v", err)
		return err
	}
	defer closeFn()

	if len(req.Background) == 0 {
		color.Cyan("Fetching background...")
	}
	out, err := a.gen.Generate(context.Background(), req)
	if err != nil {
		var fetchErr *assets.FetchError
		if errors.As(err, &fetchErr) {
			color.Red("Failed to download background. Check the asset ID (%s).", fetchErr.AssetID)
		}
		color.Red("Error generating report: %v", err)
		return err
	}
	out.Stats.PrintSummary()

	path := filepath.Join(a.cfg.OutputDir, out.Filename)
	if err := os.WriteFile(path, out.PDF, 0o644); err != nil {
		color.Red("Error writing %s: %v", path, err)
		return err
	}
	color.Green("PDF Generated: %s (%d pages, report %s)", path, out.Pages, out.ReportID)
	return nil
}
