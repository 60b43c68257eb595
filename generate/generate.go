// Package generate runs one report: marks sheet in, PDF out.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nonsonwune/result_report/analysis"
	"github.com/nonsonwune/result_report/importer"
	"github.com/nonsonwune/result_report/models"
	"github.com/nonsonwune/result_report/report"
)

var (
	ErrInvalidSubjects = errors.New("invalid subject configuration")
	ErrNoMarks         = errors.New("no marks file supplied")
	ErrBackground      = errors.New("background image unavailable")
)

// BackgroundSource resolves a background asset ID to image bytes.
type BackgroundSource interface {
	Get(ctx context.Context, assetID string) ([]byte, error)
}

// Request is one report generation as entered by the operator.
type Request struct {
	CSV        io.Reader
	SourceName string
	Subjects   []models.SubjectDefinition
	Title      string
	Filename   string
	// Background, when set, replaces the cached template for this report.
	Background []byte
	AssetID    string
}

// Output is a generated report.
type Output struct {
	ReportID string
	Filename string
	PDF      []byte
	Pages    int
	Results  analysis.Results
	Stats    *importer.ImportStats
}

type Generator struct {
	Backgrounds    BackgroundSource
	Renderer       *report.Renderer
	DefaultAssetID string
	PassMark       float64
	Now            func() time.Time
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Analyze reads the marks sheet and computes results without drawing anything.
func (g *Generator) Analyze(ctx context.Context, req Request) (analysis.Results, *importer.ImportStats, error) {
	if err := models.ValidateSubjects(req.Subjects); err != nil {
		return analysis.Results{}, nil, fmt.Errorf("%w: %w", ErrInvalidSubjects, err)
	}
	if req.CSV == nil {
		return analysis.Results{}, nil, ErrNoMarks
	}

	imp := importer.NewDataImporter(importer.ImportConfig{SourceFile: req.SourceName})
	table, err := imp.ImportData(ctx, req.CSV)
	if err != nil {
		return analysis.Results{}, nil, fmt.Errorf("read marks: %w", err)
	}
	results := analysis.Run(table, req.Subjects, analysis.Options{
		PassMark: g.PassMark,
		Stats:    imp.Stats(),
	})
	return results, imp.Stats(), nil
}

// Generate produces the PDF report. The background is resolved first so a
// missing template stops the run before any work is done.
func (g *Generator) Generate(ctx context.Context, req Request) (*Output, error) {
	if err := models.ValidateSubjects(req.Subjects); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSubjects, err)
	}
	if req.CSV == nil {
		return nil, ErrNoMarks
	}

	bg, err := g.background(ctx, req)
	if err != nil {
		return nil, err
	}

	results, stats, err := g.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	now := g.now()
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultTitle(now)
	}
	id := uuid.NewString()

	var buf bytes.Buffer
	res, err := g.Renderer.Render(&buf, report.Document{
		ReportID:   id,
		Title:      title,
		Subjects:   results.Subjects,
		TotalMax:   results.TotalMax,
		Candidates: results.Candidates,
		Summary:    results.Summary,
		Background: bg,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Report %s: %d candidates, %d pages", id, len(results.Candidates), res.Pages)
	return &Output{
		ReportID: id,
		Filename: NormalizeFilename(req.Filename, now),
		PDF:      buf.Bytes(),
		Pages:    res.Pages,
		Results:  results,
		Stats:    stats,
	}, nil
}

func (g *Generator) background(ctx context.Context, req Request) (*report.Background, error) {
	data := req.Background
	if len(data) == 0 {
		assetID := req.AssetID
		if assetID == "" {
			assetID = g.DefaultAssetID
		}
		if g.Backgrounds == nil || assetID == "" {
			return nil, ErrBackground
		}
		fetched, err := g.Backgrounds.Get(ctx, assetID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBackground, err)
		}
		data = fetched
	}
	bg, err := report.PrepareBackground(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackground, err)
	}
	return bg, nil
}

// DefaultTitle is the heading printed on every page when none is given.
func DefaultTitle(t time.Time) string {
	return "MB WEEKLY TEST RESULT | DATE: " + t.Format("02/01/2006")
}

// DefaultFilename is the suggested output name without extension.
func DefaultFilename(t time.Time) string {
	return "MB MURLIDHAR WEEKLY TEST " + t.Format("02-01-2006") + " RESULT"
}

// NormalizeFilename trims the name and makes sure it ends in ".pdf".
func NormalizeFilename(name string, t time.Time) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFilename(t)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
