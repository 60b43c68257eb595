package generate

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/nonsonwune/result_report/assets"
	"github.com/nonsonwune/result_report/models"
	"github.com/nonsonwune/result_report/report"
)

const marks = "Name,earned_1,earned_2,earned 26\nAsha,1,1,1\nRavi,1,0,0\n"

type fakeSource struct {
	data []byte
	err  error
	ids  []string
}

func (f *fakeSource) Get(ctx context.Context, assetID string) ([]byte, error) {
	f.ids = append(f.ids, assetID)
	return f.data, f.err
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 21, 30))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newGenerator(src BackgroundSource) *Generator {
	return &Generator{
		Backgrounds:    src,
		Renderer:       report.NewRenderer(report.DefaultLayout()),
		DefaultAssetID: "default-bg",
		Now:            func() time.Time { return time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC) },
	}
}

func TestGenerate(t *testing.T) {
	src := &fakeSource{data: pngBytes(t)}
	g := newGenerator(src)

	out, err := g.Generate(context.Background(), Request{
		CSV:      strings.NewReader(marks),
		Subjects: models.DefaultSubjects(),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Filename != "MB MURLIDHAR WEEKLY TEST 07-03-2026 RESULT.pdf" {
		t.Fatalf("Filename = %q", out.Filename)
	}
	if out.Pages != 2 || out.ReportID == "" {
		t.Fatalf("pages = %d, id = %q", out.Pages, out.ReportID)
	}
	if !bytes.HasPrefix(out.PDF, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if got := out.Results.Candidates[0]; got.Name != "Asha" || got.Total != 3 {
		t.Fatalf("top = %+v", got)
	}
	if len(src.ids) != 1 || src.ids[0] != "default-bg" {
		t.Fatalf("asset lookups = %v", src.ids)
	}
}

func TestGenerateCustomBackgroundSkipsCache(t *testing.T) {
	src := &fakeSource{err: errors.New("unused")}
	g := newGenerator(src)
	_, err := g.Generate(context.Background(), Request{
		CSV:        strings.NewReader(marks),
		Subjects:   models.DefaultSubjects(),
		Background: pngBytes(t),
		AssetID:    "ignored",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(src.ids) != 0 {
		t.Fatalf("cache consulted: %v", src.ids)
	}
}

func TestGenerateErrors(t *testing.T) {
	fetchErr := &assets.FetchError{AssetID: "x", Status: 404}
	cases := []struct {
		name string
		src  BackgroundSource
		req  Request
		want error
	}{
		{
			name: "invalid subjects",
			src:  &fakeSource{},
			req:  Request{CSV: strings.NewReader(marks), Subjects: nil},
			want: ErrInvalidSubjects,
		},
		{
			name: "no marks",
			src:  &fakeSource{},
			req:  Request{Subjects: models.DefaultSubjects()},
			want: ErrNoMarks,
		},
		{
			name: "fetch failure",
			src:  &fakeSource{err: fetchErr},
			req:  Request{CSV: strings.NewReader(marks), Subjects: models.DefaultSubjects()},
			want: ErrBackground,
		},
		{
			name: "undecodable background",
			src:  &fakeSource{},
			req:  Request{CSV: strings.NewReader(marks), Subjects: models.DefaultSubjects(), Background: []byte("junk")},
			want: ErrBackground,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newGenerator(tc.src).Generate(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	_, err := newGenerator(&fakeSource{err: fetchErr}).Generate(context.Background(), Request{
		CSV: strings.NewReader(marks), Subjects: models.DefaultSubjects(),
	})
	var fe *assets.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("fetch error not preserved: %v", err)
	}
}

func TestAnalyzeEmptyFile(t *testing.T) {
	_, _, err := newGenerator(nil).Analyze(context.Background(), Request{
		CSV:      strings.NewReader(""),
		Subjects: models.DefaultSubjects(),
	})
	if err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestNormalizeFilename(t *testing.T) {
	now := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	cases := []struct{ in, want string }{
		{"", "MB MURLIDHAR WEEKLY TEST 07-03-2026 RESULT.pdf"},
		{"week 9", "week 9.pdf"},
		{" results.PDF ", "results.PDF"},
	}
	for _, tc := range cases {
		if got := NormalizeFilename(tc.in, now); got != tc.want {
			t.Errorf("NormalizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := DefaultTitle(now); got != "MB WEEKLY TEST RESULT | DATE: 07/03/2026" {
		t.Fatalf("DefaultTitle = %q", got)
	}
}
