package server

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/nonsonwune/result_report/generate"
	"github.com/nonsonwune/result_report/models"
)

var formTemplate = template.Must(template.New("form").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Weekly Result Report Generator</title></head>
<body>
<h1>Weekly Result Report Generator</h1>
<form method="post" action="/api/reports" enctype="multipart/form-data">
  <h2>1. Test Configuration</h2>
  <p><label>Main Title <input name="title" size="60" value="{{.Title}}"></label></p>
  <p><label>Output PDF Filename <input name="filename" size="60" value="{{.Filename}}"></label></p>
  <p><label>Subjects (name:start-end:max, comma separated, up to {{.MaxSubjects}}; quote names containing , or :)
    <input name="subjects" size="60" value="{{.Subjects}}"></label></p>
  <h2>2. Upload Data</h2>
  <p><label>Marks CSV <input type="file" name="csv" accept=".csv" required></label></p>
  <p><label>Background image (optional, PNG/JPEG) <input type="file" name="background" accept=".png,.jpg,.jpeg,.webp,.bmp"></label></p>
  <input type="hidden" name="asset_id" value="{{.AssetID}}">
  <p><button type="submit">Generate PDF</button>
     <button type="submit" formaction="/api/preview">Preview</button></p>
</form>
</body>
</html>
`))

type formData struct {
	Title       string
	Filename    string
	Subjects    string
	MaxSubjects int
	AssetID     string
}

// GET /
func (h *handlers) form(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	if h.gen != nil && h.gen.Now != nil {
		now = h.gen.Now()
	}
	data := formData{
		Title:       generate.DefaultTitle(now),
		Filename:    generate.DefaultFilename(now),
		Subjects:    models.FormatSubjects(models.DefaultSubjects()),
		MaxSubjects: models.MaxSubjects,
		AssetID:     h.opts.DefaultAssetID,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		log.Printf("Error rendering form: %v", err)
	}
}
