package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nonsonwune/result_report/analysis"
	"github.com/nonsonwune/result_report/assets"
	"github.com/nonsonwune/result_report/generate"
	"github.com/nonsonwune/result_report/importer"
	"github.com/nonsonwune/result_report/models"
)

type handlers struct {
	gen   *generate.Generator
	cache *assets.Cache
	opts  Options
}

// POST /api/reports (multipart: csv, background?, title, filename, subjects)
func (h *handlers) createReport(w http.ResponseWriter, r *http.Request) {
	req, cleanup, err := h.parseRequest(w, r, true)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cleanup()

	out, err := h.gen.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	out.Stats.PrintSummary()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.PDF)))
	w.Header().Set("X-Report-ID", out.ReportID)
	w.Header().Set("X-Report-Pages", strconv.Itoa(out.Pages))
	_, _ = w.Write(out.PDF)
}

type previewResponse struct {
	analysis.Results
	DroppedColumns []string       `json:"dropped_columns"`
	Fallbacks      map[string]int `json:"coercion_fallbacks"`
	Collisions     []string       `json:"collisions"`
}

// POST /api/preview (multipart: csv, subjects)
func (h *handlers) preview(w http.ResponseWriter, r *http.Request) {
	req, cleanup, err := h.parseRequest(w, r, false)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cleanup()

	results, stats, err := h.gen.Analyze(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := previewResponse{
		Results:        results,
		DroppedColumns: stats.DroppedColumns,
		Fallbacks:      stats.CoercionFallbacks,
	}
	for _, c := range stats.Collisions {
		resp.Collisions = append(resp.Collisions, c.String())
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// DELETE /api/assets/{assetID}
func (h *handlers) invalidateAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assetID")
	if h.cache != nil {
		h.cache.Invalidate(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) parseRequest(w http.ResponseWriter, r *http.Request, withBackground bool) (generate.Request, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
		return generate.Request{}, noop, badRequest("invalid upload: " + err.Error())
	}

	subjects, err := formSubjects(r)
	if err != nil {
		return generate.Request{}, noop, fmt.Errorf("%w: %w", generate.ErrInvalidSubjects, err)
	}

	f, hdr, err := r.FormFile("csv")
	if err != nil {
		return generate.Request{}, noop, generate.ErrNoMarks
	}
	req := generate.Request{
		CSV:        f,
		SourceName: hdr.Filename,
		Subjects:   subjects,
		Title:      r.FormValue("title"),
		Filename:   r.FormValue("filename"),
	}
	cleanup := func() {
		f.Close()
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	if withBackground {
		data, err := readOptionalFile(r, "background")
		if err != nil {
			cleanup()
			return generate.Request{}, noop, badRequest("background: " + err.Error())
		}
		req.Background = data
		if len(data) == 0 {
			assetID := strings.TrimSpace(r.FormValue("asset_id"))
			if !h.assetAllowed(assetID) {
				cleanup()
				return generate.Request{}, noop, badRequest(fmt.Sprintf("unknown background asset %q", assetID))
			}
			req.AssetID = assetID
		}
	}
	return req, cleanup, nil
}

// assetAllowed limits which templates a client may ask the shared cache to
// download. Blank means the configured default.
func (h *handlers) assetAllowed(assetID string) bool {
	if assetID == "" || assetID == h.opts.DefaultAssetID {
		return true
	}
	for _, id := range h.opts.AllowedAssetIDs {
		if id == assetID {
			return true
		}
	}
	return false
}

// formSubjects reads the subject configuration either from repeated
// subject_name/subject_start/subject_end/subject_max fields or from the
// compact "subjects" field. Neither present means the default layout.
func formSubjects(r *http.Request) ([]models.SubjectDefinition, error) {
	var values map[string][]string
	if r.MultipartForm != nil {
		values = r.MultipartForm.Value
	}
	names := values["subject_name"]
	if len(names) == 0 {
		spec := strings.TrimSpace(r.FormValue("subjects"))
		if spec == "" {
			return models.DefaultSubjects(), nil
		}
		return models.ParseSubjects(spec)
	}

	field := func(key string, i int, name string) (int, error) {
		vs := values[key]
		if i >= len(vs) {
			return 0, &models.SubjectError{Index: i, Name: name, Reason: "missing " + key}
		}
		n, err := strconv.Atoi(strings.TrimSpace(vs[i]))
		if err != nil {
			return 0, &models.SubjectError{Index: i, Name: name, Reason: fmt.Sprintf("invalid %s %q", key, vs[i])}
		}
		return n, nil
	}

	var subjects []models.SubjectDefinition
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		start, err := field("subject_start", i, name)
		if err != nil {
			return nil, err
		}
		end, err := field("subject_end", i, name)
		if err != nil {
			return nil, err
		}
		maxMarks, err := field("subject_max", i, name)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, models.SubjectDefinition{Name: name, Start: start, End: end, MaxMarks: maxMarks})
	}
	return subjects, nil
}

func readOptionalFile(r *http.Request, field string) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error { return &requestError{msg: msg} }

// writeError maps generation failures onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var (
		reqErr    *requestError
		importErr *importer.ImportError
		fetchErr  *assets.FetchError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &reqErr), errors.As(err, &importErr),
		errors.Is(err, generate.ErrInvalidSubjects), errors.Is(err, generate.ErrNoMarks):
		status = http.StatusBadRequest
	case errors.As(err, &fetchErr):
		status = http.StatusBadGateway
	case errors.Is(err, generate.ErrBackground):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("Error generating report: %v", err)
	}
	http.Error(w, err.Error(), status)
}
