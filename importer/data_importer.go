package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nonsonwune/result_report/models"
)

// DefaultKeepKeywords are the header fragments that keep a column even when it is blank.
var DefaultKeepKeywords = []string{"first", "last", "name", "student", "earned", "possible", "date", "roll", "id"}

// ImportConfig holds the configuration for reading a marks sheet
type ImportConfig struct {
	SourceFile   string
	KeepKeywords []string
}

// ImportError is returned when the marks sheet itself cannot be read
type ImportError struct {
	Code      string
	Message   string
	Timestamp time.Time
	Context   map[string]string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// DataImporter reads one uploaded CSV into a sanitized table
type DataImporter struct {
	config ImportConfig
	stats  *ImportStats
}

func NewDataImporter(config ImportConfig) *DataImporter {
	if len(config.KeepKeywords) == 0 {
		config.KeepKeywords = DefaultKeepKeywords
	}
	return &DataImporter{
		config: config,
		stats:  NewImportStats(),
	}
}

// Stats returns the counters collected so far.
func (d *DataImporter) Stats() *ImportStats { return d.stats }

// ImportData reads the CSV and drops irrelevant blank columns.
func (d *DataImporter) ImportData(ctx context.Context, r io.Reader) (models.Table, error) {
	table, err := readTable(ctx, r, d.config.SourceFile)
	if err != nil {
		return models.Table{}, err
	}
	d.stats.TotalProcessed = table.Len()

	sanitized, dropped := sanitize(table, d.config.KeepKeywords)
	d.stats.DroppedColumns = append(d.stats.DroppedColumns, dropped...)
	return sanitized, nil
}

// ReadTable reads a CSV marks sheet. A leading UTF-8 byte order mark is
// removed and repeated header names are renamed X, X.1, X.2.
func ReadTable(r io.Reader) (models.Table, error) {
	return readTable(context.Background(), r, "")
}

func readTable(ctx context.Context, r io.Reader, source string) (models.Table, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return models.Table{}, &ImportError{
			Code:      "EMPTY_FILE",
			Message:   "the uploaded file has no header row",
			Timestamp: time.Now(),
			Context:   map[string]string{"source": source},
		}
	}
	if err != nil {
		return models.Table{}, &ImportError{
			Code:      "READ_FAILED",
			Message:   fmt.Sprintf("error reading headers: %v", err),
			Timestamp: time.Now(),
			Context:   map[string]string{"source": source},
		}
	}
	columns := dedupeHeaders(headers)

	table := models.Table{Columns: columns}
	line := 1
	for {
		select {
		case <-ctx.Done():
			return models.Table{}, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("Error reading record %d: %v", line, err)
			continue
		}

		row := make(models.RawRecord, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func dedupeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	taken := make(map[string]bool, len(headers))
	for _, h := range headers {
		taken[h] = true
	}
	for i, h := range headers {
		n, dup := seen[h]
		seen[h] = n + 1
		if !dup {
			out[i] = h
			continue
		}
		name := fmt.Sprintf("%s.%d", h, n)
		for taken[name] {
			n++
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h] = n + 1
		taken[name] = true
		out[i] = name
	}
	return out
}

// Sanitize keeps every column whose name carries a known keyword and every
// other column that has at least one non-blank cell.
func Sanitize(table models.Table) models.Table {
	out, _ := sanitize(table, DefaultKeepKeywords)
	return out
}

func sanitize(table models.Table, keywords []string) (models.Table, []string) {
	keep := make([]string, 0, len(table.Columns))
	var dropped []string
	for _, col := range table.Columns {
		if hasKeyword(col, keywords) || !blankColumn(table, col) {
			keep = append(keep, col)
			continue
		}
		dropped = append(dropped, col)
	}
	if len(dropped) == 0 {
		return models.Table{Columns: keep, Rows: table.Rows}, nil
	}

	rows := make([]models.RawRecord, len(table.Rows))
	for i, row := range table.Rows {
		r := make(models.RawRecord, len(keep))
		for _, col := range keep {
			r[col] = row[col]
		}
		rows[i] = r
	}
	return models.Table{Columns: keep, Rows: rows}, dropped
}

func hasKeyword(column string, keywords []string) bool {
	low := strings.ToLower(column)
	for _, k := range keywords {
		if strings.Contains(low, k) {
			return true
		}
	}
	return false
}

func blankColumn(table models.Table, column string) bool {
	for _, row := range table.Rows {
		if !IsBlank(row[column]) {
			return false
		}
	}
	return true
}

// IsBlank treats empty, whitespace-only and "nan" cells as missing.
func IsBlank(cell string) bool {
	v := strings.TrimSpace(cell)
	return v == "" || strings.EqualFold(v, "nan")
}

// ImportStats collects data-quality counters for one report run
type ImportStats struct {
	TotalProcessed    int
	DroppedColumns    []string
	EarnedColumns     int
	Collisions        []Collision
	CoercionFallbacks map[string]int
	SyntheticNames    bool
}

func NewImportStats() *ImportStats {
	return &ImportStats{
		CoercionFallbacks: make(map[string]int),
	}
}

// AddFallback counts a cell that could not be read as a number.
func (s *ImportStats) AddFallback(column string) {
	s.CoercionFallbacks[column]++
}

func (s *ImportStats) PrintSummary() {
	log.Printf("Import Statistics:")
	log.Printf("Total Rows Processed: %d", s.TotalProcessed)
	log.Printf("Earned Columns Detected: %d", s.EarnedColumns)
	if len(s.DroppedColumns) > 0 {
		log.Printf("Dropped Blank Columns: %s", strings.Join(s.DroppedColumns, ", "))
	}
	if s.SyntheticNames {
		log.Printf("No name column found, using placeholder names")
	}
	for _, c := range s.Collisions {
		log.Printf("Warning: %s", c)
	}

	if len(s.CoercionFallbacks) > 0 {
		log.Printf("Non-numeric cells counted as 0:")
		type columnCount struct {
			column string
			count  int
		}
		counts := make([]columnCount, 0, len(s.CoercionFallbacks))
		for col, n := range s.CoercionFallbacks {
			counts = append(counts, columnCount{col, n})
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].count != counts[j].count {
				return counts[i].count > counts[j].count
			}
			return counts[i].column < counts[j].column
		})

		// Show the ten noisiest columns
		for i := 0; i < min(10, len(counts)); i++ {
			log.Printf("- %s: %d cells", counts[i].column, counts[i].count)
		}
	}
}
