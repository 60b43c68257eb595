package models

// RawRecord represents one row of the uploaded marks table
type RawRecord map[string]string

// Table is the uploaded marks sheet with its header order preserved
type Table struct {
	Columns []string    `json:"columns"`
	Rows    []RawRecord `json:"rows"`
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }
