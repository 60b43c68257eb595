package models

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxSubjects is the largest number of subjects one report can carry.
const MaxSubjects = 10

// SubjectDefinition represents one subject of a test and the questions it covers
type SubjectDefinition struct {
	Name     string `json:"name"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	MaxMarks int    `json:"max_marks"`
}

// Covers reports whether question q falls inside the subject range.
func (s SubjectDefinition) Covers(q int) bool {
	return s.Start <= q && q <= s.End
}

func (s SubjectDefinition) String() string {
	return fmt.Sprintf("%s:%d-%d:%d", quoteName(s.Name), s.Start, s.End, s.MaxMarks)
}

// SubjectError describes an invalid subject definition.
type SubjectError struct {
	Index  int
	Name   string
	Reason string
}

func (e *SubjectError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("subject %d: %s", e.Index+1, e.Reason)
	}
	return fmt.Sprintf("subject %d (%s): %s", e.Index+1, e.Name, e.Reason)
}

// DefaultSubjects returns the two-subject layout used by the weekly test.
func DefaultSubjects() []SubjectDefinition {
	return []SubjectDefinition{
		{Name: "Maths", Start: 1, End: 25, MaxMarks: 25},
		{Name: "Reasoning", Start: 26, End: 50, MaxMarks: 25},
	}
}

// TotalMax is the percentage denominator of a report.
func TotalMax(subjects []SubjectDefinition) int {
	total := 0
	for _, s := range subjects {
		total += s.MaxMarks
	}
	return total
}

// ParseSubjects reads the compact "Name:start-end:max,..." form.
// A name containing ',' or ':' is written in double quotes, with '""'
// standing for a literal quote. Entries with a blank name are skipped.
func ParseSubjects(spec string) ([]SubjectDefinition, error) {
	parts, err := splitQuoted(spec, ',')
	if err != nil {
		return nil, &SubjectError{Reason: err.Error()}
	}
	var out []SubjectDefinition
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields, err := splitQuoted(part, ':')
		if err != nil || len(fields) != 3 {
			return nil, &SubjectError{Index: i, Reason: fmt.Sprintf("expected name:start-end:max, got %q", part)}
		}
		name := unquoteName(fields[0])
		if name == "" {
			continue
		}
		bounds := strings.SplitN(fields[1], "-", 2)
		if len(bounds) != 2 {
			return nil, &SubjectError{Index: i, Name: name, Reason: fmt.Sprintf("invalid question range %q", fields[1])}
		}
		start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, &SubjectError{Index: i, Name: name, Reason: fmt.Sprintf("invalid start question %q", bounds[0])}
		}
		end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err != nil {
			return nil, &SubjectError{Index: i, Name: name, Reason: fmt.Sprintf("invalid end question %q", bounds[1])}
		}
		maxMarks, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, &SubjectError{Index: i, Name: name, Reason: fmt.Sprintf("invalid max marks %q", fields[2])}
		}
		out = append(out, SubjectDefinition{Name: name, Start: start, End: end, MaxMarks: maxMarks})
	}
	return out, nil
}

// FormatSubjects is the inverse of ParseSubjects.
func FormatSubjects(subjects []SubjectDefinition) string {
	parts := make([]string, len(subjects))
	for i, s := range subjects {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// splitQuoted splits s at sep, ignoring separators inside double quotes.
// Quotes are kept in the returned fields.
func splitQuoted(s string, sep rune) ([]string, error) {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			cur.WriteRune(r)
		case r == sep && !quoted:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}
	return append(fields, cur.String()), nil
}

func unquoteName(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return strings.TrimSpace(s)
}

func quoteName(name string) string {
	if !strings.ContainsAny(name, `,:"`) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ValidateSubjects checks the operator supplied configuration.
func ValidateSubjects(subjects []SubjectDefinition) error {
	if len(subjects) == 0 {
		return &SubjectError{Reason: "at least one subject is required"}
	}
	if len(subjects) > MaxSubjects {
		return &SubjectError{Index: MaxSubjects, Reason: fmt.Sprintf("at most %d subjects are allowed", MaxSubjects)}
	}
	seen := make(map[string]bool, len(subjects))
	for i, s := range subjects {
		name := strings.TrimSpace(s.Name)
		switch {
		case name == "":
			return &SubjectError{Index: i, Reason: "name is required"}
		case seen[strings.ToLower(name)]:
			return &SubjectError{Index: i, Name: name, Reason: "duplicate subject name"}
		case s.Start < 1:
			return &SubjectError{Index: i, Name: name, Reason: "start question must be at least 1"}
		case s.End < s.Start:
			return &SubjectError{Index: i, Name: name, Reason: "end question is before start question"}
		case s.MaxMarks < 1:
			return &SubjectError{Index: i, Name: name, Reason: "max marks must be at least 1"}
		}
		seen[strings.ToLower(name)] = true
	}
	return nil
}
