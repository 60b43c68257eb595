package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

var earnedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)earned\s*pt[_\-\s]?(\d{1,3})$`),
	regexp.MustCompile(`(?i)earnedpt[_\-\s]?(\d{1,3})$`),
	regexp.MustCompile(`(?i)earned[_\-\s]?(\d{1,3})$`),
}

// Classification is the result of scanning a header row for earned-points columns.
type Classification struct {
	// Earned lists the earned columns ordered by question number.
	Earned []string
	// Questions maps each earned column to its question number.
	Questions map[string]int
	// Collisions lists columns that lost their question number to a later column.
	Collisions []Collision
}

// Collision records two columns that claim the same question number.
// The later column in header order is the one kept.
type Collision struct {
	Question int
	Dropped  string
	Kept     string
}

func (c Collision) String() string {
	return fmt.Sprintf("question %d: column %q replaces %q", c.Question, c.Kept, c.Dropped)
}

// HasEarned reports whether any earned column was found.
func (c Classification) HasEarned() bool { return len(c.Questions) > 0 }

// QuestionNumber extracts N from an "earned pt N" style column name.
func QuestionNumber(column string) (int, bool) {
	for _, re := range earnedPatterns {
		m := re.FindStringSubmatch(column)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

// ClassifyColumns finds the earned-points columns of a header row.
// When two columns map to the same question, the later one wins.
func ClassifyColumns(columns []string) Classification {
	c := Classification{Questions: make(map[string]int)}
	byQuestion := make(map[int]string)
	for _, col := range columns {
		n, ok := QuestionNumber(col)
		if !ok {
			continue
		}
		if prev, taken := byQuestion[n]; taken && prev != col {
			delete(c.Questions, prev)
			c.Collisions = append(c.Collisions, Collision{Question: n, Dropped: prev, Kept: col})
		}
		byQuestion[n] = col
		c.Questions[col] = n
	}

	c.Earned = make([]string, 0, len(c.Questions))
	for col := range c.Questions {
		c.Earned = append(c.Earned, col)
	}
	sort.Slice(c.Earned, func(i, j int) bool {
		return c.Questions[c.Earned[i]] < c.Questions[c.Earned[j]]
	})
	return c
}
