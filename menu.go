package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/nonsonwune/result_report/analysis"
	"github.com/nonsonwune/result_report/generate"
	"github.com/nonsonwune/result_report/models"
	"github.com/nonsonwune/result_report/report"
)

var stdin = bufio.NewReader(os.Stdin)

// session is the operator's input between menu actions.
type session struct {
	title    string
	filename string
	subjects []models.SubjectDefinition
	csvPath  string
	bgPath   string
	assetID  string
}

func newSession() *session {
	now := time.Now()
	return &session{
		title:    generate.DefaultTitle(now),
		filename: generate.DefaultFilename(now),
		subjects: models.DefaultSubjects(),
	}
}

// request opens the marks file (and the background, if any) for one run.
func (s *session) request() (generate.Request, func(), error) {
	noop := func() {}
	if s.csvPath == "" {
		return generate.Request{}, noop, generate.ErrNoMarks
	}
	f, err := os.Open(s.csvPath)
	if err != nil {
		return generate.Request{}, noop, fmt.Errorf("error opening file: %w", err)
	}
	req := generate.Request{
		CSV:        f,
		SourceName: s.csvPath,
		Subjects:   s.subjects,
		Title:      s.title,
		Filename:   s.filename,
		AssetID:    s.assetID,
	}
	if s.bgPath != "" {
		data, err := os.ReadFile(s.bgPath)
		if err != nil {
			f.Close()
			return generate.Request{}, noop, fmt.Errorf("error reading background: %w", err)
		}
		req.Background = data
	}
	return req, func() { f.Close() }, nil
}

func (a *app) runMenu() {
	s := newSession()
	for {
		fmt.Println("\n=== Result Report Generator ===")
		fmt.Println("1. Test Configuration")
		fmt.Println("2. Subject Setup")
		fmt.Println("3. Load Marks CSV")
		fmt.Println("4. Background Image")
		fmt.Println("5. Preview Results")
		fmt.Println("6. Summary & Analysis")
		fmt.Println("7. Generate PDF")
		fmt.Println("8. Refresh Default Background")
		fmt.Println("9. Start Web Form")
		fmt.Println("10. Exit")
		fmt.Print("\nEnter your choice (1-10): ")

		switch readChoice() {
		case "1":
			handleTestConfig(s)
		case "2":
			handleSubjectSetup(s)
		case "3":
			handleLoadCSV(s)
		case "4":
			handleBackground(s)
		case "5":
			a.preview(s)
		case "6":
			a.summary(s)
		case "7":
			_ = a.generate(s)
		case "8":
			id := s.assetID
			if id == "" {
				id = a.cfg.BackgroundAssetID
			}
			a.cache.Invalidate(id)
			color.Green("Background %s will be downloaded again on the next run.", id)
		case "9":
			if err := a.serve(); err != nil {
				color.Red("%v", err)
			}
		case "10":
			fmt.Println("Goodbye!")
			return
		default:
			color.Red("Invalid choice. Please try again.")
		}
	}
}

func handleTestConfig(s *session) {
	color.Cyan("\n=== Test Configuration ===")
	fmt.Printf("Main title [%s]: ", s.title)
	if v := readString(); v != "" {
		s.title = v
	}
	fmt.Printf("Output PDF name [%s]: ", s.filename)
	if v := readString(); v != "" {
		s.filename = v
	}
	color.Green("Saved.")
}

func handleSubjectSetup(s *session) {
	color.Cyan("\n=== Subject Setup ===")
	fmt.Printf("Current: %s\n", models.FormatSubjects(s.subjects))
	fmt.Printf("Number of subjects (1-%d): ", models.MaxSubjects)
	n := readInt()
	if n < 1 || n > models.MaxSubjects {
		color.Red("Please enter a number between 1 and %d.", models.MaxSubjects)
		return
	}

	subjects := make([]models.SubjectDefinition, 0, n)
	for i := 0; i < n; i++ {
		fmt.Printf("\nSubject %d name: ", i+1)
		name := readString()
		if name == "" {
			color.Yellow("Blank name, subject skipped.")
			continue
		}
		fmt.Print("From question: ")
		start := readInt()
		fmt.Print("To question: ")
		end := readInt()
		fmt.Print("Max marks: ")
		maxMarks := readInt()
		subjects = append(subjects, models.SubjectDefinition{Name: name, Start: start, End: end, MaxMarks: maxMarks})
	}

	if err := models.ValidateSubjects(subjects); err != nil {
		color.Red("Invalid subjects: %v", err)
		return
	}
	s.subjects = subjects
	color.Green("Subjects saved: %s (total %d marks)", models.FormatSubjects(subjects), models.TotalMax(subjects))
}

func handleLoadCSV(s *session) {
	fmt.Print("Enter the path to the marks CSV file: ")
	path := readString()
	if _, err := os.Stat(path); err != nil {
		color.Red("Error opening file: %v", err)
		return
	}
	s.csvPath = path
	color.Green("Marks file set to %s", path)
}

func handleBackground(s *session) {
	fmt.Print("Path to a custom background image (blank for the default template): ")
	path := readString()
	if path == "" {
		s.bgPath = ""
		fmt.Print("Background asset ID (blank for the configured default): ")
		s.assetID = readString()
		color.Green("Using the downloaded template.")
		return
	}
	if _, err := os.Stat(path); err != nil {
		color.Red("Error opening file: %v", err)
		return
	}
	s.bgPath = path
	color.Green("Custom background set to %s", path)
}

func (a *app) analyze(s *session) (analysis.Results, bool) {
	req, closeFn, err := s.request()
	if err != nil {
		color.Red("%v", err)
		return analysis.Results{}, false
	}
	defer closeFn()

	results, stats, err := a.gen.Analyze(context.Background(), req)
	if err != nil {
		color.Red("Error reading marks: %v", err)
		return analysis.Results{}, false
	}
	stats.PrintSummary()
	return results, true
}

func (a *app) preview(s *session) {
	results, ok := a.analyze(s)
	if !ok {
		return
	}
	if len(results.Candidates) == 0 {
		color.Yellow("No candidates found in the marks file.")
		return
	}
	writeResultsTable(os.Stdout, results)
}

func (a *app) summary(s *session) {
	results, ok := a.analyze(s)
	if !ok {
		return
	}
	writeSummaryTable(os.Stdout, results, a.cfg.PassMark)
}

func writeResultsTable(w io.Writer, results analysis.Results) {
	header := []string{"No", "Rank", "Name"}
	for _, sub := range results.Subjects {
		header = append(header, fmt.Sprintf("%s (%d)", sub.Name, sub.MaxMarks))
	}
	header = append(header, fmt.Sprintf("Total (%d)", results.TotalMax), "%")

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	for i, c := range results.Candidates {
		row := []string{strconv.Itoa(i + 1), strconv.Itoa(c.Rank), c.Name}
		for _, sub := range results.Subjects {
			row = append(row, strconv.Itoa(c.Score(sub.Name)))
		}
		row = append(row, strconv.Itoa(c.Total), fmt.Sprintf("%.1f", c.Percentage))
		table.Append(row)
	}
	table.Render()
}

func writeSummaryTable(w io.Writer, results analysis.Results, passMark float64) {
	rows := report.SummaryRows(report.Document{
		Subjects:   results.Subjects,
		TotalMax:   results.TotalMax,
		Candidates: results.Candidates,
		Summary:    results.Summary,
	}, passMark)

	table := tablewriter.NewWriter(w)
	table.SetHeader(rows[0].Cells[:])
	for _, r := range rows[1:] {
		table.Append(r.Cells[:])
	}
	table.Render()
}

func readChoice() string {
	return readString()
}

func readString() string {
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func readInt() int {
	n, err := strconv.Atoi(readString())
	if err != nil {
		return 0
	}
	return n
}
