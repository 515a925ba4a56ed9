// package formatter provides functions to export lift history to various formats (CSV, Markdown, plain text, JSON)
// and to parse CSV files for import.
package formatter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/liftlog/internal/forms"
	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/shared"
	"github.com/dustin/go-humanize"
)

// Export formats accepted by [Export].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// Formats lists every supported export format.
var Formats = []string{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

var csvHeaders = []string{"ID", "Lift Type", "Weight", "Reps", "Date"}

// Volume returns the total weight moved (weight × reps) across the history.
func Volume(lifts models.History) float64 {
	var total float64
	for _, l := range lifts {
		total += l.Weight * float64(l.Reps)
	}
	return total
}

// ExportToCSV converts lifts to CSV format with columns: ID, Lift Type, Weight, Reps, Date
func ExportToCSV(lifts models.History) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, lift := range lifts {
		record := []string{
			string(lift.ID),
			string(lift.LiftType),
			lift.WeightString(),
			strconv.Itoa(lift.Reps),
			lift.Date,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts lifts to a Markdown document with a summary and a table.
func ExportToMarkdown(lifts models.History, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	summary := lifts.Summarize(now)

	buf.WriteString("# Lift History\n\n")
	buf.WriteString(fmt.Sprintf("**Total Lifts**: %d\n", summary.Count))
	buf.WriteString(fmt.Sprintf("**This Month**: %d\n", summary.ThisMonth))
	buf.WriteString(fmt.Sprintf("**Max Weight**: %s kg\n", humanize.Ftoa(summary.MaxWeight)))
	buf.WriteString(fmt.Sprintf("**Total Volume**: %s kg\n\n", humanize.Commaf(Volume(lifts))))

	if len(summary.Best) > 0 {
		buf.WriteString("## Personal Bests\n\n")
		for _, best := range summary.Best {
			buf.WriteString(fmt.Sprintf("- %s: %s kg x %d (%s)\n", best.LiftType.Label(), best.WeightString(), best.Reps, best.Date))
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Lifts\n\n")
	if len(lifts) == 0 {
		buf.WriteString("_No lifts logged yet._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| Date | Lift | Weight (kg) | Reps |\n")
	buf.WriteString("|------|------|-------------|------|\n")
	for _, lift := range lifts {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %d |\n", lift.Date, lift.LiftType.Label(), lift.WeightString(), lift.Reps))
	}

	return buf.Bytes(), nil
}

// ExportToText converts lifts to plain text format
func ExportToText(lifts models.History) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Lifts: %d\n", len(lifts)))
	buf.WriteString(fmt.Sprintf("Volume: %s kg\n\n", humanize.Commaf(Volume(lifts))))

	for i, lift := range lifts {
		buf.WriteString(fmt.Sprintf("%d. %s  %-11s %s kg x %d\n", i+1, lift.Date, lift.LiftType.Label(), lift.WeightString(), lift.Reps))
	}

	return buf.Bytes(), nil
}

// ExportToJSON encodes lifts as a JSON array using the API field names.
func ExportToJSON(lifts models.History, pretty bool) ([]byte, error) {
	if lifts == nil {
		lifts = models.History{}
	}
	return shared.MarshalJSON(lifts, pretty)
}

// Export renders lifts in the named format.
func Export(format string, lifts models.History, now time.Time) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ExportToCSV(lifts)
	case FormatMarkdown, "md":
		return ExportToMarkdown(lifts, now)
	case FormatText, "text":
		return ExportToText(lifts)
	case FormatJSON:
		return ExportToJSON(lifts, true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}

// DefaultFilename returns lifts.{ext} for the given format.
func DefaultFilename(format string) string {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return "lifts.md"
	case FormatText, "text":
		return "lifts.txt"
	case FormatJSON:
		return "lifts.json"
	default:
		return "lifts.csv"
	}
}

// WriteExport renders lifts in the given format and writes them to path, creating parent directories.
//
// Defaults to [DefaultFilename] when path is empty. Returns the path written.
func WriteExport(format string, lifts models.History, now time.Time, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(format)
	}

	data, err := Export(format, lifts, now)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// LiftRow is one data row of an import CSV, still unvalidated.
type LiftRow struct {
	Line int // 1-based line number in the source file
	Form forms.LiftForm
}

// ParseCSV reads an import file with a header row naming at least the lift type, weight and reps columns.
//
// Header names are matched case-insensitively; "Lift Type", "liftType" and "type" all name the lift column.
// A missing date column leaves the date empty. Values are not validated here.
func ParseCSV(r io.Reader) ([]LiftRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty CSV file", shared.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := map[forms.Field]int{}
	for i, name := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
		switch key {
		case "lifttype", "type", "lift", "exercise":
			cols[forms.FieldLiftType] = i
		case "weight", "weightkg", "weight(kg)":
			cols[forms.FieldWeight] = i
		case "reps":
			cols[forms.FieldReps] = i
		case "date":
			cols[forms.FieldDate] = i
		}
	}
	for _, required := range []forms.Field{forms.FieldLiftType, forms.FieldWeight, forms.FieldReps} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: CSV header missing %s column", shared.ErrInvalidInput, required)
		}
	}

	cell := func(record []string, f forms.Field) string {
		i, ok := cols[f]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []LiftRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		rows = append(rows, LiftRow{
			Line: line,
			Form: forms.LiftForm{
				LiftType: cell(record, forms.FieldLiftType),
				Weight:   cell(record, forms.FieldWeight),
				Reps:     cell(record, forms.FieldReps),
				Date:     cell(record, forms.FieldDate),
			},
		})
	}

	return rows, nil
}

// ReadCSVFile opens path and parses it with [ParseCSV].
func ReadCSVFile(path string) ([]LiftRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}
