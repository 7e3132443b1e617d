package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

// FieldRow is one exported schema entry.
type FieldRow struct {
	Field string `csv:"Field"`
	Value string `csv:"Value"`
}

// Rows lists the schema fields in display order.
func Rows(fields models.Fields) []FieldRow {
	rows := make([]FieldRow, 0, len(models.AllFields))
	for _, f := range models.AllFields {
		v, ok := fields[f]
		if !ok || v == "" {
			v = models.NotAvailable
		}
		rows = append(rows, FieldRow{Field: string(f), Value: v})
	}
	return rows
}

// CSVWriter writes a parsed statement as Field,Value rows.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, rec models.StatementRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, rec)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, rec models.StatementRecord) error {
	csvWriter := csv.NewWriter(out)

	// metadata rows ahead of the table
	if w.IncludeHeader {
		meta := [][]string{
			{"# Source", rec.Source},
			{"# Issuer", rec.Issuer},
			{"# Parser", rec.Parser},
		}
		for _, row := range meta {
			if row[1] == "" {
				continue
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if err := gocsv.MarshalCSV(Rows(rec.Fields), gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
