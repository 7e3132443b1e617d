package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

func sampleRecord() models.StatementRecord {
	fields := models.Unavailable()
	fields[models.FieldTotalBalanceDue] = "₹10,650.00"
	fields[models.FieldBillingCycle] = "03/01/2024 - 03/31/2024"
	return models.StatementRecord{
		Source: "march.pdf",
		Issuer: "Chase (Demo)",
		Parser: "Chase",
		Fields: fields,
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, sampleRecord()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "# Source,march.pdf") {
		t.Error("expected source metadata")
	}
	if !strings.Contains(output, "# Parser,Chase") {
		t.Error("expected parser metadata")
	}
	if !strings.Contains(output, "Field,Value") {
		t.Error("expected column headers")
	}
	if !strings.Contains(output, `Total Balance Due,"₹10,650.00"`) {
		t.Errorf("expected quoted amount, got:\n%s", output)
	}
	if !strings.Contains(output, "Annual Percentage Rate,N/A") {
		t.Error("expected N/A for missing field")
	}
}

func TestCSVWriter_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	if err := w.Write(&buf, sampleRecord()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "# Source") {
		t.Error("did not expect metadata when IncludeHeader is false")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if lines[0] != "Field,Value" {
		t.Errorf("first line = %q, want header", lines[0])
	}
	if got, want := len(lines), len(models.AllFields)+1; got != want {
		t.Errorf("got %d lines, want %d", got, want)
	}
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.csv")
	w := &CSVWriter{}
	if err := w.WriteToFile(path, sampleRecord()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "Billing Cycle Dates,03/01/2024 - 03/31/2024") {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

func TestRows_FillsMissingFields(t *testing.T) {
	rows := Rows(models.Fields{models.FieldCardLast4: "1234"})

	if len(rows) != len(models.AllFields) {
		t.Fatalf("got %d rows, want %d", len(rows), len(models.AllFields))
	}
	for _, r := range rows {
		switch r.Field {
		case string(models.FieldCardLast4):
			if r.Value != "1234" {
				t.Errorf("card = %q", r.Value)
			}
		default:
			if r.Value != models.NotAvailable {
				t.Errorf("%s = %q, want N/A", r.Field, r.Value)
			}
		}
	}
}
