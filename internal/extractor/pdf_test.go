package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/logging"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

func TestExtractText_Empty(t *testing.T) {
	for _, data := range [][]byte{nil, {}, []byte(" \n\t")} {
		_, err := ExtractText(data)
		assert.True(t, errors.Is(err, ErrNoText))
		assert.True(t, errors.Is(err, models.ErrNoText))
	}
}

func TestExtractText_NotPDF(t *testing.T) {
	_, err := ExtractText([]byte("PK\x03\x04 this is a zip archive"))
	assert.True(t, errors.Is(err, ErrNotPDF))
}

func TestExtractFile_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte("Total Dues\u00a01,000.00\u200b\n"), 0o644))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Total Dues 1,000.00 \n", text)
}

func TestExtractFile_EmptyText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	_, err := ExtractFile(path)
	assert.True(t, errors.Is(err, ErrNoText))
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoText))
}

func TestAssessReadable(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{
			name:  "statement text",
			pages: []string{"Payment Due Date 04/15/2024\nMinimum Amount Due ₹1,200.00\nTotal Dues ₹10,650.00"},
			want:  true,
		},
		{
			name:  "too short",
			pages: []string{"Total Dues"},
			want:  false,
		},
		{
			name:  "glyph soup",
			pages: []string{strings.Repeat("éüñçå", 20) + " balance"},
			want:  false,
		},
		{
			name:  "no statement words",
			pages: []string{strings.Repeat("lorem ipsum dolor sit amet ", 4)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assess(tt.pages).readable())
		})
	}
}

func TestAssess_Empty(t *testing.T) {
	q := assess(nil)
	assert.Equal(t, 0, q.chars)
	assert.Equal(t, 0.0, q.plainShare)
	assert.False(t, q.keywords)
}

func TestExtractor_BrokenPDF(t *testing.T) {
	log := logging.NewMockLogger()
	e := &Extractor{Logger: log, Pdftotext: "ccsa-missing-pdftotext"}

	_, err := e.Text([]byte("%PDF-1.4\nthis is not really a pdf"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoText))
	assert.False(t, errors.Is(err, ErrNotPDF))
	assert.True(t, log.HasEntry("DEBUG", "PDF reader failed"))
	assert.True(t, log.HasEntry("DEBUG", "pdftotext fallback unavailable"))
}
