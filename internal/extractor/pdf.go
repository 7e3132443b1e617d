// Package extractor turns statement documents into the linear text consumed
// by the parser.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/logging"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/tokenizer"
)

var (
	// ErrNoText is returned when a document holds no extractable text, for
	// example a scanned statement without a text layer.
	ErrNoText = models.ErrNoText
	// ErrNotPDF is returned for input that is not a PDF document.
	ErrNotPDF = errors.New("not a PDF document")
)

var pdfMagic = []byte("%PDF")

// Extractor converts PDF documents to text. The zero value is ready to use.
type Extractor struct {
	Logger logging.Logger
	// Pdftotext names the poppler binary used as a fallback; empty means
	// "pdftotext" on PATH.
	Pdftotext string
}

// ExtractText returns the text of a PDF document using a default Extractor.
func ExtractText(data []byte) (string, error) {
	return (&Extractor{}).Text(data)
}

// ExtractFile reads a statement from disk. Plain-text files are returned as
// they are; anything else is treated as a PDF.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return joinPages([]string{string(data)})
	}
	return ExtractText(data)
}

// Text returns the text of a PDF document, pages joined by newlines, with
// zero-width and non-breaking spaces replaced by ordinary spaces.
//
// The ledongthuc/pdf reader is tried first. When it yields nothing readable
// the pdftotext command is used if it is installed. Unreadable but non-empty
// output is still returned so the parser can report N/A fields.
func (e *Extractor) Text(data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ErrNoText
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), pdfMagic) {
		return "", ErrNotPDF
	}
	log := e.logger()

	readerPages, readerErr := e.readerPages(data)
	if readerErr != nil {
		log.WithError(readerErr).Debug("PDF reader failed")
	} else if assess(readerPages).readable() {
		return joinPages(readerPages)
	}

	popplerPages, popplerErr := e.popplerPages(data)
	if popplerErr != nil {
		log.WithError(popplerErr).Debug("pdftotext fallback unavailable")
	} else if assess(popplerPages).readable() {
		log.Debug("Text extracted", logging.F(logging.FieldOperation, "pdftotext"))
		return joinPages(popplerPages)
	}

	for _, pages := range [][]string{readerPages, popplerPages} {
		if assess(pages).chars > 0 {
			log.Warn("Extracted text looks unreadable; parsing it anyway",
				logging.F(logging.FieldCount, len(pages)))
			return joinPages(pages)
		}
	}
	if readerErr != nil {
		return "", fmt.Errorf("extract pdf text: %w", readerErr)
	}
	return "", ErrNoText
}

func (e *Extractor) logger() logging.Logger {
	if e.Logger == nil {
		return logging.Discard()
	}
	return e.Logger
}

func joinPages(pages []string) (string, error) {
	text := tokenizer.Canonicalize(strings.Join(pages, "\n"))
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Readability thresholds for extracted text.
const (
	minReadableChars = 50
	minPlainShare    = 0.6
)

// statementWords appear in virtually every card statement. Text that holds
// none of them is undecoded glyph soup.
var statementWords = []string{
	"account", "balance", "card", "credit", "date", "due", "payment",
	"statement", "total", "amount", "minimum", "purchases", "limit",
	"interest", "billing", "page",
}

// readability summarizes extracted pages.
type readability struct {
	chars      int     // bytes of trimmed text
	plainShare float64 // share of runes that are ASCII alphanumerics, spaces or statement punctuation
	keywords   bool    // at least one statement word present
}

func (r readability) readable() bool {
	return r.chars > minReadableChars && r.plainShare > minPlainShare && r.keywords
}

func assess(pages []string) readability {
	var r readability
	runes, plain := 0, 0
	for _, page := range pages {
		r.chars += len(strings.TrimSpace(page))
		for _, c := range page {
			runes++
			if isPlain(c) {
				plain++
			}
		}
	}
	if runes > 0 {
		r.plainShare = float64(plain) / float64(runes)
	}

	lower := strings.ToLower(strings.Join(pages, " "))
	for _, w := range statementWords {
		if strings.Contains(lower, w) {
			r.keywords = true
			break
		}
	}
	return r
}

func isPlain(c rune) bool {
	switch {
	case c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)):
		return true
	case unicode.IsSpace(c):
		return true
	}
	return strings.ContainsRune(".,-/:;()'\"₹$€£%&@#!?+=*|", c)
}

// popplerPages runs pdftotext on the document; pages are separated by form
// feeds in its output.
func (e *Extractor) popplerPages(data []byte) ([]string, error) {
	name := e.Pdftotext
	if name == "" {
		name = "pdftotext"
	}
	bin, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	_, werr := tmp.Write(data)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return nil, werr
	}

	out, err := exec.Command(bin, "-layout", tmp.Name(), "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}
	var pages []string
	for _, page := range strings.Split(string(out), "\f") {
		if page = strings.TrimSpace(page); page != "" {
			pages = append(pages, page)
		}
	}
	if len(pages) == 0 {
		return nil, errors.New("pdftotext produced no output")
	}
	return pages, nil
}

// readerMethod is one way of pulling text out of a parsed document.
type readerMethod struct {
	name string
	read func(r *pdf.Reader) []string
}

// readerMethods are tried in order until one yields readable text.
var readerMethods = []readerMethod{
	{"rows", textByRow},
	{"positions", textByPosition},
	{"plain", plainText},
}

// readerPages decodes the document with ledongthuc/pdf. When no method gives
// readable text the output with the most characters is returned.
func (e *Extractor) readerPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("pdf reader crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if r.NumPage() == 0 {
		return nil, errors.New("pdf has no pages")
	}

	var best []string
	bestChars := 0
	for _, m := range readerMethods {
		got := m.read(r)
		q := assess(got)
		if q.readable() {
			e.logger().Debug("Text extracted",
				logging.F(logging.FieldOperation, m.name),
				logging.F(logging.FieldCount, len(got)))
			return got, nil
		}
		if q.chars > bestChars {
			best, bestChars = got, q.chars
		}
	}
	return best, nil
}

func eachPage(r *pdf.Reader, fn func(p pdf.Page)) {
	for i := 1; i <= r.NumPage(); i++ {
		if p := r.Page(i); !p.V.IsNull() {
			fn(p)
		}
	}
}

func appendLine(lines []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		lines = append(lines, s)
	}
	return lines
}

func textByRow(r *pdf.Reader) []string {
	var pages []string
	eachPage(r, func(p pdf.Page) {
		rows, err := p.GetTextByRow()
		if err != nil {
			return
		}
		var lines []string
		for _, row := range rows {
			words := make([]string, len(row.Content))
			for i, w := range row.Content {
				words[i] = w.S
			}
			lines = appendLine(lines, strings.Join(words, " "))
		}
		pages = append(pages, strings.Join(lines, "\n"))
	})
	return pages
}

// columnGap is the horizontal distance, in points, rendered as a double
// space when text runs are joined into a line.
const columnGap = 15

// textByPosition rebuilds lines from positioned text runs: runs sharing a
// rounded baseline form one line, read left to right, top to bottom.
func textByPosition(r *pdf.Reader) []string {
	var pages []string
	eachPage(r, func(p pdf.Page) {
		var runs []pdf.Text
		for _, t := range p.Content().Text {
			if strings.TrimSpace(t.S) != "" {
				runs = append(runs, t)
			}
		}
		if len(runs) == 0 {
			return
		}

		// PDF y grows upwards
		sort.SliceStable(runs, func(i, j int) bool {
			yi, yj := math.Round(runs[i].Y), math.Round(runs[j].Y)
			if yi != yj {
				return yi > yj
			}
			return runs[i].X < runs[j].X
		})

		var lines []string
		var sb strings.Builder
		for i, t := range runs {
			if i > 0 {
				prev := runs[i-1]
				switch {
				case math.Round(prev.Y) != math.Round(t.Y):
					lines = appendLine(lines, sb.String())
					sb.Reset()
				case t.X-prev.X > columnGap:
					sb.WriteString("  ")
				}
			}
			sb.WriteString(t.S)
		}
		lines = appendLine(lines, sb.String())
		pages = append(pages, strings.Join(lines, "\n"))
	})
	return pages
}

func plainText(r *pdf.Reader) []string {
	rd, err := r.GetPlainText()
	if err != nil {
		return nil
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rd); err != nil {
		return nil
	}
	return []string{strings.TrimSpace(buf.String())}
}
