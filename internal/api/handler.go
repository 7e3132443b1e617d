package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/extractor"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/logging"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/parser"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/tokenizer"
)

// Version is reported by the health endpoints.
const Version = "1.0.0"

const (
	// pageBreak separates pages in client-side extracted text (pdf.js).
	pageBreak = "\n---PAGE_BREAK---\n"

	debugTextSampleBytes  = 20000
	debugLinesSampleBytes = 8000
)

// ParseResponse is the JSON response from /api/parse.
type ParseResponse struct {
	Data           models.Fields `json:"data"`
	RawSample      string        `json:"raw_sample"`
	Issuer         string        `json:"issuer"`
	Parser         string        `json:"parser"`
	DetectedIssuer string        `json:"detectedIssuer,omitempty"`
	StatementID    string        `json:"statementId,omitempty"`
}

// ErrorResponse is returned by every endpoint on failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Summarizer produces natural-language insights for a parsed statement.
type Summarizer interface {
	Summarize(ctx context.Context, fields models.Fields, note string) string
}

// StatementStore persists parse results.
type StatementStore interface {
	Save(ctx context.Context, rec models.StatementRecord) (models.StatementRecord, error)
	Get(ctx context.Context, id string) (models.StatementRecord, error)
	List(ctx context.Context, limit int) ([]models.StatementRecord, error)
	AttachSummary(ctx context.Context, id, summary string) error
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	StaticDir string
	Logger    logging.Logger
	// Summarizer serves /api/insights; nil disables the endpoint.
	Summarizer Summarizer
	// Store records parse results; nil disables history.
	Store StatementStore
	// Extract turns uploaded PDF bytes into text. Defaults to
	// extractor.ExtractText.
	Extract func(data []byte) (string, error)
	// RawSampleBytes bounds the raw_sample returned by /api/parse.
	RawSampleBytes int
	// DumpDir receives diagnostic dumps of each parse; empty disables them.
	DumpDir string
	// BodyLimit is the maximum request body size in bytes.
	BodyLimit int
}

// NewApp returns a fiber app with middleware and every route registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             h.BodyLimit,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})
	app.Use(fiberrecover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(h.logRequest)
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HandleHealth)
	app.Get("/api/health", h.HandleHealth)

	app.Post("/api/parse", h.HandleParse)
	app.Post("/api/debug_text", h.HandleDebugText)
	app.Post("/debug-text", h.HandleDebugText)
	app.Post("/api/debug_lines", h.HandleDebugLines)

	app.Post("/api/insights", h.HandleInsights)
	app.Get("/api/statements", h.HandleListStatements)
	app.Get("/api/statements/:id", h.HandleGetStatement)

	// Serve the web client; unknown non-API paths fall back to index.html
	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
		index := filepath.Join(h.StaticDir, "index.html")
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			return c.SendFile(index)
		})
	}
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": Version,
	})
}

// HandleParse extracts the field schema from an uploaded statement.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file provided")
	}
	if fh.Filename == "" {
		return writeError(c, fiber.StatusBadRequest, "No file selected")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Invalid file type. Please upload a PDF file.")
	}

	issuer := strings.TrimSpace(c.FormValue("issuer"))
	if issuer == "" {
		issuer = "AUTO"
	}

	text, status, msg := h.statementText(c, fh)
	if status != 0 {
		if status == fiber.StatusBadRequest {
			msg = "Could not extract text from PDF. If this is scanned image PDF, enable OCR."
		}
		return writeError(c, status, msg)
	}
	h.dump(text)

	p := parser.Route(issuer)
	if g, ok := p.(*parser.GenericParser); ok {
		g.Logger = h.logger()
	}
	fields, err := p.Parse(text)
	if err != nil {
		if errors.Is(err, parser.ErrNoText) {
			return writeError(c, fiber.StatusBadRequest,
				"Could not extract text from PDF. If this is scanned image PDF, enable OCR.")
		}
		h.logger().WithError(err).Error("Parse failed",
			logging.F(logging.FieldFile, fh.Filename),
			logging.F(logging.FieldParser, p.Name()))
		return writeError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("An error occurred while parsing the PDF: %v", err))
	}

	resp := ParseResponse{
		Data:      fields,
		RawSample: truncate(text, h.RawSampleBytes),
		Issuer:    issuer,
		Parser:    p.Name(),
	}
	if strings.EqualFold(issuer, "AUTO") {
		if detected, ok := parser.AutoDetect(text); ok {
			resp.DetectedIssuer = string(detected)
		}
	}

	if h.Store != nil {
		rec, err := h.Store.Save(c.UserContext(), models.StatementRecord{
			Source: fh.Filename,
			Issuer: issuer,
			Parser: p.Name(),
			Fields: fields,
		})
		if err != nil {
			h.logger().WithError(err).Warn("Failed to save statement",
				logging.F(logging.FieldFile, fh.Filename))
		} else {
			resp.StatementID = rec.ID
		}
	}

	h.logger().Info("Statement parsed",
		logging.F(logging.FieldFile, fh.Filename),
		logging.F(logging.FieldIssuer, issuer),
		logging.F(logging.FieldParser, p.Name()),
		logging.F(logging.FieldCount, countAvailable(fields)))

	return c.JSON(resp)
}

// HandleDebugText returns the beginning of the extracted text.
func (h *Handler) HandleDebugText(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file provided")
	}
	text, status, msg := h.statementText(c, fh)
	if status != 0 {
		if status == fiber.StatusBadRequest {
			msg = "No text extracted; PDF may be scanned (image)."
		}
		return writeError(c, status, msg)
	}
	return c.JSON(fiber.Map{"text_sample": truncate(text, debugTextSampleBytes)})
}

// HandleDebugLines returns every text line that carries numbers, with the
// numbers found on it.
func (h *Handler) HandleDebugLines(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file provided")
	}
	text, status, msg := h.statementText(c, fh)
	if status != 0 {
		if status == fiber.StatusBadRequest {
			msg = "No text extracted. PDF may be scanned (image)."
		}
		return writeError(c, status, msg)
	}

	lines := tokenizer.LineMap(text)
	if lines == nil {
		lines = []models.LineEntry{}
	}
	return c.JSON(fiber.Map{
		"line_map":   lines,
		"raw_sample": truncate(text, debugLinesSampleBytes),
	})
}

// statementText returns the text of an upload. Text extracted by the client
// (form field extractedText) wins over server-side extraction. A non-zero
// status reports failure; 400 means the document has no text.
func (h *Handler) statementText(c *fiber.Ctx, fh *multipart.FileHeader) (string, int, string) {
	if extracted := c.FormValue("extractedText"); strings.TrimSpace(extracted) != "" {
		text := strings.ReplaceAll(extracted, pageBreak, "\n")
		return tokenizer.Canonicalize(text), 0, ""
	}

	data, err := readUpload(fh)
	if err != nil {
		return "", fiber.StatusInternalServerError, "Failed to read uploaded file."
	}

	extract := h.Extract
	if extract == nil {
		extract = extractor.ExtractText
	}
	text, err := extract(data)
	switch {
	case err == nil:
		return text, 0, ""
	case errors.Is(err, extractor.ErrNoText):
		return "", fiber.StatusBadRequest, ""
	default:
		h.logger().WithError(err).Warn("PDF extraction failed",
			logging.F(logging.FieldFile, fh.Filename))
		return "", fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err)
	}
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	h.logger().Debug("Request handled",
		logging.F("method", c.Method()),
		logging.F("path", c.Path()),
		logging.F(logging.FieldStatus, status),
		logging.F(logging.FieldDuration, time.Since(start).String()))
	return err
}

func (h *Handler) logger() logging.Logger {
	if h.Logger == nil {
		return logging.Discard()
	}
	return h.Logger
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func countAvailable(fields models.Fields) int {
	n := 0
	for _, v := range fields {
		if v != models.NotAvailable {
			n++
		}
	}
	return n
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := fmt.Sprintf("Internal server error: %v", err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return writeError(c, code, msg)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   msg,
	})
}

// dump writes the extracted text and its line map to DumpDir.
func (h *Handler) dump(text string) {
	if h.DumpDir == "" {
		return
	}
	log := h.logger()
	if err := os.MkdirAll(h.DumpDir, 0o755); err != nil {
		log.WithError(err).Warn("Could not create dump directory")
		return
	}

	textPath := filepath.Join(h.DumpDir, "debug_extracted_text.txt")
	if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
		log.WithError(err).Warn("Could not write debug file", logging.F(logging.FieldFile, textPath))
	}

	var b strings.Builder
	if err := tokenizer.WriteLineMap(&b, tokenizer.LineMap(text)); err != nil {
		log.WithError(err).Warn("Could not render line map")
		return
	}
	mapPath := filepath.Join(h.DumpDir, "debug_line_map.txt")
	if err := os.WriteFile(mapPath, []byte(b.String()), 0o644); err != nil {
		log.WithError(err).Warn("Could not write debug file", logging.F(logging.FieldFile, mapPath))
	}
}
