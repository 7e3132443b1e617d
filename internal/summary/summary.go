// Package summary produces short natural-language insights for a parsed
// statement. Every failure is reported as a user-facing message; Summarize
// never returns an error.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/logging"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

var (
	// ErrMissingAPIKey means no credentials were configured.
	ErrMissingAPIKey = errors.New("gemini api key not set")
	// ErrRateLimited means the upstream answered 429 or exhausted its quota.
	ErrRateLimited = errors.New("rate limited")
	// ErrTimeout means a single attempt ran past its deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrEmptyResponse means the upstream answered without usable text.
	ErrEmptyResponse = errors.New("empty response")
)

// StatusError is a non-2xx upstream answer other than 429.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream status %d", e.Code)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Message)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.Code == 408 || e.Code >= 500
}

// User-facing messages, one per failure mode.
const (
	MsgMissingAPIKey = "GEMINI_API_KEY not set."
	MsgRateLimited   = "Rate limit reached while generating insights. Please try again later."
	MsgTimeout       = "Timed out while generating insights. Please try again later."
	MsgUnavailable   = "Insights service unavailable (status %d). Please try again later."
	MsgRejected      = "API error %d"
	MsgEmptyResponse = "No candidate content."
	MsgFailed        = "Failed to generate insights."
)

// SystemPrompt frames every request.
const SystemPrompt = "You are a helpful assistant. Provide 2-3 short insights based on the parsed statement data only."

// Generator sends one prompt to a language model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config controls timeouts and retries.
type Config struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries     int
	Timeout        time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultConfig mirrors the configuration defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		Timeout:        15 * time.Second,
		InitialBackoff: time.Second,
		MaxBackoff:     8 * time.Second,
	}
}

// Summarizer wraps a Generator with the retry policy.
type Summarizer struct {
	gen Generator
	cfg Config
	log logging.Logger
}

// NewSummarizer returns a summarizer. A nil generator is valid and makes
// every call report missing credentials.
func NewSummarizer(gen Generator, cfg Config, log logging.Logger) *Summarizer {
	if log == nil {
		log = logging.Discard()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Summarizer{gen: gen, cfg: cfg, log: log}
}

// BuildPrompt renders the user prompt for a statement.
func BuildPrompt(fields models.Fields, note string) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}
	return fmt.Sprintf("Statement summary: %s. Budget: %s", data, note), nil
}

// Summarize returns insights for fields, or a message describing why none
// could be produced. note carries free-form context such as a budget goal.
func (s *Summarizer) Summarize(ctx context.Context, fields models.Fields, note string) string {
	text, err := s.generate(ctx, fields, note)
	if err != nil {
		s.log.WithError(err).Warn("Insight generation failed")
		return Message(err)
	}
	return text
}

func (s *Summarizer) generate(ctx context.Context, fields models.Fields, note string) (string, error) {
	if s.gen == nil {
		return "", ErrMissingAPIKey
	}
	prompt, err := BuildPrompt(fields, note)
	if err != nil {
		return "", err
	}

	attempts := s.cfg.MaxRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		start := time.Now()
		text, err := s.attempt(ctx, prompt)
		if err == nil {
			s.log.Debug("Insights generated",
				logging.F(logging.FieldAttempt, attempt+1),
				logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
			return text, nil
		}
		lastErr = err

		if attempt+1 >= attempts || !shouldRetry(err) {
			break
		}
		delay := s.backoff(attempt)
		s.log.WithError(err).Info("Retrying insight generation",
			logging.F(logging.FieldAttempt, attempt+1),
			logging.F(logging.FieldDuration, delay.Milliseconds()))
		if err := sleepWithCtx(ctx, delay); err != nil {
			break
		}
	}
	return "", lastErr
}

// attempt runs one bounded call. A deadline hit by the per-attempt timeout
// becomes ErrTimeout; cancellation of the caller's context is passed on.
func (s *Summarizer) attempt(ctx context.Context, prompt string) (string, error) {
	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(callCtx, prompt)
	if err != nil {
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", err
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// backoff doubles the initial delay per attempt up to the configured cap.
func (s *Summarizer) backoff(attempt int) time.Duration {
	d := s.cfg.InitialBackoff
	for i := 0; i < attempt && d > 0; i++ {
		d *= 2
		if s.cfg.MaxBackoff > 0 && d >= s.cfg.MaxBackoff {
			return s.cfg.MaxBackoff
		}
	}
	if s.cfg.MaxBackoff > 0 && d > s.cfg.MaxBackoff {
		return s.cfg.MaxBackoff
	}
	return d
}

// shouldRetry retries rate limits, timeouts, 408 and 5xx answers only.
func shouldRetry(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return false
}

// Message maps an error to its user-facing message.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingAPIKey):
		return MsgMissingAPIKey
	case errors.Is(err, ErrRateLimited):
		return MsgRateLimited
	case errors.Is(err, ErrTimeout):
		return MsgTimeout
	case errors.Is(err, ErrEmptyResponse):
		return MsgEmptyResponse
	}
	var se *StatusError
	if errors.As(err, &se) {
		if se.Temporary() {
			return fmt.Sprintf(MsgUnavailable, se.Code)
		}
		return fmt.Sprintf(MsgRejected, se.Code)
	}
	return MsgFailed
}

func sleepWithCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
