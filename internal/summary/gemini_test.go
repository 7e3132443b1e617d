package summary

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassify(t *testing.T) {
	t.Run("grpc resource exhausted", func(t *testing.T) {
		err := classify(status.Error(codes.ResourceExhausted, "quota exceeded"))
		assert.True(t, errors.Is(err, ErrRateLimited))
	})

	t.Run("grpc deadline", func(t *testing.T) {
		err := classify(status.Error(codes.DeadlineExceeded, "slow"))
		assert.True(t, errors.Is(err, ErrTimeout))
	})

	t.Run("grpc unavailable", func(t *testing.T) {
		var se *StatusError
		require.True(t, errors.As(classify(status.Error(codes.Unavailable, "down")), &se))
		assert.Equal(t, 503, se.Code)
		assert.True(t, se.Temporary())
	})

	t.Run("grpc invalid argument", func(t *testing.T) {
		var se *StatusError
		require.True(t, errors.As(classify(status.Error(codes.InvalidArgument, "bad")), &se))
		assert.Equal(t, 400, se.Code)
		assert.False(t, se.Temporary())
	})

	t.Run("http too many requests", func(t *testing.T) {
		err := classify(&googleapi.Error{Code: 429, Message: "slow down"})
		assert.True(t, errors.Is(err, ErrRateLimited))
	})

	t.Run("http bad gateway", func(t *testing.T) {
		var se *StatusError
		require.True(t, errors.As(classify(&googleapi.Error{Code: 502}), &se))
		assert.Equal(t, 502, se.Code)
	})

	t.Run("context deadline", func(t *testing.T) {
		err := classify(fmt.Errorf("call: %w", context.DeadlineExceeded))
		assert.True(t, errors.Is(err, ErrTimeout))
	})

	t.Run("unrelated error", func(t *testing.T) {
		orig := errors.New("dial tcp: connection refused")
		assert.Same(t, orig, classify(orig))
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, classify(nil))
	})
}

func TestNewGeminiGenerator_MissingKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "  ", "gemini-2.0-flash")
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}
