package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("formats field and message", func(t *testing.T) {
		err := NewValidationError("per_page", "must be between 1 and 200")
		assert.Equal(t, "validation error: per_page: must be between 1 and 200", err.Error())
	})

	t.Run("unwraps to ErrInvalidInput", func(t *testing.T) {
		err := NewValidationError("query", "must be a non-empty string")
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("matches errors.As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("search works: %w", NewValidationError("page", "must be positive"))

		var validationErr *ValidationError
		assert.True(t, errors.As(wrapped, &validationErr))
		assert.Equal(t, "page", validationErr.Field)
	})
}

func TestProviderError(t *testing.T) {
	t.Run("includes status code when present", func(t *testing.T) {
		err := NewProviderError("OpenAlex", 503, "service unavailable", nil)
		assert.Contains(t, err.Error(), "OpenAlex")
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("omits status code when zero", func(t *testing.T) {
		err := NewProviderError("OpenAlex", 0, "connection refused", nil)
		assert.NotContains(t, err.Error(), "status")
	})

	t.Run("matches ErrProviderUnavailable sentinel", func(t *testing.T) {
		err := NewProviderError("OpenAlex", 500, "internal error", nil)
		assert.True(t, errors.Is(err, ErrProviderUnavailable))
	})

	t.Run("retains original cause", func(t *testing.T) {
		cause := errors.New("dial tcp: connection timed out")
		err := NewProviderError("OpenAlex", 0, "request failed", cause)
		assert.True(t, errors.Is(err, cause))
	})
}

func TestRankingMode_Valid(t *testing.T) {
	assert.True(t, ModeRelevance.Valid())
	assert.True(t, ModeOpenAccess.Valid())
	assert.True(t, ModeBestMatch.Valid())
	assert.False(t, RankingMode("citations").Valid())
	assert.False(t, RankingMode("").Valid())
}
