package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches sentinel by code", func(t *testing.T) {
		err := NewDomainError("NOT_FOUND", "Producer not found")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("update producer: %w", NewDomainError("INVALID_AREA_SUM", "too much"))
		assert.True(t, errors.Is(err, ErrInvalidAreaSum))
	})

	t.Run("plain errors do not match", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("boom"), ErrNotFound))
	})
}

func TestDomainError_Error(t *testing.T) {
	assert.Equal(t, "Resource not found", ErrNotFound.Error())
}
