package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("update shop: %w", NotFound("Shop not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindServer, KindOf(errors.New("boom")))
	assert.Equal(t, "not_found", KindOf(wrapped).String())
}

func TestAs(t *testing.T) {
	cause := errors.New("connection refused")

	e := As(cause)
	assert.Equal(t, KindServer, e.Kind)
	assert.Equal(t, "An error occurred", e.Message)
	assert.ErrorIs(t, e, cause)

	v := As(fmt.Errorf("create post: %w", Validation(map[string]string{"date": "Date is required"})))
	assert.Equal(t, KindValidation, v.Kind)
	assert.Equal(t, "Date is required", v.Fields["date"])
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "Invalid CSRF token", Forbidden("Invalid CSRF token").Error())
	assert.Equal(t, "Failed to save file: disk full", Internal("Failed to save file", errors.New("disk full")).Error())
}
