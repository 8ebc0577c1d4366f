package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		"Title":  "title is required",
		"Author": "author is required",
	}

	// Field order must be stable regardless of map iteration order
	assert.Equal(t, "validation failed: Author: author is required; Title: title is required", errs.Error())
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ValidationErrors{"Field": "message"}))
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", ValidationErrors{"Field": "message"})))
	assert.False(t, IsValidation(errors.New("plain")))
	assert.False(t, IsValidation(ErrNotFound))
}
