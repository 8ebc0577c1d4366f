package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound means the requested entity id does not resolve to a row.
	ErrNotFound = errors.New("not found")

	// ErrIDMismatch means the id in the path and the id in the body disagree.
	ErrIDMismatch = errors.New("path and body ids do not match")
)

// ValidationErrors carries per-field validation messages so HTML forms can be
// redisplayed with the offending fields called out. No persistence is
// attempted while validation fails.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is a field-validation failure.
func IsValidation(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}
