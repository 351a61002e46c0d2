package job

import (
	"github.com/osmike/orbitcron/internal/domain"
	"strings"
	"unicode"
)

// AddExecutionAttribute appends a URL-safe tag to the job.
//
// The value is trimmed. It is rejected when empty or when it contains whitespace
// or any of FORBIDDEN_ATTRIBUTE_CHARS. Duplicates and case variants are kept.
//
// Returns:
//   - true if the attribute was added; false otherwise (the job is unchanged).
func (j *Job) AddExecutionAttribute(value string) bool {
	value = strings.TrimSpace(value)
	if !ValidAttribute(value) {
		return false
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.attributes = append(j.attributes, value)
	return true
}

// ValidAttribute reports whether value can be used as an execution attribute as is.
func ValidAttribute(value string) bool {
	if value == "" {
		return false
	}
	return !strings.ContainsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(domain.FORBIDDEN_ATTRIBUTE_CHARS, r)
	})
}
