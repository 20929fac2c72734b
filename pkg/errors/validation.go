package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateNodeID validates a workflow node identifier for safety and
// correctness. IDs travel through cache keys, file names, and API paths,
// so the rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node ID contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidGraph, "node ID cannot contain whitespace: %q", id)
		}
	}

	return nil
}

// ValidateWorkflowName validates a stored workflow's display name.
func ValidateWorkflowName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "workflow name cannot be empty")
	}

	if len(name) > 200 {
		return New(ErrCodeInvalidInput, "workflow name too long (max 200 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "workflow name contains invalid control characters")
		}
	}

	return nil
}

// workflowIDRegex matches the UUID-shaped IDs assigned to stored workflows.
var workflowIDRegex = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)

// ValidateWorkflowID validates a stored workflow identifier.
// IDs appear in URL paths and Mongo queries, so anything that is not a
// well-formed UUID is rejected before it reaches the store.
func ValidateWorkflowID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "workflow ID cannot be empty")
	}

	if !workflowIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid workflow ID: %q", id)
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
