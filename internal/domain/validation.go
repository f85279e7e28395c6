package domain

import "strings"

// ValidationError reports required fields that were empty or whitespace.
// It is produced before any network call is made, so the caller can surface
// it inline and let the user retry.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// RequireFields returns a ValidationError naming every field whose value is
// blank, or nil when all are present.
func RequireFields(fields map[string]string, order []string) *ValidationError {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Missing: missing}
}
