package domain

// FieldViolation is a single failed constraint on an input field.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError collects every violation found in a payload.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Details returns the human-readable messages in the order they were found.
func (e *ValidationError) Details() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Message
	}
	return out
}

// NewValidationError builds a ValidationError from a single message.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Message: msg}}}
}
