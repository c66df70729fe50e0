package domain

// InvalidInputError represents a rejected input value. Calculations never
// repair or clamp bad inputs; they return this error naming the offending
// field and the constraint it violated.
type InvalidInputError struct {
	Operation string
	Field     string
	Message   string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return e.Operation + ": " + e.Field + ": " + e.Message
	}
	return e.Operation + ": " + e.Message
}

// NewInvalidInput builds an InvalidInputError for the given operation and field.
func NewInvalidInput(operation, field, message string) *InvalidInputError {
	return &InvalidInputError{Operation: operation, Field: field, Message: message}
}
