package validator

// Validator validates request and domain structs.
type Validator interface {
	// Validate returns nil when data is valid, or an error describing the
	// failed fields.
	Validate(data any) error
}
