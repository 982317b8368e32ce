// Package uid provides unique identifier generators.
//
// StringID generators (UUID) are used for correlation IDs and token
// IDs, while NumberID generators (Snowflake) are used for database row IDs.
package uid

// StringID generates string identifiers.
type StringID interface {
	// Generate returns a new string identifier.
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	// Generate returns a new int64 identifier.
	Generate() int64
}
