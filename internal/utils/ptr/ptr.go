// Package ptr provides pointer construction helpers for the record's
// optional fields.
package ptr

// To creates a pointer to the given value.
func To[T any](v T) *T {
	return &v
}
