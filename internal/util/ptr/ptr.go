// Package ptr provides helper functions for creating pointers to primitive types.
package ptr

// String returns a pointer to the given string value.
func String(s string) *string { return &s }

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
