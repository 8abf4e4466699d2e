package util

// Ptr returns a pointer to the given value, for optional option fields.
func Ptr[T any](v T) *T {
	return &v
}
