package ptr

// To returns a pointer to v. Handy for optional DTO fields and literals.
func To[T any](v T) *T {
	return &v
}

// Deref returns *p or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
