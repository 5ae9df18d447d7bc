package transforms

// Quadratic is the Julia recurrence z -> z² + C.
type Quadratic struct {
	C complex128
}

func (q Quadratic) Next(z complex128) complex128 {
	return z*z + q.C
}

// Orbit returns the first n iterates of z0, not including z0 itself.
func (q Quadratic) Orbit(z0 complex128, n int) []complex128 {
	if n <= 0 {
		return nil
	}

	orbit := make([]complex128, n)
	z := z0
	for i := range orbit {
		z = q.Next(z)
		orbit[i] = z
	}

	return orbit
}
