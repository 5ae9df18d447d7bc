package escape

// A Field holds the escape index of every cell of an evaluated grid, in the
// grid's row-major order.
type Field struct {
	Rows, Cols int
	Values     []float64

	// Escaped reports which cells escaped. It disambiguates SentinelZero from
	// an escape on step 0.
	Escaped []bool

	MaxIters int
	Sentinel Sentinel
}

func (f *Field) At(row, col int) float64 {
	return f.Values[row*f.Cols+col]
}

// Normalized returns the values divided by MaxIters. NaN sentinels stay NaN.
func (f *Field) Normalized() []float64 {
	out := make([]float64, len(f.Values))
	inv := 1.0 / float64(f.MaxIters)
	for i, v := range f.Values {
		out[i] = v * inv
	}
	return out
}

type Stats struct {
	Cells     int
	Escaped   int
	Unescaped int

	// MinEscape and MaxEscape are the smallest and largest escape indices,
	// or -1 if no cell escaped.
	MinEscape int
	MaxEscape int
}

func (f *Field) Stats() Stats {
	s := Stats{Cells: len(f.Values), MinEscape: -1, MaxEscape: -1}
	for i, escaped := range f.Escaped {
		if !escaped {
			s.Unescaped++
			continue
		}

		s.Escaped++
		k := int(f.Values[i])
		if s.MinEscape < 0 || k < s.MinEscape {
			s.MinEscape = k
		}
		if k > s.MaxEscape {
			s.MaxEscape = k
		}
	}
	return s
}
