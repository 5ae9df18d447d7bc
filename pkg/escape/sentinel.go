package escape

import (
	"fmt"
	"math"
)

// Sentinel selects the value recorded for cells that never escape.
type Sentinel int

const (
	// SentinelZero leaves unescaped cells at 0, the same value as cells that
	// escape on the first step.
	SentinelZero Sentinel = iota
	// SentinelMaxIters records MaxIters, one past the largest escape index.
	SentinelMaxIters
	// SentinelNaN records NaN.
	SentinelNaN
)

var sentinelNames = map[Sentinel]string{
	SentinelZero:     "zero",
	SentinelMaxIters: "max-iters",
	SentinelNaN:      "nan",
}

func (s Sentinel) String() string {
	if name, ok := sentinelNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sentinel(%d)", int(s))
}

// ParseSentinel parses the names returned by Sentinel.String.
func ParseSentinel(name string) (Sentinel, error) {
	for s, n := range sentinelNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown sentinel %q", ErrInvalidArgument, name)
}

func (s Sentinel) value(maxIters int) float64 {
	switch s {
	case SentinelMaxIters:
		return float64(maxIters)
	case SentinelNaN:
		return math.NaN()
	default:
		return 0
	}
}
