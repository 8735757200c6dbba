package grid

// DefaultThreshold is the threshold used when no predicate is configured.
const DefaultThreshold byte = 128

// Predicate classifies one sample. Implementations must be pure and safe for
// concurrent use.
type Predicate func(v byte) bool

// Threshold returns a predicate matching samples strictly greater than t.
func Threshold(t byte) Predicate {
	return func(v byte) bool {
		return v > t
	}
}
