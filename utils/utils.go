package utils

// AssertInvariant panics when a condition that callers guarantee does not hold
func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}
