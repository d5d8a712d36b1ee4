package domain

// CanonicalPair orders an unordered identifier pair lexicographically so that
// both call orders map to one stored representation:
// CanonicalPair(a, b) == CanonicalPair(b, a).
// The distinct-identifier precondition is checked by the friendship
// validator, not here.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// PairPermutations returns both storage orders of a pair, for callers that
// must look a relationship up irrespective of how it was stored.
func PairPermutations(a, b string) [2][2]string {
	return [2][2]string{{a, b}, {b, a}}
}
