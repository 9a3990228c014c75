package ignore

// Matcher reports whether a path matches
type Matcher func(path string) bool

// Always matches every path
func Always() Matcher { return func(string) bool { return true } }

// Never matches no path
func Never() Matcher { return func(string) bool { return false } }

// Not inverts m
func Not(m Matcher) Matcher {
	return func(path string) bool { return !m(path) }
}

// Any matches when at least one of ms matches. Any() matches nothing.
func Any(ms ...Matcher) Matcher {
	return func(path string) bool {
		for _, m := range ms {
			if m(path) {
				return true
			}
		}
		return false
	}
}

// All matches when every one of ms matches. All() matches everything.
func All(ms ...Matcher) Matcher {
	return func(path string) bool {
		for _, m := range ms {
			if !m(path) {
				return false
			}
		}
		return true
	}
}
