package cache

// Pattern is a tagged deletion target: either one literal key or a literal
// prefix matching any suffix. Lookups always use literal keys; only
// deletion accepts patterns. The tag replaces the trailing-wildcard string
// convention so the two deletion semantics are type-checked instead of
// inferred from key formatting.
type Pattern struct {
	value  string
	prefix bool
}

// ExactKey returns a pattern matching exactly one key.
func ExactKey(key string) Pattern {
	return Pattern{value: key}
}

// PrefixPattern returns a pattern matching every key that starts with the
// given literal prefix.
func PrefixPattern(prefix string) Pattern {
	return Pattern{value: prefix, prefix: true}
}

// Value returns the literal key or prefix.
func (p Pattern) Value() string {
	return p.value
}

// IsPrefix reports whether the pattern matches by prefix.
func (p Pattern) IsPrefix() bool {
	return p.prefix
}

// String renders the pattern for logs, marking prefixes with a trailing
// asterisk.
func (p Pattern) String() string {
	if p.prefix {
		return p.value + "*"
	}
	return p.value
}

// Matches reports whether the pattern matches the given literal key.
func (p Pattern) Matches(key string) bool {
	if p.prefix {
		return len(key) >= len(p.value) && key[:len(p.value)] == p.value
	}
	return key == p.value
}
