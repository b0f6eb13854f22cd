package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		key     string
		matches bool
	}{
		{
			name:    "exact key matches itself",
			pattern: ExactKey("card:find_by_id:id:42"),
			key:     "card:find_by_id:id:42",
			matches: true,
		},
		{
			name:    "exact key does not match other key",
			pattern: ExactKey("card:find_by_id:id:42"),
			key:     "card:find_by_id:id:43",
			matches: false,
		},
		{
			name:    "exact key does not match extension",
			pattern: ExactKey("card:find_all"),
			key:     "card:find_all:page:1",
			matches: false,
		},
		{
			name:    "prefix matches extension",
			pattern: PrefixPattern("card:find_all:"),
			key:     "card:find_all:page:1:size:10:search:",
			matches: true,
		},
		{
			name:    "prefix matches itself",
			pattern: PrefixPattern("card:find_all:"),
			key:     "card:find_all:",
			matches: true,
		},
		{
			name:    "prefix does not match other family",
			pattern: PrefixPattern("card:find_all:"),
			key:     "merchant:find_all:page:1",
			matches: false,
		},
		{
			name:    "prefix does not match shorter key",
			pattern: PrefixPattern("card:find_all:"),
			key:     "card:",
			matches: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.pattern.Matches(tt.key))
		})
	}
}

func TestPatternAccessors(t *testing.T) {
	exact := ExactKey("card:find_by_id:id:42")
	assert.False(t, exact.IsPrefix())
	assert.Equal(t, "card:find_by_id:id:42", exact.Value())
	assert.Equal(t, "card:find_by_id:id:42", exact.String())

	prefix := PrefixPattern("card:find_all:")
	assert.True(t, prefix.IsPrefix())
	assert.Equal(t, "card:find_all:", prefix.Value())
	assert.Equal(t, "card:find_all:*", prefix.String())
}
