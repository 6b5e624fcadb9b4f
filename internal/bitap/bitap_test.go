package bitap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchExact(t *testing.T) {
	require.Equal(t, 0, Search("abcdef", "abc", 0, 0.5, 1000))
	require.Equal(t, 3, Search("abcdef", "def", 0, 0.5, 1000))
}

func TestSearchFuzzy(t *testing.T) {
	loc := Search("The quick brown fox jumps over the lazy dog", "quickish brwn fox", 5, 0.5, 1000)
	require.Equal(t, 4, loc)
}

func TestSearchNoMatch(t *testing.T) {
	loc := Search("abcdef", "xyz", 0, 0.1, 1000)
	require.Equal(t, -1, loc)
}

func TestSearchDistanceZeroRequiresExactLocation(t *testing.T) {
	loc := Search("abc abc abc", "abc", 10, 0.5, 0)
	require.Equal(t, -1, loc)
	require.Equal(t, 8, Search("abc abc abc", "abc", 8, 0.5, 0))
}
