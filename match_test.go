package diffmatchpatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchShortcuts(t *testing.T) {
	require.Equal(t, 0, Match("abcdef", "abcdef", 1000))
	require.Equal(t, -1, Match("", "abcdef", 1))
	require.Equal(t, 3, Match("abcdef", "", 3))
	require.Equal(t, 3, Match("abcdef", "de", 3))
	require.Equal(t, 3, Match("abcdef", "defy", 4))
	require.Equal(t, 0, Match("abcdef", "abcdefy", 0))
}

func TestMatchComplex(t *testing.T) {
	loc := Match("I am the very model of a modern major general.", " that berry ", 5, WithMatchThreshold(0.7))
	require.Equal(t, 4, loc)
}

func TestMatchThresholdRejectsBadMatch(t *testing.T) {
	require.Equal(t, -1, Match("The quick brown fox jumps over the lazy dog", "zzzzzz", 0, WithMatchThreshold(0.1)))
}

func TestMatchOversizedPatternFallsBackToExact(t *testing.T) {
	pattern := strings.Repeat("x", 40) + "needle" + strings.Repeat("y", 40)
	text := "prefix " + pattern + " suffix"
	loc := Match(text, pattern, 0)
	require.Equal(t, strings.Index(text, pattern), loc)
}

func TestMatchLocClamped(t *testing.T) {
	require.Equal(t, 0, Match("abc", "a", -5))
	require.Equal(t, 3, Match("abc", "", 500))
}
