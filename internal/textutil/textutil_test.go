package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommonPrefix(t *testing.T) {
	require.Equal(t, 4, CommonPrefix("1234abcdef", "1234xyz"))
	require.Equal(t, 0, CommonPrefix("1234", "abcd"))
	require.Equal(t, 4, CommonPrefix("abcd", "abcd"))
}

func TestCommonSuffix(t *testing.T) {
	require.Equal(t, 4, CommonSuffix("abcdef1234", "xyz1234"))
	require.Equal(t, 0, CommonSuffix("1234", "abcd"))
}

func TestCommonOverlap(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "abcd", 0},
		{"abcd", "", 0},
		{"123456", "abcd", 0},
		{"123456xxx", "xxxabcd", 3},
		{"fi", "ﬁi", 0},
	}
	for _, c := range cases {
		require.Equal(t, c.want, CommonOverlap(c.a, c.b))
	}
}

func TestLinesToCharsAndBack(t *testing.T) {
	text1 := "alpha\nbeta\nalpha\n"
	text2 := "beta\ngamma\nbeta\n"
	chars1, chars2, lineArray := LinesToChars(text1, text2)
	require.Equal(t, 3, len(runes(chars1)))
	require.Equal(t, 3, len(runes(chars2)))

	type rec struct{ text string }
	recs1 := []rec{{chars1}, {chars2}}
	CharsToLines(recs1, lineArray,
		func(r rec) string { return r.text },
		func(r *rec, s string) { r.text = s })
	require.Equal(t, text1, recs1[0].text)
	require.Equal(t, text2, recs1[1].text)
}

func runes(s string) []rune { return []rune(s) }
