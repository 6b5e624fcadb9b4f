package diffmatchpatch

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"
)

// TestDiffAgainstOracle cross-checks Diff's edit-script cost against an
// independent implementation: the scripts need not match edit-for-edit
// (both engines resolve ties differently), but the reconstructed texts and
// Levenshtein distance must.
func TestDiffAgainstOracle(t *testing.T) {
	oracle := diffmatchpatch.New()

	cases := []struct {
		text1, text2 string
	}{
		{"The quick brown fox jumps over the lazy dog.", "That quick brown fox jumped over a lazy dog."},
		{"", "non-empty"},
		{"non-empty", ""},
		{"identical text", "identical text"},
		{"function foo(){\n  return 1;\n}\n", "function foo(){\n  return 2;\n}\n"},
		{"a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n", "a\nb\nX\nd\ne\nf\ng\nh\ni\nj\n"},
	}

	for _, c := range cases {
		got := Diff(c.text1, c.text2)
		want := oracle.DiffMain(c.text1, c.text2, true)

		require.Equal(t, c.text1, got.Text1())
		require.Equal(t, c.text2, got.Text2())
		require.Equal(t, oracleLevenshtein(want), got.Levenshtein())
	}
}

// TestMatchAgainstOracle cross-checks Match's located offset against the
// oracle's bitap scan for a range of thresholds.
func TestMatchAgainstOracle(t *testing.T) {
	oracle := diffmatchpatch.New()
	text := "I am the very model of a modern major general, I have information vegetable, animal, and mineral."
	patterns := []string{"very model", "modren mjaor genral", "completely absent pattern xyz"}

	for _, p := range patterns {
		for _, threshold := range []float64{0.3, 0.5, 0.8} {
			oracle.MatchThreshold = threshold
			want := oracle.MatchMain(text, p, 0)
			got := Match(text, p, 0, WithMatchThreshold(threshold))
			require.Equal(t, want, got, "pattern=%q threshold=%v", p, threshold)
		}
	}
}

// TestPatchApplyAgainstOracle cross-checks that a patch set built and
// applied by this package round-trips a derivative of text1 the same way
// the oracle's own patch engine does.
func TestPatchApplyAgainstOracle(t *testing.T) {
	oracle := diffmatchpatch.New()
	text1 := "The quick brown fox jumps over the lazy dog, again and again and again."
	text2 := "The slow brown fox jumped over the lazy hound, again and again and again and again."

	patches := PatchFromTexts(text1, text2)
	got, results := PatchApply(patches, text1)
	for _, ok := range results {
		require.True(t, ok)
	}

	oraclePatches := oracle.PatchMake(text1, text2)
	want, oracleResults := oracle.PatchApply(oraclePatches, text1)
	for _, ok := range oracleResults {
		require.True(t, ok)
	}

	require.Equal(t, want, got)
	require.Equal(t, text2, got)
}

func oracleLevenshtein(diffs []diffmatchpatch.Diff) int {
	levenshtein := 0
	insertions, deletions := 0, 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			insertions += len(d.Text)
		case diffmatchpatch.DiffDelete:
			deletions += len(d.Text)
		case diffmatchpatch.DiffEqual:
			levenshtein += max(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	return levenshtein + max(insertions, deletions)
}
