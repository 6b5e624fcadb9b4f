package diffmatchpatch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCoordString(t *testing.T) {
	require.Equal(t, "21,0", coordString(21, 0))
	require.Equal(t, "22", coordString(21, 1))
	require.Equal(t, "21,4", coordString(20, 4))
}

func TestPatchFromTextsRoundTrip(t *testing.T) {
	text1 := "The quick brown fox jumps over the lazy dog."
	text2 := "The quick red fox jumps over the lazy cat."
	patches := PatchFromTexts(text1, text2)
	require.NotEmpty(t, patches)

	got, results := PatchApply(patches, text1)
	require.Equal(t, text2, got)
	for _, ok := range results {
		require.True(t, ok)
	}
}

func TestPatchFromTextAndDiffsNullCase(t *testing.T) {
	require.Nil(t, PatchFromTextAndDiffs("", nil))
}

func TestPatchApplyNullCase(t *testing.T) {
	got, results := PatchApply(nil, "hello")
	require.Equal(t, "hello", got)
	require.Nil(t, results)
}

func TestPatchApplyExactMatch(t *testing.T) {
	patches := PatchFromTexts("The quick brown fox jumps over the lazy dog.", "That quick brown fox jumped over a lazy dog.")
	got, results := PatchApply(patches, "The quick brown fox jumps over the lazy dog.")
	require.Equal(t, "That quick brown fox jumped over a lazy dog.", got)
	for _, ok := range results {
		require.True(t, ok)
	}
}

func TestPatchApplyFuzzyOffsetMatch(t *testing.T) {
	text1 := "The quick brown fox jumps over the lazy dog."
	text2 := "That quick brown fox jumped over a lazy dog."
	patches := PatchFromTexts(text1, text2)

	shifted := "Some padding text here first. " + text1
	got, results := PatchApply(patches, shifted)
	require.True(t, results[0])
	require.Contains(t, got, "jumped over a lazy dog.")
}

func TestPatchApplyFailsWithUnrelatedText(t *testing.T) {
	patches := PatchFromTexts("The quick brown fox jumps over the lazy dog.", "That quick brown fox jumped over a lazy dog.")
	_, results := PatchApply(patches, "Completely unrelated content with nothing in common whatsoever.")
	require.False(t, results[0])
}

func TestPatchSplitMaxHandlesOversizedPatch(t *testing.T) {
	text1 := strings.Repeat("abcdefghij", 10) // 100 chars, well past BitsPerWord
	patches := []Patch{{
		Diffs:   DiffList{{Delete, text1}, {Insert, "X"}},
		Start1:  0,
		Start2:  0,
		Length1: len(text1),
		Length2: 1,
	}}
	require.Greater(t, patches[0].Length1, BitsPerWord)

	split := PatchSplitMax(patches, 4)
	require.Greater(t, len(split), 1)
	for _, p := range split {
		require.LessOrEqual(t, p.Length1, BitsPerWord)
	}

	got, results := PatchApply(split, text1)
	require.Equal(t, "X", got)
	for _, ok := range results {
		require.True(t, ok)
	}
}

func TestPatchAddPaddingGrowsEdges(t *testing.T) {
	patches := PatchFromTexts("", "test")
	padding := PatchAddPadding(patches, 4)
	require.Len(t, padding, 4)
	require.NotEmpty(t, patches[0].Diffs)
}

func TestPatchDeepCopyIsIndependent(t *testing.T) {
	patches := PatchFromTexts("hello world", "hello there world")
	copied := PatchDeepCopy(patches)
	if diff := cmp.Diff(patches, copied); diff != "" {
		t.Errorf("deep copy diverged from its source before any mutation:\n%s", diff)
	}
	if len(copied[0].Diffs) > 0 {
		copied[0].Diffs[0].Text = "mutated"
	}
	require.NotEqual(t, patches[0].Diffs, copied[0].Diffs)
}

func TestPatchMakeDispatcher(t *testing.T) {
	diffs := Diff("a", "b")

	p1, err := PatchMake(diffs)
	require.NoError(t, err)
	require.Equal(t, PatchFromDiffs(diffs), p1)

	p2, err := PatchMake("a", "b")
	require.NoError(t, err)
	require.Equal(t, PatchFromTexts("a", "b"), p2)

	p3, err := PatchMake("a", diffs)
	require.NoError(t, err)
	require.Equal(t, PatchFromTextAndDiffs("a", diffs), p3)

	// text2 argument is accepted for shape but ignored: only text1 and
	// diffs determine the result.
	p4, err := PatchMake("a", "ignored-text2", diffs)
	require.NoError(t, err)
	require.Equal(t, PatchFromTextAndDiffs("a", diffs), p4)

	_, err = PatchMake(42)
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestPatchStringFormat(t *testing.T) {
	patches := PatchFromTexts("The quick brown fox", "The quick red fox")
	require.True(t, strings.HasPrefix(patches[0].String(), "@@ -"))
}
