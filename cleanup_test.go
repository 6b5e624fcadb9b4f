package diffmatchpatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanupMergeNoChange(t *testing.T) {
	d := DiffList{{Equal, "a"}, {Delete, "b"}, {Insert, "c"}}
	require.Equal(t, d, cleanupMerge(d))
}

func TestCleanupMergeCoalesces(t *testing.T) {
	d := DiffList{{Equal, "a"}, {Equal, "b"}, {Delete, "c"}, {Delete, "d"}}
	want := DiffList{{Equal, "ab"}, {Delete, "cd"}}
	require.Equal(t, want, cleanupMerge(d))
}

func TestCleanupMergeFactorsPrefixSuffix(t *testing.T) {
	d := DiffList{
		{Equal, "x"}, {Delete, "a"}, {Insert, "abc"}, {Delete, "dc"}, {Equal, "y"},
	}
	got := cleanupMerge(d)
	require.Equal(t, "xadcy", got.Text1())
	require.Equal(t, "xabcy", got.Text2())
	require.Equal(t, DiffList{{Equal, "xa"}, {Delete, "d"}, {Insert, "b"}, {Equal, "cy"}}, got)
}

func TestCleanupMergeShiftsEditOverEquality(t *testing.T) {
	d := DiffList{{Equal, "a"}, {Insert, "ba"}, {Equal, "c"}}
	want := DiffList{{Insert, "ab"}, {Equal, "ac"}}
	require.Equal(t, want, cleanupMerge(d))
}

func TestCleanupSemanticKeepsEqualityLongerThanFollowingEdit(t *testing.T) {
	d := DiffList{
		{Delete, "ab"}, {Insert, "cd"}, {Equal, "12"}, {Delete, "e"},
	}
	got := cleanupSemantic(d)
	require.Equal(t, DiffList{{Delete, "ab"}, {Insert, "cd"}, {Equal, "12"}, {Delete, "e"}}, got)
}

func TestCleanupSemanticElimination2(t *testing.T) {
	d := DiffList{
		{Delete, "The c"}, {Insert, "1"}, {Equal, "a"}, {Delete, "t"}, {Insert, "ac"},
		{Equal, "k"}, {Delete, "oo"}, {Insert, "3"}, {Equal, "o"}, {Delete, "d"}, {Insert, "2"},
	}
	got := cleanupSemantic(d)
	require.Equal(t, d.Text1(), got.Text1())
	require.Equal(t, d.Text2(), got.Text2())
	// The short equality "a" between two edit runs should be absorbed.
	require.NotContains(t, got, DiffRecord{Equal, "a"})
}

func TestCleanupSemanticNoOverlap(t *testing.T) {
	d := DiffList{{Equal, "a"}, {Delete, "b"}, {Equal, "c"}}
	require.Equal(t, d, cleanupSemantic(d))
}

func TestExtractDeleteInsertOverlapsSuffixPrefix(t *testing.T) {
	d := DiffList{{Delete, "xmany1"}, {Insert, "1mangy"}}
	got := extractDeleteInsertOverlaps(d)
	require.Equal(t, "xmany1", got.Text1())
	require.Equal(t, "1mangy", got.Text2())
}

func TestCleanupSemanticLosslessAlignsToWordBoundary(t *testing.T) {
	d := DiffList{{Equal, "The c"}, {Insert, "ow and the c"}, {Equal, "at."}}
	got := cleanupSemanticLossless(d)
	require.Equal(t, "The cat.", got.Text1())
	require.Equal(t, "The cow and the cat.", got.Text2())
}

func TestCleanupEfficiencyNoElimination(t *testing.T) {
	d := DiffList{
		{Delete, "ab"}, {Insert, "12"}, {Equal, "wxyz"}, {Delete, "cd"}, {Insert, "34"},
	}
	require.Equal(t, d, cleanupEfficiency(d, 4))
}

func TestCleanupEfficiencyFourEditElimination(t *testing.T) {
	d := DiffList{
		{Delete, "ab"}, {Insert, "12"}, {Equal, "xyz"}, {Delete, "cd"}, {Insert, "34"},
	}
	got := cleanupEfficiency(d, 4)
	require.Equal(t, DiffList{{Delete, "abxyzcd"}, {Insert, "12xyz34"}}, got)
}

func TestCleanupEfficiencyThreeEditElimination(t *testing.T) {
	d := DiffList{
		{Insert, "12"}, {Equal, "x"}, {Delete, "cd"}, {Insert, "34"},
	}
	got := cleanupEfficiency(d, 4)
	require.Equal(t, DiffList{{Delete, "xcd"}, {Insert, "12x34"}}, got)
}

func TestCleanupEfficiencyBackpassElimination(t *testing.T) {
	d := DiffList{
		{Delete, "ab"}, {Insert, "12"}, {Equal, "xy"}, {Insert, "34"}, {Equal, "z"}, {Delete, "cd"}, {Insert, "56"},
	}
	got := cleanupEfficiency(d, 4)
	require.Equal(t, DiffList{{Delete, "abxyzcd"}, {Insert, "12xy34z56"}}, got)
}

func TestBoundaryScoreStringEdges(t *testing.T) {
	require.Equal(t, 6, boundaryScore("", "anything"))
	require.Equal(t, 6, boundaryScore("anything", ""))
}

func TestBoundaryScoreBlankLine(t *testing.T) {
	require.Equal(t, 5, boundaryScore("foo\n\n", "\nbar"))
}
