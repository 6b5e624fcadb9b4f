package diffmatchpatch

import (
	"regexp"
	"strings"

	"github.com/espresso3389/diff-match-patch/internal/textutil"
)

// cleanupMerge canonicalizes a DiffList: adjacent same-Op records are
// coalesced, common affixes of adjacent Delete/Insert runs are factored
// into the surrounding Equal records, and single edits that can be shifted
// sideways to remove an intervening Equal are shifted. The shift pass may
// expose further merge opportunities, so it repeats until stable.
func cleanupMerge(diffs DiffList) DiffList {
	merged := mergeRuns(diffs)
	shifted, changed := shiftEditsOverEqualities(merged)
	if changed {
		return cleanupMerge(shifted)
	}
	return shifted
}

// mergeRuns walks diffs once, accumulating consecutive Delete/Insert runs
// and Equal runs, and emits a canonical run-length-reduced list: common
// prefixes/suffixes of an accumulated delete+insert run are factored into
// neighboring equalities, and the run itself collapses to at most one
// Delete followed by one Insert.
func mergeRuns(diffs DiffList) DiffList {
	work := append(diffs.clone(), DiffRecord{Equal, ""}) // sentinel flushes the final run
	out := make(DiffList, 0, len(work))
	var textDelete, textInsert strings.Builder

	flush := func() string {
		td, ti := textDelete.String(), textInsert.String()
		textDelete.Reset()
		textInsert.Reset()
		if td == "" && ti == "" {
			return ""
		}
		suffixForNext := ""
		if td != "" && ti != "" {
			if cp := textutil.CommonPrefix(ti, td); cp > 0 {
				if n := len(out); n > 0 && out[n-1].Op == Equal {
					out[n-1].Text += ti[:cp]
				} else {
					out = append(out, DiffRecord{Equal, ti[:cp]})
				}
				ti, td = ti[cp:], td[cp:]
			}
			if cs := textutil.CommonSuffix(ti, td); cs > 0 {
				suffixForNext = ti[len(ti)-cs:]
				ti, td = ti[:len(ti)-cs], td[:len(td)-cs]
			}
		}
		if td != "" {
			out = append(out, DiffRecord{Delete, td})
		}
		if ti != "" {
			out = append(out, DiffRecord{Insert, ti})
		}
		return suffixForNext
	}

	for _, d := range work {
		switch d.Op {
		case Insert:
			textInsert.WriteString(d.Text)
		case Delete:
			textDelete.WriteString(d.Text)
		case Equal:
			text := flush() + d.Text
			if text == "" {
				continue
			}
			if n := len(out); n > 0 && out[n-1].Op == Equal {
				out[n-1].Text += text
			} else {
				out = append(out, DiffRecord{Equal, text})
			}
		}
	}
	return out
}

// shiftEditsOverEqualities looks for a single edit flanked by two
// equalities where the edit's text has the preceding equality as a suffix
// or the following equality as a prefix, and shifts the edit over that
// equality, eliminating it. Returns whether any shift happened.
func shiftEditsOverEqualities(diffs DiffList) (DiffList, bool) {
	diffs = diffs.clone()
	changed := false
	i := 1
	for i < len(diffs)-1 {
		if diffs[i-1].Op == Equal && diffs[i+1].Op == Equal {
			switch {
			case strings.HasSuffix(diffs[i].Text, diffs[i-1].Text):
				prev := diffs[i-1].Text
				diffs[i].Text = prev + diffs[i].Text[:len(diffs[i].Text)-len(prev)]
				diffs[i+1].Text = prev + diffs[i+1].Text
				diffs = append(diffs[:i-1], diffs[i:]...)
				changed = true
			case strings.HasPrefix(diffs[i].Text, diffs[i+1].Text):
				next := diffs[i+1].Text
				diffs[i-1].Text += next
				diffs[i].Text = diffs[i].Text[len(next):] + next
				diffs = append(diffs[:i+1], diffs[i+2:]...)
				changed = true
			}
		}
		i++
	}
	return diffs, changed
}

// cleanupSemantic eliminates equalities that are smaller than or equal to
// the edits on both sides of them (these tend to be semantically
// meaningless, e.g. a shared letter in the middle of two different words),
// then realigns edits to logical boundaries and extracts any overlap
// between adjacent deletions and insertions into an equality.
func cleanupSemantic(diffs DiffList) DiffList {
	diffs = diffs.clone()
	changed := false
	var equalities []int
	var lastEquality string
	var insLen1, delLen1, insLen2, delLen2 int

	pointer := 0
	for pointer < len(diffs) {
		if diffs[pointer].Op == Equal {
			equalities = append(equalities, pointer)
			insLen1, delLen1 = insLen2, delLen2
			insLen2, delLen2 = 0, 0
			lastEquality = diffs[pointer].Text
		} else {
			if diffs[pointer].Op == Insert {
				insLen2 += len(diffs[pointer].Text)
			} else {
				delLen2 += len(diffs[pointer].Text)
			}
			if lastEquality != "" &&
				len(lastEquality) <= max(insLen1, delLen1) &&
				len(lastEquality) <= max(insLen2, delLen2) {
				insPoint := equalities[len(equalities)-1]

				rebuilt := make(DiffList, 0, len(diffs)+1)
				rebuilt = append(rebuilt, diffs[:insPoint]...)
				rebuilt = append(rebuilt, DiffRecord{Delete, lastEquality}, DiffRecord{Insert, lastEquality})
				rebuilt = append(rebuilt, diffs[insPoint+1:]...)
				diffs = rebuilt

				// Throw away the equality we just deleted, and the one
				// before it, which needs to be reevaluated now that its
				// neighbor has changed.
				equalities = equalities[:len(equalities)-1]
				if len(equalities) > 0 {
					equalities = equalities[:len(equalities)-1]
				}
				if len(equalities) > 0 {
					pointer = equalities[len(equalities)-1]
				} else {
					pointer = -1
				}

				insLen1, delLen1, insLen2, delLen2 = 0, 0, 0, 0
				lastEquality = ""
				changed = true
			}
		}
		pointer++
	}

	if changed {
		diffs = cleanupMerge(diffs)
	}
	diffs = cleanupSemanticLossless(diffs)
	return extractDeleteInsertOverlaps(diffs)
}

// extractDeleteInsertOverlaps looks for a Delete immediately followed by an
// Insert where a suffix of the deletion equals a prefix of the insertion
// (or vice versa), and promotes that shared text to an Equal record,
// trimming the surrounding edits. Only promotes an overlap that is at
// least half the length of one of its neighboring edits, so small
// coincidental overlaps are left alone.
func extractDeleteInsertOverlaps(diffs DiffList) DiffList {
	diffs = diffs.clone()
	pointer := 1
	for pointer < len(diffs) {
		if diffs[pointer-1].Op == Delete && diffs[pointer].Op == Insert {
			deletion := diffs[pointer-1].Text
			insertion := diffs[pointer].Text
			overlap1 := textutil.CommonOverlap(deletion, insertion)
			overlap2 := textutil.CommonOverlap(insertion, deletion)
			if overlap1 >= overlap2 {
				if 2*overlap1 >= len(deletion) || 2*overlap1 >= len(insertion) {
					rebuilt := make(DiffList, 0, len(diffs)+1)
					rebuilt = append(rebuilt, diffs[:pointer]...)
					rebuilt = append(rebuilt, DiffRecord{Equal, insertion[:overlap1]})
					rebuilt = append(rebuilt, diffs[pointer:]...)
					diffs = rebuilt
					diffs[pointer-1].Text = deletion[:len(deletion)-overlap1]
					diffs[pointer+1].Text = insertion[overlap1:]
					pointer++
				}
			} else if 2*overlap2 >= len(deletion) || 2*overlap2 >= len(insertion) {
				rebuilt := make(DiffList, 0, len(diffs)+1)
				rebuilt = append(rebuilt, diffs[:pointer]...)
				rebuilt = append(rebuilt, DiffRecord{Equal, deletion[:overlap2]})
				rebuilt = append(rebuilt, diffs[pointer:]...)
				diffs = rebuilt
				diffs[pointer-1] = DiffRecord{Insert, insertion[:len(insertion)-overlap2]}
				diffs[pointer+1] = DiffRecord{Delete, deletion[overlap2:]}
				pointer++
			}
		}
		pointer++
	}
	return diffs
}

// Boundary-score regexes, deliberately ASCII per the original algorithm's
// own note: the scoring is cosmetic, so ports are free to use their
// language's native character classes. This one matches the reference
// algorithm exactly rather than going Unicode-aware, for fidelity.
var (
	nonAlphaNumericRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespaceRe      = regexp.MustCompile(`\s`)
	linebreakRe       = regexp.MustCompile(`[\r\n]`)
	blanklineEndRe    = regexp.MustCompile(`\n\r?\n$`)
	blanklineStartRe  = regexp.MustCompile(`^\r?\n\r?\n`)
)

// boundaryScore scores how good a split point between one and two is, from
// 0 (arbitrary) to 6 (ideal, e.g. at a string edge).
func boundaryScore(one, two string) int {
	if one == "" || two == "" {
		return 6
	}

	char1 := string(one[len(one)-1])
	char2 := string(two[0])

	nonAlnum1 := nonAlphaNumericRe.MatchString(char1)
	nonAlnum2 := nonAlphaNumericRe.MatchString(char2)
	whitespace1 := nonAlnum1 && whitespaceRe.MatchString(char1)
	whitespace2 := nonAlnum2 && whitespaceRe.MatchString(char2)
	linebreak1 := whitespace1 && linebreakRe.MatchString(char1)
	linebreak2 := whitespace2 && linebreakRe.MatchString(char2)
	blankline1 := linebreak1 && blanklineEndRe.MatchString(one)
	blankline2 := linebreak2 && blanklineStartRe.MatchString(two)

	switch {
	case blankline1 || blankline2:
		return 5
	case linebreak1 || linebreak2:
		return 4
	case nonAlnum1 && !whitespace1 && whitespace2:
		return 3
	case whitespace1 || whitespace2:
		return 2
	case nonAlnum1 || nonAlnum2:
		return 1
	default:
		return 0
	}
}

// cleanupSemanticLossless shifts each single edit surrounded by equalities
// sideways to land on the best-scoring logical boundary (word, sentence,
// or line break), so a diff like "The c<ins>at c</ins>ame." becomes
// "The <ins>cat </ins>came." instead.
func cleanupSemanticLossless(diffs DiffList) DiffList {
	diffs = diffs.clone()
	pointer := 1
	for pointer < len(diffs)-1 {
		if diffs[pointer-1].Op == Equal && diffs[pointer+1].Op == Equal {
			equality1 := diffs[pointer-1].Text
			edit := diffs[pointer].Text
			equality2 := diffs[pointer+1].Text

			if commonOffset := textutil.CommonSuffix(equality1, edit); commonOffset > 0 {
				commonString := edit[len(edit)-commonOffset:]
				equality1 = equality1[:len(equality1)-commonOffset]
				edit = commonString + edit[:len(edit)-commonOffset]
				equality2 = commonString + equality2
			}

			bestEquality1, bestEdit, bestEquality2 := equality1, edit, equality2
			bestScore := boundaryScore(equality1, edit) + boundaryScore(edit, equality2)

			for len(edit) != 0 && len(equality2) != 0 && edit[0] == equality2[0] {
				equality1 += string(edit[0])
				edit = edit[1:] + string(equality2[0])
				equality2 = equality2[1:]
				// >= (not >) biases ties toward trailing rather than
				// leading whitespace on the edit.
				if s := boundaryScore(equality1, edit) + boundaryScore(edit, equality2); s >= bestScore {
					bestScore = s
					bestEquality1, bestEdit, bestEquality2 = equality1, edit, equality2
				}
			}

			if diffs[pointer-1].Text != bestEquality1 {
				if bestEquality1 != "" {
					diffs[pointer-1].Text = bestEquality1
				} else {
					diffs = append(diffs[:pointer-1], diffs[pointer:]...)
					pointer--
				}
				diffs[pointer].Text = bestEdit
				if bestEquality2 != "" {
					diffs[pointer+1].Text = bestEquality2
				} else {
					diffs = append(diffs[:pointer+1], diffs[pointer+2:]...)
					pointer--
				}
			}
		}
		pointer++
	}
	return diffs
}

// cleanupEfficiency eliminates equalities that are operationally (not
// semantically) trivial: short equalities flanked by edits on both sides,
// where combining everything into one bigger edit costs less than
// editCost extra "characters" of bookkeeping.
func cleanupEfficiency(diffs DiffList, editCost int) DiffList {
	diffs = diffs.clone()
	changed := false
	var equalities []int
	lastEquality := ""
	preIns, preDel, postIns, postDel := false, false, false, false

	pointer := 0
	for pointer < len(diffs) {
		if diffs[pointer].Op == Equal {
			if len(diffs[pointer].Text) < editCost && (postIns || postDel) {
				equalities = append(equalities, pointer)
				preIns, preDel = postIns, postDel
				lastEquality = diffs[pointer].Text
			} else {
				equalities = equalities[:0]
				lastEquality = ""
			}
			postIns, postDel = false, false
		} else {
			if diffs[pointer].Op == Delete {
				postDel = true
			} else {
				postIns = true
			}

			sumPres := 0
			for _, b := range []bool{preIns, preDel, postIns, postDel} {
				if b {
					sumPres++
				}
			}
			if lastEquality != "" &&
				((preIns && preDel && postIns && postDel) ||
					(len(lastEquality) < editCost/2 && sumPres == 3)) {
				insPoint := equalities[len(equalities)-1]

				rebuilt := make(DiffList, 0, len(diffs)+1)
				rebuilt = append(rebuilt, diffs[:insPoint]...)
				rebuilt = append(rebuilt, DiffRecord{Delete, lastEquality}, DiffRecord{Insert, lastEquality})
				rebuilt = append(rebuilt, diffs[insPoint+1:]...)
				diffs = rebuilt

				equalities = equalities[:len(equalities)-1]
				lastEquality = ""
				if preIns && preDel {
					// The new pair doesn't invalidate earlier candidates,
					// but they'd need their own post flags recomputed, so
					// just drop the stack and keep scanning forward.
					postIns, postDel = true, true
					equalities = equalities[:0]
				} else {
					if len(equalities) > 0 {
						equalities = equalities[:len(equalities)-1]
					}
					if len(equalities) > 0 {
						pointer = equalities[len(equalities)-1]
					} else {
						pointer = -1
					}
					postIns, postDel = true, false
				}
				changed = true
			}
		}
		pointer++
	}

	if changed {
		diffs = cleanupMerge(diffs)
	}
	return diffs
}
