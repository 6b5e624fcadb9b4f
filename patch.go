package diffmatchpatch

import (
	"strconv"
	"strings"

	"github.com/espresso3389/diff-match-patch/internal/bitap"
)

// Patch is a single edit fragment, relocatable within a possibly-drifted
// derivative of the text it was cut from: Diffs carries the edit plus
// enough surrounding Equal context for PatchApply to relocate it with the
// fuzzy matcher, and the start/length fields record its original position.
type Patch struct {
	Diffs  DiffList
	Start1 int
	Start2 int
	// Length1/Length2 are stored rather than computed from Diffs. The
	// functions in this package that build or modify patches keep them
	// equal to len(Diffs.Text1()) and len(Diffs.Text2()); PatchesFromText
	// takes them from the header without checking them against the body.
	Length1 int
	Length2 int
}

// BitsPerWord bounds the fuzzy matcher's pattern length and the patch
// splitter's per-patch size: both exist so a patch (or the text window the
// matcher scans) never outgrows a single machine word of bitap state.
const BitsPerWord = bitap.MaxPattern

// PatchDeepCopy returns an independent copy of patches: every contained
// DiffList is its own slice, safe to mutate without affecting the
// original.
func PatchDeepCopy(patches []Patch) []Patch {
	out := make([]Patch, len(patches))
	for i, p := range patches {
		out[i] = p
		out[i].Diffs = p.Diffs.clone()
	}
	return out
}

// String renders a single patch in the textual format PatchesToText
// concatenates.
func (p Patch) String() string {
	var b strings.Builder
	writePatchHeader(&b, p)
	for _, d := range p.Diffs {
		var prefix byte
		switch d.Op {
		case Insert:
			prefix = '+'
		case Delete:
			prefix = '-'
		case Equal:
			prefix = ' '
		}
		b.WriteByte(prefix)
		b.WriteString(percentEncode(d.Text))
		b.WriteByte('\n')
	}
	return b.String()
}

func writePatchHeader(b *strings.Builder, p Patch) {
	b.WriteString("@@ -")
	b.WriteString(coordString(p.Start1, p.Length1))
	b.WriteString(" +")
	b.WriteString(coordString(p.Start2, p.Length2))
	b.WriteString(" @@\n")
}

// coordString renders one side of a patch header's coordinate pair per the
// length-omission rules: length 0 is written as "start,0"; length 1 omits
// the length entirely; anything else is "start+1,length".
func coordString(start, length int) string {
	switch length {
	case 0:
		return strconv.Itoa(start) + ",0"
	case 1:
		return strconv.Itoa(start + 1)
	default:
		return strconv.Itoa(start+1) + "," + strconv.Itoa(length)
	}
}

// PatchFromTexts computes the diff between text1 and text2 internally
// (applying cleanupSemantic, then cleanupEfficiency with the default edit
// cost when that leaves more than two records) and builds a patch list
// from the result.
func PatchFromTexts(text1, text2 string) []Patch {
	diffs := Diff(text1, text2)
	if len(diffs) > 2 {
		diffs = cleanupSemantic(diffs)
		diffs = cleanupEfficiency(diffs, 4)
	}
	return PatchFromTextAndDiffs(text1, diffs)
}

// PatchFromDiffs builds a patch list directly from diffs, using
// diffs.Text1() as the pre-image text.
func PatchFromDiffs(diffs DiffList) []Patch {
	return PatchFromTextAndDiffs(diffs.Text1(), diffs)
}

// PatchFromTextAndDiffs is the optimal-form constructor: text1 must equal
// diffs.Text1(); callers that already have both avoid PatchFromDiffs
// recomputing it.
func PatchFromTextAndDiffs(text1 string, diffs DiffList) []Patch {
	const margin = 4

	if len(diffs) == 0 {
		return nil
	}

	var patches []Patch
	var cur Patch
	charCount1, charCount2 := 0, 0
	prepatchText := text1
	postpatchText := text1

	closePatch := func() {
		if len(cur.Diffs) == 0 {
			return
		}
		patchAddContext(&cur, prepatchText, margin)
		patches = append(patches, cur)
		cur = Patch{}
		prepatchText = postpatchText
		charCount1 = charCount2
	}

	for i, d := range diffs {
		if len(cur.Diffs) == 0 && d.Op != Equal {
			cur.Start1, cur.Start2 = charCount1, charCount2
		}

		switch d.Op {
		case Insert:
			cur.Diffs = append(cur.Diffs, d)
			cur.Length2 += len(d.Text)
			postpatchText = postpatchText[:charCount2] + d.Text + postpatchText[charCount2:]
		case Delete:
			cur.Diffs = append(cur.Diffs, d)
			cur.Length1 += len(d.Text)
			postpatchText = postpatchText[:charCount2] + postpatchText[charCount2+len(d.Text):]
		case Equal:
			if len(d.Text) <= 2*margin && len(cur.Diffs) != 0 && i != len(diffs)-1 {
				cur.Diffs = append(cur.Diffs, d)
				cur.Length1 += len(d.Text)
				cur.Length2 += len(d.Text)
			}
			if len(d.Text) >= 2*margin {
				closePatch()
			}
		}

		if d.Op != Insert {
			charCount1 += len(d.Text)
		}
		if d.Op != Delete {
			charCount2 += len(d.Text)
		}
	}
	closePatch()

	return patches
}

// PatchMake is a source-compatible dispatcher over the PatchFrom* family,
// mirroring the reference API's overloaded patch_make. Prefer calling the
// typed constructor directly; use this only where call-site shape isn't
// known until runtime.
func PatchMake(args ...any) ([]Patch, error) {
	switch len(args) {
	case 1:
		if diffs, ok := args[0].(DiffList); ok {
			return PatchFromDiffs(diffs), nil
		}
	case 2:
		text1, ok1 := args[0].(string)
		if ok1 {
			if text2, ok2 := args[1].(string); ok2 {
				return PatchFromTexts(text1, text2), nil
			}
			if diffs, ok2 := args[1].(DiffList); ok2 {
				return PatchFromTextAndDiffs(text1, diffs), nil
			}
		}
	case 3:
		text1, ok1 := args[0].(string)
		_, ok2 := args[1].(string)
		diffs, ok3 := args[2].(DiffList)
		if ok1 && ok2 && ok3 {
			return PatchFromTextAndDiffs(text1, diffs), nil
		}
	}
	return nil, ErrInvalidArguments
}

// patchAddContext extracts p's pre-image window from text and widens it by
// margin code units on each side while the window remains non-unique
// within text (so the matcher has something to disambiguate on), stopping
// once the window is at least BitsPerWord-2*margin long. One more margin is
// then added on each side, and the context is attached as Equal records;
// the finished window can therefore be longer than BitsPerWord.
func patchAddContext(p *Patch, text string, margin int) {
	if len(text) == 0 {
		return
	}
	pattern := text[p.Start2 : p.Start2+p.Length1]
	padding := 0

	for strings.Index(text, pattern) != strings.LastIndex(text, pattern) &&
		len(pattern) < BitsPerWord-2*margin {
		padding += margin
		start := max(0, p.Start2-padding)
		end := min(len(text), p.Start2+p.Length1+padding)
		pattern = text[start:end]
	}
	padding += margin

	prefixStart := max(0, p.Start2-padding)
	prefix := text[prefixStart:p.Start2]
	if prefix != "" {
		p.Diffs = append(DiffList{{Equal, prefix}}, p.Diffs...)
	}

	suffixEnd := min(len(text), p.Start2+p.Length1+padding)
	suffix := text[p.Start2+p.Length1 : suffixEnd]
	if suffix != "" {
		p.Diffs = append(p.Diffs, DiffRecord{Equal, suffix})
	}

	p.Start1 -= len(prefix)
	p.Start2 -= len(prefix)
	p.Length1 += len(prefix) + len(suffix)
	p.Length2 += len(prefix) + len(suffix)
}

// PatchAddPadding prepends/appends a short run of low-valued code units
// (U+0001..U+margin) around the first/last patch's edges so PatchApply has
// something to anchor edge-adjacent edits to, and returns that padding
// string for the caller to also wrap the subject text in.
func PatchAddPadding(patches []Patch, margin int) string {
	runes := make([]rune, margin)
	for i := range runes {
		runes[i] = rune(i + 1)
	}
	padding := string(runes)

	for i := range patches {
		patches[i].Start1 += margin
		patches[i].Start2 += margin
	}

	if len(patches) == 0 {
		return padding
	}

	first := &patches[0]
	if len(first.Diffs) == 0 || first.Diffs[0].Op != Equal {
		first.Diffs = append(DiffList{{Equal, padding}}, first.Diffs...)
		first.Start1 -= margin
		first.Start2 -= margin
		first.Length1 += margin
		first.Length2 += margin
	} else if margin > len(first.Diffs[0].Text) {
		extra := margin - len(first.Diffs[0].Text)
		first.Diffs[0].Text = padding[len(padding)-extra:] + first.Diffs[0].Text
		first.Start1 -= extra
		first.Start2 -= extra
		first.Length1 += extra
		first.Length2 += extra
	}

	last := &patches[len(patches)-1]
	if len(last.Diffs) == 0 || last.Diffs[len(last.Diffs)-1].Op != Equal {
		last.Diffs = append(last.Diffs, DiffRecord{Equal, padding})
		last.Length1 += margin
		last.Length2 += margin
	} else if margin > len(last.Diffs[len(last.Diffs)-1].Text) {
		extra := margin - len(last.Diffs[len(last.Diffs)-1].Text)
		last.Diffs[len(last.Diffs)-1].Text += padding[:extra]
		last.Length1 += extra
		last.Length2 += extra
	}

	return padding
}

// PatchSplitMax replaces, in place within the returned slice, every patch
// whose Length1 exceeds BitsPerWord with a run of smaller patches whose
// Length1 each fit within it, carrying up to margin code units of rolling
// context between the pieces. The one exception is a deletion longer than
// 2*BitsPerWord that directly follows a piece's lone leading Equal: it is
// kept whole, so that piece's Length1 exceeds BitsPerWord.
func PatchSplitMax(patches []Patch, margin int) []Patch {
	patchSize := BitsPerWord
	var out []Patch

	for _, p := range patches {
		if p.Length1 <= patchSize {
			out = append(out, p)
			continue
		}

		start1, start2 := p.Start1, p.Start2
		precontext := ""
		diffs := p.Diffs.clone()

		for len(diffs) > 0 {
			cur := Patch{Start1: start1 - len(precontext), Start2: start2 - len(precontext)}
			empty := true
			if precontext != "" {
				cur.Length1, cur.Length2 = len(precontext), len(precontext)
				cur.Diffs = append(cur.Diffs, DiffRecord{Equal, precontext})
			}

			for len(diffs) > 0 && cur.Length1 < patchSize-margin {
				d := diffs[0]

				switch {
				case d.Op == Insert:
					cur.Length2 += len(d.Text)
					start2 += len(d.Text)
					cur.Diffs = append(cur.Diffs, d)
					empty = false
					diffs = diffs[1:]

				case d.Op == Delete && len(cur.Diffs) == 1 && cur.Diffs[0].Op == Equal && len(d.Text) > 2*patchSize:
					// Oversized single deletion led by a lone equality:
					// let it through whole rather than truncating, per
					// the reference splitter's documented edge case.
					cur.Length1 += len(d.Text)
					start1 += len(d.Text)
					empty = false
					cur.Diffs = append(cur.Diffs, d)
					diffs = diffs[1:]

				default:
					// Deletion or equality: take only as much as fits.
					size := min(len(d.Text), patchSize-margin-cur.Length1)
					text := d.Text[:size]
					cur.Length1 += size
					start1 += size
					if d.Op == Equal {
						cur.Length2 += size
						start2 += size
					} else {
						empty = false
					}
					cur.Diffs = append(cur.Diffs, DiffRecord{d.Op, text})
					if text == d.Text {
						diffs = diffs[1:]
					} else {
						diffs[0] = DiffRecord{d.Op, d.Text[size:]}
					}
				}
			}

			// The tail of what was just emitted seeds the next split
			// patch's leading context; pulled from Text2 since that's
			// the coordinate space start2 (and thus the next patch) is
			// rebased against.
			precontext = cur.Diffs.Text2()
			if len(precontext) > margin {
				precontext = precontext[len(precontext)-margin:]
			}

			remaining := diffs.Text1()
			postcontext := remaining
			if len(postcontext) > margin {
				postcontext = postcontext[:margin]
			}
			if postcontext != "" {
				cur.Length1 += len(postcontext)
				cur.Length2 += len(postcontext)
				if n := len(cur.Diffs); n > 0 && cur.Diffs[n-1].Op == Equal {
					cur.Diffs[n-1].Text += postcontext
				} else {
					cur.Diffs = append(cur.Diffs, DiffRecord{Equal, postcontext})
				}
			}

			if !empty {
				out = append(out, cur)
			}
		}
	}

	return out
}

// PatchApply applies patches to text, returning the resulting text and a
// per-patch success vector. patches is not mutated; PatchApply works on a
// deep copy.
func PatchApply(patches []Patch, text string, opts ...PatchApplyOption) (string, []bool) {
	cfg := patchApplyConfig{
		matchThreshold:  0.5,
		matchDistance:   1000,
		deleteThreshold: 0.5,
		margin:          4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	patches = PatchDeepCopy(patches)
	if len(patches) == 0 {
		return text, nil
	}

	padding := PatchAddPadding(patches, cfg.margin)
	text = padding + text + padding
	patches = PatchSplitMax(patches, cfg.margin)

	results := make([]bool, len(patches))
	delta := 0

	for i, p := range patches {
		expectedLoc := p.Start2 + delta
		text1 := p.Diffs.Text1()

		var startLoc, endLoc int
		if len(text1) > BitsPerWord {
			startLoc = Match(text, text1[:BitsPerWord], expectedLoc,
				WithMatchThreshold(cfg.matchThreshold), WithMatchDistance(cfg.matchDistance))
			endLoc = -1
			if startLoc != -1 {
				endLoc = Match(text, text1[len(text1)-BitsPerWord:], expectedLoc+len(text1)-BitsPerWord,
					WithMatchThreshold(cfg.matchThreshold), WithMatchDistance(cfg.matchDistance))
				if endLoc == -1 || endLoc <= startLoc {
					startLoc = -1
				}
			}
		} else {
			startLoc = Match(text, text1, expectedLoc,
				WithMatchThreshold(cfg.matchThreshold), WithMatchDistance(cfg.matchDistance))
			endLoc = -1
		}

		if startLoc == -1 {
			results[i] = false
			delta -= p.Length2 - p.Length1
			continue
		}

		delta = startLoc - expectedLoc
		var text2 string
		if endLoc == -1 {
			end := min(len(text), startLoc+len(text1))
			text2 = text[startLoc:end]
		} else {
			end := min(len(text), endLoc+BitsPerWord)
			text2 = text[startLoc:end]
		}

		if text1 == text2 {
			text = text[:startLoc] + p.Diffs.Text2() + text[startLoc+len(text1):]
			results[i] = true
			continue
		}

		diffs := Diff(text1, text2, WithoutLineMode())
		if len(text1) > BitsPerWord && float64(diffs.Levenshtein())/float64(len(text1)) > cfg.deleteThreshold {
			results[i] = false
			delta -= p.Length2 - p.Length1
			continue
		}

		diffs = cleanupSemanticLossless(diffs)
		index1 := 0
		for _, d := range p.Diffs {
			if d.Op != Equal {
				index2 := diffs.XIndex(index1)
				switch d.Op {
				case Insert:
					text = text[:startLoc+index2] + d.Text + text[startLoc+index2:]
				case Delete:
					startIndex := startLoc + index2
					text = text[:startIndex] + text[startIndex+diffs.XIndex(index1+len(d.Text))-index2:]
				}
			}
			if d.Op != Delete {
				index1 += len(d.Text)
			}
		}
		results[i] = true
	}

	text = text[len(padding) : len(text)-len(padding)]
	return text, results
}
