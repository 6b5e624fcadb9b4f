package diffmatchpatch

import (
	"strings"

	"github.com/espresso3389/diff-match-patch/internal/bisect"
	"github.com/espresso3389/diff-match-patch/internal/textutil"
)

// DiffOption configures a single Diff call.
type DiffOption func(*diffConfig)

type diffConfig struct {
	checkLines bool
	continueFn func() bool
}

// WithoutLineMode disables the line-mode pre-reduction that Diff otherwise
// applies when both inputs exceed 100 code units. Useful when a caller
// already knows the inputs are short, or wants a character-exact bisection
// regardless of input size.
func WithoutLineMode() DiffOption {
	return func(c *diffConfig) { c.checkLines = false }
}

// WithContinuation supplies a cooperative cancellation predicate, polled at
// the top of every outer iteration of the Myers bisection. Once it returns
// false, the bisection abandons the in-progress subproblem and Diff emits
// the conservative [Delete(text1), Insert(text2)] fallback for that
// subproblem; the overall result stays well-formed but may not be minimal.
// fn must not retain or mutate anything about the diff being built.
func WithContinuation(fn func() bool) DiffOption {
	return func(c *diffConfig) { c.continueFn = fn }
}

// Diff computes an edit script that transforms text1 into text2.
func Diff(text1, text2 string, opts ...DiffOption) DiffList {
	cfg := diffConfig{checkLines: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return diffMain(text1, text2, cfg)
}

func diffMain(text1, text2 string, cfg diffConfig) DiffList {
	if text1 == text2 {
		if len(text1) == 0 {
			return nil
		}
		return DiffList{{Equal, text1}}
	}

	prefixLen := textutil.CommonPrefix(text1, text2)
	prefix := text1[:prefixLen]
	text1, text2 = text1[prefixLen:], text2[prefixLen:]

	suffixLen := textutil.CommonSuffix(text1, text2)
	suffix := text1[len(text1)-suffixLen:]
	text1 = text1[:len(text1)-suffixLen]
	text2 = text2[:len(text2)-suffixLen]

	diffs := diffCompute(text1, text2, cfg)

	if len(prefix) > 0 {
		diffs = append(DiffList{{Equal, prefix}}, diffs...)
	}
	if len(suffix) > 0 {
		diffs = append(diffs, DiffRecord{Equal, suffix})
	}
	return cleanupMerge(diffs)
}

func diffCompute(text1, text2 string, cfg diffConfig) DiffList {
	if len(text1) == 0 {
		return DiffList{{Insert, text2}}
	}
	if len(text2) == 0 {
		return DiffList{{Delete, text1}}
	}

	longText, shortText := text2, text1
	longIsText1 := false
	if len(text1) > len(text2) {
		longText, shortText = text1, text2
		longIsText1 = true
	}

	if i := strings.Index(longText, shortText); i != -1 {
		op := Insert
		if longIsText1 {
			op = Delete
		}
		return DiffList{
			{op, longText[:i]},
			{Equal, shortText},
			{op, longText[i+len(shortText):]},
		}
	}

	if len(shortText) == 1 {
		return DiffList{{Delete, text1}, {Insert, text2}}
	}

	if a1, b1, a2, b2, mid, ok := halfMatch(text1, text2); ok {
		diffsA := diffMain(a1, a2, cfg)
		diffsB := diffMain(b1, b2, cfg)
		out := append(diffsA, DiffRecord{Equal, mid})
		return append(out, diffsB...)
	}

	if cfg.checkLines && len(text1) > 100 && len(text2) > 100 {
		return diffLineMode(text1, text2, cfg)
	}

	return diffBisect(text1, text2, cfg)
}

// halfMatch reports whether text1 and text2 share a substring at least
// half the length of the longer text, and if so returns the four
// surrounding fragments (prefix1, suffix1, prefix2, suffix2) plus the
// common middle. The fragments are always given as text1's prefix and
// suffix followed by text2's, whichever of the two is longer.
func halfMatch(text1, text2 string) (prefix1, suffix1, prefix2, suffix2, mid string, ok bool) {
	longText, shortText := text2, text1
	text1Longer := false
	if len(text1) > len(text2) {
		longText, shortText = text1, text2
		text1Longer = true
	}
	if len(longText) < 4 || len(shortText)*2 < len(longText) {
		return "", "", "", "", "", false
	}

	hm1, ok1 := halfMatchSeed(longText, shortText, (len(longText)+3)/4)
	hm2, ok2 := halfMatchSeed(longText, shortText, (len(longText)+1)/2)

	var hm [5]string
	switch {
	case !ok1 && !ok2:
		return "", "", "", "", "", false
	case !ok2:
		hm = hm1
	case !ok1:
		hm = hm2
	default:
		if len(hm1[4]) > len(hm2[4]) {
			hm = hm1
		} else {
			hm = hm2
		}
	}

	if text1Longer {
		return hm[0], hm[1], hm[2], hm[3], hm[4], true
	}
	return hm[2], hm[3], hm[0], hm[1], hm[4], true
}

// halfMatchSeed looks for a substring of shorttext that is at least half
// the length of longtext, seeded by the quarter-length substring of
// longtext starting at i.
func halfMatchSeed(long, short string, i int) (result [5]string, ok bool) {
	seed := long[i : i+len(long)/4]

	var bestCommon, bestLongA, bestLongB, bestShortA, bestShortB string
	j := strings.Index(short, seed)
	for j != -1 {
		prefixLen := textutil.CommonPrefix(long[i:], short[j:])
		suffixLen := textutil.CommonSuffix(long[:i], short[:j])
		if len(bestCommon) < suffixLen+prefixLen {
			bestCommon = short[j-suffixLen:j] + short[j:j+prefixLen]
			bestLongA = long[:i-suffixLen]
			bestLongB = long[i+prefixLen:]
			bestShortA = short[:j-suffixLen]
			bestShortB = short[j+prefixLen:]
		}
		next := strings.Index(short[j+1:], seed)
		if next == -1 {
			break
		}
		j = j + 1 + next
	}

	if len(bestCommon)*2 >= len(long) {
		return [5]string{bestLongA, bestLongB, bestShortA, bestShortB, bestCommon}, true
	}
	return result, false
}

// diffLineMode does a quick line-level diff, expands it back to text, runs
// cleanupSemantic to kill freak matches such as blank-line coincidences,
// then re-diffs any consecutive delete/insert run character-by-character
// for accuracy. This speedup can produce non-minimal diffs.
func diffLineMode(text1, text2 string, cfg diffConfig) DiffList {
	lineText1, lineText2, lineArray := textutil.LinesToChars(text1, text2)

	lineCfg := cfg
	lineCfg.checkLines = false
	diffs := diffMain(lineText1, lineText2, lineCfg)

	textutil.CharsToLines(diffs, lineArray,
		func(d DiffRecord) string { return d.Text },
		func(d *DiffRecord, s string) { d.Text = s })
	diffs = cleanupSemantic(diffs)

	// Append a sentinel equality so the final accumulated run always flushes.
	diffs = append(diffs, DiffRecord{Equal, ""})

	var out DiffList
	var textDelete, textInsert strings.Builder
	flush := func() {
		if textDelete.Len() == 0 && textInsert.Len() == 0 {
			return
		}
		out = append(out, diffMain(textDelete.String(), textInsert.String(), lineCfg)...)
		textDelete.Reset()
		textInsert.Reset()
	}
	for _, d := range diffs {
		switch d.Op {
		case Insert:
			textInsert.WriteString(d.Text)
		case Delete:
			textDelete.WriteString(d.Text)
		case Equal:
			flush()
			if len(d.Text) > 0 {
				out = append(out, d)
			}
		}
	}
	return out
}

func diffBisect(text1, text2 string, cfg diffConfig) DiffList {
	x, y, ok := bisect.Split(text1, text2, cfg.continueFn)
	if !ok {
		return DiffList{{Delete, text1}, {Insert, text2}}
	}
	subCfg := cfg
	subCfg.checkLines = false
	a := diffMain(text1[:x], text2[:y], subCfg)
	b := diffMain(text1[x:], text2[y:], subCfg)
	return append(a, b...)
}
