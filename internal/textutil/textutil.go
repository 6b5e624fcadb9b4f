// Package textutil holds the small string-measurement helpers shared by the
// diff, match, and patch engines: common-affix lengths, common-overlap
// length, and the line<->char compression used by the diff engine's
// line-mode speedup.
package textutil

import "strings"

// CommonPrefix returns the number of code units common to the start of a
// and b.
func CommonPrefix(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// CommonSuffix returns the number of code units common to the end of a and
// b.
func CommonSuffix(a, b string) int {
	la, lb := len(a), len(b)
	n := la
	if lb < n {
		n = lb
	}
	for i := 1; i <= n; i++ {
		if a[la-i] != b[lb-i] {
			return i - 1
		}
	}
	return n
}

// CommonOverlap returns the length of the longest suffix of a that is also
// a prefix of b.
func CommonOverlap(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}
	if la > lb {
		a = a[la-lb:]
	} else if la < lb {
		b = b[:la]
	}
	textLength := len(a)
	if len(b) < textLength {
		textLength = len(b)
	}
	if a == b {
		return textLength
	}

	// Start with a one-character suffix of a and look it up in b; each hit
	// at offset found grows the candidate length by found, and a candidate
	// whose suffix of a equals the same-length prefix of b is recorded as
	// the best overlap so far. Stops when the suffix no longer occurs in b.
	best, length := 0, 1
	for {
		pattern := a[textLength-length:]
		found := strings.Index(b, pattern)
		if found == -1 {
			return best
		}
		length += found
		if found == 0 || a[textLength-length:] == b[:length] {
			best = length
			length++
		}
	}
}

// LinesToChars splits text1 and text2 on line boundaries (each line keeps
// its trailing "\n") and assigns each unique line a single code unit
// starting at U+0001, reusing codes across both texts. It returns the two
// encoded strings plus the lookup array (index 0 is an unused sentinel so
// that no line is ever encoded as U+0000).
//
// To keep the alphabet within a single code unit, text1 is capped at 40,000
// distinct lines: once the array would grow past that, the remainder of
// text1 is folded into one final "line" entry. text2 is not capped on its
// own, but it shares the array and will stop minting new entries past the
// same point for the same reason.
func LinesToChars(text1, text2 string) (chars1, chars2 string, lineArray []string) {
	lineArray = []string{""}
	lineHash := map[string]int{}

	chars1 = linesToCharsMunge(text1, &lineArray, lineHash, 40000)
	chars2 = linesToCharsMunge(text2, &lineArray, lineHash, 40000)
	return chars1, chars2, lineArray
}

func linesToCharsMunge(text string, lineArray *[]string, lineHash map[string]int, capAt int) string {
	var runes []rune
	lineStart := 0
	for lineStart < len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		var line string
		if lineEnd == -1 {
			line = text[lineStart:]
			lineStart = len(text)
		} else {
			line = text[lineStart : lineStart+lineEnd+1]
			lineStart += lineEnd + 1
		}
		if capAt > 0 && len(*lineArray) >= capAt {
			// Saturated: fold everything remaining (including this line)
			// into one final entry so the alphabet stays single-code-unit.
			line = text[lineStart-len(line):]
			lineStart = len(text)
		}
		if idx, ok := lineHash[line]; ok {
			runes = append(runes, rune(idx))
			continue
		}
		*lineArray = append(*lineArray, line)
		idx := len(*lineArray) - 1
		lineHash[line] = idx
		runes = append(runes, rune(idx))
	}
	return string(runes)
}

// CharsToLines mutates each diff text in place, replacing the line-code
// alphabet produced by LinesToChars with the original lines it stands for.
// textOf/setText let the caller supply its own diff record type without
// this package depending on one.
func CharsToLines[T any](diffs []T, lineArray []string, textOf func(T) string, setText func(*T, string)) {
	for i := range diffs {
		chars := []rune(textOf(diffs[i]))
		var b strings.Builder
		for _, c := range chars {
			if int(c) < len(lineArray) {
				b.WriteString(lineArray[c])
			}
		}
		setText(&diffs[i], b.String())
	}
}
