// Package bisect implements the forward/reverse D-path expansion at the
// heart of the Myers O(ND) difference algorithm: given two strings with no
// common prefix/suffix/substring worth exploiting, find a "middle snake"
// split point (x, y) such that diffing text1[:x] against text2[:y] and
// text1[x:] against text2[y:] separately reproduces a valid, if not always
// globally minimal, edit script for the whole pair.
//
// The caller owns recursion and the diff-record representation; this
// package only finds where to cut.
package bisect

// Split searches for a middle snake in text1 vs text2 and reports where to
// cut both strings. continueFn, if non-nil, is polled once per outer
// iteration (each increment of d); when it returns false the search is
// abandoned and ok is false, signaling the caller to fall back to a single
// whole-string delete+insert.
func Split(text1, text2 string, continueFn func() bool) (x, y int, ok bool) {
	len1, len2 := len(text1), len(text2)
	maxD := (len1 + len2 + 1) / 2
	vOffset := maxD
	vLength := 2 * maxD
	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := len1 - len2
	front := delta%2 != 0

	k1start, k1end := 0, 0
	k2start, k2end := 0, 0
	for d := 0; d < maxD; d++ {
		if continueFn != nil && !continueFn() {
			return 0, 0, false
		}

		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < len1 && y1 < len2 && text1[x1] == text2[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > len1:
				k1end += 2
			case y1 > len2:
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					x2 := len1 - v2[k2Offset]
					if x1 >= x2 {
						return x1, y1, true
					}
				}
			}
		}

		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < len1 && y2 < len2 && text1[len1-x2-1] == text2[len2-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > len1:
				k2end += 2
			case y2 > len2:
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					mirroredX2 := len1 - x2
					if x1 >= mirroredX2 {
						return x1, y1, true
					}
				}
			}
		}
	}
	return 0, 0, false
}
