package diffmatchpatch

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is the operation carried by a DiffRecord.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int8

const (
	Equal  Op = iota // Text present, unchanged, on both sides.
	Insert           // Text present only in the new side.
	Delete           // Text present only in the old side.
)

// DiffRecord is a single (operation, text) record. Text is a run of code units;
// Op says whether that run is shared (Equal), only on the new side
// (Insert), or only on the old side (Delete).
//
// A zero-length Text is only ever observed transiently inside a cleanup
// pass; no function in this package returns a DiffList containing one.
type DiffRecord struct {
	Op   Op
	Text string
}

// DiffList is an ordered edit script. After cleanupMerge has run over it
// (Diff runs it on every result it returns; FromDelta does not):
//
//   - No two adjacent records share an Op.
//   - No Equal record has empty Text.
//   - Concatenating the Text of every record whose Op != Insert reproduces
//     the original "old" text (see Text1); excluding Delete reproduces the
//     "new" text (see Text2).
type DiffList []DiffRecord

// clone returns a copy backed by its own array, so the records can be
// changed without affecting d. The Text strings are shared, which is safe
// because Go strings are immutable.
func (d DiffList) clone() DiffList {
	if d == nil {
		return nil
	}
	out := make(DiffList, len(d))
	copy(out, d)
	return out
}

// Text1 concatenates the Text of every record whose Op is not Insert,
// reproducing the pre-image ("old") text the DiffList was computed from.
func (d DiffList) Text1() string {
	var b []byte
	n := 0
	for _, r := range d {
		if r.Op != Insert {
			n += len(r.Text)
		}
	}
	b = make([]byte, 0, n)
	for _, r := range d {
		if r.Op != Insert {
			b = append(b, r.Text...)
		}
	}
	return string(b)
}

// Text2 concatenates the Text of every record whose Op is not Delete,
// reproducing the post-image ("new") text the DiffList was computed from.
func (d DiffList) Text2() string {
	var b []byte
	n := 0
	for _, r := range d {
		if r.Op != Delete {
			n += len(r.Text)
		}
	}
	b = make([]byte, 0, n)
	for _, r := range d {
		if r.Op != Delete {
			b = append(b, r.Text...)
		}
	}
	return string(b)
}

// Levenshtein returns the Levenshtein distance implied by d: the number of
// inserted, deleted, or substituted characters, where an adjacent
// insertion/deletion pair counts as a single substitution.
func (d DiffList) Levenshtein() int {
	total := 0
	insertions, deletions := 0, 0
	for _, r := range d {
		switch r.Op {
		case Insert:
			insertions += len(r.Text)
		case Delete:
			deletions += len(r.Text)
		case Equal:
			total += max(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	total += max(insertions, deletions)
	return total
}

// XIndex maps loc, a 0-based index into the side-A (old) coordinate space
// of d, to the corresponding index in side-B (new) coordinate space. A loc
// that falls inside a Delete is attributed to the start of that Delete.
func (d DiffList) XIndex(loc int) int {
	chars1, chars2 := 0, 0
	lastChars1, lastChars2 := 0, 0
	var lastOp Op = Equal
	found := false
	for _, r := range d {
		if r.Op != Insert {
			chars1 += len(r.Text)
		}
		if r.Op != Delete {
			chars2 += len(r.Text)
		}
		if chars1 > loc {
			lastOp = r.Op
			found = true
			break
		}
		lastChars1, lastChars2 = chars1, chars2
	}
	if found && lastOp == Delete {
		return lastChars2
	}
	return lastChars2 + (loc - lastChars1)
}

// ToDelta renders d as a compact, patch-independent delta: one tab-
// separated token per record, "+<percent-encoded text>" for Insert,
// "-<length>" for Delete, "=<length>" for Equal. FromDelta, given the same
// text1 d was computed against, is its inverse.
func (d DiffList) ToDelta() string {
	tokens := make([]string, len(d))
	for i, r := range d {
		switch r.Op {
		case Insert:
			tokens[i] = "+" + percentEncode(r.Text)
		case Delete:
			tokens[i] = "-" + strconv.Itoa(len(r.Text))
		case Equal:
			tokens[i] = "=" + strconv.Itoa(len(r.Text))
		}
	}
	return strings.Join(tokens, "\t")
}

// FromDelta reconstructs the DiffList that ToDelta encoded, recovering
// Delete/Equal text by slicing text1 (which must be the same pre-image
// ToDelta's receiver was computed from). Returns ErrInvalidDelta if a
// token is malformed, its length would overrun text1, or the decoded
// tokens don't account for the whole of text1; ErrIllegalEscape if an
// Insert token's percent-encoding can't be decoded.
func FromDelta(text1, delta string) (DiffList, error) {
	var diffs DiffList
	pointer := 0

	if delta != "" {
		for _, token := range strings.Split(delta, "\t") {
			if token == "" {
				continue
			}
			param := token[1:]
			switch token[0] {
			case '+':
				text, err := percentDecode(param)
				if err != nil {
					return nil, err
				}
				diffs = append(diffs, DiffRecord{Insert, text})
			case '-', '=':
				n, err := strconv.Atoi(param)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("%w: invalid length %q", ErrInvalidDelta, param)
				}
				if pointer+n > len(text1) {
					return nil, fmt.Errorf("%w: length %d overruns source text at offset %d", ErrInvalidDelta, n, pointer)
				}
				text := text1[pointer : pointer+n]
				pointer += n
				op := Equal
				if token[0] == '-' {
					op = Delete
				}
				diffs = append(diffs, DiffRecord{op, text})
			default:
				return nil, fmt.Errorf("%w: unrecognized operation %q", ErrInvalidDelta, token[:1])
			}
		}
	}

	if pointer != len(text1) {
		return nil, fmt.Errorf("%w: delta accounts for %d of %d source characters", ErrInvalidDelta, pointer, len(text1))
	}
	return diffs, nil
}
