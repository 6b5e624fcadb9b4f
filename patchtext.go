package diffmatchpatch

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// PatchApplyOption configures a single PatchApply call.
type PatchApplyOption func(*patchApplyConfig)

type patchApplyConfig struct {
	matchThreshold  float64
	matchDistance   int
	deleteThreshold float64
	margin          int
}

// WithPatchMatchThreshold sets the match threshold PatchApply passes to the
// fuzzy matcher when relocating each patch. Default 0.5.
func WithPatchMatchThreshold(threshold float64) PatchApplyOption {
	return func(c *patchApplyConfig) { c.matchThreshold = threshold }
}

// WithPatchMatchDistance sets the match distance PatchApply passes to the
// fuzzy matcher when relocating each patch. Default 1000.
func WithPatchMatchDistance(distance int) PatchApplyOption {
	return func(c *patchApplyConfig) { c.matchDistance = distance }
}

// WithDeleteThreshold sets the maximum fraction of a too-large patch's
// pre-image that may differ (by Levenshtein distance) from the located
// window before PatchApply gives up on that patch. Default 0.5.
func WithDeleteThreshold(threshold float64) PatchApplyOption {
	return func(c *patchApplyConfig) { c.deleteThreshold = threshold }
}

// WithPatchMargin sets the context margin PatchApply uses for padding and
// splitting. Default 4.
func WithPatchMargin(margin int) PatchApplyOption {
	return func(c *patchApplyConfig) { c.margin = margin }
}

// PatchesToText renders patches in the textual format PatchesFromText
// parses back.
func PatchesToText(patches []Patch) string {
	var b strings.Builder
	for _, p := range patches {
		b.WriteString(p.String())
	}
	return b.String()
}

var patchHeaderRe = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@$`)

// PatchesFromText parses the textual format PatchesToText produces. Returns
// ErrInvalidPatch if a line is neither a valid header nor a valid body
// line, or ErrIllegalEscape if a body line's percent-encoding is malformed.
func PatchesFromText(text string) ([]Patch, error) {
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	var patches []Patch
	i := 0

	for i < len(lines) {
		if lines[i] == "" {
			i++
			continue
		}

		m := patchHeaderRe.FindStringSubmatch(lines[i])
		if m == nil {
			return nil, fmt.Errorf("%w: invalid patch header %q", ErrInvalidPatch, lines[i])
		}
		i++

		p := Patch{}
		p.Start1, _ = strconv.Atoi(m[1])
		switch m[2] {
		case "":
			p.Start1--
			p.Length1 = 1
		case "0":
			p.Length1 = 0
		default:
			p.Start1--
			p.Length1, _ = strconv.Atoi(m[2])
		}

		p.Start2, _ = strconv.Atoi(m[3])
		switch m[4] {
		case "":
			p.Start2--
			p.Length2 = 1
		case "0":
			p.Length2 = 0
		default:
			p.Start2--
			p.Length2, _ = strconv.Atoi(m[4])
		}

		for i < len(lines) && lines[i] != "" {
			line := lines[i]
			if line[0] == '@' {
				break
			}

			var op Op
			switch line[0] {
			case '+':
				op = Insert
			case '-':
				op = Delete
			case ' ':
				op = Equal
			default:
				return nil, fmt.Errorf("%w: body line has no +/-/space prefix: %q", ErrInvalidPatch, line)
			}

			decoded, err := percentDecode(line[1:])
			if err != nil {
				return nil, err
			}
			p.Diffs = append(p.Diffs, DiffRecord{op, decoded})
			i++
		}

		patches = append(patches, p)
	}

	return patches, nil
}

// uriSafe lists the percent-escapes this format leaves unescaped beyond
// plain RFC 3986 unreserved characters and space, matching the reference
// encoder's broader safe set.
var uriSafe = [...][2]string{
	{"%21", "!"}, {"%7E", "~"}, {"%27", "'"}, {"%28", "("}, {"%29", ")"},
	{"%3B", ";"}, {"%2F", "/"}, {"%3F", "?"}, {"%3A", ":"}, {"%40", "@"},
	{"%26", "&"}, {"%3D", "="}, {"%2B", "+"}, {"%24", "$"}, {"%2C", ","},
	{"%23", "#"},
}

// percentEncode percent-encodes s, keeping literal spaces (rather than
// "+" or "%20") and the extra characters in uriSafe unescaped.
func percentEncode(s string) string {
	encoded := url.QueryEscape(s)
	encoded = strings.ReplaceAll(encoded, "+", " ")
	for _, pair := range uriSafe {
		encoded = strings.ReplaceAll(encoded, pair[0], pair[1])
	}
	return encoded
}

// percentDecode is the inverse of percentEncode. A malformed %XX escape
// returns ErrIllegalEscape.
func percentDecode(s string) (string, error) {
	// Protect literal "+" (restored by percentEncode from %2B) before
	// handing off to QueryUnescape, which otherwise reads "+" as a
	// pre-decoded space; literal space needs no such protection since
	// QueryUnescape passes unrecognized bytes through unchanged.
	decoded, err := url.QueryUnescape(strings.ReplaceAll(s, "+", "%2B"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIllegalEscape, err)
	}
	return decoded, nil
}
