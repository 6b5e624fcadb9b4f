package diffmatchpatch

import (
	"strings"

	"github.com/espresso3389/diff-match-patch/internal/bitap"
)

// MatchOption configures a single Match call.
type MatchOption func(*matchConfig)

type matchConfig struct {
	threshold float64
	distance  int
}

// WithMatchThreshold sets how close a match must score to be accepted: 0.0
// requires a perfect match, 1.0 accepts anything. The default is 0.5.
func WithMatchThreshold(threshold float64) MatchOption {
	return func(c *matchConfig) { c.threshold = threshold }
}

// WithMatchDistance sets how far a match can be from the expected location
// before its score is penalized for proximity alone. The default is 1000;
// 0 accepts only a match that starts exactly at loc (any other location
// scores 1.0).
func WithMatchDistance(distance int) MatchOption {
	return func(c *matchConfig) { c.distance = distance }
}

// Match locates the best approximate occurrence of pattern in text, near
// loc, and returns its index, or -1 if nothing scores within the
// configured threshold. loc is clamped into [0, len(text)].
//
// The underlying bitap scan is one machine word wide: patterns longer than
// bitap.MaxPattern (32 code units) fall back to the closest exact
// occurrence of pattern to loc, ignoring threshold/distance.
func Match(text, pattern string, loc int, opts ...MatchOption) int {
	cfg := matchConfig{threshold: 0.5, distance: 1000}
	for _, opt := range opts {
		opt(&cfg)
	}

	if loc < 0 {
		loc = 0
	} else if loc > len(text) {
		loc = len(text)
	}

	if text == pattern {
		return 0
	}
	if len(text) == 0 {
		return -1
	}
	if len(pattern) == 0 {
		return loc
	}

	if loc+len(pattern) <= len(text) && text[loc:loc+len(pattern)] == pattern {
		return loc
	}

	if len(pattern) > bitap.MaxPattern {
		// Pattern too long for the bitap state vector: fall back to the
		// best exact match near loc, since an approximate scan isn't
		// available at this length.
		return bestExactMatchNear(text, pattern, loc)
	}

	return bitap.Search(text, pattern, loc, cfg.threshold, cfg.distance)
}

// bestExactMatchNear returns the occurrence of pattern in text closest to
// loc, or -1 if pattern doesn't occur at all.
func bestExactMatchNear(text, pattern string, loc int) int {
	best := -1
	bestDist := 0
	search := text
	offset := 0
	for {
		i := strings.Index(search, pattern)
		if i == -1 {
			break
		}
		idx := offset + i
		d := idx - loc
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDist {
			best, bestDist = idx, d
		}
		offset = idx + 1
		if offset >= len(text) {
			break
		}
		search = text[offset:]
	}
	return best
}
