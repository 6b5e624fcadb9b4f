// Package diffmatchpatch implements a text difference, approximate-match,
// and patch engine operating on in-memory strings.
//
// Three pieces share the same data model:
//
//   - Diff computes a minimal-ish edit script between two strings: prefix/
//     suffix trimming, half-match decomposition, a line-mode pre-reduction
//     for large inputs, Myers bisection, and a family of cleanup passes
//     that make the script more useful to a human or a patcher.
//   - Match locates the closest fuzzy occurrence of a pattern in a text
//     near an expected location, using a bit-parallel (bitap) scan with an
//     error budget governed by a threshold and a distance.
//   - Patch turns a diff (or a pair of texts) into a portable, position-
//     independent patch list: each patch carries enough context to be
//     relocated with Match against a derivative of the original text, and
//     patch application reports per-patch success.
//
// All three are pure, synchronous, and CPU-bound: no I/O, no goroutines, no
// package-level state. The only cooperative cancellation point is the
// optional continuation callback passed to Diff.
package diffmatchpatch
