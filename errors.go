package diffmatchpatch

import "errors"

// ErrInvalidArguments is returned when a PatchMake-family constructor is
// called with an argument shape it does not recognize. With typed
// constructors (PatchFromTexts, PatchFromDiffs, PatchFromTextAndDiffs) this
// only happens if the caller builds the discriminated dispatcher manually;
// see PatchMake.
var ErrInvalidArguments = errors.New("diffmatchpatch: invalid arguments")

// ErrInvalidPatch is returned by PatchesFromText when a line is neither a
// valid "@@ ... @@" header nor a valid body line.
var ErrInvalidPatch = errors.New("diffmatchpatch: invalid patch")

// ErrIllegalEscape is returned by PatchesFromText when a body line's
// percent-encoding cannot be decoded.
var ErrIllegalEscape = errors.New("diffmatchpatch: illegal escape")

// ErrInvalidDelta is returned by FromDelta when a token is malformed, its
// length would overrun the supplied source text, or the decoded tokens
// don't account for all of it.
var ErrInvalidDelta = errors.New("diffmatchpatch: invalid delta")
