package codec

import "errors"

// Sentinel errors returned (wrapped) by the codec. Callers match them with
// errors.Is.
var (
	// ErrFormatMismatch means a table's magic header bytes did not match:
	// the file is a different table type, or corrupted.
	ErrFormatMismatch = errors.New("format mismatch")

	// ErrMalformedIdentifier means a GUID or series string does not match
	// its fixed grammar.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrOutOfRange means an integer does not fit its target width and
	// signedness, or a length-prefixed string exceeds 255 UTF-8 bytes.
	ErrOutOfRange = errors.New("value out of range")

	// ErrTruncatedInput means the cursor ran past the available bytes:
	// the file is short or corrupted.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrMalformedField means a derived field (such as a voice cue string)
	// does not parse into its expected shape.
	ErrMalformedField = errors.New("malformed field")
)
