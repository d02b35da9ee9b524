package codec

import (
	"fmt"
	"unicode/utf8"
)

// ReadUint decodes len(b) little-endian bytes as an unsigned integer.
func ReadUint(b []byte) uint64 {
	var v uint64
	for i, by := range b {
		v |= uint64(by) << (8 * i)
	}
	return v
}

// ReadInt decodes len(b) little-endian bytes as a signed (two's complement)
// integer.
func ReadInt(b []byte) int64 {
	shift := uint(64 - 8*len(b))
	return int64(ReadUint(b)<<shift) >> shift
}

// WriteUint encodes v as width little-endian bytes. Values that do not fit
// the width fail with ErrOutOfRange rather than truncating.
func WriteUint(v uint64, width int) ([]byte, error) {
	if width < 8 && v > (uint64(1)<<(8*width))-1 {
		return nil, fmt.Errorf("%w: %d does not fit uint%d", ErrOutOfRange, v, width)
	}
	out := make([]byte, width)
	for i := range out {
		out[i] = byte(v >> (8 * i))
	}
	return out, nil
}

// WriteInt encodes v as width little-endian two's-complement bytes. Values
// outside [-2^(8w-1), 2^(8w-1)-1] fail with ErrOutOfRange.
func WriteInt(v int64, width int) ([]byte, error) {
	if width < 8 {
		limit := int64(1) << (8*width - 1)
		if v < -limit || v > limit-1 {
			return nil, fmt.Errorf("%w: %d does not fit int%d", ErrOutOfRange, v, width)
		}
	}
	out := make([]byte, width)
	for i := range out {
		out[i] = byte(v >> (8 * i))
	}
	return out, nil
}

// ReadSeries unpacks a 4-byte series identifier: a 2-byte little-endian
// number followed by a 2-byte character code, rendered as "<letter><4 digits>".
func ReadSeries(b []byte) (string, error) {
	if len(b) != 4 {
		return "", fmt.Errorf("%w: series id needs 4 bytes, have %d", ErrTruncatedInput, len(b))
	}
	num := ReadUint(b[0:2])
	letter := rune(ReadUint(b[2:4]))
	return fmt.Sprintf("%c%04d", letter, num), nil
}

// WriteSeries is the inverse of ReadSeries. The input must be exactly one
// letter followed by four digits, and the letter's code point must fit in
// two bytes.
func WriteSeries(s string) ([]byte, error) {
	letter, size := utf8.DecodeRuneInString(s)
	if size == 0 || letter == utf8.RuneError {
		return nil, fmt.Errorf("%w: series %q", ErrMalformedIdentifier, s)
	}
	num, ok := parseDigits(s[size:], 4)
	if !ok {
		return nil, fmt.Errorf("%w: series %q is not <letter><4 digits>", ErrMalformedIdentifier, s)
	}
	if letter > 0xFFFF {
		return nil, fmt.Errorf("%w: series letter %q does not pack into 2 bytes", ErrMalformedIdentifier, letter)
	}
	out := make([]byte, 4)
	out[0] = byte(num)
	out[1] = byte(num >> 8)
	out[2] = byte(letter)
	out[3] = byte(letter >> 8)
	return out, nil
}

// ReadGUID unpacks an 8-byte unit identifier. The all-zero pattern is the
// "no unit" sentinel and decodes to the empty string. Byte 3 is reserved and
// ignored. Everything else decodes as
// <letter><4-digit series><letter><3-digit model><2-digit spec>.
func ReadGUID(b []byte) (string, error) {
	if len(b) != 8 {
		return "", fmt.Errorf("%w: unit guid needs 8 bytes, have %d", ErrTruncatedInput, len(b))
	}
	if isZero(b) {
		return "", nil
	}
	series := ReadUint(b[0:2])
	gundam := rune(b[2])
	unitType := rune(b[4])
	spec := b[5]
	model := ReadUint(b[6:8])
	return fmt.Sprintf("%c%04d%c%03d%02d", gundam, series, unitType, model, spec), nil
}

// WriteGUID is the inverse of ReadGUID: the empty string packs to 8 zero
// bytes, anything else must match the fixed 11-rune grammar. The reserved
// byte is always written as zero.
func WriteGUID(s string) ([]byte, error) {
	out := make([]byte, 8)
	if s == "" {
		return out, nil
	}
	runes := []rune(s)
	if len(runes) != 11 {
		return nil, fmt.Errorf("%w: unit guid %q is not 11 characters", ErrMalformedIdentifier, s)
	}
	gundam, unitType := runes[0], runes[5]
	if gundam > 0xFF || unitType > 0xFF {
		return nil, fmt.Errorf("%w: unit guid %q letters do not pack into 1 byte", ErrMalformedIdentifier, s)
	}
	series, ok1 := parseDigits(string(runes[1:5]), 4)
	model, ok2 := parseDigits(string(runes[6:9]), 3)
	spec, ok3 := parseDigits(string(runes[9:11]), 2)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: unit guid %q is not <letter><4 digits><letter><3 digits><2 digits>",
			ErrMalformedIdentifier, s)
	}
	out[0] = byte(series)
	out[1] = byte(series >> 8)
	out[2] = byte(gundam)
	// out[3] reserved, stays zero
	out[4] = byte(unitType)
	out[5] = byte(spec)
	out[6] = byte(model)
	out[7] = byte(model >> 8)
	return out, nil
}

// ReadLenString decodes a string with a 1-byte length prefix.
func ReadLenString(c *Cursor) (string, error) {
	n, err := c.Byte()
	if err != nil {
		return "", err
	}
	b, err := c.Next(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteLenString encodes a 1-byte length prefix (the UTF-8 byte length, not
// the rune count) followed by the string bytes.
func WriteLenString(s string) ([]byte, error) {
	if len(s) > 255 {
		return nil, fmt.Errorf("%w: string of %d bytes exceeds 255-byte length prefix", ErrOutOfRange, len(s))
	}
	out := make([]byte, 0, 1+len(s))
	out = append(out, byte(len(s)))
	return append(out, s...), nil
}

// ReadNullString reads bytes up to and excluding a 0x00 terminator, starting
// offset bytes past the cursor's current position. Record decoding always
// passes offset 0; the string table seeks to an index pointer first and then
// reads at offset 0 as well.
func ReadNullString(c *Cursor, offset int) (string, error) {
	if offset != 0 {
		if err := c.Seek(c.pos + offset); err != nil {
			return "", err
		}
	}
	start := c.pos
	for {
		b, err := c.Byte()
		if err != nil {
			return "", fmt.Errorf("%w: unterminated string at offset %d", ErrTruncatedInput, start)
		}
		if b == 0 {
			return string(c.buf[start : c.pos-1]), nil
		}
	}
}

// WriteNullString encodes the string bytes followed by one 0x00 terminator.
func WriteNullString(s string) []byte {
	return append([]byte(s), 0)
}

// parseDigits parses s as exactly n ASCII digits.
func parseDigits(s string, n int) (uint64, bool) {
	if len(s) != n {
		return 0, false
	}
	var v uint64
	for i := 0; i < n; i++ {
		d := s[i]
		if d < '0' || d > '9' {
			return 0, false
		}
		v = v*10 + uint64(d-'0')
	}
	return v, true
}

func isZero(b []byte) bool {
	for _, by := range b {
		if by != 0 {
			return false
		}
	}
	return true
}
