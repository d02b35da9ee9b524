//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"fmt"
	"testing"
)

// FuzzGUIDBytes_RoundTrip checks decode-then-encode identity over raw 8-byte
// patterns.
func FuzzGUIDBytes_RoundTrip(f *testing.F) {
	// Add seed corpus
	f.Add(make([]byte, 8))
	f.Add([]byte{0x4f, 0x00, 'G', 0x00, 'M', 0x05, 0x0c, 0x00})
	f.Add([]byte{0x0f, 0x27, 'W', 0x00, 'C', 0x63, 0xe7, 0x03})

	f.Fuzz(func(t *testing.T, b []byte) {
		if len(b) != 8 {
			t.Skip("guid is exactly 8 bytes")
		}
		// The reserved byte is written back as zero, and model/spec values
		// beyond their digit fields cannot render into the fixed grammar.
		if b[3] != 0 {
			t.Skip("reserved byte must be zero for identity")
		}
		if ReadUint(b[0:2]) > 9999 || ReadUint(b[6:8]) > 999 || b[5] > 99 {
			t.Skip("series/model/spec outside the fixed digit widths")
		}

		id, err := ReadGUID(b)
		if err != nil {
			t.Fatalf("ReadGUID(% x) failed: %v", b, err)
		}

		back, err := WriteGUID(id)
		if err != nil {
			t.Fatalf("WriteGUID(%q) failed: %v", id, err)
		}
		if !bytes.Equal(back, b) {
			t.Errorf("round trip: % x -> %q -> % x", b, id, back)
		}
	})
}

// FuzzGUIDString_RoundTrip checks encode-then-decode identity over well-formed
// identifier strings built from their components.
func FuzzGUIDString_RoundTrip(f *testing.F) {
	f.Add(uint16(79), byte('G'), byte('M'), uint16(12), byte(5))
	f.Add(uint16(0), byte('W'), byte('C'), uint16(0), byte(0))
	f.Add(uint16(9999), byte(0xe9), byte(0x01), uint16(999), byte(99))

	f.Fuzz(func(t *testing.T, series uint16, gundam, unitType byte, model uint16, spec byte) {
		if series > 9999 || model > 999 || spec > 99 {
			t.Skip("outside the fixed digit widths")
		}

		id := fmt.Sprintf("%c%04d%c%03d%02d", rune(gundam), series, rune(unitType), model, spec)

		packed, err := WriteGUID(id)
		if err != nil {
			t.Fatalf("WriteGUID(%q) failed: %v", id, err)
		}
		if isZero(packed) {
			t.Skip("all-zero pattern is the none sentinel")
		}
		back, err := ReadGUID(packed)
		if err != nil {
			t.Fatalf("ReadGUID(% x) failed: %v", packed, err)
		}
		if back != id {
			t.Errorf("round trip: %q -> % x -> %q", id, packed, back)
		}
	})
}

// FuzzSeries_RoundTrip checks decode-then-encode identity over raw 4-byte
// series identifiers.
func FuzzSeries_RoundTrip(f *testing.F) {
	f.Add([]byte{0x4f, 0x00, 0x47, 0x00})
	f.Add([]byte{0x0f, 0x27, 0x5a, 0x00})

	f.Fuzz(func(t *testing.T, b []byte) {
		if len(b) != 4 {
			t.Skip("series id is exactly 4 bytes")
		}
		letter := rune(ReadUint(b[2:4]))
		if letter >= 0xd800 && letter <= 0xdfff {
			t.Skip("surrogate code points do not render as a letter")
		}
		if ReadUint(b[0:2]) > 9999 {
			t.Skip("numbers beyond 4 digits do not render fixed-width")
		}

		s, err := ReadSeries(b)
		if err != nil {
			t.Fatalf("ReadSeries(% x) failed: %v", b, err)
		}
		back, err := WriteSeries(s)
		if err != nil {
			t.Fatalf("WriteSeries(%q) failed: %v", s, err)
		}
		if !bytes.Equal(back, b) {
			t.Errorf("round trip: % x -> %q -> % x", b, s, back)
		}
	})
}

// FuzzLenString_RoundTrip checks both directions of the length-prefixed
// string codec.
func FuzzLenString_RoundTrip(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("ザクII")

	f.Fuzz(func(t *testing.T, s string) {
		if len(s) > 255 {
			t.Skip("beyond the 1-byte length prefix")
		}

		encoded, err := WriteLenString(s)
		if err != nil {
			t.Fatalf("WriteLenString(%q) failed: %v", s, err)
		}
		c := NewCursor(encoded)
		back, err := ReadLenString(c)
		if err != nil {
			t.Fatalf("ReadLenString failed: %v", err)
		}
		if back != s {
			t.Errorf("round trip: %q -> % x -> %q", s, encoded, back)
		}
		if c.Remaining() != 0 {
			t.Errorf("decode left %d bytes unread", c.Remaining())
		}
	})
}
