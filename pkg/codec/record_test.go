package codec

import (
	"bytes"
	"errors"
	"testing"
)

func testSchema(t *testing.T, pairs ...string) Schema {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("pairs must be name/type tags")
	}
	var s Schema
	for i := 0; i < len(pairs); i += 2 {
		ft, err := ParseFieldType(pairs[i+1])
		if err != nil {
			t.Fatalf("ParseFieldType(%q) failed: %v", pairs[i+1], err)
		}
		s = append(s, Field{Name: pairs[i], Type: ft})
	}
	return s
}

func TestRecordRoundTrip(t *testing.T) {
	schema := testSchema(t,
		"unit_id", "guid",
		"series", "series_guid",
		"cost", "uint4",
		"hp", "int2",
		"flags", "uint1",
		"name", "len_string",
		"note", "null_string",
	)

	rec := Record{
		"unit_id": "G0079M01205",
		"series":  "G0079",
		"cost":    uint64(2800),
		"hp":      int64(-120),
		"flags":   uint64(7),
		"name":    "Gundam",
		"note":    "prototype",
	}

	encoded, err := EncodeRecord(schema, rec)
	if err != nil {
		t.Fatalf("EncodeRecord failed: %v", err)
	}

	c := NewCursor(encoded)
	decoded, err := DecodeRecord(schema, c)
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if c.Remaining() != 0 {
		t.Errorf("decode left %d bytes unread", c.Remaining())
	}

	for name, want := range rec {
		if got := decoded[name]; got != want {
			t.Errorf("field %q: got %#v, want %#v", name, got, want)
		}
	}

	// And bytes are stable across a second encode.
	again, err := EncodeRecord(schema, decoded)
	if err != nil {
		t.Fatalf("re-encode failed: %v", err)
	}
	if !bytes.Equal(again, encoded) {
		t.Errorf("re-encode differs:\n  % x\n  % x", again, encoded)
	}
}

func TestRecordGUIDNone(t *testing.T) {
	schema := testSchema(t, "unit_id", "guid")

	rec, err := DecodeRecord(schema, NewCursor(make([]byte, 8)))
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if rec["unit_id"] != nil {
		t.Fatalf("zero guid decoded to %#v, want nil", rec["unit_id"])
	}

	encoded, err := EncodeRecord(schema, rec)
	if err != nil {
		t.Fatalf("EncodeRecord failed: %v", err)
	}
	if !bytes.Equal(encoded, make([]byte, 8)) {
		t.Errorf("nil guid encoded to % x, want 8 zero bytes", encoded)
	}
}

// The write path must encode each field's value from the record, never the
// schema field name.
func TestEncodeRecordUsesFieldValues(t *testing.T) {
	schema := testSchema(t, "pilot_name", "len_string", "unit_id", "guid")
	rec := Record{
		"pilot_name": "Amuro",
		"unit_id":    "G0079M01205",
	}

	encoded, err := EncodeRecord(schema, rec)
	if err != nil {
		t.Fatalf("EncodeRecord failed: %v", err)
	}

	if !bytes.Contains(encoded, []byte("Amuro")) {
		t.Errorf("encoded bytes do not contain the field value: % x", encoded)
	}
	if bytes.Contains(encoded, []byte("pilot_name")) || bytes.Contains(encoded, []byte("unit_id")) {
		t.Errorf("encoded bytes contain a schema field name: % x", encoded)
	}

	decoded, err := DecodeRecord(schema, NewCursor(encoded))
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if decoded["pilot_name"] != "Amuro" || decoded["unit_id"] != "G0079M01205" {
		t.Errorf("round trip mismatch: %#v", decoded)
	}
}

func TestEncodeRecordMissingField(t *testing.T) {
	schema := testSchema(t, "cost", "uint4")
	if _, err := EncodeRecord(schema, Record{}); err == nil {
		t.Fatal("want error for missing field, got nil")
	}
}

func TestDecodeRecordTruncated(t *testing.T) {
	schema := testSchema(t, "cost", "uint4")
	if _, err := DecodeRecord(schema, NewCursor([]byte{0x01, 0x02})); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("want ErrTruncatedInput, got %v", err)
	}
}

func TestParseFieldTypeUnknown(t *testing.T) {
	if _, err := ParseFieldType("float4"); err == nil {
		t.Fatal("want error for unknown tag, got nil")
	}
}

func TestSchemaWidth(t *testing.T) {
	fixed := testSchema(t, "a", "uint4", "b", "int2", "c", "guid", "d", "series_guid")
	if w, ok := fixed.Width(); !ok || w != 18 {
		t.Errorf("fixed width: got (%d, %v), want (18, true)", w, ok)
	}

	variable := testSchema(t, "a", "uint4", "b", "len_string")
	if _, ok := variable.Width(); ok {
		t.Error("variable schema reported a fixed width")
	}
}

func TestFieldTypeTags(t *testing.T) {
	for tag := range fieldTypeTags {
		ft, err := ParseFieldType(tag)
		if err != nil {
			t.Fatalf("ParseFieldType(%q) failed: %v", tag, err)
		}
		if ft.String() != tag {
			t.Errorf("tag %q round trip: got %q", tag, ft.String())
		}
	}
}
