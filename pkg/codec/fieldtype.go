package codec

import "fmt"

// FieldType identifies the wire encoding of one schema field. Table
// definitions name types by string tag ("int4", "guid", ...); ParseFieldType
// resolves the tag once so the per-record hot path dispatches on a small
// integer instead of comparing strings.
type FieldType uint8

const (
	Invalid FieldType = iota

	Int1 // signed, 1 byte
	Int2 // signed, 2 bytes
	Int4 // signed, 4 bytes
	Int8 // signed, 8 bytes

	Uint1 // unsigned, 1 byte
	Uint2 // unsigned, 2 bytes
	Uint4 // unsigned, 4 bytes
	Uint8 // unsigned, 8 bytes

	LenString  // 1-byte length prefix + UTF-8 bytes
	NullString // UTF-8 bytes + 0x00 terminator
	GUID       // 8-byte packed unit identifier
	SeriesGUID // 4-byte packed series identifier
)

var fieldTypeTags = map[string]FieldType{
	"int1":        Int1,
	"int2":        Int2,
	"int4":        Int4,
	"int8":        Int8,
	"uint1":       Uint1,
	"uint2":       Uint2,
	"uint4":       Uint4,
	"uint8":       Uint8,
	"len_string":  LenString,
	"null_string": NullString,
	"guid":        GUID,
	"series_guid": SeriesGUID,
}

// ParseFieldType resolves a table-definition tag. Unknown tags are rejected
// here so a bad definition fails before any bytes are read.
func ParseFieldType(tag string) (FieldType, error) {
	ft, ok := fieldTypeTags[tag]
	if !ok {
		return Invalid, fmt.Errorf("unknown field type %q", tag)
	}
	return ft, nil
}

// String returns the definition tag for the type.
func (ft FieldType) String() string {
	for tag, t := range fieldTypeTags {
		if t == ft {
			return tag
		}
	}
	return fmt.Sprintf("FieldType(%d)", uint8(ft))
}

// Width returns the fixed on-disk width in bytes, or 0 for the
// variable-width string types.
func (ft FieldType) Width() int {
	switch ft {
	case Int1, Uint1:
		return 1
	case Int2, Uint2:
		return 2
	case Int4, Uint4:
		return 4
	case Int8, Uint8:
		return 8
	case SeriesGUID:
		return 4
	case GUID:
		return 8
	default:
		return 0
	}
}

// Signed reports whether the type is a signed integer.
func (ft FieldType) Signed() bool {
	switch ft {
	case Int1, Int2, Int4, Int8:
		return true
	}
	return false
}
