// Package codec implements the binary record format used by the fixed-layout
// game data tables.
//
// A table definition is an ordered schema of field name to field type. The
// schema drives both directions: DecodeRecord walks the schema in order,
// dispatching each field type to the matching primitive decoder and advancing
// a cursor over the raw bytes; EncodeRecord is its exact inverse. All
// multi-byte integers are little-endian.
//
// # Field types
//
// Twelve field types are supported:
//
//	int1 int2 int4 int8     signed little-endian integers (width in bytes)
//	uint1 uint2 uint4 uint8 unsigned little-endian integers
//	len_string              1-byte length prefix followed by UTF-8 bytes
//	null_string             UTF-8 bytes terminated by 0x00
//	guid                    8-byte packed unit identifier (or the zero sentinel)
//	series_guid             4-byte packed series identifier
//
// The string tags appear in externally supplied table definitions; they are
// resolved to a typed FieldType once, when the schema is built, so decoding a
// record never compares strings.
//
// # Identifiers
//
// A unit GUID packs a series number, two category letters, a spec code and a
// model number into 8 bytes. The all-zero pattern is reserved for "no unit"
// and decodes to the empty string; every other pattern decodes to an 11-rune
// identifier such as "G0079G00101". A series ID packs a number and a single
// letter into 4 bytes and renders as "G0079". Both encodings round-trip
// bit-exactly, which is a correctness requirement of the format, not just a
// test convenience.
//
// # Errors
//
// Decoding and encoding fail fast: the first malformed field aborts the call
// and the error wraps one of the exported sentinels (ErrTruncatedInput,
// ErrOutOfRange, ErrMalformedIdentifier, ...). There is no partial-record
// recovery.
package codec
