package tbl

import (
	"fmt"

	"github.com/mechbay/mechtbl/pkg/codec"
)

// Magic headers of the known string-table variants.
var (
	StringTBLMagic  = []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x01, 0x00}
	StageVoiceMagic = []byte{0x54, 0x52, 0x54, 0x53, 0x00, 0x01, 0x01, 0x00} // "TRTS"
)

// StringRecord is one entry of a string table. Order and Pointer are
// decode-time bookkeeping: Order is the entry's position in the index,
// Pointer the absolute offset its string was read from. Neither survives the
// logical round trip; pointers are recomputed on encode.
type StringRecord struct {
	Order   int
	Index   uint32
	Pointer uint32
	String  string
}

// StringTable stores strings out of line: after the header come count 8-byte
// index entries (index uint32, pointer uint32), zero padding up to a 16-byte
// boundary, then the null-terminated UTF-8 string blob. Pointers are
// absolute offsets from the start of the table region.
type StringTable struct {
	Layout
}

// NewStringTable returns a table with the generic string-table magic.
func NewStringTable() *StringTable {
	return &StringTable{Layout{Magic: StringTBLMagic}}
}

// DecodeStrings parses the index and follows each pointer to its string.
// Output order is index order, not pointer order.
func (t *StringTable) DecodeStrings(data []byte) ([]StringRecord, error) {
	c := codec.NewCursor(data)
	count, err := t.ReadHeader(c)
	if err != nil {
		return nil, err
	}
	// The count is corruption-controlled; every entry needs 8 index bytes,
	// so bound it before allocating.
	if count < 0 || count > c.Remaining()/8 {
		return nil, fmt.Errorf("%w: index count %d exceeds %d remaining bytes",
			codec.ErrTruncatedInput, count, c.Remaining())
	}
	records := make([]StringRecord, count)
	for i := range records {
		entry, err := c.Next(8)
		if err != nil {
			return nil, fmt.Errorf("index entry %d: %w", i, err)
		}
		records[i] = StringRecord{
			Order:   i,
			Index:   uint32(codec.ReadUint(entry[0:4])),
			Pointer: uint32(codec.ReadUint(entry[4:8])),
		}
	}
	for i := range records {
		if err := c.Seek(int(records[i].Pointer)); err != nil {
			return nil, fmt.Errorf("entry %d pointer %d: %w", i, records[i].Pointer, err)
		}
		s, err := codec.ReadNullString(c, 0)
		if err != nil {
			return nil, fmt.Errorf("entry %d string: %w", i, err)
		}
		records[i].String = s
	}
	return records, nil
}

// EncodeStrings lays the table out again: the string blob always starts on a
// 16-byte boundary, padded with 1 to 16 zero bytes after the index (a full
// padding row is written even when the index already ends on a boundary).
// Each entry's pointer is the absolute offset its string bytes will occupy.
func (t *StringTable) EncodeStrings(records []StringRecord) ([]byte, error) {
	out, err := t.WriteHeader(len(records))
	if err != nil {
		return nil, err
	}

	stringStart := t.headerLen() + len(records)*8
	padding := 16 - stringStart%16
	stringStart += padding

	for i := range records {
		idx, err := codec.WriteUint(uint64(records[i].Index), 4)
		if err != nil {
			return nil, fmt.Errorf("entry %d index: %w", i, err)
		}
		ptr, err := codec.WriteUint(uint64(stringStart), 4)
		if err != nil {
			return nil, fmt.Errorf("entry %d pointer: %w", i, err)
		}
		out = append(out, idx...)
		out = append(out, ptr...)
		stringStart += len(records[i].String) + 1
	}

	out = append(out, make([]byte, padding)...)

	for i := range records {
		out = append(out, codec.WriteNullString(records[i].String)...)
	}
	return out, nil
}

// Decode implements Format, mapping each entry to {index, string}.
func (t *StringTable) Decode(data []byte) ([]codec.Record, error) {
	records, err := t.DecodeStrings(data)
	if err != nil {
		return nil, err
	}
	out := make([]codec.Record, len(records))
	for i, r := range records {
		out[i] = codec.Record{"index": uint64(r.Index), "string": r.String}
	}
	return out, nil
}

// Encode implements Format from {index, string} records.
func (t *StringTable) Encode(records []codec.Record) ([]byte, error) {
	strs := make([]StringRecord, len(records))
	for i, rec := range records {
		idx, err := recordIndex(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		s, ok := rec["string"].(string)
		if !ok {
			return nil, fmt.Errorf("record %d: expected string field, got %T", i, rec["string"])
		}
		strs[i] = StringRecord{Order: i, Index: idx, String: s}
	}
	return t.EncodeStrings(strs)
}

func recordIndex(rec codec.Record) (uint32, error) {
	switch n := rec["index"].(type) {
	case uint64:
		if n > 1<<32-1 {
			return 0, fmt.Errorf("%w: index %d does not fit uint32", codec.ErrOutOfRange, n)
		}
		return uint32(n), nil
	case int64:
		if n < 0 || n > 1<<32-1 {
			return 0, fmt.Errorf("%w: index %d does not fit uint32", codec.ErrOutOfRange, n)
		}
		return uint32(n), nil
	case int:
		if n < 0 || int64(n) > 1<<32-1 {
			return 0, fmt.Errorf("%w: index %d does not fit uint32", codec.ErrOutOfRange, n)
		}
		return uint32(n), nil
	default:
		return 0, fmt.Errorf("expected integer index, got %T", rec["index"])
	}
}
