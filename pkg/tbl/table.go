package tbl

import (
	"bytes"
	"fmt"

	"github.com/mechbay/mechtbl/pkg/codec"
)

// Format is a whole-table codec: Decode parses one table region into records
// and Encode produces the byte-exact inverse. Both schema-driven tables and
// string tables satisfy it, which is what the JSON boundary and the HTTP
// viewer program against.
type Format interface {
	Decode(data []byte) ([]codec.Record, error)
	Encode(records []codec.Record) ([]byte, error)
}

// Layout holds the per-table framing constants: the magic byte sequence and
// the width of the record-count field.
type Layout struct {
	Magic      []byte
	CountWidth int // bytes in the record count; 0 means the default of 4
}

func (l Layout) countWidth() int {
	if l.CountWidth == 0 {
		return 4
	}
	return l.CountWidth
}

// headerLen is the byte length of the encoded header.
func (l Layout) headerLen() int {
	return len(l.Magic) + l.countWidth()
}

// ReadHeader verifies the magic bytes and reads the record count. A magic
// mismatch fails with ErrFormatMismatch before any record is read.
func (l Layout) ReadHeader(c *codec.Cursor) (int, error) {
	magic, err := c.Next(len(l.Magic))
	if err != nil {
		return 0, fmt.Errorf("header: %w", err)
	}
	if !bytes.Equal(magic, l.Magic) {
		return 0, fmt.Errorf("%w: header % x, want % x", codec.ErrFormatMismatch, magic, l.Magic)
	}
	count, err := c.Next(l.countWidth())
	if err != nil {
		return 0, fmt.Errorf("record count: %w", err)
	}
	return int(codec.ReadUint(count)), nil
}

// WriteHeader encodes the magic bytes followed by the little-endian record
// count.
func (l Layout) WriteHeader(count int) ([]byte, error) {
	cb, err := codec.WriteUint(uint64(count), l.countWidth())
	if err != nil {
		return nil, fmt.Errorf("record count: %w", err)
	}
	out := make([]byte, 0, l.headerLen())
	out = append(out, l.Magic...)
	return append(out, cb...), nil
}

// Table is a schema-driven table: header followed by records concatenated in
// order. Record width is fixed only when every schema field is fixed-width.
type Table struct {
	Layout
	Schema codec.Schema
}

// Decode parses the whole table region in one pass.
func (t *Table) Decode(data []byte) ([]codec.Record, error) {
	c := codec.NewCursor(data)
	count, err := t.ReadHeader(c)
	if err != nil {
		return nil, err
	}
	// The count is corruption-controlled; bound it by the smallest possible
	// record before allocating.
	if count < 0 || count > c.Remaining()/minRecordWidth(t.Schema) {
		return nil, fmt.Errorf("%w: record count %d exceeds %d remaining bytes",
			codec.ErrTruncatedInput, count, c.Remaining())
	}
	records := make([]codec.Record, 0, count)
	for i := 0; i < count; i++ {
		rec, err := codec.DecodeRecord(t.Schema, c)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// minRecordWidth is the fewest bytes one record can occupy: fixed fields
// take their width, variable-width strings at least one byte (length prefix
// or terminator).
func minRecordWidth(schema codec.Schema) int {
	total := 0
	for _, f := range schema {
		if w := f.Type.Width(); w > 0 {
			total += w
		} else {
			total++
		}
	}
	if total == 0 {
		return 1
	}
	return total
}

// Encode produces the table bytes: header, then each record in input order.
func (t *Table) Encode(records []codec.Record) ([]byte, error) {
	out, err := t.WriteHeader(len(records))
	if err != nil {
		return nil, err
	}
	for i, rec := range records {
		b, err := codec.EncodeRecord(t.Schema, rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, b...)
	}
	return out, nil
}
