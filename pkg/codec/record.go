package codec

import "fmt"

// Field is one named, typed slot in a schema.
type Field struct {
	Name string
	Type FieldType
}

// Schema is an ordered field list. The order is the on-disk layout contract:
// records are decoded and encoded field by field in schema order. Schemas are
// supplied by table definitions, not owned by this package.
type Schema []Field

// Width returns the fixed record width in bytes and true, or 0 and false if
// the schema contains any variable-width field.
func (s Schema) Width() (int, bool) {
	var total int
	for _, f := range s {
		w := f.Type.Width()
		if w == 0 {
			return 0, false
		}
		total += w
	}
	return total, true
}

// Record is one decoded record: field name to value. Values are int64 for
// signed fields, uint64 for unsigned fields, string for the string and
// series types, and string-or-nil for guid fields (nil is the "no unit"
// sentinel).
type Record map[string]any

// DecodeRecord decodes one record from the cursor, consuming each field in
// schema order.
func DecodeRecord(schema Schema, c *Cursor) (Record, error) {
	rec := make(Record, len(schema))
	for _, f := range schema {
		v, err := decodeField(f.Type, c)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		rec[f.Name] = v
	}
	return rec, nil
}

// EncodeRecord encodes a record to bytes in schema order. Every schema field
// must be present in the record; each field encodes the record's value for
// that field.
func EncodeRecord(schema Schema, rec Record) ([]byte, error) {
	var out []byte
	for _, f := range schema {
		v, ok := rec[f.Name]
		if !ok {
			return nil, fmt.Errorf("record is missing field %q", f.Name)
		}
		b, err := encodeField(f.Type, v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

func decodeField(ft FieldType, c *Cursor) (any, error) {
	switch ft {
	case Int1, Int2, Int4, Int8:
		b, err := c.Next(ft.Width())
		if err != nil {
			return nil, err
		}
		return ReadInt(b), nil
	case Uint1, Uint2, Uint4, Uint8:
		b, err := c.Next(ft.Width())
		if err != nil {
			return nil, err
		}
		return ReadUint(b), nil
	case LenString:
		return ReadLenString(c)
	case NullString:
		return ReadNullString(c, 0)
	case GUID:
		b, err := c.Next(8)
		if err != nil {
			return nil, err
		}
		id, err := ReadGUID(b)
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, nil
		}
		return id, nil
	case SeriesGUID:
		b, err := c.Next(4)
		if err != nil {
			return nil, err
		}
		return ReadSeries(b)
	default:
		return nil, fmt.Errorf("unknown field type %v", ft)
	}
}

func encodeField(ft FieldType, v any) ([]byte, error) {
	switch ft {
	case Int1, Int2, Int4, Int8:
		n, err := asInt64(v)
		if err != nil {
			return nil, err
		}
		return WriteInt(n, ft.Width())
	case Uint1, Uint2, Uint4, Uint8:
		n, err := asUint64(v)
		if err != nil {
			return nil, err
		}
		return WriteUint(n, ft.Width())
	case LenString:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return WriteLenString(s)
	case NullString:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return WriteNullString(s), nil
	case GUID:
		if v == nil {
			return WriteGUID("")
		}
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return WriteGUID(s)
	case SeriesGUID:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return WriteSeries(s)
	default:
		return nil, fmt.Errorf("unknown field type %v", ft)
	}
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case uint64:
		if n > 1<<63-1 {
			return 0, fmt.Errorf("%w: %d does not fit int64", ErrOutOfRange, n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func asUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("%w: %d is negative", ErrOutOfRange, n)
		}
		return uint64(n), nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("%w: %d is negative", ErrOutOfRange, n)
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}
