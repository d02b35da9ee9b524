package codec

import "fmt"

// Cursor is a read position over an in-memory byte buffer. Every decode
// operation consumes bytes through a cursor and advances it; positions are
// absolute offsets from the start of the buffer, which for table decoding is
// the start of the table region. Cursors are not safe for concurrent use;
// each decode call owns its own.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Next consumes and returns the next n bytes. The returned slice aliases the
// underlying buffer and must not be modified.
func (c *Cursor) Next(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncatedInput, n, c.pos, len(c.buf)-c.pos)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Byte consumes and returns a single byte.
func (c *Cursor) Byte() (byte, error) {
	b, err := c.Next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return fmt.Errorf("%w: seek to offset %d of %d", ErrTruncatedInput, pos, len(c.buf))
	}
	c.pos = pos
	return nil
}

// Pos returns the current absolute offset.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }
