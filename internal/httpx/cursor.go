package httpx

import "errors"

// A Cursor incrementally renders a value into caller-supplied buffers. Each
// Serialize call writes as many bytes as fit and remembers its position, so
// arbitrarily large values stream through small fixed transport buffers
// without materializing the serialized form.
//
// A cursor holds a view of the value it renders, not a copy; the value must
// outlive the cursor and must not be mutated while serialization is in
// progress.
//
// Error contract: a zero-length buffer yields ErrEmptyBuffer and leaves the
// cursor usable. Serializing after EOF yields ErrNoData. Any other error is
// sticky until Reset.
type Cursor interface {
	// Serialize writes up to len(p) bytes, returning the count written.
	Serialize(p []byte) (int, error)
	// EOF reports whether the final byte has been emitted.
	EOF() bool
	// Err returns the recorded error from the most recent Serialize.
	Err() error
	// Gcount returns the byte count of the most recent successful write.
	Gcount() int
	// Reset rewinds to the beginning, clearing EOF and error state.
	Reset()
}

// cursorState carries the bookkeeping shared by every cursor: the last write
// count, the error slot, and the eof mark.
type cursorState struct {
	gcount int
	err    error
	eof    bool
}

func (s *cursorState) EOF() bool   { return s.eof }
func (s *cursorState) Err() error  { return s.err }
func (s *cursorState) Gcount() int { return s.gcount }

func (s *cursorState) reset() { *s = cursorState{} }

// begin validates a Serialize call. An empty-buffer error is fresh each
// time and does not poison the cursor; everything else is sticky.
func (s *cursorState) begin(p []byte) error {
	if s.err != nil && !errors.Is(s.err, ErrEmptyBuffer) {
		return s.err
	}
	s.err = nil
	if len(p) == 0 {
		s.gcount = 0
		s.err = ErrEmptyBuffer
		return s.err
	}
	if s.eof {
		s.err = ErrNoData
		return s.err
	}
	return nil
}

// TextCursor streams a string view byte by byte across calls.
type TextCursor struct {
	cursorState
	text string
	pos  int
}

// NewTextCursor returns a cursor over the given string.
func NewTextCursor(text string) TextCursor {
	return TextCursor{text: text}
}

// Serialize copies min(remaining, len(p)) bytes into p.
func (c *TextCursor) Serialize(p []byte) (int, error) {
	if err := c.begin(p); err != nil {
		return 0, err
	}
	n := copy(p, c.text[c.pos:])
	c.pos += n
	c.gcount = n
	if c.pos == len(c.text) {
		c.eof = true
	}
	return n, nil
}

// Reset rewinds to the beginning of the text.
func (c *TextCursor) Reset() {
	c.pos = 0
	c.cursorState.reset()
}

// maximum decimal digits a status cursor renders, plus one for a sign.
const statusDigits = 6

// StatusCursor streams the decimal rendering of a status code. The digits
// are rendered once at construction into a fixed buffer.
type StatusCursor struct {
	cursorState
	buf [statusDigits]byte
	n   int
	pos int
}

// NewStatusCursor pre-renders the code's decimal form. It panics if the
// rendering would not fit the fixed digit buffer; status codes are bounded
// by construction, so overflow is a programmer error rather than a runtime
// condition.
func NewStatusCursor(status StatusCode) StatusCursor {
	var c StatusCursor
	v := status.Code()
	neg := v < 0
	if neg {
		v = -v
	}
	// Render backwards into the tail of the buffer.
	i := len(c.buf)
	for {
		if i == 0 {
			panic("httpx: status code rendering overflows digit buffer")
		}
		i--
		c.buf[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	if neg {
		if i == 0 {
			panic("httpx: status code rendering overflows digit buffer")
		}
		i--
		c.buf[i] = '-'
	}
	c.n = copy(c.buf[:], c.buf[i:])
	return c
}

// Serialize copies the remaining digits into p.
func (c *StatusCursor) Serialize(p []byte) (int, error) {
	if err := c.begin(p); err != nil {
		return 0, err
	}
	n := copy(p, c.buf[c.pos:c.n])
	c.pos += n
	c.gcount = n
	if c.pos == c.n {
		c.eof = true
	}
	return n, nil
}

// Reset rewinds to the first digit.
func (c *StatusCursor) Reset() {
	c.pos = 0
	c.cursorState.reset()
}

// NewMethodCursor returns a cursor over the method's canonical text.
func NewMethodCursor(m Method) TextCursor {
	return NewTextCursor(m.Text())
}
