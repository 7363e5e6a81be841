package httpx

const crlf = "\r\n"

// GroupCursor streams one header group as "Name: value\r\n" lines in the
// group's canonical field order. A field whose value is empty contributes
// nothing at all: its name, separator, and line terminator are skipped as a
// unit, never individually.
//
// The cursor tracks only a field index, a piece index, and one text
// sub-cursor synthesized on demand, so its footprint is constant no matter
// how many fields the group defines.
type GroupCursor struct {
	cursorState
	group  headerGroup
	field  int
	piece  int
	sub    TextCursor
	loaded bool
}

// Pieces of one serialized header line.
const (
	pieceName = iota
	pieceSep
	pieceValue
	pieceCRLF
	pieceCount
)

// NewGeneralCursor returns a cursor over a general-header group.
func NewGeneralCursor(h *GeneralHeader) GroupCursor { return GroupCursor{group: h} }

// NewRequestHeaderCursor returns a cursor over a request-header group.
func NewRequestHeaderCursor(h *RequestHeader) GroupCursor { return GroupCursor{group: h} }

// NewResponseHeaderCursor returns a cursor over a response-header group.
func NewResponseHeaderCursor(h *ResponseHeader) GroupCursor { return GroupCursor{group: h} }

// NewEntityCursor returns a cursor over an entity-header group.
func NewEntityCursor(h *EntityHeader) GroupCursor { return GroupCursor{group: h} }

// load positions the sub-cursor at the next piece that will emit bytes,
// skipping valueless fields whole. It reports false when nothing remains.
func (c *GroupCursor) load() bool {
	for c.field < c.group.fieldCount() {
		value := c.group.fieldValue(c.field)
		if value == "" {
			c.field++
			c.piece = 0
			continue
		}
		if c.piece == pieceName && c.group.fieldName(c.field) == "" {
			// Pre-formatted extension line: no name, no separator.
			c.piece = pieceValue
		}
		switch c.piece {
		case pieceName:
			c.sub = NewTextCursor(c.group.fieldName(c.field))
		case pieceSep:
			c.sub = NewTextCursor(": ")
		case pieceValue:
			c.sub = NewTextCursor(value)
		case pieceCRLF:
			c.sub = NewTextCursor(crlf)
		}
		return true
	}
	return false
}

func (c *GroupCursor) advance() {
	c.piece++
	if c.piece == pieceCount {
		c.piece = 0
		c.field++
	}
}

// Serialize fills p with as many header bytes as fit, resuming from the
// previous position.
func (c *GroupCursor) Serialize(p []byte) (int, error) {
	if err := c.begin(p); err != nil {
		return 0, err
	}
	total := 0
	for total < len(p) && !c.eof {
		if !c.loaded {
			if !c.load() {
				c.eof = true
				break
			}
			c.loaded = true
		}
		n, err := c.sub.Serialize(p[total:])
		total += n
		if err != nil {
			c.err = err
			c.gcount = total
			return total, err
		}
		if c.sub.EOF() {
			c.loaded = false
			c.advance()
		}
	}
	// When the buffer boundary coincides with the final piece, settle eof
	// now so it reads true the moment the last byte is out.
	if !c.loaded && !c.eof {
		if c.load() {
			c.loaded = true
		} else {
			c.eof = true
		}
	}
	c.gcount = total
	return total, nil
}

// Reset rewinds to the first field, clearing EOF and error state.
func (c *GroupCursor) Reset() {
	c.field = 0
	c.piece = 0
	c.loaded = false
	c.cursorState.reset()
}
