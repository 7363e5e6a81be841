package httpx

// Request is an HTTP request value: method, URI, the three request-side
// header groups, and an optional body. All string fields are views into
// caller-managed storage; the struct carries no I/O behavior and stays
// immutable while a cursor serializes it.
type Request struct {
	Method  Method
	URI     string
	General GeneralHeader
	Header  RequestHeader
	Entity  EntityHeader
	Body    string
}

// Valid reports whether the request is well-formed enough to send: a valid
// method and a non-empty URI.
func (r *Request) Valid() bool {
	return r.Method.Valid() && r.URI != ""
}

// Response is an HTTP response value, populated incrementally by the
// transport as bytes arrive. On a failed exchange the fields parsed before
// the failure remain valid.
type Response struct {
	Status  StatusCode
	General GeneralHeader
	Header  ResponseHeader
	Entity  EntityHeader
	Body    string
}

// Field returns a settable pointer to the named header field across the
// response's three groups, or nil for an unrecognized name.
func (r *Response) Field(tag string) *string {
	if f := r.General.Field(tag); f != nil {
		return f
	}
	if f := r.Header.Field(tag); f != nil {
		return f
	}
	return r.Entity.Field(tag)
}

// Serialization stages of a request, in wire order.
const (
	stageMethod = iota
	stageSP1
	stageURI
	stageSP2
	stageVersion
	stageGeneral
	stageHeader
	stageEntity
	stageBlank
	stageBody
	stageCount
)

// RequestCursor streams a complete request: request line, header groups in
// protocol order, the blank separator line, then the body. Like GroupCursor
// it keeps a single active sub-cursor, reconstructed at each stage
// transition, so the footprint is bounded by the largest sub-cursor rather
// than the sum of all of them.
type RequestCursor struct {
	cursorState
	req     *Request
	stage   int
	text    TextCursor
	group   GroupCursor
	inGroup bool
	loaded  bool
}

// NewRequestCursor returns a cursor over req. The request must outlive the
// cursor and must not be mutated while serialization is in progress.
func NewRequestCursor(req *Request) RequestCursor {
	return RequestCursor{req: req}
}

func (c *RequestCursor) setText(s string) {
	c.text = NewTextCursor(s)
	c.inGroup = false
}

func (c *RequestCursor) setGroup(g headerGroup) bool {
	if groupEmpty(g) {
		return false
	}
	c.group = GroupCursor{group: g}
	c.inGroup = true
	return true
}

// loadStage prepares the sub-cursor for the current stage, reporting false
// for stages that would emit nothing.
func (c *RequestCursor) loadStage() bool {
	switch c.stage {
	case stageMethod:
		t := c.req.Method.Text()
		if t == "" {
			return false
		}
		c.setText(t)
	case stageSP1, stageSP2:
		c.setText(" ")
	case stageURI:
		if c.req.URI == "" {
			return false
		}
		c.setText(c.req.URI)
	case stageVersion:
		c.setText("HTTP/1.1" + crlf)
	case stageGeneral:
		return c.setGroup(&c.req.General)
	case stageHeader:
		return c.setGroup(&c.req.Header)
	case stageEntity:
		return c.setGroup(&c.req.Entity)
	case stageBlank:
		c.setText(crlf)
	case stageBody:
		if c.req.Body == "" {
			return false
		}
		c.setText(c.req.Body)
	}
	return true
}

func (c *RequestCursor) load() bool {
	for c.stage < stageCount {
		if c.loadStage() {
			return true
		}
		c.stage++
	}
	return false
}

// Serialize fills p with as many request bytes as fit, resuming from the
// previous position.
func (c *RequestCursor) Serialize(p []byte) (int, error) {
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
		var sub Cursor = &c.text
		if c.inGroup {
			sub = &c.group
		}
		n, err := sub.Serialize(p[total:])
		total += n
		if err != nil {
			c.err = err
			c.gcount = total
			return total, err
		}
		if sub.EOF() {
			c.loaded = false
			c.stage++
		}
	}
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

// Reset rewinds to the request line, clearing EOF and error state.
func (c *RequestCursor) Reset() {
	c.stage = 0
	c.loaded = false
	c.inGroup = false
	c.cursorState.reset()
}
