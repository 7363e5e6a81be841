package httpx

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Parser phases.
const (
	phaseStatusLine = iota
	phaseHeaders
	phaseBody
)

// ResponseParser incrementally populates a caller-owned Response from raw
// transport bytes: status line, then header lines dispatched into the
// response's header groups, then the body. Feed may be called with
// arbitrarily small fragments; fields parsed before a failure stay valid.
type ResponseParser struct {
	resp  *Response
	phase int
	line  []byte
	body  []byte
	want  int // body bytes expected from Content-Length, -1 when unknown
	err   error
}

// NewResponseParser returns a parser writing into resp.
func NewResponseParser(resp *Response) *ResponseParser {
	return &ResponseParser{resp: resp, want: -1}
}

// Feed consumes the next fragment of response bytes. Errors are sticky.
func (p *ResponseParser) Feed(data []byte) error {
	if p.err != nil {
		return p.err
	}
	for len(data) > 0 {
		if p.phase == phaseBody {
			p.body = append(p.body, data...)
			p.resp.Body = string(p.body)
			break
		}
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			p.line = append(p.line, data...)
			break
		}
		p.line = append(p.line, data[:i]...)
		data = data[i+1:]
		line := strings.TrimRight(string(p.line), "\r")
		p.line = p.line[:0]
		if err := p.consumeLine(line); err != nil {
			p.err = err
			return err
		}
	}
	return nil
}

// Done reports whether a complete response has been parsed: headers are
// finished and, when a Content-Length was present, the body is fully
// buffered.
func (p *ResponseParser) Done() bool {
	if p.phase != phaseBody {
		return false
	}
	return p.want < 0 || len(p.body) >= p.want
}

func (p *ResponseParser) consumeLine(line string) error {
	switch p.phase {
	case phaseStatusLine:
		if line == "" {
			// Tolerate leading blank lines before the status line.
			return nil
		}
		return p.parseStatusLine(line)
	case phaseHeaders:
		if line == "" {
			p.phase = phaseBody
			if v := p.resp.Entity.ContentLength; v != "" {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil || n < 0 {
					return fmt.Errorf("parse Content-Length %q", v)
				}
				p.want = n
			}
			return nil
		}
		return p.parseHeaderLine(line)
	}
	return nil
}

func (p *ResponseParser) parseStatusLine(line string) error {
	// Status-Line = HTTP-Version SP Status-Code SP Reason-Phrase
	version, rest, ok := strings.Cut(line, " ")
	if !ok || !strings.HasPrefix(version, "HTTP/") {
		return fmt.Errorf("malformed status line %q", line)
	}
	codeText, reason, _ := strings.Cut(rest, " ")
	code, err := strconv.Atoi(codeText)
	if err != nil || code <= 0 {
		return fmt.Errorf("malformed status code %q", codeText)
	}
	p.resp.Status = NewStatusCode(code, reason)
	p.phase = phaseHeaders
	return nil
}

func (p *ResponseParser) parseHeaderLine(line string) error {
	name, value, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("malformed header line %q", line)
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if f := p.resp.Field(name); f != nil {
		*f = value
	} else if p.resp.Entity.Extension == "" {
		// One slot for a header outside the standard set; further
		// unknown headers are discarded.
		p.resp.Entity.Extension = line
	}
	return nil
}
