package httpx

import (
	"fmt"
	"time"
)

// Transport moves serialized request bytes to the wire and surfaces raw
// response bytes, keyed by a per-request id from a small fixed pool.
//
// Begin's onData callback is invoked from the transport's receive loop
// whenever new inbound data arrives, before any waiter wakes; it must not
// block and must not retain the passed slice.
type Transport interface {
	// Begin claims a request id for an exchange with the given host and
	// registers the receive callback (which may be nil). It fails with
	// ErrTransportBusy when the id pool is exhausted.
	Begin(host string, onData func([]byte)) (uint64, error)

	// Send transmits one chunk of the serialized request.
	Send(id uint64, p []byte) error

	// Wait blocks until response data is signaled for the id or the
	// timeout elapses, in which case it returns ErrTimeout. The signal is
	// sticky and level-collapsed: callers re-check Available in a loop.
	Wait(id uint64, timeout time.Duration) error

	// Available reports how many buffered response bytes can be read
	// without blocking.
	Available(id uint64) int

	// Read copies buffered response bytes for the id into p.
	Read(id uint64, p []byte) (int, error)

	// Drop aborts the exchange and releases transport resources for the
	// id. Dropping an already-released id is a no-op.
	Drop(id uint64)
}

// sendBufSize is the scratch buffer the client serializes request chunks
// into before handing them to the transport.
const sendBufSize = 256

// Config bounds a client's concurrency.
type Config struct {
	// MaxInflight caps concurrent requests through this client. Zero or
	// negative means one: a second request blocks until the first promise
	// is dropped or the send timeout expires.
	MaxInflight int
}

// Client runs the request/response lifecycle over a Transport. Admission is
// gated by a counting semaphore sized to MaxInflight; gate exhaustion
// surfaces as ErrTimeout, indistinguishable from a slow transport, leaving
// backoff policy to the caller.
type Client struct {
	tr   Transport
	gate chan struct{}
}

// NewClient builds a client over the given transport.
func NewClient(tr Transport, cfg Config) *Client {
	n := cfg.MaxInflight
	if n <= 0 {
		n = 1
	}
	return &Client{tr: tr, gate: make(chan struct{}, n)}
}

// Do validates and sends a request, binding resp and the claimed request id
// into the returned promise. The request is serialized chunk by chunk
// through a fixed buffer, so its size is not bounded by any transport
// buffer. onData, if non-nil, is invoked from the transport's receive loop
// on every inbound data burst; it must be non-blocking.
//
// The caller owns resp; the transport populates it as bytes are read. The
// promise must be dropped (or closed via Drop) to release the request slot.
func (c *Client) Do(req *Request, resp *Response, sendTimeout time.Duration, onData func([]byte)) (*Promise, error) {
	if req == nil || !req.Valid() {
		return nil, ErrInvalidRequest
	}

	if err := c.acquire(sendTimeout); err != nil {
		return nil, err
	}

	id, err := c.tr.Begin(req.Header.Host, onData)
	if err != nil {
		c.release()
		return nil, fmt.Errorf("begin request: %w", err)
	}

	cur := NewRequestCursor(req)
	var buf [sendBufSize]byte
	for !cur.EOF() {
		n, serr := cur.Serialize(buf[:])
		if serr != nil {
			c.tr.Drop(id)
			c.release()
			return nil, fmt.Errorf("serialize request: %w", serr)
		}
		if n == 0 {
			continue
		}
		if serr := c.tr.Send(id, buf[:n]); serr != nil {
			c.tr.Drop(id)
			c.release()
			return nil, fmt.Errorf("send request: %w", serr)
		}
	}

	return &Promise{resp: resp, client: c, id: id}, nil
}

func (c *Client) acquire(timeout time.Duration) error {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case c.gate <- struct{}{}:
		return nil
	case <-t.C:
		return fmt.Errorf("acquire request slot: %w", ErrTimeout)
	}
}

func (c *Client) release() {
	select {
	case <-c.gate:
	default:
	}
}

// Promise is the handle to one in-flight request. It binds the caller's
// response object, the owning client, and the claimed request id. A promise
// with id zero is inert: waits are no-ops and reads fail.
//
// A promise is single-owner and must not be copied; the response-buffer
// association is exclusive. Dropping it releases the transport slot exactly
// once, and forgetting to drop leaks the client's request slot until Drop
// is called.
type Promise struct {
	resp   *Response
	client *Client
	id     uint64
	err    error
}

// Err returns the error recorded by the most recent Wait or Read.
func (p *Promise) Err() error { return p.err }

// Response returns the bound response object.
func (p *Promise) Response() *Response { return p.resp }

// Wait blocks until the transport signals response data or the timeout
// elapses; a timeout is recorded and returned as ErrTimeout. Data buffered
// before a timeout is not lost. Waiting on an inert promise is a no-op.
func (p *Promise) Wait(timeout time.Duration) error {
	if p.id == 0 {
		return p.err
	}
	p.err = p.client.tr.Wait(p.id, timeout)
	return p.err
}

// Available reports buffered unread response bytes.
func (p *Promise) Available() int {
	if p.id == 0 {
		return 0
	}
	return p.client.tr.Available(p.id)
}

// Read copies buffered response bytes into buf. Reading from an inert
// promise fails with ErrInactivePromise without touching the transport.
func (p *Promise) Read(buf []byte) (int, error) {
	if p.id == 0 {
		p.err = ErrInactivePromise
		return 0, p.err
	}
	n, err := p.client.tr.Read(p.id, buf)
	p.err = err
	return n, err
}

// Drop aborts the request and releases the transport slot. It is idempotent;
// the first call wins and later calls are no-ops.
func (p *Promise) Drop() {
	if p.id == 0 {
		return
	}
	p.client.tr.Drop(p.id)
	p.client.release()
	p.id = 0
}
