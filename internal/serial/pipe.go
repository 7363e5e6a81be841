package serial

import (
	"net"
	"os"
	"sync"
	"time"
)

// Pipe returns a connected in-memory port pair. Writes to one side are
// readable from the other. Tests use this in place of hardware.
func Pipe() (Port, Port) {
	a, b := net.Pipe()
	return &pipePort{conn: a}, &pipePort{conn: b}
}

type pipePort struct {
	conn net.Conn

	mu      sync.Mutex
	timeout time.Duration
}

func (p *pipePort) Read(buf []byte) (int, error) {
	p.mu.Lock()
	timeout := p.timeout
	p.mu.Unlock()
	if timeout > 0 {
		if err := p.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return 0, err
		}
	} else {
		if err := p.conn.SetReadDeadline(time.Time{}); err != nil {
			return 0, err
		}
	}
	n, err := p.conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			err = os.ErrDeadlineExceeded
		}
	}
	return n, err
}

func (p *pipePort) Write(buf []byte) (int, error) { return p.conn.Write(buf) }

func (p *pipePort) Close() error { return p.conn.Close() }

func (p *pipePort) SetReadTimeout(d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeout = d
	return nil
}
