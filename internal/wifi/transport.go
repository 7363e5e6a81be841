package wifi

import (
	"fmt"
	"time"

	"roostaboosta/internal/event"
	"roostaboosta/internal/httpx"
	"roostaboosta/internal/logging"
)

// maxSessionBuffer caps buffered response bytes per exchange. The consumer
// is expected to drain as data arrives; overflow discards the newest bytes
// rather than growing without bound.
const maxSessionBuffer = 16 * 1024

// session is one HTTP exchange riding the bridge's single Lua socket.
type session struct {
	id     uint64
	onData func([]byte)
	flag   *event.Flag

	rx      []byte
	dropped int
}

// Begin claims the bridge's single request slot, opens a TCP socket on the
// module, and points its receive handler at the UART payload framer.
func (b *Bridge) Begin(host string, onData func([]byte)) (uint64, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return 0, ErrClosed
	}
	if b.sess != nil {
		b.mu.Unlock()
		return 0, httpx.ErrTransportBusy
	}
	b.nextID++
	id := b.nextID
	b.sess = &session{id: id, onData: onData, flag: event.NewFlag()}
	b.mu.Unlock()

	setup := []string{
		"sk=net.createConnection(net.TCP, 0)",
		`sk:on("receive", function(sck, c) uart.write(0, "` + payloadMarker + `"..#c..":"..c) end)`,
		fmt.Sprintf("sk:connect(80,%q)", host),
	}
	for _, cmd := range setup {
		if err := b.command(cmd); err != nil {
			b.Drop(id)
			return 0, err
		}
	}
	b.logger.Debug("exchange opened", logging.Uint64("id", id), logging.String("host", host))
	return id, nil
}

// Send pushes one chunk of the serialized request through the socket.
func (b *Bridge) Send(id uint64, p []byte) error {
	b.mu.Lock()
	ok := b.sess != nil && b.sess.id == id
	b.mu.Unlock()
	if !ok {
		return httpx.ErrInactivePromise
	}
	if len(p) == 0 {
		return nil
	}
	return b.command("sk:send(" + luaQuote(p) + ")")
}

// Wait blocks until the receive loop signals payload for the id or the
// timeout elapses.
func (b *Bridge) Wait(id uint64, timeout time.Duration) error {
	b.mu.Lock()
	sess := b.sess
	b.mu.Unlock()
	if sess == nil || sess.id != id {
		return httpx.ErrInactivePromise
	}
	if !sess.flag.Wait(timeout) {
		return httpx.ErrTimeout
	}
	return nil
}

// Available reports buffered response bytes for the id.
func (b *Bridge) Available(id uint64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sess == nil || b.sess.id != id {
		return 0
	}
	return len(b.sess.rx)
}

// Read copies buffered response bytes into p without blocking. An empty
// buffer reads zero bytes with no error.
func (b *Bridge) Read(id uint64, p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sess == nil || b.sess.id != id {
		return 0, httpx.ErrInactivePromise
	}
	n := copy(p, b.sess.rx)
	b.sess.rx = b.sess.rx[n:]
	return n, nil
}

// Drop closes the module-side socket and releases the request slot.
// Dropping an id that is no longer live is a no-op.
func (b *Bridge) Drop(id uint64) {
	b.mu.Lock()
	if b.sess == nil || b.sess.id != id {
		b.mu.Unlock()
		return
	}
	sess := b.sess
	b.sess = nil
	b.mu.Unlock()

	_ = b.command("sk:close()")
	sess.flag.Set()
	if sess.dropped > 0 {
		b.logger.Warn("exchange dropped response bytes",
			logging.Uint64("id", id), logging.Int("bytes", sess.dropped))
	}
}

// deliver hands framed socket payload to the live session. Runs on the
// receive loop goroutine.
func (b *Bridge) deliver(payload []byte) {
	b.mu.Lock()
	sess := b.sess
	if sess != nil {
		room := maxSessionBuffer - len(sess.rx)
		if room < len(payload) {
			sess.dropped += len(payload) - room
			payload = payload[:room]
		}
		sess.rx = append(sess.rx, payload...)
	}
	b.mu.Unlock()
	if sess == nil {
		return
	}
	if sess.onData != nil {
		sess.onData(payload)
	}
	sess.flag.Set()
}

// luaQuote renders raw bytes as a Lua double-quoted string literal.
func luaQuote(p []byte) string {
	buf := make([]byte, 0, len(p)+16)
	buf = append(buf, '"')
	for _, c := range p {
		switch {
		case c == '"':
			buf = append(buf, '\\', '"')
		case c == '\\':
			buf = append(buf, '\\', '\\')
		case c == '\r':
			buf = append(buf, '\\', 'r')
		case c == '\n':
			buf = append(buf, '\\', 'n')
		case c < 0x20 || c > 0x7e:
			// Lua decimal escapes are zero-padded so a following
			// digit cannot extend them.
			buf = append(buf, '\\')
			buf = append(buf, '0'+c/100, '0'+c/10%10, '0'+c%10)
		default:
			buf = append(buf, c)
		}
	}
	return string(append(buf, '"'))
}
