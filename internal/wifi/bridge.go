package wifi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"roostaboosta/internal/logging"
	"roostaboosta/internal/serial"
)

var (
	// ErrClosed indicates a call after Close.
	ErrClosed = errors.New("wifi: bridge closed")

	// ErrNotConnected indicates the station never obtained an address.
	ErrNotConnected = errors.New("wifi: not connected to an access point")
)

// payloadMarker frames socket payload the bridge firmware echoes back over
// the UART: the marker, a decimal byte count, a colon, then that many raw
// bytes. Everything else on the line is console traffic.
const payloadMarker = "+PK:"

const (
	defaultTimeout = 5 * time.Second
	replyBacklog   = 32
)

// Options tunes a bridge.
type Options struct {
	// Timeout bounds connect/disconnect polling and console replies.
	Timeout time.Duration
}

// Bridge is the serial-attached wifi module. One goroutine owns all reads
// from the port and splits the stream into console reply lines and framed
// socket payload.
type Bridge struct {
	port    serial.Port
	logger  *slog.Logger
	timeout time.Duration

	replies chan string
	done    chan struct{}

	wmu sync.Mutex // serializes writes to the port

	mu     sync.Mutex
	ip     string
	closed bool
	sess   *session
	nextID uint64
}

// NewBridge wraps an open port and starts the receive loop.
func NewBridge(port serial.Port, logger *slog.Logger, opts Options) *Bridge {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	b := &Bridge{
		port:    port,
		logger:  logging.NewComponentLogger(logger, "wifi"),
		timeout: timeout,
		replies: make(chan string, replyBacklog),
		done:    make(chan struct{}),
	}
	go b.readLoop()
	return b
}

// Close stops the receive loop and closes the port.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	sess := b.sess
	b.sess = nil
	b.mu.Unlock()

	if sess != nil {
		sess.flag.Set()
	}
	close(b.done)
	return b.port.Close()
}

// Init resets the module to a clean state. The reset pin is not wired on
// host builds, so this relies on the firmware restart command.
func (b *Bridge) Init() error {
	if err := b.command("node.restart()"); err != nil {
		return fmt.Errorf("wifi: reset: %w", err)
	}
	b.drainReplies()
	return nil
}

// Connect joins the named access point in station mode and polls until the
// module reports an address or the bridge timeout elapses.
func (b *Bridge) Connect(ctx context.Context, ssid, phrase string) error {
	if err := b.command("wifi.setmode(wifi.STATION)"); err != nil {
		return err
	}
	if err := b.command(fmt.Sprintf("wifi.sta.config(%q,%q)", ssid, phrase)); err != nil {
		return err
	}
	b.drainReplies()

	deadline := time.Now().Add(b.timeout)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := b.query("print(wifi.sta.getip())", time.Second)
		if err != nil {
			continue
		}
		if ip := parseIP(line); ip != "" {
			b.mu.Lock()
			b.ip = ip
			b.mu.Unlock()
			b.logger.Info("station connected", logging.String("ssid", ssid), logging.String("ip", ip))
			return nil
		}
	}
	return fmt.Errorf("%w: ssid %s", ErrNotConnected, ssid)
}

// Disconnect leaves the access point and polls until the address reads back
// as nil.
func (b *Bridge) Disconnect(ctx context.Context) error {
	if err := b.command("wifi.sta.disconnect()"); err != nil {
		return err
	}
	b.drainReplies()

	deadline := time.Now().Add(b.timeout)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := b.query("print(wifi.sta.getip())", time.Second)
		if err != nil {
			continue
		}
		if parseIP(line) == "" {
			b.mu.Lock()
			b.ip = ""
			b.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("wifi: disconnect did not settle within %s", b.timeout)
}

// IP returns the station address from the last successful Connect, or the
// empty string.
func (b *Bridge) IP() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ip
}

// Connected reports whether the last Connect obtained an address.
func (b *Bridge) Connected() bool { return b.IP() != "" }

// scanScript asks the firmware to print one SSID per line.
const scanScript = `function listap(t) for bssid,v in pairs(t) do local ssid = string.match(v, "([^,]+)") print(ssid) end end wifi.sta.getap(1, listap)`

// Scan lists visible access points. Collection stops after the first quiet
// interval on the console or when ctx is done.
func (b *Bridge) Scan(ctx context.Context) ([]string, error) {
	b.drainReplies()
	if err := b.command(scanScript); err != nil {
		return nil, err
	}

	var ssids []string
	quiet := time.NewTimer(b.timeout)
	defer quiet.Stop()
	for {
		select {
		case line := <-b.replies:
			line = strings.TrimSpace(line)
			if line == "" || strings.Contains(line, "listap") || strings.Contains(line, "getap") {
				continue
			}
			ssids = append(ssids, line)
			quiet.Reset(500 * time.Millisecond)
		case <-quiet.C:
			return ssids, nil
		case <-ctx.Done():
			return ssids, ctx.Err()
		case <-b.done:
			return ssids, ErrClosed
		}
	}
}

// command writes one console line.
func (b *Bridge) command(cmd string) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}
	b.wmu.Lock()
	defer b.wmu.Unlock()
	_, err := io.WriteString(b.port, cmd+"\r\n")
	if err != nil {
		return fmt.Errorf("wifi: write command: %w", err)
	}
	return nil
}

// query sends a command and returns the first reply line that is not an
// echo of the command itself.
func (b *Bridge) query(cmd string, timeout time.Duration) (string, error) {
	b.drainReplies()
	if err := b.command(cmd); err != nil {
		return "", err
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		select {
		case line := <-b.replies:
			line = strings.TrimSpace(line)
			if line == "" || line == cmd || strings.HasPrefix(line, "> ") {
				continue
			}
			return line, nil
		case <-deadline.C:
			return "", fmt.Errorf("wifi: no reply to %q within %s", cmd, timeout)
		case <-b.done:
			return "", ErrClosed
		}
	}
}

func (b *Bridge) drainReplies() {
	for {
		select {
		case <-b.replies:
		default:
			return
		}
	}
}

// readLoop owns the port's read side. Framed payload goes to the live
// session; everything else is treated as console reply lines.
func (b *Bridge) readLoop() {
	_ = b.port.SetReadTimeout(serial.NoTimeout)
	r := bufio.NewReader(b.port)
	for {
		prefix, err := r.Peek(len(payloadMarker))
		if err != nil {
			b.logger.Debug("receive loop ended", logging.Error(err))
			return
		}
		if string(prefix) == payloadMarker {
			if err := b.readPayload(r); err != nil {
				b.logger.Warn("malformed payload frame", logging.Error(err))
				return
			}
			continue
		}
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		select {
		case b.replies <- strings.TrimRight(line, "\r\n"):
		default:
			// Console backlog full; oldest traffic is the least
			// interesting, so drop the new line.
		}
	}
}

func (b *Bridge) readPayload(r *bufio.Reader) error {
	if _, err := r.Discard(len(payloadMarker)); err != nil {
		return err
	}
	n := 0
	for {
		c, err := r.ReadByte()
		if err != nil {
			return err
		}
		if c == ':' {
			break
		}
		if c < '0' || c > '9' {
			return fmt.Errorf("bad length byte %q", c)
		}
		n = n*10 + int(c-'0')
		if n > maxSessionBuffer {
			return fmt.Errorf("frame length %d exceeds buffer cap", n)
		}
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return err
	}
	b.deliver(payload)
	return nil
}

// parseIP extracts the station address from a getip reply. The firmware
// prints "ip mask gateway", or nil when unconfigured.
func parseIP(line string) string {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 || fields[0] == "nil" {
		return ""
	}
	return fields[0]
}
