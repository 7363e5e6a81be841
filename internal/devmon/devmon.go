// Package devmon watches udev netlink events for the USB serial adapter
// that carries the Wi-Fi bridge, so the daemon can reconnect when the
// adapter is replugged. Netlink access is optional: when the socket cannot
// be opened the monitor degrades to a no-op and the daemon keeps running.
package devmon

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"roostaboosta/internal/logging"
)

// Events receives device lifecycle notifications. Callbacks run on the
// monitor goroutine and must not block.
type Events struct {
	Attached func(ctx context.Context, device string)
	Detached func(ctx context.Context, device string)
}

// Monitor listens for tty add/remove events matching a device path.
type Monitor struct {
	device string
	events Events
	logger *slog.Logger

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// New creates a monitor for the given serial device path. Returns nil when
// no device is configured; a nil monitor is safe to Start and Stop.
func New(device string, events Events, logger *slog.Logger) *Monitor {
	device = strings.TrimSpace(device)
	if device == "" {
		return nil
	}
	return &Monitor{
		device: device,
		events: events,
		logger: logging.NewComponentLogger(logger, "devmon"),
	}
}

// Start begins listening for udev netlink events. Failure to open the
// netlink socket is logged and swallowed.
func (m *Monitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("netlink unavailable, hotplug detection disabled",
			logging.Error(err))
		return nil
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("device monitor started", logging.String("device", m.device))
	return nil
}

// Stop shuts down the monitor.
func (m *Monitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false

	m.logger.Info("device monitor stopped")
}

// Running reports whether the monitor is active.
func (m *Monitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, m.buildMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(ctx, uevent)
		case err := <-errs:
			m.logger.Warn("netlink monitor error", logging.Error(err))
		}
	}
}

// buildMatcher matches tty add/remove events; finer filtering happens in
// handleEvent against the configured device path.
func (m *Monitor) buildMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "tty",
		},
	})
	return rules
}

func (m *Monitor) handleEvent(ctx context.Context, uevent netlink.UEvent) {
	devname := extractDeviceName(uevent)
	if devname == "" || devname != m.device {
		return
	}

	switch uevent.Action {
	case netlink.ADD:
		m.logger.Info("bridge device attached", logging.String("device", devname))
		if m.events.Attached != nil {
			m.events.Attached(ctx, devname)
		}
	case netlink.REMOVE:
		m.logger.Warn("bridge device detached", logging.String("device", devname))
		if m.events.Detached != nil {
			m.events.Detached(ctx, devname)
		}
	}
}

func extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		if !strings.HasPrefix(devname, "/dev/") {
			return "/dev/" + devname
		}
		return devname
	}

	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	if len(parts) == 0 {
		return ""
	}
	return "/dev/" + parts[len(parts)-1]
}
