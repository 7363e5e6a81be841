package devmon

import (
	"context"
	"testing"

	"github.com/pilebones/go-udev/netlink"

	"roostaboosta/internal/logging"
)

func TestNewRequiresDevice(t *testing.T) {
	if m := New("", Events{}, logging.NewNop()); m != nil {
		t.Fatal("expected nil monitor for empty device")
	}
	if m := New("   ", Events{}, logging.NewNop()); m != nil {
		t.Fatal("expected nil monitor for blank device")
	}
	m := New("/dev/ttyUSB0", Events{}, logging.NewNop())
	if m == nil {
		t.Fatal("expected monitor")
	}
	if m.device != "/dev/ttyUSB0" {
		t.Fatalf("unexpected device: %q", m.device)
	}
}

func TestNilMonitorIsSafe(t *testing.T) {
	var m *Monitor
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start on nil monitor: %v", err)
	}
	m.Stop()
	if m.Running() {
		t.Fatal("nil monitor must not report running")
	}
}

func TestStopBeforeStartIsSafe(t *testing.T) {
	m := New("/dev/ttyUSB0", Events{}, logging.NewNop())
	m.Stop()
	if m.Running() {
		t.Fatal("unstarted monitor must not report running")
	}
}

func TestHandleEventFiltersAndDispatches(t *testing.T) {
	var attached, detached []string
	m := New("/dev/ttyUSB0", Events{
		Attached: func(ctx context.Context, device string) { attached = append(attached, device) },
		Detached: func(ctx context.Context, device string) { detached = append(detached, device) },
	}, logging.NewNop())

	ctx := context.Background()

	m.handleEvent(ctx, netlink.UEvent{
		Action: netlink.ADD,
		Env:    map[string]string{"DEVNAME": "ttyUSB0"},
	})
	m.handleEvent(ctx, netlink.UEvent{
		Action: netlink.ADD,
		Env:    map[string]string{"DEVNAME": "/dev/ttyUSB1"},
	})
	m.handleEvent(ctx, netlink.UEvent{
		Action: netlink.REMOVE,
		Env:    map[string]string{"DEVPATH": "/devices/pci0000:00/usb1/1-2/tty/ttyUSB0"},
	})
	m.handleEvent(ctx, netlink.UEvent{
		Action: netlink.CHANGE,
		Env:    map[string]string{"DEVNAME": "/dev/ttyUSB0"},
	})

	if len(attached) != 1 || attached[0] != "/dev/ttyUSB0" {
		t.Fatalf("unexpected attach events: %v", attached)
	}
	if len(detached) != 1 || detached[0] != "/dev/ttyUSB0" {
		t.Fatalf("unexpected detach events: %v", detached)
	}
}

func TestExtractDeviceName(t *testing.T) {
	cases := []struct {
		env  map[string]string
		want string
	}{
		{map[string]string{"DEVNAME": "/dev/ttyUSB0"}, "/dev/ttyUSB0"},
		{map[string]string{"DEVNAME": "ttyUSB0"}, "/dev/ttyUSB0"},
		{map[string]string{"DEVPATH": "/devices/x/tty/ttyACM3"}, "/dev/ttyACM3"},
		{map[string]string{}, ""},
	}
	for _, tc := range cases {
		if got := extractDeviceName(netlink.UEvent{Env: tc.env}); got != tc.want {
			t.Fatalf("extractDeviceName(%v) = %q, want %q", tc.env, got, tc.want)
		}
	}
}
