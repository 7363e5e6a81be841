package serial

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// DefaultBaud matches the bridge firmware's console rate.
const DefaultBaud = 115200

// Port is the byte-stream interface to an attached module.
type Port interface {
	io.ReadWriteCloser

	// SetReadTimeout bounds each subsequent Read. serial.NoTimeout
	// disables the bound.
	SetReadTimeout(d time.Duration) error
}

// NoTimeout disables the read bound when passed to SetReadTimeout.
var NoTimeout = serial.NoTimeout

// Options selects the device to open.
type Options struct {
	Device string
	Baud   int
}

// Open opens the named device in 8N1 at the given baud rate.
func Open(opts Options) (Port, error) {
	if strings.TrimSpace(opts.Device) == "" {
		return nil, fmt.Errorf("serial: no device given")
	}
	baud := opts.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(opts.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", opts.Device, err)
	}
	return port, nil
}

// bridgeIDs lists USB vendor:product pairs of the UART adapters the wifi
// bridge boards ship with.
var bridgeIDs = map[string]string{
	"10C4:EA60": "cp210x",
	"1A86:7523": "ch340",
	"0403:6001": "ftdi",
}

// PortInfo describes one enumerated serial device.
type PortInfo struct {
	Device  string
	USB     bool
	VID     string
	PID     string
	Serial  string
	Adapter string
}

// List enumerates the serial devices present on the system.
func List() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("serial: enumerate ports: %w", err)
	}
	infos := make([]PortInfo, 0, len(ports))
	for _, p := range ports {
		info := PortInfo{Device: p.Name, USB: p.IsUSB}
		if p.IsUSB {
			info.VID = strings.ToUpper(p.VID)
			info.PID = strings.ToUpper(p.PID)
			info.Serial = p.SerialNumber
			info.Adapter = bridgeIDs[info.VID+":"+info.PID]
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// FindBridge locates the wifi bridge by scanning USB serial adapters with a
// known vendor:product pair. It returns the device path of the first match.
func FindBridge() (string, error) {
	infos, err := List()
	if err != nil {
		return "", err
	}
	for _, info := range infos {
		if info.USB && info.Adapter != "" {
			return info.Device, nil
		}
	}
	return "", fmt.Errorf("serial: no bridge adapter found among %d ports", len(infos))
}
