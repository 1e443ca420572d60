package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

const (
	dialTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	pingTimeout = 2 * time.Second
)

// Printer sends raw ESC/POS data to a thermal receipt printer.
type Printer interface {
	Print(data []byte) error
	Close() error
	IsConnected() bool
}

// NewPrinterFromConfig builds a Printer for the configured transport.
// Supported types are "usb" (device file), "network" (TCP, port 9100
// convention) and "none" for environments without hardware.
func NewPrinterFromConfig(printerType, devicePath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if devicePath == "" {
			return nil, fmt.Errorf("printer: USB printer needs a device path")
		}
		return NewUSBPrinter(devicePath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: network printer needs an address")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", printerType)
	}
}

type usbPrinter struct {
	path string
}

// NewUSBPrinter writes jobs to a device file such as /dev/usb/lp0.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

// Close is a no-op, the device file is opened per job.
func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

type networkPrinter struct {
	address string
}

// NewNetworkPrinter dials host:port per job, e.g. "192.168.1.50:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

// Close is a no-op, connections are dialed per job.
func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, pingTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

// NewNullPrinter discards all jobs. Used when no printer is configured,
// kiosks still complete checkout and the receipt is skipped.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error { return nil }
func (p *nullPrinter) Close() error            { return nil }
func (p *nullPrinter) IsConnected() bool       { return false }
