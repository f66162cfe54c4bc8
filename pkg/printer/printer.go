package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends one finished document to the printer.
	Print(data []byte) error
	Close() error
	// IsConnected reports whether the transport can currently reach the
	// printer. Used for the status endpoint, not as a guard before Print.
	IsConnected() bool
}

// Config selects the transport and its per-job time budget.
type Config struct {
	// Type is "usb", "network" or "none".
	Type string
	// Device is the character device for usb transports, e.g. /dev/usb/lp0.
	Device string
	// Address is host:port for network transports, e.g. 192.168.8.20:9100.
	Address string
	// Timeout bounds dialing and writing one document. Zero means
	// DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout is the per-job budget when the config does not set one.
const DefaultTimeout = 5 * time.Second

// New builds the transport for the configured printer type. Unknown types
// are an error so a typo in config does not silently disable printing.
func New(cfg Config) (Printer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	switch cfg.Type {
	case "usb":
		if cfg.Device == "" {
			return nil, fmt.Errorf("printer: usb transport needs a device path")
		}
		return &devicePrinter{path: cfg.Device}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: network transport needs an address")
		}
		return &netPrinter{address: cfg.Address, timeout: cfg.Timeout}, nil
	case "none", "":
		return Disabled(), nil
	default:
		return nil, fmt.Errorf("printer: unknown transport %q (usb, network or none)", cfg.Type)
	}
}

// devicePrinter writes documents straight to a USB character device. The
// device is opened per job; line printers keep no useful session state.
type devicePrinter struct {
	path string
}

func (p *devicePrinter) Print(data []byte) error {
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

func (p *devicePrinter) Close() error { return nil }

func (p *devicePrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// netPrinter dials a raw TCP port (9100 style) per job. One deadline covers
// the whole write so a wedged printer cannot hang the request handler.
type netPrinter struct {
	address string
	timeout time.Duration
}

func (p *netPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.address, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(p.timeout)); err != nil {
		return fmt.Errorf("printer: set deadline on %s: %w", p.address, err)
	}
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write to %s: %w", p.address, err)
	}
	return nil
}

func (p *netPrinter) Close() error { return nil }

func (p *netPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Disabled returns a printer that accepts and discards every document, for
// installations without hardware. Receipts are still rendered and returned
// over the API.
func Disabled() Printer {
	return disabledPrinter{}
}

type disabledPrinter struct{}

func (disabledPrinter) Print([]byte) error { return nil }
func (disabledPrinter) Close() error       { return nil }
func (disabledPrinter) IsConnected() bool  { return false }
