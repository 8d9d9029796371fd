// Package uart opens Linux serial devices and configures their line discipline
// from a baud rate and a compact mode descriptor such as "8N1".
//
// # Basic Usage
//
// Open a port with the default configuration (9600 8N1, 0.5s read timeout):
//
//	port, err := uart.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	n, err := port.Write([]byte("Hello"))
//	reply, err := port.ReadN(12)
//
// The positional form mirrors the descriptor directly:
//
//	port, err := uart.OpenMode("/dev/ttyUSB0", 19200, "7E2")
//
// # Scoped Ports
//
// Use and With close the port on every exit path and hand back the
// callback's result:
//
//	reply, err := uart.Use("/dev/ttyUSB0", func(p *uart.Port) ([]byte, error) {
//	    if _, err := p.Write([]byte("AT\r")); err != nil {
//	        return nil, err
//	    }
//	    return p.ReadN(6)
//	}, uart.WithBaudRate(115200))
//
// # Mode Descriptors
//
// A descriptor is exactly three characters: the data bits (5-8), the parity
// letter (N, E or O) and the stop bits (1 or 2). Matching is case-sensitive
// and no whitespace is allowed.
//
// # Read Timeout
//
// Ports are configured with VMIN=0 and VTIME set to the read timeout in
// tenths of a second. A read returns as soon as data is available, or with
// zero bytes once the timeout passes in silence. There is no other
// cancellation mechanism.
//
// # Attribute Transforms
//
// The translation from configuration to termios flags is exposed as a set of
// transforms on unix.Termios (SetDataBits, SetStopBits, SetParity, SetSpeed,
// SetReadTimeout, EnableReading, MakeRaw) and the BuildAttributes pipeline,
// so the exact bits can be inspected without a device.
//
// # Error Handling
//
//	var (
//	    ErrInvalidModeFormat // descriptor does not match <digit><N|E|O><digit>
//	    ErrUnsupportedValue  // no OS symbol for a width, count, parity or rate
//	    ErrDeviceNotFound    // device path missing
//	    ErrPermissionDenied  // no access to the device
//	    ErrPortClosed        // port already closed
//	)
//
// Configuration errors abort Open before any attribute is committed, so the
// device keeps its previous settings. OS errors stay in the chain and can be
// matched with errors.Is.
//
// # Platform Support
//
// Linux only. Termios access goes through golang.org/x/sys/unix.
package uart
