package uart

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"
)

// dataSizes maps a character width to its CSIZE value
var dataSizes = map[int]uint32{
	5: unix.CS5,
	6: unix.CS6,
	7: unix.CS7,
	8: unix.CS8,
}

// MakeRaw clears the input, output and line-mode flag groups: no newline
// translation, no echo, no canonical line editing.
func MakeRaw(t *unix.Termios) {
	t.Iflag = 0
	t.Oflag = 0
	t.Lflag = 0
}

// SetDataBits sets the character size (5, 6, 7 or 8 bits)
func SetDataBits(t *unix.Termios, bits int) error {
	size, ok := dataSizes[bits]
	if !ok {
		return fmt.Errorf("%w: %d data bits", ErrUnsupportedValue, bits)
	}
	t.Cflag &^= unix.CSIZE
	t.Cflag |= size
	return nil
}

// SetStopBits sets one or two stop bits
func SetStopBits(t *unix.Termios, bits int) error {
	switch bits {
	case 1:
		t.Cflag &^= unix.CSTOPB
	case 2:
		t.Cflag |= unix.CSTOPB
	default:
		return fmt.Errorf("%w: %d stop bits", ErrUnsupportedValue, bits)
	}
	return nil
}

// SetParity enables or disables parity generation and checking
func SetParity(t *unix.Termios, parity Parity) error {
	switch parity {
	case ParityNone:
		t.Cflag &^= unix.PARENB
	case ParityEven:
		t.Cflag |= unix.PARENB
		t.Cflag &^= unix.PARODD
	case ParityOdd:
		t.Cflag |= unix.PARENB | unix.PARODD
	default:
		return fmt.Errorf("%w: parity %v", ErrUnsupportedValue, parity)
	}
	return nil
}

// SetSpeed sets both the input and output speed
func SetSpeed(t *unix.Termios, baud int) error {
	speed, err := getBaudRate(baud)
	if err != nil {
		return err
	}

	// Linux keeps the effective speed in the CBAUD bits of c_cflag
	t.Cflag = (t.Cflag &^ unix.CBAUD) | speed
	t.Ispeed = speed
	t.Ospeed = speed
	return nil
}

// SetReadTimeout configures timeout-only reads: VMIN is 0 and VTIME is the
// number of deciseconds a read waits for data before returning empty.
func SetReadTimeout(t *unix.Termios, deciseconds int) error {
	if deciseconds < 0 || deciseconds > math.MaxUint8 {
		return fmt.Errorf("%w: read timeout %d deciseconds", ErrUnsupportedValue, deciseconds)
	}
	t.Cc[unix.VTIME] = uint8(deciseconds)
	t.Cc[unix.VMIN] = 0
	return nil
}

// EnableReading turns on the receiver and ignores modem control lines so
// reads work without carrier detect.
func EnableReading(t *unix.Termios) {
	t.Cflag |= unix.CLOCAL | unix.CREAD
}

// BuildAttributes returns a copy of base configured for cfg. The copy is put
// into raw mode once, then every axis is applied. base is never modified, so a
// failure leaves nothing half-configured.
func BuildAttributes(base unix.Termios, cfg Config) (unix.Termios, error) {
	t := base
	MakeRaw(&t)

	if err := SetDataBits(&t, cfg.Mode.DataBits); err != nil {
		return base, err
	}
	if err := SetStopBits(&t, cfg.Mode.StopBits); err != nil {
		return base, err
	}
	if err := SetParity(&t, cfg.Mode.Parity); err != nil {
		return base, err
	}
	if err := SetSpeed(&t, cfg.BaudRate); err != nil {
		return base, err
	}
	if err := SetReadTimeout(&t, cfg.ReadTimeout); err != nil {
		return base, err
	}
	EnableReading(&t)

	return t, nil
}
