package uart

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sys/unix"
)

// Port is an open, configured uart device. It is owned by a single caller;
// the mutex only protects the closed state.
type Port struct {
	mu     sync.RWMutex
	fd     int
	path   string
	config Config
	closed bool
}

// Ensure Port implements io.ReadWriteCloser at compile time
var _ io.ReadWriteCloser = (*Port)(nil)

// Open opens a uart device with the given path and options
func Open(path string, opts ...Option) (*Port, error) {
	// Apply default configuration. Option errors return before the device
	// is touched.
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}
	log := config.Logger.With(slog.String("path", path))

	// O_NONBLOCK keeps open from waiting on carrier detect
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, openError(path, err)
	}

	// Reads must block so VTIME applies
	if err := unix.SetNonblock(fd, false); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to enable blocking I/O on %s: %w", path, err)
	}
	log.Debug("device opened", slog.Int("fd", fd))

	if err := configurePort(fd, config, log); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &Port{
		fd:     fd,
		path:   path,
		config: config,
	}, nil
}

// OpenMode opens path with a baud rate and mode descriptor such as "8N1"
func OpenMode(path string, baud int, mode string) (*Port, error) {
	return Open(path, WithBaudRate(baud), WithMode(mode))
}

// Use opens path, passes the port to fn and closes it when fn returns or
// panics. The value returned by fn is returned by Use. A close error is only
// reported when fn itself succeeded.
func Use[T any](path string, fn func(*Port) (T, error), opts ...Option) (result T, err error) {
	p, err := Open(path, opts...)
	if err != nil {
		return result, err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil && !errors.Is(cerr, ErrPortClosed) && err == nil {
			err = cerr
		}
	}()

	return fn(p)
}

// With is Use for callbacks that only return an error
func With(path string, fn func(*Port) error, opts ...Option) error {
	_, err := Use(path, func(p *Port) (struct{}, error) {
		return struct{}{}, fn(p)
	}, opts...)
	return err
}

// openError classifies a failed open while keeping the OS error in the chain
func openError(path string, err error) error {
	switch {
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ENXIO), errors.Is(err, unix.ENODEV):
		return fmt.Errorf("failed to open %s: %w: %w", path, ErrDeviceNotFound, err)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("failed to open %s: %w: %w", path, ErrPermissionDenied, err)
	default:
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
}

// configurePort builds the complete attribute set, commits it in a single
// call and flushes both queues.
func configurePort(fd int, config Config, log *slog.Logger) error {
	// Get current termios settings
	current, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %w", err)
	}

	termios, err := BuildAttributes(*current, config)
	if err != nil {
		log.Debug("configuration rejected", slog.Any("error", err))
		return err
	}

	// Apply settings immediately
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &termios); err != nil {
		return fmt.Errorf("failed to set termios: %w", err)
	}
	log.Debug("termios committed",
		slog.Int("baud", config.BaudRate),
		slog.String("mode", config.Mode.String()),
		slog.Int("vtime", config.ReadTimeout),
	)

	if err := unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIOFLUSH); err != nil {
		return fmt.Errorf("failed to flush queues: %w", err)
	}
	return nil
}

// Path returns the device path the port was opened with
func (p *Port) Path() string {
	return p.path
}

// Config returns the configuration the port was opened with
func (p *Port) Config() Config {
	return p.config
}

// Fd returns the underlying file descriptor
func (p *Port) Fd() int {
	return p.fd
}

// Close closes the uart port
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}

	err := unix.Close(p.fd)
	p.closed = true
	p.config.Logger.Debug("device closed", slog.String("path", p.path))
	return err
}

// Read performs a single read. When the read timeout elapses without data it
// returns 0 and a nil error.
func (p *Port) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	n, err := unix.Read(p.fd, buf)
	if n < 0 {
		n = 0
	}
	return n, err
}

// ReadN reads until n bytes have arrived or a read times out with no data,
// returning whatever was received.
func (p *Port) ReadN(n int) ([]byte, error) {
	buf := make([]byte, n)
	total := 0
	for total < n {
		m, err := p.Read(buf[total:])
		total += m
		if err != nil {
			return buf[:total], err
		}
		if m == 0 {
			break
		}
	}
	return buf[:total], nil
}

// Write writes all of data to the port, blocking until the kernel has
// accepted every byte.
func (p *Port) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	written := 0
	for written < len(data) {
		n, err := unix.Write(p.fd, data[written:])
		if n > 0 {
			written += n
		}
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Attributes returns the terminal attributes currently set on the device
func (p *Port) Attributes() (unix.Termios, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return unix.Termios{}, ErrPortClosed
	}

	termios, err := unix.IoctlGetTermios(p.fd, unix.TCGETS)
	if err != nil {
		return unix.Termios{}, err
	}
	return *termios, nil
}

// Drain waits until all output written to the port has been transmitted
func (p *Port) Drain() error {
	return p.ioctl(unix.TCSBRK, 1)
}

// Flush discards both unread input and unwritten output
func (p *Port) Flush() error {
	return p.ioctl(unix.TCFLSH, unix.TCIOFLUSH)
}

// FlushInput discards any unread input data
func (p *Port) FlushInput() error {
	return p.ioctl(unix.TCFLSH, unix.TCIFLUSH)
}

// FlushOutput discards any unwritten output data
func (p *Port) FlushOutput() error {
	return p.ioctl(unix.TCFLSH, unix.TCOFLUSH)
}

func (p *Port) ioctl(req uint, arg int) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, req, arg)
}
