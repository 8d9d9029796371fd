package uart

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds the configuration for a uart port
type Config struct {
	BaudRate    int
	Mode        Mode
	ReadTimeout int          // VTIME setting in tenths of seconds (0-255)
	Logger      *slog.Logger // Receives debug events for the open sequence
}

// Option is a functional option for configuring a uart port
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:    9600,
		Mode:        Mode8N1,
		ReadTimeout: 5, // half a second
		Logger:      slog.New(slog.DiscardHandler),
	}
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if _, err := getBaudRate(rate); err != nil {
			return err
		}
		c.BaudRate = rate
		return nil
	}
}

// WithMode sets data bits, parity and stop bits from a descriptor like "8N1"
func WithMode(mode string) Option {
	return func(c *Config) error {
		m, err := ParseMode(mode)
		if err != nil {
			return err
		}
		c.Mode = m
		return nil
	}
}

// WithDataBits sets the number of data bits (5, 6, 7, or 8)
func WithDataBits(bits int) Option {
	return func(c *Config) error {
		if _, ok := dataSizes[bits]; !ok {
			return fmt.Errorf("%w: %d data bits", ErrUnsupportedValue, bits)
		}
		c.Mode.DataBits = bits
		return nil
	}
}

// WithStopBits sets the number of stop bits (1 or 2)
func WithStopBits(bits int) Option {
	return func(c *Config) error {
		if bits != 1 && bits != 2 {
			return fmt.Errorf("%w: %d stop bits", ErrUnsupportedValue, bits)
		}
		c.Mode.StopBits = bits
		return nil
	}
}

// WithParity sets the parity mode
func WithParity(parity Parity) Option {
	return func(c *Config) error {
		switch parity {
		case ParityNone, ParityEven, ParityOdd:
		default:
			return fmt.Errorf("%w: parity %v", ErrUnsupportedValue, parity)
		}
		c.Mode.Parity = parity
		return nil
	}
}

// WithReadTimeout sets the read timeout in tenths of seconds (VTIME)
func WithReadTimeout(tenths int) Option {
	return func(c *Config) error {
		if tenths < 0 || tenths > 255 {
			return ErrInvalidConfig
		}
		c.ReadTimeout = tenths
		return nil
	}
}

// WithReadTimeoutDuration sets the read timeout from a duration. The
// duration must be a whole number of 100ms steps no larger than 25.5s.
func WithReadTimeoutDuration(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 || timeout%(100*time.Millisecond) != 0 {
			return ErrInvalidConfig
		}
		return WithReadTimeout(int(timeout / (100 * time.Millisecond)))(c)
	}
}

// WithLogger routes debug output of the open sequence to logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return ErrInvalidConfig
		}
		c.Logger = logger
		return nil
	}
}

// ReadTimeoutDuration returns the configured read timeout as a duration
func (c Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * 100 * time.Millisecond
}
