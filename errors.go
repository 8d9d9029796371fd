package uart

import "errors"

// Predefined error types for robust error handling
var (
	// Configuration errors. Any of these aborts Open before the device
	// attributes are committed.
	ErrInvalidModeFormat = errors.New("invalid format for mode")
	ErrUnsupportedValue  = errors.New("unsupported configuration value")
	ErrInvalidBaudRate   = errors.New("invalid baud rate")
	ErrInvalidConfig     = errors.New("invalid uart configuration")

	// Device errors
	ErrDeviceNotFound   = errors.New("uart device not found")
	ErrPermissionDenied = errors.New("permission denied accessing uart device")
	ErrPortClosed       = errors.New("uart port is closed")
)
