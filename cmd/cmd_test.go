package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/allbin/go-uart"
)

func TestParseHexString(t *testing.T) {
	tests := []struct {
		input    string
		expected []byte
		wantErr  bool
	}{
		{"48656c6c6f", []byte("Hello"), false},
		{"48 65 6c 6c 6f", []byte("Hello"), false},
		{"0x48 0X69", []byte("Hi"), false},
		{"", []byte{}, false},
		{"486", nil, true},
		{"zz", nil, true},
	}

	for _, test := range tests {
		got, err := parseHexString(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("parseHexString(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if !test.wantErr && !bytes.Equal(got, test.expected) {
			t.Errorf("parseHexString(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestBuildPayload(t *testing.T) {
	got, err := buildPayload("AT", false, true)
	if err != nil || string(got) != "AT\n" {
		t.Errorf("Expected \"AT\\n\", got %q (%v)", got, err)
	}

	// --newline does not apply to hex input
	got, err = buildPayload("4154", true, true)
	if err != nil || string(got) != "AT" {
		t.Errorf("Expected \"AT\", got %q (%v)", got, err)
	}

	if _, err := buildPayload("4", true, false); err == nil {
		t.Error("Expected error for odd-length hex")
	}
}

func TestFilterPorts(t *testing.T) {
	infos := []uart.PortInfo{
		{Name: "ttyACM0"},
		{Name: "ttyAMA0"},
		{Name: "ttyS0"},
		{Name: "ttySAC1"},
		{Name: "ttyUSB0"},
	}

	tests := []struct {
		filter   string
		expected []string
	}{
		{"", []string{"ttyACM0", "ttyAMA0", "ttyS0", "ttySAC1", "ttyUSB0"}},
		{"all", []string{"ttyACM0", "ttyAMA0", "ttyS0", "ttySAC1", "ttyUSB0"}},
		{"usb", []string{"ttyACM0", "ttyUSB0"}},
		{"USB", []string{"ttyACM0", "ttyUSB0"}},
		{"standard", []string{"ttyS0"}},
		{"arm", []string{"ttyAMA0"}},
	}

	for _, test := range tests {
		got, err := filterPorts(infos, test.filter)
		if err != nil {
			t.Errorf("filterPorts(%q) returned error: %v", test.filter, err)
			continue
		}
		var names []string
		for _, info := range got {
			names = append(names, info.Name)
		}
		if strings.Join(names, ",") != strings.Join(test.expected, ",") {
			t.Errorf("filterPorts(%q) = %v, expected %v", test.filter, names, test.expected)
		}
	}

	if _, err := filterPorts(infos, "bluetooth"); err == nil {
		t.Error("Expected error for unknown filter")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]uart.PortInfo{{
		Name:         "ttyUSB0",
		Path:         "/dev/ttyUSB0",
		Description:  "USB Serial Port",
		IsUSB:        true,
		VendorID:     "0403",
		ProductID:    "6001",
		SerialNumber: "A1B2",
	}})

	for _, want := range []string{"Port", "/dev/ttyUSB0", "USB Serial Port", "0403:6001", "A1B2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in table:\n%s", want, out)
		}
	}
}

func TestFormatPortInfo(t *testing.T) {
	plain := formatPortInfo(&uart.PortInfo{Name: "ttyS0", Path: "/dev/ttyS0", Description: "Standard Serial Port"})
	if strings.Contains(plain, "USB Device Information") {
		t.Error("Unexpected USB section for a non-USB port")
	}

	usb := formatPortInfo(&uart.PortInfo{Name: "ttyACM0", Path: "/dev/ttyACM0", IsUSB: true, VendorID: "2341", Product: "Uno"})
	for _, want := range []string{"USB Device Information", "2341", "Uno"} {
		if !strings.Contains(usb, want) {
			t.Errorf("Expected %q in %q", want, usb)
		}
	}
	if strings.Contains(usb, "Serial:") {
		t.Error("Empty fields should be omitted")
	}
}

func TestDescribeMode(t *testing.T) {
	line, err := describeMode("7E2")
	if err != nil {
		t.Fatalf("describeMode(7E2) returned error: %v", err)
	}
	if !strings.Contains(line, "7 data bits, even parity, 2 stop bit(s)") {
		t.Errorf("Unexpected description %q", line)
	}

	if _, err := describeMode("9X1"); !errors.Is(err, uart.ErrInvalidModeFormat) {
		t.Errorf("Expected ErrInvalidModeFormat for 9X1, got %v", err)
	}
	if _, err := describeMode("8N3"); !errors.Is(err, uart.ErrUnsupportedValue) {
		t.Errorf("Expected ErrUnsupportedValue for 8N3, got %v", err)
	}
}

// chunkReader returns its chunks one per Read, then cancels and times out
type chunkReader struct {
	chunks [][]byte
	cancel context.CancelFunc
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		r.cancel()
		return 0, nil
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestCapture(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &chunkReader{
		chunks: [][]byte{[]byte("abc"), {}, []byte("def")},
		cancel: cancel,
	}
	var out bytes.Buffer

	n, err := capture(ctx, r, &out, 16)
	if err != nil {
		t.Fatalf("capture returned error: %v", err)
	}
	if n != 6 || out.String() != "abcdef" {
		t.Errorf("Expected 6 bytes \"abcdef\", got %d %q", n, out.String())
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, uart.ErrPortClosed
}

func TestCaptureReadError(t *testing.T) {
	_, err := capture(context.Background(), failingReader{}, &bytes.Buffer{}, 16)
	if !errors.Is(err, uart.ErrPortClosed) {
		t.Errorf("Expected ErrPortClosed, got %v", err)
	}
}
