/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/allbin/go-uart"
	"github.com/allbin/go-uart/internal/tui/components"
	"github.com/allbin/go-uart/internal/tui/styles"
	"github.com/spf13/cobra"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [data] <port>",
	Short: "Send data to a serial port",
	Long: `Send data to a serial port using the configured baud rate and mode.

Data can be provided as:
- Command line argument: uart send "Hello World" /dev/ttyUSB0
- From stdin (pipe): echo "test data" | uart send /dev/ttyUSB0
- Interactive mode: uart send /dev/ttyUSB0 (prompts for input)

Example usage:
  uart send "Hello World" /dev/ttyUSB0
  uart send "AT+GMR" /dev/ttyUSB0 --newline
  uart send "48 65 6c 6c 6f" /dev/ttyUSB0 --hex --mode 7E1
  echo "test" | uart send /dev/ttyUSB0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data, portPath string
		if len(args) == 1 {
			portPath = args[0]
			input, err := readInput(os.Stdin)
			if err != nil {
				return err
			}
			data = input
		} else {
			data = args[0]
			portPath = args[1]
		}

		addNewline, _ := cmd.Flags().GetBool("newline")
		hexMode, _ := cmd.Flags().GetBool("hex")

		payload, err := buildPayload(data, hexMode, addNewline)
		if err != nil {
			return err
		}
		return sendData(portPath, payload)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolP("newline", "n", false, "Add newline character to the end of data")
	sendCmd.Flags().BoolP("hex", "x", false, "Interpret data as hexadecimal (e.g., '48656c6c6f' for 'Hello')")
}

// readInput reads piped stdin, or prompts when stdin is a terminal
func readInput(stdin *os.File) (string, error) {
	stat, err := stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		fmt.Print(styles.InfoStyle.Render("Enter data to send: "))
		scanner := bufio.NewScanner(stdin)
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		return "", scanner.Err()
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// buildPayload applies --hex and --newline to the user's input
func buildPayload(data string, hexMode, addNewline bool) ([]byte, error) {
	if hexMode {
		payload, err := parseHexString(data)
		if err != nil {
			return nil, fmt.Errorf("invalid hex data: %w", err)
		}
		return payload, nil
	}
	if addNewline {
		data += "\n"
	}
	return []byte(data), nil
}

// parseHexString accepts "48656c6c6f", "48 65 6c" and "0x48 0x65"
func parseHexString(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, "0x", "")
	s = strings.ReplaceAll(s, "0X", "")
	s = strings.Join(strings.Fields(s), "")
	return hex.DecodeString(s)
}

func sendData(portPath string, data []byte) error {
	fmt.Printf("%s Opening %s (%s)...\n", styles.InfoStyle.Render("⚡"), portPath, settingsSummary())

	n, err := uart.Use(portPath, func(port *uart.Port) (int, error) {
		n, err := port.Write(data)
		if err != nil {
			return n, err
		}
		// Wait for the bytes to leave before the port is closed
		return n, port.Drain()
	}, portOptions()...)
	if err != nil {
		return fmt.Errorf("%s failed to send data: %w", styles.ErrorStyle.Render("✗"), err)
	}

	fmt.Printf("%s Sent %d bytes\n", styles.SuccessStyle.Render("✓"), n)

	preview := data
	if len(preview) > 50 {
		preview = preview[:50]
	}
	fmt.Printf("%s Data: %s\n", styles.MutedStyle.Render("·"), components.Printable(preview))
	return nil
}
