/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/allbin/go-uart"
	"github.com/allbin/go-uart/internal/tui/styles"
	"github.com/spf13/cobra"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <port>",
	Short: "Read a fixed number of bytes from a serial port",
	Long: `Read up to N bytes from a serial port and print them.

Reading stops early when the read timeout elapses with no data, so a silent
line returns after at most one timeout.

Example usage:
  uart read /dev/ttyUSB0 -n 12
  uart read /dev/ttyUSB0 -n 64 --hex --timeout 20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		hexDump, _ := cmd.Flags().GetBool("hex")
		if count <= 0 {
			return fmt.Errorf("count must be positive, got %d", count)
		}

		data, err := uart.Use(args[0], func(port *uart.Port) ([]byte, error) {
			return port.ReadN(count)
		}, portOptions()...)
		if err != nil {
			return fmt.Errorf("failed to read: %w", err)
		}

		if len(data) < count {
			fmt.Fprintln(os.Stderr, styles.MutedStyle.Render(
				fmt.Sprintf("timed out after %d of %d bytes", len(data), count)))
		}
		if hexDump {
			fmt.Print(hex.Dump(data))
		} else {
			os.Stdout.Write(data)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().IntP("count", "n", 256, "Number of bytes to read")
	readCmd.Flags().BoolP("hex", "x", false, "Print a hex dump instead of raw bytes")
}
