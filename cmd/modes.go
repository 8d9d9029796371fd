/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/allbin/go-uart"
	"github.com/allbin/go-uart/internal/tui/styles"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

// modesCmd represents the modes command
var modesCmd = &cobra.Command{
	Use:   "modes [mode...]",
	Short: "Show supported baud rates and check mode descriptors",
	Long: `Without arguments, print the supported baud rates and the mode format.
With arguments, parse each mode descriptor and report what it means.

Example usage:
  uart modes
  uart modes 8N1 7E2 9X1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(styles.InfoStyle.Render("Baud rates:"))
			for _, rate := range uart.BaudRates() {
				fmt.Printf("  %d\n", rate)
			}
			fmt.Println()
			fmt.Println(styles.InfoStyle.Render("Mode format:"), "<data bits 5-8><parity N|E|O><stop bits 1-2>")
			return nil
		}

		failed := 0
		for _, arg := range args {
			line, err := describeMode(arg)
			if err != nil {
				failed++
				fmt.Printf("%s %s: %v\n", styles.ErrorStyle.Render("✗"), arg, err)
				continue
			}
			fmt.Printf("%s %s\n", styles.SuccessStyle.Render("✓"), line)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d mode descriptors are invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

// describeMode validates s as fully as opening a port would
func describeMode(s string) (string, error) {
	config := uart.DefaultConfig()
	if err := uart.WithMode(s)(&config); err != nil {
		return "", err
	}
	// Range checks on the digits happen while building attributes
	if _, err := uart.BuildAttributes(unix.Termios{}, config); err != nil {
		return "", err
	}
	m := config.Mode
	return fmt.Sprintf("%s: %d data bits, %s parity, %d stop bit(s)", m, m.DataBits, parityName(m.Parity), m.StopBits), nil
}

func parityName(p uart.Parity) string {
	switch p {
	case uart.ParityNone:
		return "no"
	case uart.ParityEven:
		return "even"
	case uart.ParityOdd:
		return "odd"
	default:
		return p.String()
	}
}
