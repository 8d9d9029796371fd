/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/allbin/go-uart"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <port>",
	Short: "Display detailed information about a serial port",
	Long: `Display detailed information about a serial port including USB metadata.

Examples:
  uart info /dev/ttyUSB0
  uart info /dev/ttyACM0

For USB devices, this displays vendor/product IDs, the serial number and the
product name reported by the device.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := uart.GetPortInfo(args[0])
		if err != nil {
			return fmt.Errorf("failed to get port info: %w", err)
		}

		fmt.Print(formatPortInfo(info))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func formatPortInfo(info *uart.PortInfo) string {
	s := fmt.Sprintf("Port Information: %s\n\n", info.Path)
	s += fmt.Sprintf("  Name:        %s\n", info.Name)
	s += fmt.Sprintf("  Description: %s\n", info.Description)

	if !info.IsUSB {
		return s
	}

	s += "\nUSB Device Information:\n"
	fields := []struct {
		label string
		value string
	}{
		{"Vendor ID: ", info.VendorID},
		{"Product ID:", info.ProductID},
		{"Serial:    ", info.SerialNumber},
		{"Product:   ", info.Product},
	}
	for _, f := range fields {
		if f.value != "" {
			s += fmt.Sprintf("  %s %s\n", f.label, f.value)
		}
	}
	return s
}
