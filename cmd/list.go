/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/allbin/go-uart"
	"github.com/allbin/go-uart/internal/tui/styles"
	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

This command scans for uart-capable devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)
- And other platform-specific serial devices

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := uart.ListPorts()
		if err != nil {
			return fmt.Errorf("failed to list ports: %w", err)
		}

		filterType, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")

		infos, err := filterPorts(describePorts(ports), filterType)
		if err != nil {
			return err
		}

		if len(infos) == 0 {
			if filterType != "" {
				fmt.Printf("No serial ports found matching filter: %s\n", filterType)
			} else {
				fmt.Println("No serial ports found")
			}
			return nil
		}

		if tableFormat {
			fmt.Printf("Found %d serial port(s):\n\n", len(infos))
			fmt.Println(renderTable(infos))
		} else {
			for _, info := range infos {
				fmt.Println(info.Path)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("filter", "f", "", "Filter by port type: usb, standard, arm, all")
	listCmd.Flags().Bool("table", false, "Display output in a styled table format")
}

// describePorts looks up each port; ports that vanish in between are skipped
func describePorts(ports []string) []uart.PortInfo {
	infos := make([]uart.PortInfo, 0, len(ports))
	for _, port := range ports {
		info, err := uart.GetPortInfo(port)
		if err != nil {
			logger.Debug("skipping port", "path", port, "error", err)
			continue
		}
		infos = append(infos, *info)
	}
	return infos
}

// filterPorts keeps the ports of one kind
func filterPorts(infos []uart.PortInfo, filterType string) ([]uart.PortInfo, error) {
	var match func(name string) bool
	switch strings.ToLower(filterType) {
	case "", "all":
		return infos, nil
	case "usb":
		match = func(name string) bool {
			return strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM")
		}
	case "standard":
		match = func(name string) bool {
			return strings.HasPrefix(name, "ttyS") && !strings.HasPrefix(name, "ttySAC")
		}
	case "arm":
		match = func(name string) bool {
			return strings.HasPrefix(name, "ttyAMA")
		}
	default:
		return nil, fmt.Errorf("unknown filter %q: expected usb, standard, arm or all", filterType)
	}

	var filtered []uart.PortInfo
	for _, info := range infos {
		if match(info.Name) {
			filtered = append(filtered, info)
		}
	}
	return filtered, nil
}

const (
	columnKeyPort        = "port"
	columnKeyDescription = "description"
	columnKeyVendor      = "vendor"
	columnKeyProduct     = "product"
	columnKeySerial      = "serial"
)

// renderTable renders the ports as a static rounded table
func renderTable(infos []uart.PortInfo) string {
	columns := []table.Column{
		table.NewColumn(columnKeyPort, "Port", 16),
		table.NewColumn(columnKeyDescription, "Description", 22),
		table.NewColumn(columnKeyVendor, "VID:PID", 11),
		table.NewColumn(columnKeyProduct, "Product", 24),
		table.NewColumn(columnKeySerial, "Serial", 16),
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		ids := ""
		if info.VendorID != "" || info.ProductID != "" {
			ids = info.VendorID + ":" + info.ProductID
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyPort:        info.Path,
			columnKeyDescription: info.Description,
			columnKeyVendor:      ids,
			columnKeyProduct:     info.Product,
			columnKeySerial:      info.SerialNumber,
		}))
	}

	return table.New(columns).
		WithRows(rows).
		HeaderStyle(styles.TableHeaderStyle).
		BorderRounded().
		View()
}
