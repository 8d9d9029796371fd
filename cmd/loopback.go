/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/allbin/go-uart"
	"github.com/allbin/go-uart/internal/ptypair"
	"github.com/allbin/go-uart/internal/tui/styles"
	"github.com/spf13/cobra"
)

var loopbackPayload = []byte("Hello World!")

// loopbackCmd represents the loopback command
var loopbackCmd = &cobra.Command{
	Use:   "loopback",
	Short: "Self-test the open sequence against a pseudo-terminal",
	Long: `Allocate a pseudo-terminal, open it with the configured baud rate and
mode, and pass a message through it in both directions.

With --socat, two pseudo-terminals are linked by socat and both ends are
opened as ports, exercising the full path from one open device to another.

Example usage:
  uart loopback
  uart loopback --mode 7E2 --baud 19200
  uart loopback --socat`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		useSocat, _ := cmd.Flags().GetBool("socat")
		if useSocat {
			return runSocatLoopback(cmd.Context())
		}
		return runPtyLoopback()
	},
}

func init() {
	rootCmd.AddCommand(loopbackCmd)

	loopbackCmd.Flags().Bool("socat", false, "Link two pseudo-terminals with socat and open both ends")
}

func runPtyLoopback() error {
	pair, err := ptypair.Open()
	if err != nil {
		return err
	}
	defer pair.Close()

	fmt.Printf("%s Opening %s (%s)...\n", styles.InfoStyle.Render("⚡"), pair.SlavePath, settingsSummary())

	return uart.With(pair.SlavePath, func(port *uart.Port) error {
		if _, err := pair.Master.Write(loopbackPayload); err != nil {
			return fmt.Errorf("failed to write to pty master: %w", err)
		}
		if err := expect(port.ReadN(len(loopbackPayload))); err != nil {
			return fmt.Errorf("master to port: %w", err)
		}
		fmt.Printf("%s master → port\n", styles.SuccessStyle.Render("✓"))

		if _, err := port.Write(loopbackPayload); err != nil {
			return err
		}
		got := make([]byte, len(loopbackPayload))
		if _, err := io.ReadFull(pair.Master, got); err != nil {
			return fmt.Errorf("failed to read from pty master: %w", err)
		}
		if err := expect(got, nil); err != nil {
			return fmt.Errorf("port to master: %w", err)
		}
		fmt.Printf("%s port → master\n", styles.SuccessStyle.Render("✓"))
		return nil
	}, portOptions()...)
}

func runSocatLoopback(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	bridge, err := ptypair.Socat(ctx)
	if err != nil {
		return err
	}
	defer bridge.Close()

	fmt.Printf("%s Linked %s ↔ %s (%s)\n", styles.InfoStyle.Render("⚡"), bridge.Paths[0], bridge.Paths[1], settingsSummary())

	return uart.With(bridge.Paths[0], func(a *uart.Port) error {
		return uart.With(bridge.Paths[1], func(b *uart.Port) error {
			for _, dir := range []struct {
				name     string
				from, to *uart.Port
			}{
				{"a → b", a, b},
				{"b → a", b, a},
			} {
				if _, err := dir.from.Write(loopbackPayload); err != nil {
					return err
				}
				if err := expect(dir.to.ReadN(len(loopbackPayload))); err != nil {
					return fmt.Errorf("%s: %w", dir.name, err)
				}
				fmt.Printf("%s %s\n", styles.SuccessStyle.Render("✓"), dir.name)
			}
			return nil
		}, portOptions()...)
	}, portOptions()...)
}

// expect checks a read result against the loopback payload
func expect(got []byte, err error) error {
	if err != nil {
		return err
	}
	if !bytes.Equal(got, loopbackPayload) {
		return fmt.Errorf("received %q, expected %q", got, loopbackPayload)
	}
	return nil
}
