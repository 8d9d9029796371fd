/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/allbin/go-uart"
	"github.com/spf13/cobra"
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture <port> <output-file>",
	Short: "Capture serial data to a file",
	Long: `Capture incoming serial data to a file for later parsing.

Reads data from the specified serial port and appends it to the output file.
Runs continuously until interrupted (Ctrl+C). Shutdown is noticed within one
read timeout.

Example usage:
  uart capture /dev/ttyUSB0 data.log
  uart capture /dev/ttyUSB0 output.txt --baud 115200 --mode 7E1
  uart capture /dev/ttyUSB0 capture.log --console`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bufferSize, _ := cmd.Flags().GetInt("buffer")
		showConsole, _ := cmd.Flags().GetBool("console")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runCapture(ctx, args[0], args[1], bufferSize, showConsole)
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().Int("buffer", 4096, "Read buffer size")
	captureCmd.Flags().BoolP("console", "c", false, "Display incoming data on console while capturing")
}

func runCapture(ctx context.Context, portPath, outputPath string, bufferSize int, showConsole bool) error {
	if bufferSize <= 0 {
		return fmt.Errorf("buffer size must be positive, got %d", bufferSize)
	}

	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer file.Close()

	var sink io.Writer = file
	if showConsole {
		sink = io.MultiWriter(file, os.Stdout)
	}

	fmt.Fprintf(os.Stderr, "Capturing data from %s (%s) to %s\n", portPath, settingsSummary(), outputPath)
	fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop\n\n")

	start := time.Now()
	written, err := uart.Use(portPath, func(port *uart.Port) (int64, error) {
		return capture(ctx, port, sink, bufferSize)
	}, portOptions()...)

	logger.Debug("capture finished", slog.Int64("bytes", written), slog.Duration("elapsed", time.Since(start)))
	fmt.Fprintf(os.Stderr, "\nCapture complete: %d bytes written in %v\n", written, time.Since(start).Round(time.Millisecond))
	return err
}

// capture copies reads from port to w until ctx is done
func capture(ctx context.Context, port io.Reader, w io.Writer, bufferSize int) (int64, error) {
	buffer := make([]byte, bufferSize)
	var total int64
	for ctx.Err() == nil {
		n, err := port.Read(buffer)
		if err != nil {
			return total, fmt.Errorf("read error: %w", err)
		}
		if n == 0 {
			continue
		}
		if _, err := w.Write(buffer[:n]); err != nil {
			return total, fmt.Errorf("write error: %w", err)
		}
		total += int64(n)
	}
	return total, nil
}
