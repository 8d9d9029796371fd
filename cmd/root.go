/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/allbin/go-uart"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logger  = slog.New(slog.DiscardHandler)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "uart",
	Short: "Open and configure serial devices",
	Long: `Open serial (UART) devices with a baud rate and a compact mode
descriptor, then send, read, capture or watch data.

The mode descriptor is <data bits><parity><stop bits>, for example 8N1 or 7E2.
Parity is N (none), E (even) or O (odd).

Settings are read from flags, UART_* environment variables (a .env file in the
working directory is loaded first) and $HOME/.uart.yaml, in that order of
precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.uart.yaml)")
	flags.IntP("baud", "b", 9600, "Baud rate")
	flags.StringP("mode", "m", "8N1", "Mode descriptor: <data bits><N|E|O><stop bits>")
	flags.IntP("timeout", "t", 5, "Read timeout in tenths of a second (0-255)")
	flags.BoolP("verbose", "v", false, "Log the open sequence to stderr")

	for _, name := range []string{"baud", "mode", "timeout", "verbose"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in .env, environment variables and the config file
func initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	viper.SetEnvPrefix("UART")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".uart")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", slog.String("file", used))
	}
	return nil
}

// portOptions turns the resolved settings into uart options
func portOptions() []uart.Option {
	return []uart.Option{
		uart.WithBaudRate(viper.GetInt("baud")),
		uart.WithMode(viper.GetString("mode")),
		uart.WithReadTimeout(viper.GetInt("timeout")),
		uart.WithLogger(logger),
	}
}

// settingsSummary renders the resolved settings like "9600 8N1 0.5s"
func settingsSummary() string {
	return fmt.Sprintf("%d %s %.1fs",
		viper.GetInt("baud"),
		viper.GetString("mode"),
		float64(viper.GetInt("timeout"))/10)
}
