// Dl2xx is a command-line client for DL-210TH temperature/humidity data
// loggers.
//
// It talks to the logger over USB HID and provides live measurement,
// configuration management, recording-session control and record dumps.
// No vendor software or kernel driver beyond hidraw is required.
//
// Usage:
//
//	dl2xx [command] [flags]
//
// See 'dl2xx --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmalesinski/dl2xx/internal/logging"
	"github.com/tmalesinski/dl2xx/internal/protocol"
	"github.com/tmalesinski/dl2xx/internal/version"
)

// Exit codes. Scripts dispatch on these to tell "no device" apart from
// "device misbehaving".
const (
	exitOK        = 0
	exitError     = 1 // usage errors, local failures
	exitTransport = 2 // device not found or disappeared
	exitProtocol  = 3 // device found but the exchange failed
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := protocol.GetTroubleshootingHint(err); hint != "" {
			if _, ok := err.(*protocol.DeviceError); ok {
				fmt.Fprintln(os.Stderr)
				fmt.Fprintln(os.Stderr, hint)
			}
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	devErr, ok := err.(*protocol.DeviceError)
	if !ok {
		return exitError
	}
	if devErr.Type == protocol.ErrTypeTransportUnavailable {
		return exitTransport
	}
	return exitProtocol
}

var rootCmd = &cobra.Command{
	Use:   "dl2xx",
	Short: "DL-210TH Data Logger Utility",
	Long: `A command-line client for DL-210TH temperature/humidity data loggers.

Talks to the logger over USB HID (vendor 0x2047, product 0x0301) and
provides live measurement, configuration management, recording-session
control and record dumps.

On Linux the logger's HID interface must be readable by your user;
a udev rule for vid 2047 pid 0301 is the usual way to arrange that.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dl2xx %s (commit: %s)\n", version.Version, version.Commit)
	},
}
