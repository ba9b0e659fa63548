package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hdlsim",
	Short: "HDL co-simulation scheduler",
	Long: `hdlsim drives an external RTL back-end through a discrete-event
co-simulation scheduler, interleaving it with cooperative testbench agents
(clock, reset, ready/valid handshake, UART) on a fixed six-phase instant.

Commands:
  run       Run a scenario against the built-in scripted RTL back-end
  version   Print version information

Examples:
  # Run the built-in default scenario for 1000 ticks
  hdlsim run

  # Run a scenario file and write a JSON report alongside the console summary
  hdlsim run --config scenario.yaml --output report.json`,
	Version: Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
