// Esclscan drives network scanners that speak the eSCL (AirPrint scanning)
// protocol.
//
// It discovers scanners through an external mDNS helper process, inspects
// their capabilities, and runs scans from the flatbed or the document feeder,
// saving pages to disk.
//
// Usage:
//
//	esclscan [command] [flags]
//
// See 'esclscan --help' for available commands. Set ESCLSCAN_LOG_LEVEL
// (debug, info, warn, error) to enable diagnostic logging on stderr.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okanis/esclscan/internal/logging"
	"github.com/okanis/esclscan/internal/version"
)

func main() {
	// A .env file can carry ESCLSCAN_LOG_LEVEL during development
	_ = godotenv.Load()

	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Sync()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "esclscan",
	Short: "Network scanner utility for eSCL (AirPrint) devices",
	Long: `A command-line utility for driverless network scanning.

Discovers eSCL-capable scanners on the local network, inspects their
capabilities, and runs flatbed or document-feeder scans, saving the
pages to disk.`,
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
		fmt.Printf("esclscan %s (commit: %s)\n", version.Version, version.Commit)
	},
}
