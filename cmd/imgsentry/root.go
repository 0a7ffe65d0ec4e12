// Package main provides the entry point for the imgsentry CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for imgsentry.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imgsentry",
		Short: "Scheduled image monitoring for websites",
		Long: `imgsentry checks a fixed set of website pages for problem images.
It reports images hosted on a monitored IP address and images that fail to
load, and sends a single email alert when anything is found.

Designed to run unattended on a schedule: a clean run stays silent, and a
page failure never aborts the rest of the scan.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
