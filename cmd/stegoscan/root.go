// Package main provides the entry point for the stegoscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for stegoscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stegoscan",
		Short: "Forensic scanner for hidden and encrypted content",
		Long: `Stegoscan analyzes files for hidden or encrypted content.

It combines several independent detection passes: entropy profiling,
statistical randomness tests, LSB steganalysis of decodable images
(chi-square, RS analysis, sample pairs), file-signature scanning for
embedded payloads, and appended-data detection after container
terminators. The passes are aggregated into a single risk level:
the more independent methods agree, the higher the risk.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewMethodsCmd())
	cmd.AddCommand(NewInitCmd())
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
