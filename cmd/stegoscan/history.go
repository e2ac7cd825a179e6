package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/stegoscan/internal/config"
	"github.com/nao1215/stegoscan/internal/database"
)

// Risk direction labels for history comparison output.
const (
	riskDirectionWorsened  = "worsened"
	riskDirectionImproved  = "improved"
	riskDirectionUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command inspects scan results stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [file]",
		Short: "Show stored scan history for a file",
		Long: `History displays previous scan results saved in the database.

For a given file path, it lists every stored scan with its risk level,
confidence, and content digest. A changed digest under the same path means
the file was modified between scans; a rising risk level means the later
version carries more independent detection signals. Both are themselves
forensic evidence worth investigating.

Examples:
  # Show scan history for a file
  stegoscan history suspect.png

  # List every file with stored scans
  stegoscan history --list-targets

  # Dump a stored report by its history ID
  stegoscan history --id 5 suspect.png

  # Output history in JSON format
  stegoscan history --json suspect.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-targets", "L", false,
		"List all scanned files in the database")
	cmd.Flags().Int64P("id", "i", 0,
		"Print the full stored report with this history ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listTargets, err := cmd.Flags().GetBool("list-targets")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so a usage error
	// does not leave a half-opened connection behind.
	var target string
	if !listTargets {
		if len(args) == 0 {
			return errors.New("file path is required (use --list-targets to see stored files)")
		}
		target = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listTargets {
		return listScannedTargets(ctx, db)
	}

	reportID, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if reportID > 0 {
		return printStoredReport(ctx, db, target, reportID)
	}

	return printHistory(ctx, db, target, jsonOutput)
}

// listScannedTargets lists all files that have scan records in the database.
func listScannedTargets(ctx context.Context, db *database.ScanDB) error {
	targets, err := db.ListTargets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list targets: %w", err)
	}

	if len(targets) == 0 {
		fmt.Println("No scanned files found in the database.")
		fmt.Println("\nUse 'stegoscan scan <file>' to scan a file.")
		return nil
	}

	fmt.Printf("Scanned files (%d):\n\n", len(targets))
	for _, target := range targets {
		fmt.Printf("  • %s\n", target)
	}
	fmt.Println("\nUse 'stegoscan history <file>' to see scan history for a file.")

	return nil
}

// printStoredReport dumps one stored report as indented JSON.
func printStoredReport(ctx context.Context, db *database.ScanDB, target string, reportID int64) error {
	stored, err := db.GetReportByID(ctx, reportID)
	if err != nil {
		return fmt.Errorf("failed to get report with ID %d: %w", reportID, err)
	}
	if stored == nil {
		return fmt.Errorf("report with ID %d not found", reportID)
	}
	if stored.Target != target {
		return fmt.Errorf("report ID %d belongs to %s, not %s", reportID, stored.Target, target)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(stored)
}

// printHistory lists the stored scans for a target, newest first.
func printHistory(ctx context.Context, db *database.ScanDB, target string, jsonOutput bool) error {
	entries, err := db.GetHistory(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to get scan history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No scan history found for %s\n", target)
		fmt.Println("\nUse 'stegoscan scan' to scan this file.")
		return nil
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	fmt.Printf("Scan history for %s (%d scans):\n\n", target, len(entries))
	fmt.Printf("  %-6s  %-20s  %-10s  %-6s  %-9s  %s\n",
		"ID", "Date", "Risk", "Conf", "Findings", "Digest")
	fmt.Println("  " + strings.Repeat("-", 72))

	for i, entry := range entries {
		digest := entry.Digest
		// Entries are newest first; compare each digest with the scan
		// before it to flag content changes between scans.
		if i+1 < len(entries) && entries[i+1].Digest != entry.Digest {
			digest += " (changed)"
		}
		fmt.Printf("  %-6d  %-20s  %-10s  %-6d  %-9d  %s\n",
			entry.ID,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.RiskLevel,
			entry.Confidence,
			entry.FindingCount,
			digest,
		)
	}

	if len(entries) >= 2 {
		fmt.Printf("\nLatest change: %s\n", describeRiskChange(entries[1], entries[0]))
	}
	fmt.Println("\nUse 'stegoscan history --id <id> <file>' to dump a stored report.")

	return nil
}

// riskRank orders risk level labels for comparison.
var riskRank = map[string]int{
	"LOW":      0,
	"MEDIUM":   1,
	"HIGH":     2,
	"CRITICAL": 3,
}

// describeRiskChange summarizes the risk drift between two history entries.
func describeRiskChange(previous, current database.HistoryEntry) string {
	direction := riskDirectionUnchanged
	switch {
	case riskRank[current.RiskLevel] > riskRank[previous.RiskLevel]:
		direction = riskDirectionWorsened
	case riskRank[current.RiskLevel] < riskRank[previous.RiskLevel]:
		direction = riskDirectionImproved
	}

	summary := fmt.Sprintf("risk %s (%s -> %s)", direction, previous.RiskLevel, current.RiskLevel)
	if previous.Digest != current.Digest {
		summary += ", file content changed between scans"
	}
	return summary
}
