package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/stegoscan/internal/config"
	"github.com/nao1215/stegoscan/internal/database"
	"github.com/nao1215/stegoscan/internal/log"
	"github.com/nao1215/stegoscan/internal/model"
	"github.com/nao1215/stegoscan/internal/pipeline"
	"github.com/nao1215/stegoscan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Scan files for hidden or encrypted content",
		Long: `Scan analyzes one or more files for hidden or encrypted content.

Each target runs through the full detection pipeline:
- Entropy profiling (overall and per-block Shannon entropy)
- Statistical randomness tests (frequency, runs, serial correlation)
- File-signature scanning for embedded payloads
- Appended-data detection after JPEG/PNG terminators
- LSB steganalysis of decodable images (chi-square, RS, sample pairs)
- Metadata inspection for oversized or unusual EXIF entries

Examples:
  # Scan a single file
  stegoscan scan suspect.png

  # Scan multiple files concurrently
  stegoscan scan photo1.png photo2.jpg archive.bin

  # Output JSON report
  stegoscan scan --json suspect.png

  # Write a Markdown report to a file
  stegoscan scan --markdown -o report.md suspect.png

  # Tighten the chi-square detection threshold
  stegoscan scan --chi-square 0.99 suspect.png

Configuration file (.stegoscan) example:
  thresholds:
    chi_square_p_value: 0.99
    rs_payload_percent: 3.0
  entropy_block_size: 512
  max_scan_size: 134217728`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Scan behavior flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans")
	cmd.Flags().Int64P("max-size", "s", config.DefaultMaxScanSize,
		"Maximum number of bytes read per target (larger files are truncated)")
	cmd.Flags().IntP("block-size", "B", config.DefaultEntropyBlockSize,
		"Block size in bytes for the entropy profile")

	// Detection threshold flags
	cmd.Flags().Float64("chi-square", config.DefaultChiSquareThreshold,
		"Chi-square detection p-value threshold")
	cmd.Flags().Float64("rs", config.DefaultRSThreshold,
		"RS analysis payload threshold in percent")
	cmd.Flags().Float64("sample-pairs", config.DefaultSamplePairsThreshold,
		"Sample-pairs payload threshold in percent")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .stegoscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging. The scan handler compacts binary
	// attributes so raw file content never reaches the log stream.
	logger := log.NewScanLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
// Precedence: built-in defaults < config file < explicit flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load overrides from the config file before flags so that explicit
	// flags win. If the user named a config file, a missing file is an
	// error; an absent default file is not.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		overrides, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		overrides.ApplyTo(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("batch") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-size") {
		if cfg.MaxScanSize, err = cmd.Flags().GetInt64("max-size"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("block-size") {
		if cfg.EntropyBlockSize, err = cmd.Flags().GetInt("block-size"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("chi-square") {
		if cfg.Thresholds.ChiSquarePValue, err = cmd.Flags().GetFloat64("chi-square"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("rs") {
		if cfg.Thresholds.RSPayloadPercent, err = cmd.Flags().GetFloat64("rs"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("sample-pairs") {
		if cfg.Thresholds.SamplePairsPayloadPercent, err = cmd.Flags().GetFloat64("sample-pairs"); err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Always save to database using XDG data directory
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	// Get positional arguments (file paths)
	cfg.Targets = args

	return cfg, nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"targets", len(cfg.Targets),
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.ScanDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Use batch processor for parallel scanning if multiple targets
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchScan(ctx, cfg, db, logger)
	}

	return runSequentialScan(ctx, cfg, db, logger)
}

// runSequentialScan scans targets one at a time.
func runSequentialScan(ctx context.Context, cfg *config.Config, db *database.ScanDB, logger *slog.Logger) error {
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := pipeline.DefaultPipeline(cfg, pipeline.WithLogger(logger))
		scan := pipeline.NewScan(target)

		fmt.Printf("Scanning %s...\n", target)
		startTime := time.Now()

		if err := p.Execute(ctx, scan); err != nil {
			logger.Error("scan failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Scan error for %s: %v\n", target, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Scan completed in %s\n\n", elapsed.Round(time.Millisecond))

		if err := outputReport(cfg, scan.Report); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		if err := saveReport(ctx, db, scan.Report, logger); err != nil {
			logger.Error("failed to save scan report", "target", target, "error", err)
		}
	}

	return nil
}

// runBatchScan scans multiple targets concurrently using BatchProcessor.
func runBatchScan(ctx context.Context, cfg *config.Config, db *database.ScanDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch scan of %d targets (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(cfg, pipeline.WithLogger(logger))
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(scanReport *model.ForensicReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Scan completed: %s\n", index+1, len(cfg.Targets), scanReport.Target)

		if err := outputReport(cfg, scanReport); err != nil {
			logger.Error("report failed", "target", scanReport.Target, "error", err)
		}

		if err := saveReport(ctx, db, scanReport, logger); err != nil {
			logger.Error("failed to save scan report", "target", scanReport.Target, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch scan completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, scanReport *model.ForensicReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports can identify sensitive files; keep them owner-readable.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(scanReport)
	return err
}

// saveReport saves the scan report to the database if enabled.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.ScanDB, scanReport *model.ForensicReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveReport(ctx, scanReport); err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	logger.Info("scan report saved to database", "target", scanReport.Target)
	return nil
}
