// Package cmd wires the kernelgrep command line interface.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/kernelgrep/internal/config"
	"github.com/harrison/kernelgrep/internal/logger"
	"github.com/harrison/kernelgrep/internal/mainline"
	"github.com/harrison/kernelgrep/internal/pattern"
	"github.com/harrison/kernelgrep/internal/report"
	"github.com/harrison/kernelgrep/internal/search"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for kernelgrep
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernelgrep <pattern>...",
		Short: "Search Ubuntu mainline kernel CHANGES files for patterns",
		Long: `Kernelgrep downloads the CHANGES file of every kernel version published
on the Ubuntu mainline archive and greps each one for the given patterns.

Patterns support "*" as a wildcard and match case-insensitively; other
regex metacharacters are passed through, so "wifi.*power" works too.
Matches are aggregated per kernel version and printed newest first.

Configuration is loaded from .kernelgrep/config.yaml if present, then
KERNELGREP_* environment variables, then CLI flags.

Examples:
  kernelgrep mt79*
  kernelgrep mt7921 mt7922 power
  kernelgrep "transmission power" "wifi.*power"
  kernelgrep --max-workers 5 --output results.txt mt79*`,
		Version: Version,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runSearch,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.Flags().Int("max-workers", 0, "Maximum number of concurrent downloads (default 10)")
	cmd.Flags().String("output", "", "Save a plain-text report to this file")
	cmd.Flags().String("base-url", "", "Archive listing URL (default Ubuntu mainline PPA)")
	cmd.Flags().String("changes-file", "", "Per-directory filename to fetch (default CHANGES)")
	cmd.Flags().String("timeout", "", "Per-request timeout (e.g. 10s, 1m)")
	cmd.Flags().String("config", "", "Path to config file (default: .kernelgrep/config.yaml)")
	cmd.Flags().String("log-level", "", "Log verbosity: trace, debug, info, warn, error")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

// runSearch implements the search: resolve config, compile patterns, run the
// engine, print the report. Network and save failures are logged and never
// turn into a non-zero exit; only flag and pattern errors do.
func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	patterns, err := pattern.CompileSet(args)
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		color.NoColor = true
	}
	colorOutput := !noColor && isatty.IsTerminal(os.Stdout.Fd())

	out := cmd.OutOrStdout()
	log := logger.NewConsoleLogger(out, cfg.LogLevel)

	runID := uuid.New().String()
	log.LogDebug(fmt.Sprintf("Run ID: %s", runID))

	client := mainline.NewClient(cfg)
	engine := search.NewEngine(client, log, cfg.MaxWorkers, cfg.ProgressInterval)

	start := time.Now()
	results := engine.Run(cmd.Context(), patterns)

	reporter := report.NewReporter(out, colorOutput)
	reporter.Print(results, patterns, client.ChangesURL)
	reporter.PrintElapsed(time.Since(start))

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		err := report.WriteFile(output, results, patterns, runID, time.Now(), client.ChangesURL)
		if err != nil {
			log.LogError(fmt.Sprintf("Error saving to file: %v", err))
		} else {
			fmt.Fprintf(out, "Results saved to: %s\n", output)
		}
	}

	return nil
}

// resolveConfig loads the config file and overlays any flags the user set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("max-workers") {
		cfg.MaxWorkers, _ = cmd.Flags().GetInt("max-workers")
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if cmd.Flags().Changed("changes-file") {
		cfg.ChangesFile, _ = cmd.Flags().GetString("changes-file")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("timeout") {
		raw, _ := cmd.Flags().GetString("timeout")
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", raw, err)
		}
		cfg.RequestTimeout = timeout
	}

	return cfg, nil
}
