package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/lsjson/internal/config"
	"github.com/bamsammich/lsjson/internal/listing"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		compact     bool
		verbose     bool
		quiet       bool
		watchFlag   bool
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "lsjson [flags] [path]",
		Short: "Render directory listings as structured JSON",
		Long: `lsjson inspects a directory and prints one JSON document describing
each entry: permissions, owner, group, size, modification time, type and
symlink target. The root command reads filesystem metadata directly; the
parse subcommand derives the same records from lsd --long output.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			}))
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "lsjson %s\n", version)
				return nil
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			if !cmd.Flags().Changed("compact") && cfg.Defaults.Compact != nil {
				compact = *cfg.Defaults.Compact
			}

			emit := func() error {
				l, err := listing.Collect(dir)
				if err != nil {
					return err
				}
				return l.Encode(os.Stdout, compact)
			}
			if err := emit(); err != nil {
				return err
			}
			if watchFlag {
				return watchLoop(cmd.Context(), dir, emit)
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().BoolVar(&compact, "compact", false, "single-line JSON output")
	rootCmd.Flags().
		BoolVarP(&watchFlag, "watch", "w", false, "re-emit the listing when the directory changes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(docsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
