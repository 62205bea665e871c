package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/lsjson/internal/config"
	"github.com/bamsammich/lsjson/internal/filter"
	"github.com/bamsammich/lsjson/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [flags] [path]",
	Short: "Walk a directory tree into a nested snapshot document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().
		StringArray("exclude", nil, "exclude entries matching PATTERN (repeatable)")
	snapshotCmd.Flags().Int("max-depth", 0, "limit recursion depth (0 = unlimited)")
	snapshotCmd.Flags().Bool("hash", false, "compute BLAKE3 digests for regular files")
	snapshotCmd.Flags().
		StringP("output", "o", "", "write to FILE instead of stdout (zstd-compressed if FILE ends in .zst)")
	snapshotCmd.Flags().Bool("compact", false, "single-line JSON output")
}

//nolint:errcheck // flag names are hardcoded
func runSnapshot(cmd *cobra.Command, args []string) error {
	excludes, _ := cmd.Flags().GetStringArray("exclude")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	hashFlag, _ := cmd.Flags().GetBool("hash")
	output, _ := cmd.Flags().GetString("output")
	compact, _ := cmd.Flags().GetBool("compact")

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config", "error", err)
	} else {
		if !cmd.Flags().Changed("hash") && cfg.Defaults.Hash != nil {
			hashFlag = *cfg.Defaults.Hash
		}
		excludes = append(cfg.Defaults.Exclude, excludes...)
	}

	set := filter.NewSet()
	if err := set.AddAll(excludes); err != nil {
		return err
	}

	opts := snapshot.Options{
		MaxDepth: maxDepth,
		Hash:     hashFlag,
	}
	if !set.Empty() {
		opts.Exclude = set
	}

	snap, err := snapshot.Walk(root, opts)
	if err != nil {
		return err
	}

	if output != "" {
		return snap.WriteFile(output)
	}
	return snap.Encode(os.Stdout, compact)
}
