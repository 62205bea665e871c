package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bamsammich/lsjson/internal/listing"
	"github.com/bamsammich/lsjson/internal/lsd"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [path]",
	Short: "Parse lsd --long output into structured JSON",
	Long: `Parse derives listing records from lsd's textual output instead of
filesystem metadata. When stdin is a pipe the lines are read from it;
otherwise lsd is invoked on the given path (default ".").`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("compact", false, "single-line JSON output")
}

func runParse(cmd *cobra.Command, args []string) error {
	compact, _ := cmd.Flags().GetBool("compact") //nolint:errcheck // flag name is hardcoded

	var input io.Reader = os.Stdin
	if term.IsTerminal(int(os.Stdin.Fd())) {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		out, err := lsd.Run(cmd.Context(), path)
		if err != nil {
			return err
		}
		input = strings.NewReader(out)
	}

	l, err := listing.Parse(input)
	if err != nil {
		return err
	}
	return l.Encode(os.Stdout, compact)
}
