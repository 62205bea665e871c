package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/lsjson/internal/listing"
)

var compareCmd = &cobra.Command{
	Use:   "compare <a.json> <b.json>",
	Short: "Check two listing documents for record-equivalence",
	Long: `Compare decodes two saved listing documents and checks that they
describe the same entries: same names, types, permissions and owners, and
the same targets for symlinks. Size and timestamp text may differ between
producers and are only checked against their format contracts.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func runCompare(_ *cobra.Command, args []string) error {
	a, err := decodeListingFile(args[0])
	if err != nil {
		return err
	}
	b, err := decodeListingFile(args[1])
	if err != nil {
		return err
	}
	return listing.Compare(a, b)
}

func decodeListingFile(path string) (listing.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return listing.Listing{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	l, err := listing.Decode(f)
	if err != nil {
		return listing.Listing{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
