package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jwulff/strata/internal/catalog"
	"github.com/jwulff/strata/internal/db"
	"github.com/jwulff/strata/internal/timeline"
)

func newImportCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <catalog.yaml> [catalog.sqlite]",
		Short: "Store a YAML catalog in a SQLite database",
		Long: `Validate a YAML catalog and replace the contents of a SQLite catalog
with it. The database is created if needed.

Examples:
  strata import eras.yaml                 # Into the default database
  strata import eras.yaml eras.sqlite     # Into a specific file`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := db.DefaultDBPath()
			if len(args) == 2 {
				dbPath = args[1]
			}
			return runImport(cmd.OutOrStdout(), args[0], dbPath)
		},
	}
	return cmd
}

func runImport(out io.Writer, src, dbPath string) error {
	if catalog.IsDatabase(src) {
		return fmt.Errorf("%s is already a database", src)
	}
	c, err := catalog.Load(src)
	if err != nil {
		return err
	}
	if err := c.Attach(timeline.New()); err != nil {
		return fmt.Errorf("invalid catalog %s: %w", src, err)
	}

	store, err := db.Create(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceCatalog(c.Periods, c.Events); err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d periods and %d events into %s\n", len(c.Periods), len(c.Events), dbPath)
	return nil
}
