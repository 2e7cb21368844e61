package cli

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/jwulff/strata/internal/catalog"
)

func newPeriodsCmd(o *options) *cobra.Command {
	var showEvents bool

	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List the periods of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(o.cfg.Catalog)
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), c, showEvents)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showEvents, "events", false, "also list events")

	return cmd
}

func printCatalog(out io.Writer, c *catalog.Catalog, showEvents bool) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("#", "PERIOD", "BEGIN", "END", "COLOR")
	for i, p := range c.Periods {
		tbl.AddRow(i, p.Name, formatTime(p.Begin), formatTime(p.End), p.Color.Hex())
	}
	fmt.Fprintln(out, tbl)

	if !showEvents || len(c.Events) == 0 {
		return
	}

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow("#", "TIME", "EVENT", "DESCRIPTION")
	for i, e := range c.Events {
		tbl.AddRow(i, formatTime(e.Time), e.Title, e.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, tbl)
}

func formatTime(t float64) string {
	return fmt.Sprintf("%.1f", t)
}
