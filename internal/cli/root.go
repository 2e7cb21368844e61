// Package cli implements the strata command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jwulff/strata/internal/app"
	"github.com/jwulff/strata/internal/catalog"
	"github.com/jwulff/strata/internal/config"
	"github.com/jwulff/strata/internal/feed"
	"github.com/jwulff/strata/internal/log"
)

// options are shared by every subcommand.
type options struct {
	cfgFile string
	catalog string
	logFile string
	debug   bool

	cfg *config.Config
}

// load reads the config file and applies flag overrides.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog = o.catalog
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if o.debug {
		cfg.Debug = true
	}
	if cfg.LogFile == "" {
		cfg.LogFile = log.DefaultPath()
	}
	o.cfg = cfg

	return log.Init(cfg.Debug, cfg.LogFile)
}

// NewRootCmd builds the strata command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "strata",
		Short: "Scrub through a timeline of periods and events",
		Long: `strata shows a timeline of periods as a colored bar with a moving
indicator, and reports when the indicator enters a period or reaches an event.

The catalog is a YAML file or a SQLite database; without one the built-in
Phanerozoic catalog is used.

Examples:
  strata                              # Interactive timeline
  strata --catalog eras.yaml          # Use a YAML catalog, reloaded on save
  strata play --duration 2s           # Headless sweep, NDJSON on stdout
  strata import eras.yaml eras.sqlite # Convert a catalog to SQLite`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), o.cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (default ~/.config/strata/config.toml)")
	cmd.PersistentFlags().StringVar(&o.catalog, "catalog", "", "YAML or SQLite catalog (default built-in)")
	cmd.PersistentFlags().StringVar(&o.logFile, "log-file", "", "log file (default ~/.local/state/strata/strata.log)")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newPlayCmd(o),
		newImportCmd(o),
		newPeriodsCmd(o),
		newListenCmd(o),
		newConfigCmd(o),
	)
	return cmd
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func runTUI(ctx context.Context, cfg *config.Config) error {
	var opts []app.Option
	if cfg.FeedSocket != "" {
		pub, err := feed.Dial(cfg.FeedSocket)
		if err != nil {
			return err
		}
		defer pub.Close()
		opts = append(opts, app.WithPublisher(pub))
	}

	m, err := app.New(cfg, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if cfg.Watch && watchable(cfg.Catalog) {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := catalog.Watch(watchCtx, cfg.Catalog, catalog.DefaultDebounce, func(c *catalog.Catalog, err error) {
				if err != nil {
					p.Send(app.CatalogErrorMsg{Err: err})
					return
				}
				p.Send(app.CatalogLoadedMsg{Catalog: c, Source: cfg.Catalog})
			})
			if err != nil {
				log.Warnw("catalog watch stopped", "path", cfg.Catalog, "error", err)
			}
		}()
	}

	log.Infow("starting tui", "catalog", cfg.Catalog, "feed", cfg.FeedSocket)
	_, err = p.Run()
	return err
}

// watchable reports whether path is a file catalog worth watching.
// SQLite catalogs are replaced through import and reloaded by key.
func watchable(path string) bool {
	return path != "" && !catalog.IsDatabase(path)
}
