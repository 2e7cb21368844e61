package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwulff/strata/internal/catalog"
	"github.com/jwulff/strata/internal/config"
	"github.com/jwulff/strata/internal/feed"
	"github.com/jwulff/strata/internal/log"
	"github.com/jwulff/strata/internal/motion"
	"github.com/jwulff/strata/internal/timeline"
)

func newPlayCmd(o *options) *cobra.Command {
	var reverse bool
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Sweep the indicator across the timeline without a UI",
		Long: `Move the indicator from one end of the timeline to the other and print
every notification as one JSON object per line.

Examples:
  strata play                      # Forward sweep at the configured speed
  strata play --reverse            # From the end back to the start
  strata play --duration 500ms     # Faster sweep`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *o.cfg
			if duration > 0 {
				cfg.BaseDurationMs = int(duration / time.Millisecond)
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return runPlay(cmd.Context(), &cfg, cmd.OutOrStdout(), reverse)
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false, "sweep from the end toward the start")
	cmd.Flags().DurationVar(&duration, "duration", 0, "full-history sweep time (overrides base_duration_ms)")

	return cmd
}

func runPlay(ctx context.Context, cfg *config.Config, out io.Writer, reverse bool) error {
	c, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}

	state := timeline.New()
	if err := c.Attach(state); err != nil {
		return fmt.Errorf("attach catalog: %w", err)
	}
	if reverse {
		// Start at the end without reporting the jump there.
		state.SetCurrentTime(state.HistoryLength())
	}

	pub := feed.NewPublisher(out)
	pub.CatalogLoaded(len(c.Periods), len(c.Events))
	unbind := pub.Bind(state)
	defer unbind()

	motionOpts, err := cfg.MotionOptions()
	if err != nil {
		return err
	}
	var ctl *motion.Controller
	motionOpts = append(motionOpts,
		motion.OnValue(state.SetCurrentTime),
		motion.OnFinished(func() { pub.MotionFinished(ctl.Value()) }),
	)
	ctl = motion.New(motionOpts...)
	if err := ctl.SetHistory(state.HistoryBegin(), state.HistoryLength()); err != nil {
		return err
	}
	ctl.SetValue(state.CurrentTime())

	var started bool
	if reverse {
		started = ctl.MoveToStart()
	} else {
		started = ctl.MoveToEnd()
	}
	if !started {
		return nil
	}
	pub.MotionStarted(ctl.Direction(), ctl.Target())
	log.Infow("headless sweep", "direction", ctl.Direction().String(), "duration", ctl.Duration())

	return motion.Run(ctx, ctl, cfg.FrameInterval())
}
