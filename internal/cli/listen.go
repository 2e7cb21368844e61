package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/jwulff/strata/internal/feed"
	"github.com/jwulff/strata/internal/log"
)

func newListenCmd(o *options) *cobra.Command {
	var socket string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Print notifications published by a running strata",
		Long: `Open the feed socket and print every notification a strata TUI publishes
to it, one JSON object per line. Start listen first, then run strata with
feed_socket set to the same path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if socket == "" {
				socket = o.cfg.FeedSocket
			}
			if socket == "" {
				socket = feed.SocketPath()
			}
			return runListen(cmd.Context(), socket, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "socket path (default feed_socket or $XDG_RUNTIME_DIR/strata.sock)")

	return cmd
}

func runListen(ctx context.Context, socket string, out io.Writer) error {
	ln, err := feed.Listen(socket)
	if err != nil {
		return err
	}
	log.Infow("listening for notifications", "socket", socket)

	echo := feed.NewPublisher(out)
	return feed.Serve(ctx, ln, func(n feed.Notification) {
		if err := echo.Publish(n); err != nil {
			log.Warnw("echo notification failed", "event", n.Event, "error", err)
		}
	})
}
