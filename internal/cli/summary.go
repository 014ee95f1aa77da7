package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"titlecatalog/internal/catalog"
	"titlecatalog/internal/watcher"
)

//nolint:gochecknoglobals // Cobra flag storage
var watchFlag bool

//nolint:gochecknoglobals // Cobra commands are typically global
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print type counts, distinct values, durations and per-year tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSummary(cmd, watchFlag)
	},
}

//nolint:gochecknoglobals // Cobra commands are typically global
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the summary, then reload and print it again whenever the source changes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSummary(cmd, true)
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&watchFlag, "watch", false, "keep running and reload when the source changes")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(watchCmd)
}

func runSummary(cmd *cobra.Command, watch bool) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	c, err := s.openCatalog()
	if err != nil {
		return err
	}

	if err := s.renderer.Summary(cmd.OutOrStdout(), c.Summary()); err != nil {
		return err
	}

	if !watch && !s.cfg.Watch.Enabled {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.watch(ctx, cmd, c)
}

// watch blocks until ctx is cancelled, printing a fresh summary after each reload.
func (s *session) watch(ctx context.Context, cmd *cobra.Command, c *catalog.Catalog) error {
	w, err := watcher.New(c.Path(), watcher.Options{SettleDelay: s.cfg.Watch.GetSettleDelay()}, s.log)
	if err != nil {
		return err
	}
	defer w.Close()

	return w.Run(ctx, func(context.Context) error {
		reloaded, err := c.ReloadIfChanged()
		if err != nil || !reloaded {
			return err
		}

		return s.renderer.Summary(cmd.OutOrStdout(), c.Summary())
	})
}
