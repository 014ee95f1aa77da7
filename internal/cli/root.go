// Package cli contains the commands of the catalog tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"titlecatalog/internal/catalog"
	"titlecatalog/internal/config"
	"titlecatalog/internal/formatter"
	"titlecatalog/internal/logger"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfgFile   string
	sourceArg string
	logLevel  string
	formatArg string
)

// rootCmd represents the base command
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load, normalize and summarize a streaming title catalog",
	Long: `catalog reads a delimited title catalog export, normalizes dates and
durations, splits multi-value columns and reports the aggregates used by
catalog dashboards.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "./catalog.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&sourceArg, "source", "", "catalog file (overrides catalog.source)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&formatArg, "format", "", "report format override (table, json)")
}

// session is the per-invocation state shared by the commands.
type session struct {
	cfg      *config.Config
	log      *logger.Logger
	renderer *formatter.Renderer
}

// newSession loads the config file and applies flag overrides.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if sourceArg != "" {
		cfg.Catalog.Source = sourceArg
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if formatArg != "" {
		cfg.Report.Format = formatArg
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	renderer, err := formatter.NewRenderer(cfg.Report.Format, cfg.Report.PrettyPrint)
	if err != nil {
		return nil, err
	}

	log := logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	log.Debug("configuration loaded", "config", cfg.String())

	return &session{cfg: cfg, log: log, renderer: renderer}, nil
}

// openCatalog creates a catalog and loads the configured source.
func (s *session) openCatalog() (*catalog.Catalog, error) {
	path, err := s.cfg.RequireSource()
	if err != nil {
		return nil, fmt.Errorf("%w (set it in %s or pass --source)", err, cfgFile)
	}

	c := catalog.New(catalog.OptionsFromConfig(s.cfg, s.log))
	if _, err := c.Load(path); err != nil {
		return nil, err
	}

	return c, nil
}
