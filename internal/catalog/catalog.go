// Package catalog holds the normalized dataset snapshot and answers
// read-only queries against it.
//
// A Catalog is built empty, filled by Load and refreshed by Reload. Loads
// are serialized; a query sees either the snapshot before a reload or the
// one after it, never a partially built one. A failed load leaves the
// previous snapshot in place.
package catalog

import (
	"errors"
	"sync"
	"time"

	"titlecatalog/internal/aggregate"
	"titlecatalog/internal/config"
	"titlecatalog/internal/loader"
	"titlecatalog/internal/logger"
	"titlecatalog/internal/models"
	"titlecatalog/internal/normalizer"
	"titlecatalog/pkg/utils"
)

const maxLoggedText = 80

// ErrNoSource is returned by Reload before any successful Load.
var ErrNoSource = errors.New("catalog has no source to reload")

// Options configures a Catalog.
type Options struct {
	Logger    *logger.Logger
	Loader    loader.Options
	Policy    normalizer.Policy
	YearRange aggregate.YearRange
}

// DefaultOptions returns comma-delimited loading, absent-date propagation,
// abort-on-error and the 1925-2021 year range.
func DefaultOptions() Options {
	return Options{
		Policy:    normalizer.DefaultPolicy(),
		YearRange: aggregate.DefaultYearRange(),
	}
}

// OptionsFromConfig maps configuration onto catalog options.
func OptionsFromConfig(cfg *config.Config, log *logger.Logger) Options {
	return Options{
		Logger:    log,
		Loader:    cfg.LoaderOptions(),
		Policy:    cfg.Policy(),
		YearRange: cfg.YearRange(),
	}
}

// Catalog owns one dataset snapshot and its load/reload lifecycle.
type Catalog struct {
	loader    *loader.Loader
	processor *normalizer.Processor
	log       *logger.Logger
	snapshot  *models.Dataset
	path      string
	years     aggregate.YearRange
	reloadMu  sync.Mutex
	mu        sync.RWMutex
}

// New creates an empty catalog.
func New(opts Options) *Catalog {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	if opts.Policy == (normalizer.Policy{}) {
		opts.Policy = normalizer.DefaultPolicy()
	}

	if opts.YearRange == (aggregate.YearRange{}) {
		opts.YearRange = aggregate.DefaultYearRange()
	}

	return &Catalog{
		loader:    loader.NewLoader(opts.Loader),
		processor: normalizer.NewProcessor(opts.Policy),
		log:       log.With("component", "catalog"),
		years:     opts.YearRange,
	}
}

// Load reads, normalizes and publishes the file at path. On failure the
// current snapshot is kept and the error names the offending row, column
// and text where there is one.
func (c *Catalog) Load(path string) (*models.Dataset, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	return c.load(path)
}

// Reload loads the most recently loaded path again.
func (c *Catalog) Reload() error {
	path := c.Path()
	if path == "" {
		return ErrNoSource
	}

	_, err := c.Load(path)

	return err
}

// ReloadIfChanged reloads only when the source file no longer matches the
// fingerprint of the current snapshot. It reports whether a reload happened.
func (c *Catalog) ReloadIfChanged() (bool, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	c.mu.RLock()
	path, snap := c.path, c.snapshot
	c.mu.RUnlock()

	if path == "" {
		return false, ErrNoSource
	}

	if fresh, err := snap.Source.Verify(); err == nil && fresh {
		c.log.Debug("source unchanged, skipping reload", "path", path, "fingerprint", snap.Source.Short())

		return false, nil
	}

	if _, err := c.load(path); err != nil {
		return false, err
	}

	return true, nil
}

func (c *Catalog) load(path string) (*models.Dataset, error) {
	start := time.Now()
	c.log.Debug("loading catalog", "path", path)

	ds, err := c.build(path)
	if err != nil {
		if c.Snapshot() != nil {
			c.log.Error("catalog load failed, keeping previous snapshot", "path", path, "error", err)
		} else {
			c.log.Error("catalog load failed", "path", path, "error", err)
		}

		return nil, err
	}

	c.publish(path, ds)
	c.logLoaded(ds, time.Since(start))

	return ds, nil
}

func (c *Catalog) build(path string) (*models.Dataset, error) {
	table, err := c.loader.Load(path)
	if err != nil {
		return nil, err
	}

	return c.processor.Process(table)
}

func (c *Catalog) publish(path string, ds *models.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.path = path
	c.snapshot = ds
}

func (c *Catalog) logLoaded(ds *models.Dataset, took time.Duration) {
	for _, d := range ds.Diagnostics {
		c.log.Warn("skipped malformed value", "row", d.Row, "column", d.Column, "text", utils.TruncateString(d.Text, maxLoggedText))
	}

	c.log.Info("catalog loaded",
		"path", ds.Source.Path,
		"rows", ds.Len(),
		"diagnostics", len(ds.Diagnostics),
		"fingerprint", ds.Source.Short(),
		"duration", took,
	)
}

// Snapshot returns the current dataset, or nil before the first successful load.
// The dataset must be treated as read-only.
func (c *Catalog) Snapshot() *models.Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshot
}

// Path returns the source path of the current snapshot.
func (c *Catalog) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.path
}

// YearRange returns the range used by the per-year queries.
func (c *Catalog) YearRange() aggregate.YearRange {
	return c.years
}
