package cmd

import (
	"log/slog"
	"os"

	"github.com/runger/beacon/internal/apps"
	"github.com/runger/beacon/internal/bookmarks"
	"github.com/runger/beacon/internal/config"
	"github.com/runger/beacon/internal/engine"
	"github.com/runger/beacon/internal/frecency"
	"github.com/runger/beacon/internal/launch"
	"github.com/runger/beacon/internal/logging"
	"github.com/runger/beacon/internal/storage"
)

// app bundles everything a command needs after bootstrap.
type app struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger

	frecency   *frecency.Store
	selections *storage.Log // nil when the database could not be opened
	index      *bookmarks.Index
	catalog    *apps.Catalog
	opener     *launch.Opener
	engine     *engine.Engine
}

// setup loads configuration and assembles the engine with its plugins.
// The bookmark index is built synchronously so the first query already
// sees it; call index.Watch separately for live re-indexing.
func setup() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	paths := config.DefaultPaths()

	logger := logging.New(&logging.Config{
		Level: logLevel(cfg.Log.Level),
		Debug: os.Getenv("BEACON_DEBUG") == "1",
	})

	store := frecency.NewStore(cfg.UsagePath(), cfg.Frecency.Enabled, logger)
	store.Load()

	// The selection log is informational; a broken database must not keep
	// the launcher from starting.
	selections, err := storage.Open(paths.SelectionsDB())
	if err != nil {
		logger.Warn("selection log unavailable", "error", err)
		selections = nil
	}

	var profiles []bookmarks.Profile
	if len(cfg.Bookmarks.Profiles) > 0 {
		profiles = bookmarks.ExplicitProfiles(cfg.ProfileDir(), cfg.Bookmarks.Profiles)
	} else {
		profiles = bookmarks.DiscoverProfiles(cfg.ProfileDir())
	}
	index := bookmarks.NewIndex(profiles, cfg.Search.MaxResults, logger)
	index.Refresh()

	catalog := apps.NewCatalog(logger)
	catalog.Scan(os.Getenv("PATH"))

	opener, err := launch.NewOpener(cfg.Open.Browser, logger)
	if err != nil {
		return nil, err
	}

	eng := engine.New(engine.Options{
		Logger:     logger,
		Frecency:   store,
		Pins:       cfg.Search.Pins,
		Selections: selections,
	})
	eng.Use(bookmarks.NewPlugin(index, cfg.Bookmarks.Keyword, opener.OpenURL))
	eng.Use(apps.NewPlugin(catalog, cfg.Apps.Keyword, opener.LaunchApp))

	logger.Info("beacon ready",
		"bookmarks", len(index.Entries()),
		"apps", catalog.Len(),
		"profiles", len(profiles))

	return &app{
		cfg:        cfg,
		paths:      paths,
		logger:     logger,
		frecency:   store,
		selections: selections,
		index:      index,
		catalog:    catalog,
		opener:     opener,
		engine:     eng,
	}, nil
}

// close releases the app's resources.
func (a *app) close() {
	if a.selections != nil {
		if err := a.selections.Close(); err != nil {
			a.logger.Warn("selection log close failed", "error", err)
		}
	}
}
