package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ericfisherdev/kbdash/internal/adapter/driven/changelogsrc"
	"github.com/ericfisherdev/kbdash/internal/adapter/driven/markdown"
	"github.com/ericfisherdev/kbdash/internal/adapter/driven/postgrest"
	"github.com/ericfisherdev/kbdash/internal/application"
	"github.com/ericfisherdev/kbdash/internal/config"
	"github.com/ericfisherdev/kbdash/internal/domain/port/driven"
)

// app bundles the wired services shared by the serve and render commands.
type app struct {
	cfg       *config.Config
	dashboard *application.DashboardService
	hostPage  []byte
}

// newApp wires adapters and services from cfg.
func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	creds := cfg.Credentials()
	if !creds.IsConfigured() {
		logger.Warn("knowledge base credentials not usable; metrics will show fallback values",
			"state", creds.State(),
		)
	}

	kb := postgrest.NewClient(creds, postgrest.Options{
		Collection:     cfg.Collection,
		IDField:        cfg.IDField,
		TimestampField: cfg.TimestampField,
		Timeout:        cfg.HTTPTimeout,
	})

	var source driven.ChangelogSource
	if cfg.ChangelogURL != "" {
		source = changelogsrc.NewHTTPSource(cfg.ChangelogURL, cfg.HTTPTimeout)
	} else {
		source = changelogsrc.NewFileSource(cfg.ChangelogPath)
	}

	metrics := application.NewMetricsLoader(kb, creds, cfg.CountPolicy(), logger)
	changelog := application.NewChangelogRenderer(source, markdown.NewRenderer(), cfg.ChangelogEntries, logger)

	hostPage, err := loadHostPage(cfg.PagePath)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		dashboard: application.NewDashboardService(metrics, changelog),
		hostPage:  hostPage,
	}, nil
}

// loadHostPage reads the page the widgets are injected into. An empty path
// selects the built-in layout.
func loadHostPage(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	page, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading host page: %w", err)
	}
	return page, nil
}
