package application

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DashboardView holds everything the landing page widgets display.
type DashboardView struct {
	Metrics   MetricsView
	Changelog ChangelogView
}

// DashboardService runs the metrics and changelog loads for one page render.
// The two loads share no state; concurrent calls race independently.
type DashboardService struct {
	metrics   *MetricsLoader
	changelog *ChangelogRenderer
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(metrics *MetricsLoader, changelog *ChangelogRenderer) *DashboardService {
	return &DashboardService{
		metrics:   metrics,
		changelog: changelog,
	}
}

// Load runs both loads concurrently and waits for them to finish.
func (s *DashboardService) Load(ctx context.Context) DashboardView {
	var view DashboardView
	var g errgroup.Group

	g.Go(func() error {
		view.Metrics = s.metrics.Load(ctx)
		return nil
	})
	g.Go(func() error {
		view.Changelog = s.changelog.Load(ctx)
		return nil
	})
	_ = g.Wait()

	return view
}

// Metrics loads only the metrics half of the dashboard.
func (s *DashboardService) Metrics(ctx context.Context) MetricsView {
	return s.metrics.Load(ctx)
}

// Changelog loads only the changelog half of the dashboard.
func (s *DashboardService) Changelog(ctx context.Context) ChangelogView {
	return s.changelog.Load(ctx)
}
