package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/kbdash/internal/domain/model"
)

func newDashboard(kb *mockKnowledgeBase, src *mockSource) *DashboardService {
	return NewDashboardService(
		newLoader(kb, 1),
		NewChangelogRenderer(src, &mockRenderer{}, 5, discardLogger()),
	)
}

func TestDashboardService_Load(t *testing.T) {
	kb := &mockKnowledgeBase{total: 11, latest: "2025-12-27T00:00:00Z"}
	svc := newDashboard(kb, &mockSource{doc: "## 1.0\n- first\n"})

	view := svc.Load(context.Background())

	require.NoError(t, view.Metrics.CountErr)
	assert.Equal(t, 10, view.Metrics.RecordCount)
	assert.Equal(t, "v2025.12.27", view.Metrics.Version)
	assert.Contains(t, view.Changelog.HTML, "## 1.0")
}

func TestDashboardService_ChangelogFailureDoesNotAffectMetrics(t *testing.T) {
	kb := &mockKnowledgeBase{total: 2, latest: ""}
	svc := newDashboard(kb, &mockSource{err: errNetwork})

	view := svc.Load(context.Background())

	assert.Equal(t, 1, view.Metrics.RecordCount)
	assert.Equal(t, model.FallbackVersion, view.Metrics.Version)
	assert.ErrorIs(t, view.Changelog.Err, errNetwork)
}

func TestDashboardService_PartialLoads(t *testing.T) {
	kb := &mockKnowledgeBase{total: 3}
	svc := newDashboard(kb, &mockSource{doc: "## x\n"})

	assert.Equal(t, 2, svc.Metrics(context.Background()).RecordCount)
	assert.Contains(t, svc.Changelog(context.Background()).HTML, "## x")
}

func TestDashboardService_ConcurrentLoads(t *testing.T) {
	kb := &mockKnowledgeBase{total: 4, latest: "2024-05-06"}
	svc := newDashboard(kb, &mockSource{doc: "## y\n"})

	done := make(chan DashboardView, 4)
	for i := 0; i < 4; i++ {
		go func() { done <- svc.Load(context.Background()) }()
	}
	for i := 0; i < 4; i++ {
		view := <-done
		assert.Equal(t, 3, view.Metrics.RecordCount)
		assert.Equal(t, "v2024.05.06", view.Metrics.Version)
	}
	assert.Equal(t, int32(4), kb.countCalls.Load())
}
