// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/kbdash/internal/domain/model"
	"github.com/ericfisherdev/kbdash/internal/domain/port/driven"
)

// ErrCredentialsNotConfigured is reported for both metrics when the backend
// credentials are missing or still carry the deployment placeholder.
var ErrCredentialsNotConfigured = errors.New("knowledge base credentials not configured")

// MetricsView is the result of one metrics load. A non-nil error on either
// half means that metric could not be obtained and must be shown as
// unavailable; the other half is unaffected.
type MetricsView struct {
	RecordCount int
	CountErr    error
	Version     string
	VersionErr  error
}

// Result returns the successfully loaded values as a MetricsResult.
func (v MetricsView) Result() model.MetricsResult {
	return model.MetricsResult{VersionString: v.Version, RecordCount: v.RecordCount}
}

// MetricsLoader issues the count and version queries against the knowledge
// base and maps the outcome to a MetricsView. It never returns an error: every
// failure is logged and surfaced in the view.
type MetricsLoader struct {
	kb     driven.KnowledgeBase
	creds  model.Credentials
	policy model.CountPolicy
	logger *slog.Logger
}

// NewMetricsLoader creates a MetricsLoader with the required dependencies.
func NewMetricsLoader(kb driven.KnowledgeBase, creds model.Credentials, policy model.CountPolicy, logger *slog.Logger) *MetricsLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsLoader{
		kb:     kb,
		creds:  creds,
		policy: policy,
		logger: logger,
	}
}

// Load runs the count and version queries concurrently. Unconfigured
// credentials skip both queries with a warning.
func (l *MetricsLoader) Load(ctx context.Context) MetricsView {
	if state := l.creds.State(); state != model.CredentialStateConfigured {
		l.logger.Warn("knowledge base credentials not usable, skipping metrics queries", "state", state)
		return MetricsView{
			CountErr:   ErrCredentialsNotConfigured,
			VersionErr: ErrCredentialsNotConfigured,
		}
	}

	var view MetricsView
	var g errgroup.Group

	g.Go(func() error {
		view.RecordCount, view.CountErr = l.loadCount(ctx)
		return nil
	})
	g.Go(func() error {
		view.Version, view.VersionErr = l.loadVersion(ctx)
		return nil
	})
	_ = g.Wait()

	return view
}

func (l *MetricsLoader) loadCount(ctx context.Context) (int, error) {
	total, err := l.kb.CountRecords(ctx)
	if err != nil {
		l.logger.Error("knowledge base count failed", "error", err)
		return 0, err
	}
	return l.policy.Apply(total), nil
}

// loadVersion maps an empty or malformed result to model.FallbackVersion;
// only transport-level failures are reported as errors.
func (l *MetricsLoader) loadVersion(ctx context.Context) (string, error) {
	raw, err := l.kb.LatestModification(ctx)
	if errors.Is(err, driven.ErrMalformedResponse) {
		l.logger.Warn("knowledge base version response malformed, using fallback", "error", err)
		return model.FallbackVersion, nil
	}
	if err != nil {
		l.logger.Error("knowledge base version failed", "error", err)
		return "", err
	}

	version, ok := model.VersionFromTimestamp(raw)
	if !ok {
		if raw != "" {
			l.logger.Warn("unparseable modification timestamp, using fallback", "value", raw)
		}
		return model.FallbackVersion, nil
	}
	return version, nil
}
