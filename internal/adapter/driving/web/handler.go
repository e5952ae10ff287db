// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/kbdash/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/kbdash/internal/application"
)

// PageTitle is the document title of the built-in dashboard page.
const PageTitle = "Base de Conhecimento"

// Handler is the web GUI driving adapter that serves the dashboard page and
// its partial-refresh fragments.
type Handler struct {
	dashboard *application.DashboardService
	hostPage  []byte
	logger    *slog.Logger
}

// NewHandler creates a Handler. hostPage is the operator-supplied page the
// widgets are injected into; nil selects the built-in templ layout.
func NewHandler(dashboard *application.DashboardService, hostPage []byte, logger *slog.Logger) *Handler {
	return &Handler{
		dashboard: dashboard,
		hostPage:  hostPage,
		logger:    logger,
	}
}

// RenderPage writes the full dashboard page for view to w, either by
// injecting into hostPage or by rendering the built-in layout.
func RenderPage(ctx context.Context, w io.Writer, view application.DashboardView, hostPage []byte) error {
	model := toDashboardViewModel(view)

	if hostPage != nil {
		page, err := InjectView(hostPage, model)
		if err != nil {
			return err
		}
		_, err = w.Write(page)
		return err
	}

	return templates.Layout(PageTitle, templates.Dashboard(model)).Render(ctx, w)
}

// Dashboard loads both widgets and renders the full page.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.Load(r.Context())

	var buf bytes.Buffer
	if err := RenderPage(r.Context(), &buf, view, h.hostPage); err != nil {
		h.logger.Error("failed to render dashboard", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeHTML(w, buf.Bytes())
}

// Metrics renders the count and version widgets only.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	count, version := toMetricsFragments(h.dashboard.Metrics(r.Context()))
	h.renderFragment(w, r, templates.MetricsWidgets(count, version))
}

// Changelog renders the changelog widget only.
func (h *Handler) Changelog(w http.ResponseWriter, r *http.Request) {
	changelog := toChangelogFragment(h.dashboard.Changelog(r.Context()))
	h.renderFragment(w, r, templates.ChangelogWidget(changelog))
}

func (h *Handler) renderFragment(w http.ResponseWriter, r *http.Request, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render fragment", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
