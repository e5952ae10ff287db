package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/kbdash/internal/domain/model"
	"github.com/ericfisherdev/kbdash/internal/domain/port/driven"
)

// ChangelogView is the result of one changelog load. Exactly one of HTML,
// Text, or Err is set, or none of them when the document has no level-2
// section to show.
type ChangelogView struct {
	HTML string
	Text string
	Err  error
}

// Empty reports whether there is nothing to display.
func (v ChangelogView) Empty() bool {
	return v.HTML == "" && v.Text == "" && v.Err == nil
}

// ChangelogRenderer fetches the changelog, cuts the leading entries and
// converts them to HTML.
type ChangelogRenderer struct {
	source   driven.ChangelogSource
	renderer driven.MarkdownRenderer
	entries  int
	logger   *slog.Logger
}

// NewChangelogRenderer creates a ChangelogRenderer. renderer may be nil, in
// which case the excerpt is shown as plain text.
func NewChangelogRenderer(source driven.ChangelogSource, renderer driven.MarkdownRenderer, entries int, logger *slog.Logger) *ChangelogRenderer {
	if entries <= 0 {
		entries = model.DefaultChangelogEntries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChangelogRenderer{
		source:   source,
		renderer: renderer,
		entries:  entries,
		logger:   logger,
	}
}

// Load fetches and renders the excerpt. Fetch failures are returned in the
// view; conversion failures degrade to plain text.
func (r *ChangelogRenderer) Load(ctx context.Context) ChangelogView {
	doc, err := r.source.Fetch(ctx)
	if err != nil {
		r.logger.Error("changelog fetch failed", "error", err)
		return ChangelogView{Err: err}
	}

	excerpt, ok := model.ExtractChangelogExcerpt(doc, r.entries)
	if !ok {
		r.logger.Debug("changelog has no level-2 sections")
		return ChangelogView{}
	}

	if r.renderer == nil {
		return ChangelogView{Text: excerpt.Markdown}
	}

	html, err := r.renderer.Render(excerpt.Markdown)
	if err != nil {
		r.logger.Warn("markdown conversion failed, showing plain text", "error", err)
		return ChangelogView{Text: excerpt.Markdown}
	}

	return ChangelogView{HTML: html}
}
