// Package markdown implements the MarkdownRenderer port with goldmark and a
// bluemonday sanitization pass.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ericfisherdev/kbdash/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MarkdownRenderer = (*Renderer)(nil)

// Renderer converts GitHub-flavoured markdown to sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer. Raw HTML in the source is passed through
// goldmark and then stripped down by the UGC sanitization policy.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts src to sanitized HTML. Returns empty string for empty input.
func (r *Renderer) Render(src string) (string, error) {
	if src == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	return r.policy.Sanitize(buf.String()), nil
}
