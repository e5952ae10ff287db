package driven

import "context"

// ChangelogSource fetches the markdown changelog document.
type ChangelogSource interface {
	Fetch(ctx context.Context) (string, error)
}

// MarkdownRenderer converts markdown to sanitized HTML.
type MarkdownRenderer interface {
	Render(src string) (string, error)
}
