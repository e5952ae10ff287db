package model

import "strings"

// DefaultChangelogEntries is the number of level-2 sections shown on the page.
const DefaultChangelogEntries = 5

const (
	sectionMarker     = "## "
	nextSectionMarker = "\n## "
)

// ChangelogExcerpt is the leading run of level-2 sections of a markdown
// changelog document.
type ChangelogExcerpt struct {
	Markdown string
	Sections int
}

// ExtractChangelogExcerpt returns the text from the first level-2 heading up
// to, but excluding, the heading that starts section entries+1. When fewer
// sections remain the excerpt runs to the end of the document. The boolean is
// false when the document has no level-2 heading at all.
func ExtractChangelogExcerpt(doc string, entries int) (ChangelogExcerpt, bool) {
	if entries <= 0 {
		entries = DefaultChangelogEntries
	}

	start := firstSectionIndex(doc)
	if start == -1 {
		return ChangelogExcerpt{}, false
	}

	end := start
	sections := 1
	for i := 0; i < entries; i++ {
		next := strings.Index(doc[end+1:], nextSectionMarker)
		if next == -1 {
			end = len(doc)
			break
		}
		end += 1 + next
		if i < entries-1 {
			sections++
		}
	}

	return ChangelogExcerpt{Markdown: doc[start:end], Sections: sections}, true
}

// firstSectionIndex locates the first "## " that begins a line, so a "### "
// subsection ahead of every level-2 heading is not mistaken for one.
func firstSectionIndex(doc string) int {
	if strings.HasPrefix(doc, sectionMarker) {
		return 0
	}
	i := strings.Index(doc, nextSectionMarker)
	if i == -1 {
		return -1
	}
	return i + 1
}
