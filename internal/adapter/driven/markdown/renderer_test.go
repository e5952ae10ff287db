package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, src string) string {
	t.Helper()
	out, err := NewRenderer().Render(src)
	require.NoError(t, err)
	return out
}

func TestRender_EmptyInput(t *testing.T) {
	assert.Equal(t, "", render(t, ""))
}

func TestRender_Heading(t *testing.T) {
	result := render(t, "## [1.2.0] - 2025-12-27")
	assert.Contains(t, result, "<h2")
	assert.Contains(t, result, "[1.2.0] - 2025-12-27</h2>")
}

func TestRender_ListItems(t *testing.T) {
	result := render(t, "- added search\n- fixed count")
	assert.Contains(t, result, "<li>added search</li>")
	assert.Contains(t, result, "<li>fixed count</li>")
}

func TestRender_Bold(t *testing.T) {
	assert.Contains(t, render(t, "**bold text**"), "<strong>bold text</strong>")
}

func TestRender_InlineCode(t *testing.T) {
	assert.Contains(t, render(t, "use `kb_id`"), "<code>kb_id</code>")
}

func TestRender_Link(t *testing.T) {
	result := render(t, "[diff](https://example.com/compare)")
	assert.Contains(t, result, `<a href="https://example.com/compare"`)
	assert.Contains(t, result, "diff</a>")
}

func TestRender_SanitizesScript(t *testing.T) {
	result := render(t, `<script>alert("xss")</script>`)
	assert.NotContains(t, result, "<script>")
}

func TestRender_SanitizesEventHandlers(t *testing.T) {
	result := render(t, `<img src="x.png" onerror="alert(1)">`)
	assert.NotContains(t, result, "onerror")
}

func TestRender_GFMStrikethrough(t *testing.T) {
	assert.Contains(t, render(t, "~~removed~~"), "<del>removed</del>")
}
