package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newKnowledgeBaseServer fakes the PostgREST endpoint with 11 rows, one of
// them modified on 2025-12-27.
func newKnowledgeBaseServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/knowledge_base" || r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("order") != "" {
			_, _ = w.Write([]byte(`[{"modificado_em":"2025-12-27T00:00:00Z"}]`))
			return
		}
		w.Header().Set("Content-Range", "0-0/11")
		_, _ = w.Write([]byte(`[{"kb_id":1}]`))
	}))
	t.Cleanup(server.Close)
	return server
}

// setRenderEnv points the configuration at the fake backend and a temp changelog.
func setRenderEnv(t *testing.T, baseURL, changelogPath string) {
	t.Helper()
	t.Setenv("KBDASH_CONFIG_FILE", "")
	t.Setenv("KBDASH_SUPABASE_URL", baseURL)
	t.Setenv("KBDASH_SUPABASE_KEY", "anon")
	t.Setenv("KBDASH_COUNT_OFFSET", "1")
	t.Setenv("KBDASH_CHANGELOG_URL", "")
	t.Setenv("KBDASH_CHANGELOG_PATH", changelogPath)
	t.Setenv("KBDASH_CHANGELOG_ENTRIES", "5")
	t.Setenv("KBDASH_PAGE_PATH", "")
}

func runRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(append(args, "--env-file", ""))
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestRender_BuiltInLayoutToStdout(t *testing.T) {
	dir := t.TempDir()
	changelog := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(changelog, []byte("# Changelog\n\n## 1.1\n- **search**\n\n## 1.0\n- first\n"), 0o600))
	setRenderEnv(t, newKnowledgeBaseServer(t).URL, changelog)

	stdout, stderr, err := runRoot(t, "render")

	require.NoError(t, err)
	assert.Contains(t, stdout, `id="kb-count" class="kb-stat-value">10</span>`)
	assert.Contains(t, stdout, `id="kb-version" class="kb-stat-value">v2025.12.27</span>`)
	assert.Contains(t, stdout, "<strong>search</strong>")
	assert.NotContains(t, stdout, "# Changelog")
	assert.Contains(t, stderr, "count: 10")
	assert.Contains(t, stderr, "changelog: rendered")
}

func TestRender_HostPageToFile(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	out := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(page, []byte(`<html><body><span id="kb-version">...</span><div id="latest-changelog">old</div></body></html>`), 0o600))
	setRenderEnv(t, newKnowledgeBaseServer(t).URL, filepath.Join(dir, "missing.md"))

	_, stderr, err := runRoot(t, "render", "--page", page, "--out", out)

	require.NoError(t, err)
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), `<span id="kb-version">v2025.12.27</span>`)
	assert.Contains(t, string(written), "Erro ao carregar histórico.")
	assert.NotContains(t, string(written), ">old<")
	assert.Contains(t, stderr, "changelog: opening changelog")
}

func TestRender_PlaceholderCredentials(t *testing.T) {
	dir := t.TempDir()
	setRenderEnv(t, "__SUPABASE_URL__", filepath.Join(dir, "missing.md"))
	t.Setenv("KBDASH_SUPABASE_KEY", "__SUPABASE_ANON_KEY_DEV__")

	stdout, stderr, err := runRoot(t, "render")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Indisponível")
	assert.Contains(t, stdout, `id="kb-version" class="kb-stat-value">Online</span>`)
	assert.Contains(t, stderr, "credentials not configured")
}

func TestRender_MissingHostPage(t *testing.T) {
	setRenderEnv(t, "https://kb.example", "CHANGELOG.md")

	_, _, err := runRoot(t, "render", "--page", filepath.Join(t.TempDir(), "absent.html"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading host page")
}
