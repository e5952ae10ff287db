// Package changelogsrc implements the ChangelogSource port over HTTP and the
// local filesystem.
package changelogsrc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/kbdash/internal/domain/port/driven"
)

var (
	_ driven.ChangelogSource = (*HTTPSource)(nil)
	_ driven.ChangelogSource = (*FileSource)(nil)
)

// maxChangelogBytes bounds how much of the document is read into memory.
const maxChangelogBytes = 4 << 20

// ErrTooLarge is returned when the document exceeds maxChangelogBytes.
var ErrTooLarge = errors.New("changelog exceeds size limit")

// HTTPSource fetches the changelog from a URL. Every request carries
// Cache-Control: no-cache, so the caching transport revalidates instead of
// serving a stale copy.
type HTTPSource struct {
	http *http.Client
	url  string
}

// NewHTTPSource creates an HTTPSource backed by an in-memory httpcache transport.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return NewHTTPSourceWithClient(&http.Client{
		Transport: httpcache.NewMemoryCacheTransport(),
		Timeout:   timeout,
	}, url)
}

// NewHTTPSourceWithClient creates an HTTPSource with a custom http.Client.
func NewHTTPSourceWithClient(httpClient *http.Client, url string) *HTTPSource {
	return &HTTPSource{http: httpClient, url: url}
}

// Fetch downloads the changelog document. Any non-2xx status is an error.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := readLimited(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return body, nil
}

// FileSource reads the changelog from a local path on every fetch.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads the changelog file.
func (s *FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("opening changelog: %w", err)
	}
	defer f.Close()

	body, err := readLimited(f)
	if err != nil {
		return "", fmt.Errorf("reading changelog %s: %w", s.path, err)
	}

	return body, nil
}

// readLimited reads one byte past the limit so an oversized document is
// reported instead of silently cut.
func readLimited(r io.Reader) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxChangelogBytes+1))
	if err != nil {
		return "", err
	}
	if len(body) > maxChangelogBytes {
		return "", fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxChangelogBytes)
	}
	return string(body), nil
}
