// Package fetcher performs the HTTP legwork for the harvester: fetching
// listing pages and streaming PDF downloads to disk.
package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/talhay/open-hutbe-api/internal/logger"
)

// defaultUserAgent identifies the mirror to the source site.
const defaultUserAgent = "open-hutbe-api/1.0 (+https://github.com/talhay/open-hutbe-api)"

// maxListingBodyBytes limits the size of fetched listing pages.
const maxListingBodyBytes = 10 * 1024 * 1024 // 10 MB

// Config holds fetcher settings.
type Config struct {
	// Timeout bounds every individual request, headers through body.
	Timeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// HTTPFetcher fetches over HTTP with a per-request timeout. It satisfies
// the harvester's Fetcher interface.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	log       logger.Interface
}

// New creates a fetcher with the given configuration.
func New(cfg Config, log logger.Interface) *HTTPFetcher {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		userAgent: userAgent,
		log:       log.WithComponent("fetcher"),
	}
}

// Get fetches a listing page and returns the status code and body. The
// body is returned even for non-200 statuses; the caller decides what a
// given status means for pagination.
func (f *HTTPFetcher) Get(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("http fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

// Download streams the remote file to the destination path, creating
// parent directories as needed. It reports success; any failure, HTTP or
// I/O, is logged and returned as false rather than an error, because a
// single bad download must never abort a harvest pass.
func (f *HTTPFetcher) Download(ctx context.Context, rawURL, dest string) bool {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		f.log.Error("creating download directory", "dest", dest, "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		f.log.Error("creating download request", "url", rawURL, "error", err)
		return false
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Error("download failed", "url", rawURL, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Warn("download rejected", "url", rawURL, "status", resp.StatusCode)
		return false
	}

	out, err := os.Create(dest)
	if err != nil {
		f.log.Error("creating download file", "dest", dest, "error", err)
		return false
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		f.log.Error("writing download", "url", rawURL, "dest", dest, "error", err)
		return false
	}

	return true
}
