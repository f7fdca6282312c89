// Package feed retrieves and parses the SoccerTwos match history feed.
package feed

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"
)

// DefaultUserAgent identifies soccerboard to the feed host.
const DefaultUserAgent = "soccerboard/1.0 (+https://github.com/huangsam/soccerboard)"

// maxFeedBytes bounds how much of a feed is read into memory.
const maxFeedBytes = 256 << 20

// Source fetches feeds over HTTP(S) or from the local filesystem.
type Source struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

var _ contract.MatchSource = &Source{} // Compile-time check

// NewSource creates a Source whose HTTP requests time out after timeout.
func NewSource(timeout time.Duration) *Source {
	return &Source{
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
		maxBytes:  maxFeedBytes,
	}
}

// NewSourceWithClient creates a Source around a caller-provided HTTP client.
func NewSourceWithClient(client *http.Client) *Source {
	return &Source{client: client, userAgent: DefaultUserAgent, maxBytes: maxFeedBytes}
}

// Fetch implements the MatchSource interface.
// Locations without a scheme and file:// URLs are read from disk.
func (s *Source) Fetch(ctx context.Context, location string) ([]byte, error) {
	if !strings.Contains(location, "://") {
		return s.readLocal(location)
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid location %q: %v", schema.ErrSourceUnavailable, location, err)
	}
	if u.Scheme == "file" {
		return s.readLocal(u.Path)
	}
	return s.fetchHTTP(ctx, location)
}

// readLocal reads a feed stored on disk.
func (s *Source) readLocal(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()
	return s.readAll(path, f)
}

// readAll reads r fully and fails rather than truncating a feed over the size cap.
func (s *Source) readAll(location string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", schema.ErrSourceUnavailable, location, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", schema.ErrSourceUnavailable, location, s.maxBytes)
	}
	return data, nil
}

// fetchHTTP downloads the feed and undoes any Content-Encoding.
func (s *Source) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", schema.ErrSourceUnavailable, location, resp.StatusCode)
	}

	reader, err := decodeBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	return s.readAll(location, reader)
}

// decodeBody wraps body according to the Content-Encoding header.
func decodeBody(encoding string, body io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "gzip":
		r, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return r, nil
	case "deflate":
		return flate.NewReader(body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(body)), nil
	case "", "identity":
		return io.NopCloser(body), nil
	default:
		contract.LogWarn("Unknown content encoding", fmt.Errorf("%q, reading as is", encoding))
		return io.NopCloser(body), nil
	}
}
