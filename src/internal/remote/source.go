package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Source retrieves the release index
type Source interface {
	// Index returns the published releases
	Index(ctx context.Context) (Index, error)

	// URL identifies where the index comes from
	URL() string
}

// ErrIndexNotFound is returned when the mirror serves no index.json
type ErrIndexNotFound struct {
	URL string
}

func (e *ErrIndexNotFound) Error() string {
	return fmt.Sprintf("release index not found at %s", e.URL)
}

// IsIndexNotFound checks if an error indicates a missing index
func IsIndexNotFound(err error) bool {
	var target *ErrIndexNotFound
	return errors.As(err, &target)
}

// DefaultHTTPTimeout is the default timeout for index requests
const DefaultHTTPTimeout = 30 * time.Second

// HTTPSource fetches {mirror}/index.json
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource creates a Source reading the index published under mirror
func NewHTTPSource(mirror string) *HTTPSource {
	return NewHTTPSourceWithClient(mirror, &http.Client{Timeout: DefaultHTTPTimeout})
}

// NewHTTPSourceWithClient creates an HTTPSource with a custom HTTP client
func NewHTTPSourceWithClient(mirror string, client *http.Client) *HTTPSource {
	return &HTTPSource{
		url:        strings.TrimRight(mirror, "/") + "/index.json",
		httpClient: client,
	}
}

// URL returns the index location
func (s *HTTPSource) URL() string {
	return s.url
}

// Index downloads and parses the release index
func (s *HTTPSource) Index(ctx context.Context) (Index, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release index: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &ErrIndexNotFound{URL: s.url}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch release index: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read release index: %w", err)
	}

	return ParseIndex(data)
}
