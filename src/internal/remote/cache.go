package remote

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/nvmd/nvmd/src/internal/config"
	"github.com/nvmd/nvmd/src/internal/ui"
)

// DefaultCacheTTL is how long a downloaded index is trusted
const DefaultCacheTTL = 24 * time.Hour

const cacheFileName = "index.cache.json"

// CachedSource wraps a Source and keeps its last result on disk.
// An expired cache is still served when the underlying source fails.
type CachedSource struct {
	source   Source
	cacheDir string
	ttl      time.Duration
	now      func() time.Time
}

type cacheEntry struct {
	URL      string    `json:"url"`
	CachedAt time.Time `json:"cached_at"`
	Releases Index     `json:"releases"`
}

// NewCachedSource creates a Source that caches results from source under cacheDir
func NewCachedSource(source Source, cacheDir string, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source:   source,
		cacheDir: cacheDir,
		ttl:      ttl,
		now:      time.Now,
	}
}

// New returns the cached mirror index source for cfg
func New(cfg *config.Context) *CachedSource {
	return NewCachedSource(NewHTTPSource(cfg.Setting.Mirror), cfg.Home.CacheDir(), DefaultCacheTTL)
}

// URL returns the underlying source's URL
func (s *CachedSource) URL() string {
	return s.source.URL()
}

// Index returns the cached index while it is fresh, otherwise fetches it
func (s *CachedSource) Index(ctx context.Context) (Index, error) {
	entry, err := s.load()
	if err == nil && s.now().Sub(entry.CachedAt) <= s.ttl {
		return entry.Releases, nil
	}

	index, fetchErr := s.source.Index(ctx)
	if fetchErr != nil {
		if err == nil {
			ui.Debug("Release index unavailable (%v), using cache from %s", fetchErr, entry.CachedAt.Format(time.RFC3339))
			return entry.Releases, nil
		}
		return nil, fetchErr
	}

	if err := s.save(index); err != nil {
		ui.Debug("Failed to cache release index: %v", err)
	}

	return index, nil
}

// ForceRefresh drops the cache and fetches a fresh index
func (s *CachedSource) ForceRefresh(ctx context.Context) (Index, error) {
	_ = os.Remove(s.cachePath())
	return s.Index(ctx)
}

func (s *CachedSource) cachePath() string {
	return filepath.Join(s.cacheDir, cacheFileName)
}

// load returns the cached entry for the current URL, regardless of age
func (s *CachedSource) load() (cacheEntry, error) {
	var entry cacheEntry

	data, err := os.ReadFile(s.cachePath())
	if err != nil {
		return entry, err
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return entry, err
	}
	if entry.URL != s.source.URL() {
		return entry, os.ErrNotExist
	}

	return entry, nil
}

func (s *CachedSource) save(index Index) error {
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(cacheEntry{
		URL:      s.source.URL(),
		CachedAt: s.now(),
		Releases: index,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(s.cachePath(), data, 0644)
}
