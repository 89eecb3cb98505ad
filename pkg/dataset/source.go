package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// DefaultURL is the FreeCodeCamp global land-surface temperature dataset.
const DefaultURL = "https://raw.githubusercontent.com/FreeCodeCamp/ProjectReferenceData/master/global-temperature.json"

// maxBodySize bounds the accepted response size.
const maxBodySize = 16 << 20

// Fetch downloads and validates a dataset.
func Fetch(ctx context.Context, client *http.Client, url string) (*Dataset, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch dataset: unexpected status %s", resp.Status)
	}
	return Decode(io.LimitReader(resp.Body, maxBodySize))
}

// Provider hands out a validated dataset.
type Provider interface {
	Dataset(ctx context.Context) (*Dataset, error)
}

// Source loads a dataset from a file, or from a URL when File is empty, and
// keeps it for TTL. A TTL of zero keeps it forever.
type Source struct {
	File   string
	URL    string
	TTL    time.Duration
	Client *http.Client

	mu     sync.Mutex
	cached *Dataset
	loaded time.Time
	now    func() time.Time
}

// NewSource builds a Source. file takes precedence over url.
func NewSource(file, url string, ttl, timeout time.Duration) *Source {
	if url == "" {
		url = DefaultURL
	}
	return &Source{
		File:   file,
		URL:    url,
		TTL:    ttl,
		Client: &http.Client{Timeout: timeout},
	}
}

// Dataset returns the cached dataset or loads a fresh one. On a failed
// reload a stale copy is returned if one exists.
func (s *Source) Dataset(ctx context.Context) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now
	if s.now != nil {
		now = s.now
	}

	if s.cached != nil && (s.TTL == 0 || now().Sub(s.loaded) < s.TTL) {
		return s.cached, nil
	}

	d, err := s.load(ctx)
	if err != nil {
		if s.cached != nil {
			slog.Warn("Failed to reload dataset, serving cached copy", "error", err, "age", now().Sub(s.loaded))
			return s.cached, nil
		}
		return nil, err
	}

	s.cached = d
	s.loaded = now()
	slog.Info("Dataset loaded", "source", s.origin(), "observations", len(d.MonthlyVariance))
	return d, nil
}

func (s *Source) load(ctx context.Context) (*Dataset, error) {
	if s.File != "" {
		return LoadFile(s.File)
	}
	slog.Debug("Fetching dataset", "url", s.URL)
	return Fetch(ctx, s.Client, s.URL)
}

func (s *Source) origin() string {
	if s.File != "" {
		return s.File
	}
	return s.URL
}
