package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/letterduel/letterduel/internal/services/rules"
	"github.com/letterduel/letterduel/internal/storage"
)

// Checker validates words against an upstream source
type Checker interface {
	// IsRealWord reports whether the word exists. An error means the
	// upstream could not answer, not that the word is invalid.
	IsRealWord(ctx context.Context, word string) (bool, error)
}

// Service validates words, caching upstream answers in storage (~24h per
// the backend's word-cache TTL). When the upstream is unreachable it fails
// safe: the shape check alone decides, and the degradation is logged.
type Service struct {
	upstream Checker
	storage  storage.Storage
	logger   *slog.Logger
}

// New creates a new dictionary service
func New(upstream Checker, storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		upstream: upstream,
		storage:  storage,
		logger:   logger,
	}
}

// IsValidWord reports whether a formed word is playable
func (s *Service) IsValidWord(ctx context.Context, word string) bool {
	word = strings.ToUpper(word)
	if !rules.IsWordShaped(word) {
		return false
	}

	if valid, found, err := s.storage.GetCachedWord(ctx, word); err == nil && found {
		return valid
	}

	valid, err := s.upstream.IsRealWord(ctx, word)
	if err != nil {
		// Conservative fallback: shape check already passed
		s.logger.Warn("dictionary degraded - accepting word on shape check only",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return true
	}

	if err := s.storage.CacheWord(ctx, word, valid); err != nil {
		s.logger.Warn("failed to cache dictionary result",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
	}

	return valid
}

// HTTPChecker queries a dictionary HTTP API. A 200 response means the word
// exists, 404 means it does not; anything else is an upstream failure.
type HTTPChecker struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPChecker creates a checker against the given API base URL
func NewHTTPChecker(baseURL string) *HTTPChecker {
	return &HTTPChecker{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

var _ Checker = (*HTTPChecker)(nil)

// IsRealWord looks the word up against the API
func (c *HTTPChecker) IsRealWord(ctx context.Context, word string) (bool, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(strings.ToLower(word)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("dictionary API returned status %d", resp.StatusCode)
	}
}

// StaticChecker validates against a fixed word list. Used in tests and
// when no upstream API is configured.
type StaticChecker struct {
	words map[string]struct{}
}

// NewStaticChecker creates a checker over the given words
func NewStaticChecker(words []string) *StaticChecker {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToUpper(w)] = struct{}{}
	}
	return &StaticChecker{words: set}
}

var _ Checker = (*StaticChecker)(nil)

// IsRealWord checks membership in the word list
func (c *StaticChecker) IsRealWord(_ context.Context, word string) (bool, error) {
	_, ok := c.words[strings.ToUpper(word)]
	return ok, nil
}

// AcceptAllChecker treats every shaped word as real. Used when running
// without any dictionary source.
type AcceptAllChecker struct{}

var _ Checker = (*AcceptAllChecker)(nil)

// IsRealWord always reports true
func (c *AcceptAllChecker) IsRealWord(_ context.Context, _ string) (bool, error) {
	return true, nil
}
