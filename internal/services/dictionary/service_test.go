package dictionary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterduel/letterduel/internal/storage/memory"
	"github.com/letterduel/letterduel/internal/testutil"
)

// countingChecker wraps a Checker and counts upstream calls
type countingChecker struct {
	inner Checker
	calls int
}

func (c *countingChecker) IsRealWord(ctx context.Context, word string) (bool, error) {
	c.calls++
	return c.inner.IsRealWord(ctx, word)
}

// failingChecker simulates an unreachable upstream
type failingChecker struct{}

func (failingChecker) IsRealWord(context.Context, string) (bool, error) {
	return false, errors.New("upstream unavailable")
}

func newService(checker Checker) (*Service, *memory.Storage) {
	store := memory.New()
	return New(checker, store, testutil.NopLogger()), store
}

func TestValidWordAccepted(t *testing.T) {
	svc, _ := newService(NewStaticChecker([]string{"cat", "dog"}))

	assert.True(t, svc.IsValidWord(context.Background(), "CAT"))
	assert.True(t, svc.IsValidWord(context.Background(), "dog"))
}

func TestUnknownWordRejected(t *testing.T) {
	svc, _ := newService(NewStaticChecker([]string{"cat"}))

	assert.False(t, svc.IsValidWord(context.Background(), "XYZZY"))
}

func TestMalformedWordRejectedWithoutUpstream(t *testing.T) {
	counting := &countingChecker{inner: &AcceptAllChecker{}}
	svc, _ := newService(counting)

	assert.False(t, svc.IsValidWord(context.Background(), "A"))
	assert.False(t, svc.IsValidWord(context.Background(), "C4T"))
	assert.Equal(t, 0, counting.calls, "shape rejections never hit the upstream")
}

func TestAnswersAreCached(t *testing.T) {
	counting := &countingChecker{inner: NewStaticChecker([]string{"cat"})}
	svc, _ := newService(counting)

	ctx := context.Background()
	assert.True(t, svc.IsValidWord(ctx, "CAT"))
	assert.True(t, svc.IsValidWord(ctx, "CAT"))
	assert.Equal(t, 1, counting.calls)

	assert.False(t, svc.IsValidWord(ctx, "ZZZ"))
	assert.False(t, svc.IsValidWord(ctx, "ZZZ"))
	assert.Equal(t, 2, counting.calls, "negative answers are cached too")
}

func TestDegradedUpstreamAcceptsShapedWords(t *testing.T) {
	svc, _ := newService(failingChecker{})

	assert.True(t, svc.IsValidWord(context.Background(), "CAT"))
	assert.False(t, svc.IsValidWord(context.Background(), "C4T"))
}

func TestDegradedAnswersNotCached(t *testing.T) {
	svc, store := newService(failingChecker{})

	assert.True(t, svc.IsValidWord(context.Background(), "CAT"))

	_, found, err := store.GetCachedWord(context.Background(), "CAT")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHTTPChecker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cat":
			w.WriteHeader(http.StatusOK)
		case "/zzz":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	checker := NewHTTPChecker(server.URL)
	ctx := context.Background()

	valid, err := checker.IsRealWord(ctx, "CAT")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = checker.IsRealWord(ctx, "ZZZ")
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = checker.IsRealWord(ctx, "ERR")
	assert.Error(t, err)
}
