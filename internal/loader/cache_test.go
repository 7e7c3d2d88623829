package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmandColonnaW/irve-insights/internal/observability"
)

// countingSource serves a canned frame and tallies calls per source argument.
type countingSource struct {
	calls map[string]int
	err   error
}

func newCountingSource() *countingSource {
	return &countingSource{calls: map[string]int{}}
}

func (s *countingSource) Load(_ context.Context, source string) (dataframe.DataFrame, error) {
	s.calls[source]++
	if s.err != nil {
		return dataframe.DataFrame{}, s.err
	}
	return dataframe.New(series.New([]string{source}, series.String, "src")), nil
}

func TestCachedSourceLoadsOnce(t *testing.T) {
	inner := newCountingSource()
	cached := NewCachedSource(inner, 4, nil)
	ctx := context.Background()

	first, err := cached.Load(ctx, "a.csv")
	require.NoError(t, err)
	second, err := cached.Load(ctx, "a.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls["a.csv"])
	assert.Equal(t, first.Nrow(), second.Nrow())

	_, err = cached.Load(ctx, "b.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls["b.csv"])
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	inner := newCountingSource()
	inner.err = errors.New("boom")
	cached := NewCachedSource(inner, 4, nil)
	ctx := context.Background()

	_, err := cached.Load(ctx, "a.csv")
	require.Error(t, err)

	inner.err = nil
	_, err = cached.Load(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls["a.csv"])
}

func TestCachedSourceLoadedAt(t *testing.T) {
	cached := NewCachedSource(newCountingSource(), 4, nil)

	_, ok := cached.LoadedAt("a.csv")
	assert.False(t, ok)

	before := time.Now()
	_, err := cached.Load(context.Background(), "a.csv")
	require.NoError(t, err)

	loadedAt, ok := cached.LoadedAt("a.csv")
	require.True(t, ok)
	assert.False(t, loadedAt.Before(before))
}

func TestCachedSourceRecordsMetrics(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedSource(newCountingSource(), 4, metrics)
	ctx := context.Background()

	_, err := cached.Load(ctx, "a.csv")
	require.NoError(t, err)
	_, err = cached.Load(ctx, "a.csv")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LoaderCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LoaderCache.WithLabelValues("hit")))
}

func TestLRUCacheEviction(t *testing.T) {
	cache := newLRUCache(2)
	frame := func(tag string) cachedFrame {
		return cachedFrame{frame: dataframe.New(series.New([]string{tag}, series.String, "src"))}
	}

	cache.put("a", frame("a"))
	cache.put("b", frame("b"))

	// Touch "a" so "b" becomes least recently used.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("c", frame("c"))

	_, ok = cache.get("b")
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = cache.get("a")
	assert.True(t, ok)
	_, ok = cache.get("c")
	assert.True(t, ok)
}
