package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudlens/internal/domain/models"
)

func TestResultCacheKeyIsStable(t *testing.T) {
	assert.Equal(t, Key("a", "b", "c"), Key("a", "b", "c"))
	assert.NotEqual(t, Key("a", "b", "c"), Key("a", "bc", ""))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestResultCacheGetPut(t *testing.T) {
	c := NewResultCache(10)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("k", models.AnalysisResult{AnalysisID: "one", RiskScore: 0.7})
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "one", got.AnalysisID)
	assert.Equal(t, 0.7, got.RiskScore)
}

func TestResultCacheFIFOEviction(t *testing.T) {
	c := NewResultCache(2)

	c.Put("a", models.AnalysisResult{AnalysisID: "a"})
	c.Put("b", models.AnalysisResult{AnalysisID: "b"})
	c.Put("c", models.AnalysisResult{AnalysisID: "c"})

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestResultCacheHitsDoNotRefreshAge(t *testing.T) {
	c := NewResultCache(2)

	c.Put("a", models.AnalysisResult{AnalysisID: "a"})
	c.Put("b", models.AnalysisResult{AnalysisID: "b"})

	// Reading "a" must not save it from eviction; insertion order rules
	_, ok := c.Get("a")
	require.True(t, ok)
	c.Put("c", models.AnalysisResult{AnalysisID: "c"})

	_, ok = c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestResultCacheUpdateExistingKey(t *testing.T) {
	c := NewResultCache(2)

	c.Put("a", models.AnalysisResult{AnalysisID: "a1"})
	c.Put("a", models.AnalysisResult{AnalysisID: "a2"})
	assert.Equal(t, 1, c.Len())

	got, _ := c.Get("a")
	assert.Equal(t, "a2", got.AnalysisID)
}
