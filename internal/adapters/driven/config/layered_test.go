package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config"
	"github.com/custodia-labs/sercha-topics/internal/adapters/driven/config/memory"
)

func TestLayered_LaterStoreWins(t *testing.T) {
	low := memory.NewConfigStore()
	_ = low.Set("topics.count", int64(3))
	_ = low.Set("source.dir", "./documents")
	high := memory.NewConfigStore()
	_ = high.Set("topics.count", "5")

	l := config.NewLayered(low, high)

	assert.Equal(t, 5, l.GetInt("topics.count"))
	assert.Equal(t, "./documents", l.GetString("source.dir"))
}

func TestLayered_Missing(t *testing.T) {
	l := config.NewLayered(memory.NewConfigStore(), nil)

	_, ok := l.Get("index.name")
	assert.False(t, ok)
	assert.Empty(t, l.GetString("index.name"))
	assert.Zero(t, l.GetInt("index.workers"))
	assert.False(t, l.GetBool("log.verbose"))
	assert.Nil(t, l.GetStringSlice("source.extensions"))
}

func TestLayered_TypedAccessors(t *testing.T) {
	s := memory.NewConfigStore()
	_ = s.Set("index.rate_limit", "2.5")
	_ = s.Set("log.verbose", "true")
	_ = s.Set("source.extensions", ".pdf,.txt")

	l := config.NewLayered(s)

	assert.InDelta(t, 2.5, l.GetFloat("index.rate_limit"), 1e-12)
	assert.True(t, l.GetBool("log.verbose"))
	assert.Equal(t, []string{".pdf", ".txt"}, l.GetStringSlice("source.extensions"))
}

func TestLayered_Path(t *testing.T) {
	l := config.NewLayered(memory.NewConfigStore(), memory.NewConfigStore())
	assert.Equal(t, ":memory: < :memory:", l.Path())
}
