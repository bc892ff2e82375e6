package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreIsolatesTokens(t *testing.T) {
	s := NewStore()
	t1 := s.NewToken()
	t2 := s.NewToken()

	s.With(t1, func(c *Cart) { c.Add(testProduct("wrench", 500)) })

	s.With(t2, func(c *Cart) {
		require.True(t, c.Empty())
	})
	s.With(t1, func(c *Cart) {
		require.Equal(t, 1, c.Len())
	})
}

func TestStoreDrop(t *testing.T) {
	s := NewStore()
	tok := s.NewToken()

	s.With(tok, func(c *Cart) { c.Add(testProduct("wrench", 500)) })
	s.Drop(tok)

	s.With(tok, func(c *Cart) {
		require.True(t, c.Empty())
	})
}

func TestStorePrune(t *testing.T) {
	s := NewStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	old := s.NewToken()
	s.With(old, func(c *Cart) { c.Add(testProduct("wrench", 500)) })

	s.now = func() time.Time { return now.Add(defaultIdleTTL + time.Minute) }

	fresh := s.NewToken()
	s.With(fresh, func(c *Cart) { c.Add(testProduct("jack", 1200)) })

	require.Equal(t, 1, s.Prune())

	s.With(old, func(c *Cart) {
		require.True(t, c.Empty())
	})
	s.With(fresh, func(c *Cart) {
		require.Equal(t, 1, c.Len())
	})
}
