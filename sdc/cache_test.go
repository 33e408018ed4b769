package sdc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResourceCacheAcquireRelease(t *testing.T) {
	c := newResourceCache()

	s1 := c.acquire()
	s1.typ, s1.index, s1.data, s1.size, s1.refcnt = 1, 0, []byte{1}, 1, 1
	s2 := c.acquire()
	s2.typ, s2.index, s2.data, s2.size, s2.refcnt = 2, 0, []byte{2}, 1, 1

	stats := c.stats()
	require.Equal(t, 2, stats.Loaded)
	require.Equal(t, 0, stats.Free)

	got := c.find(1, 0)
	require.NotNil(t, got)
	require.Same(t, s1, got)
	require.EqualValues(t, 1, c.stats().Hits)

	c.release(s1)
	stats = c.stats()
	require.Equal(t, 1, stats.Loaded)
	require.Equal(t, 1, stats.Free)
	require.Nil(t, s1.data)
	require.Zero(t, s1.refcnt)

	// The freed slot's allocation is reused by the next acquire.
	s3 := c.acquire()
	require.Same(t, s1, s3)
}

func TestResourceCacheMRUPromotion(t *testing.T) {
	c := newResourceCache()
	a := c.acquire()
	a.typ, a.index = 1, 0
	b := c.acquire()
	b.typ, b.index = 2, 0

	require.Same(t, b, c.loaded.Front().Value.(*resourceSlot))
	c.find(1, 0)
	require.Same(t, a, c.loaded.Front().Value.(*resourceSlot), "find should promote to MRU head")
}

func TestResourceCacheCloseAll(t *testing.T) {
	c := newResourceCache()
	c.acquire()
	c.acquire()
	c.closeAll()
	stats := c.stats()
	require.Equal(t, 0, stats.Loaded)
	require.Equal(t, 2, stats.Free)
}
