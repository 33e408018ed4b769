package sdc

import "container/list"

// resourceSlot is one cache entry. A slot is either Loaded (data != nil,
// refcnt >= 1, linked into the reader's loaded list) or Free (data == nil,
// refcnt == 0, linked into the free list). The struct itself survives a
// Loaded -> Free transition so its backing allocation can be reused; only
// its fields are cleared.
type resourceSlot struct {
	refcnt int
	data   []byte
	size   uint32
	typ    uint32
	index  uint32

	elem *list.Element // this slot's element in whichever list currently holds it
}

func (s *resourceSlot) clear() {
	s.refcnt = 0
	s.data = nil
	s.size = 0
	s.typ = 0
	s.index = 0
}

// resourceCache is the refcounted, MRU-ordered resource cache described by
// the container format: a "loaded" list of active slots in most-recently-used
// order and a "free" list of cleared slots kept around for reuse. It assumes
// single-threaded use by its owning Reader (see the Reader type's doc on
// concurrency) and so needs no internal locking, unlike the teacher's
// BoundedEntityCache which serves concurrent HTTP handlers.
type resourceCache struct {
	loaded *list.List
	free   *list.List

	hits, misses uint64
}

func newResourceCache() *resourceCache {
	return &resourceCache{
		loaded: list.New(),
		free:   list.New(),
	}
}

// find scans the loaded list head-to-tail for (typ, index). On a hit it
// promotes the slot to the head of the list (MRU) and returns it.
func (c *resourceCache) find(typ, index uint32) *resourceSlot {
	for e := c.loaded.Front(); e != nil; e = e.Next() {
		s := e.Value.(*resourceSlot)
		if s.typ == typ && s.index == index {
			c.loaded.MoveToFront(e)
			c.hits++
			return s
		}
	}
	c.misses++
	return nil
}

// acquire returns a slot ready to receive a freshly-loaded resource: the
// head of the free list if one exists, otherwise a newly allocated slot.
// The returned slot is linked at the head of the loaded list.
func (c *resourceCache) acquire() *resourceSlot {
	var s *resourceSlot
	if e := c.free.Front(); e != nil {
		s = e.Value.(*resourceSlot)
		c.free.Remove(e)
	} else {
		s = &resourceSlot{}
	}
	s.elem = c.loaded.PushFront(s)
	return s
}

// release moves s from the loaded list to the head of the free list,
// clearing its data. Called when a handle's refcount reaches zero.
func (c *resourceCache) release(s *resourceSlot) {
	c.loaded.Remove(s.elem)
	s.clear()
	s.elem = c.free.PushFront(s)
}

// closeAll moves every loaded slot to the free list, clearing each one.
// Used by Reader.Close.
func (c *resourceCache) closeAll() {
	for e := c.loaded.Front(); e != nil; {
		next := e.Next()
		s := e.Value.(*resourceSlot)
		c.loaded.Remove(e)
		s.clear()
		s.elem = c.free.PushFront(s)
		e = next
	}
}

// CacheStats reports read-only counters over the resource cache: how many
// slots are currently loaded vs. held in the free list for reuse, and how
// many lookups have hit vs. missed the loaded list. It does not affect
// cache behavior; it exists for diagnostics and tests, in the spirit of
// the teacher's BoundedEntityCache hit/miss/eviction counters.
type CacheStats struct {
	Loaded int
	Free   int
	Hits   uint64
	Misses uint64
}

func (c *resourceCache) stats() CacheStats {
	return CacheStats{
		Loaded: c.loaded.Len(),
		Free:   c.free.Len(),
		Hits:   c.hits,
		Misses: c.misses,
	}
}
