package sdc

// Resource is a value-typed, refcounted reference to a cached resource
// slot. Go has no destructors, so where the original took a copy-increments
// / scope-exit-decrements handle, this instead exposes explicit Retain and
// Release: Retain models a copy (bump the refcount and hand back a second
// live Resource over the same slot), Release models a drop. A caller must
// call Release exactly once for every Resource value it holds — the
// zero-value Resource is empty and safe to Release as a no-op.
type Resource struct {
	reader *Reader
	slot   *resourceSlot
}

// Empty reports whether r refers to no slot (the zero value, or the Resource
// of a ResourceHandle that carries an error). Release does not make a
// Resource Empty.
func (r Resource) Empty() bool { return r.slot == nil }

// Ptr returns the resource's bytes. Empty returns nil.
func (r Resource) Ptr() []byte {
	if r.slot == nil {
		return nil
	}
	return r.slot.data
}

// Data is an alias for Ptr, matching the original API's separate
// data()/ptr() accessors (identical here: Go slices carry their own
// length).
func (r Resource) Data() []byte { return r.Ptr() }

// Size returns the resource's byte length (0 if Empty).
func (r Resource) Size() uint32 {
	if r.slot == nil {
		return 0
	}
	return r.slot.size
}

// Type returns the resource's type tag (0 if Empty).
func (r Resource) Type() uint32 {
	if r.slot == nil {
		return 0
	}
	return r.slot.typ
}

// Index returns the resource's index within its type (0 if Empty).
func (r Resource) Index() uint32 {
	if r.slot == nil {
		return 0
	}
	return r.slot.index
}

// Retain increments the slot's refcount and returns a second live Resource
// over the same slot. The caller now owns two references and must Release
// both.
func (r Resource) Retain() Resource {
	if r.slot != nil {
		r.slot.refcnt++
	}
	return r
}

// Release decrements the slot's refcount. When it reaches zero the slot
// moves to the reader's free list and its data is released. Calling
// Release on an Empty Resource is a no-op. Release must not be called more
// times than the Resource was obtained or Retained.
func (r Resource) Release() {
	if r.slot == nil {
		return
	}
	r.slot.refcnt--
	if r.slot.refcnt <= 0 {
		r.reader.cache.release(r.slot)
	}
}

// ResourceHandle is the result of Reader.GetResource: either a usable
// Resource (Err == ErrOK) or an error code with an Empty Resource. Callers
// must inspect Err before using the Resource, and must Release it exactly
// once when done — mirroring the original ResourceHandle's
// error-code-or-value contract without needing a destructor to enforce it.
type ResourceHandle struct {
	Res Resource
	Err ESldError
}

// OK reports whether the handle carries a usable Resource.
func (h ResourceHandle) OK() bool { return h.Err == ErrOK }

// Release releases the underlying Resource, if any.
func (h ResourceHandle) Release() { h.Res.Release() }

func errorHandle(err ESldError) ResourceHandle {
	return ResourceHandle{Err: err}
}
