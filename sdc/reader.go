package sdc

// Reader opens one SDC container and serves random-access resource and
// property lookups against it. A Reader is not safe for concurrent use;
// distinct Readers over distinct Files are independent and may be used
// from separate goroutines without synchronization.
//
// The zero value is not usable; construct with NewReader.
type Reader struct {
	file   File
	opened bool

	header Header
	table  []ResourcePosition
	sorted bool

	cache *resourceCache
}

// NewReader returns a Reader with no container open. Call Open before any
// other method.
func NewReader() *Reader {
	return &Reader{cache: newResourceCache()}
}

// Open validates and loads file's header and resource table. Calling Open
// on an already-open Reader closes it first — reopening is idempotent and
// always permitted, even against a broken file.
func (r *Reader) Open(file File) ESldError {
	if file == nil || !file.IsOpen() {
		return ErrResourceCantOpenContainer
	}
	r.Close()

	hdrBuf := make([]byte, HeaderSize)
	n, err := file.ReadAt(hdrBuf, 0)
	if err != nil || n != HeaderSize {
		return ErrResourceCantOpenContainer
	}

	var h Header
	decodeHeader(hdrBuf, &h)
	if h.Signature != Signature {
		return ErrResourceCantOpenContainer
	}
	if h.HeaderSize > HeaderSize || h.Version > CurrentVersion || h.ResourceRecordSize != ResourceRecordSize {
		return ErrCommonTooHighDictionaryVersion
	}

	tableBuf := make([]byte, int64(h.NumberOfResources)*ResourceRecordSize)
	n, err = file.ReadAt(tableBuf, int64(h.HeaderSize))
	if err != nil || n != len(tableBuf) {
		return ErrResourceCantOpenContainer
	}

	table := make([]ResourcePosition, h.NumberOfResources)
	for i := range table {
		table[i] = decodeResourcePosition(tableBuf[i*ResourceRecordSize : (i+1)*ResourceRecordSize])
	}

	r.file = file
	r.header = h
	r.table = table
	r.sorted = h.IsResourceTableSorted != 0
	r.opened = true
	return ErrOK
}

// Close releases the resource table, moves every loaded cache slot to the
// free list, and resets the reader to its closed state. Close on an
// already-closed Reader is a no-op.
func (r *Reader) Close() {
	r.cache.closeAll()
	r.file = nil
	r.header = Header{}
	r.table = nil
	r.sorted = false
	r.opened = false
}

// DatabaseType returns the header's database type, or 0 if the reader is
// closed.
func (r *Reader) DatabaseType() uint32 {
	if !r.opened {
		return 0
	}
	return r.header.DatabaseType
}

// IsInApp returns the header's is-in-app flag, or 0 if the reader is
// closed.
func (r *Reader) IsInApp() uint32 {
	if !r.opened {
		return 0
	}
	return r.header.IsInApp
}

// NumberOfResources returns the size of the resource table, or 0 if the
// reader is closed.
func (r *Reader) NumberOfResources() uint32 {
	if !r.opened {
		return 0
	}
	return uint32(len(r.table))
}

// CacheStats reports the current resource cache occupancy and hit/miss
// counters.
func (r *Reader) CacheStats() CacheStats {
	return r.cache.stats()
}

// ResourceTable returns a copy of the in-memory resource-position table.
// This is metadata introspection, not resource iteration — it never reads
// resource payloads, matching the format's random-access-only contract.
func (r *Reader) ResourceTable() []ResourcePosition {
	out := make([]ResourcePosition, len(r.table))
	copy(out, r.table)
	return out
}

// lookup resolves (typ, index) to its table entry. When the table is
// sorted it binary-searches using the two-field predicate from the format
// (never combining type/index into one lexicographic key, since index
// values could alias across a naive combined key's bit boundary);
// otherwise it falls back to a linear scan.
func (r *Reader) lookup(typ, index uint32) (ResourcePosition, bool) {
	if len(r.table) == 0 {
		return ResourcePosition{}, false
	}
	if !r.sorted {
		for _, p := range r.table {
			if p.Type == typ && p.Index == index {
				return p, true
			}
		}
		return ResourcePosition{}, false
	}

	if typ < r.table[0].Type || typ > r.table[len(r.table)-1].Type {
		return ResourcePosition{}, false
	}

	lo, hi := 0, len(r.table)
	for lo < hi {
		mid := (lo + hi) / 2
		p := r.table[mid]
		var less bool
		if p.Type == typ {
			less = p.Index < index
		} else {
			less = p.Type < typ
		}
		if less {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(r.table) && r.table[lo].Type == typ && r.table[lo].Index == index {
		return r.table[lo], true
	}
	return ResourcePosition{}, false
}

// GetResource returns a refcounted handle to the resource identified by
// (typ, index). A loaded-list hit promotes the slot to MRU and bumps its
// refcount; a miss reads the resource from file (decompressing it first if
// its compressed bit is set), recycling a free-list slot when one is
// available. The caller must Release the handle's Resource exactly once
// when done with it.
func (r *Reader) GetResource(typ, index uint32) ResourceHandle {
	if !r.opened {
		return errorHandle(ErrResourceCantGetResource)
	}

	if slot := r.cache.find(typ, index); slot != nil {
		slot.refcnt++
		return ResourceHandle{Res: Resource{reader: r, slot: slot}, Err: ErrOK}
	}

	pos, ok := r.lookup(typ, index)
	if !ok {
		return errorHandle(ErrResourceCantGetResource)
	}

	var data []byte
	if pos.Compressed() {
		d, err := r.decodeCompressedResource(pos)
		if err != ErrOK {
			return errorHandle(err)
		}
		data = append([]byte(nil), d...)
	} else {
		sz := pos.OnDiskSize()
		buf := make([]byte, sz)
		n, err := r.file.ReadAt(buf, int64(pos.Shift))
		if err != nil || uint32(n) != sz {
			return errorHandle(ErrResourceCantGetResource)
		}
		data = buf
	}

	slot := r.cache.acquire()
	slot.data = data
	slot.size = uint32(len(data))
	slot.typ = typ
	slot.index = index
	slot.refcnt = 1
	return ResourceHandle{Res: Resource{reader: r, slot: slot}, Err: ErrOK}
}

// GetResourceData reads a resource directly into dst, bypassing the cache.
// *size is both an input (the caller's buffer capacity bound) and an
// output (the number of bytes actually written); passing *size == 0
// returns ErrOK without touching dst. For a compressed resource, this
// writes the decompressed payload into dst directly — the original's
// compressed path wrote into a local variable instead of the caller's
// buffer in one branch, which this corrects.
func (r *Reader) GetResourceData(dst []byte, typ, index uint32, size *uint32) ESldError {
	if size == nil {
		return ErrMemoryNullPointer
	}
	if !r.opened {
		return ErrResourceCantGetResource
	}
	if *size == 0 {
		return ErrOK
	}
	if dst == nil {
		return ErrMemoryNullPointer
	}

	pos, ok := r.lookup(typ, index)
	if !ok {
		return ErrResourceCantGetResource
	}

	if pos.Compressed() {
		data, err := r.decodeCompressedResource(pos)
		if err != ErrOK {
			return err
		}
		n := len(data)
		if uint32(n) > *size {
			n = int(*size)
		}
		if n > len(dst) {
			n = len(dst)
		}
		copy(dst[:n], data[:n])
		*size = uint32(n)
		return ErrOK
	}

	toRead := pos.OnDiskSize()
	if *size < toRead {
		toRead = *size
	}
	if uint32(len(dst)) < toRead {
		toRead = uint32(len(dst))
	}
	buf := make([]byte, toRead)
	n, err := r.file.ReadAt(buf, int64(pos.Shift))
	if err != nil || uint32(n) != toRead {
		return ErrResourceCantGetResource
	}
	copy(dst, buf)
	*size = uint32(n)
	return ErrOK
}

// GetResourceShiftAndSize resolves (typ, index) to its raw table shift and
// size (the size field as stored, compression bit included) without
// reading the resource. Both out-parameters are null-checked symmetrically
// — the original left size unchecked in one path, which this corrects.
func (r *Reader) GetResourceShiftAndSize(typ, index uint32, shift, size *uint32) ESldError {
	if shift == nil || size == nil {
		return ErrMemoryNullPointer
	}
	if !r.opened {
		return ErrResourceCantGetResource
	}
	pos, ok := r.lookup(typ, index)
	if !ok {
		return ErrResourceCantGetResource
	}
	*shift = pos.Shift
	*size = pos.Size
	return ErrOK
}

// CheckData verifies the file's recorded length and CRC-32 against its
// actual contents: file size first (cheap), then the full CRC chain over
// the header (with its own crc field zeroed), the resource table, and the
// file body.
func (r *Reader) CheckData() SDCError {
	if !r.opened {
		return SDCReadNotOpened
	}
	if r.file.Size() != int64(r.header.FileSize) {
		return SDCReadWrongFileSize
	}

	hdrBuf := make([]byte, HeaderSize)
	n, err := r.file.ReadAt(hdrBuf, 0)
	if err != nil || n != HeaderSize {
		return SDCReadCantRead
	}

	crc, serr := fileCRC(r.file, hdrBuf, r.header)
	if serr != SDCOK {
		return serr
	}
	if crc != r.header.CRC {
		return SDCReadWrongCRC
	}
	return SDCOK
}

// FileCRC computes the same verification CRC CheckData uses, from a bare
// File — the format's "static" entry point for verifying a container
// without going through a Reader at all (e.g. before Open is ever called).
func FileCRC(file File) (uint32, SDCError) {
	if file == nil || !file.IsOpen() {
		return 0, SDCReadNotOpened
	}
	hdrBuf := make([]byte, HeaderSize)
	n, err := file.ReadAt(hdrBuf, 0)
	if err != nil || n != HeaderSize {
		return 0, SDCReadCantRead
	}
	var h Header
	decodeHeader(hdrBuf, &h)
	return fileCRC(file, hdrBuf, h)
}

// fileCRC runs the header -> resource-table -> body CRC chain described in
// the format's integrity verifier: the header and table chunks never
// invert mid-chain, only the last body block does.
func fileCRC(file File, hdrBuf []byte, h Header) (uint32, SDCError) {
	buf := append([]byte(nil), hdrBuf...)
	putCRC(buf, 0)
	crc := updateCRC(buf, crcStartValue, false)

	tableSize := int64(h.NumberOfResources) * ResourceRecordSize
	tableBuf := make([]byte, tableSize)
	n, err := file.ReadAt(tableBuf, int64(h.HeaderSize))
	if err != nil || int64(n) != tableSize {
		return 0, SDCReadCantRead
	}
	crc = updateCRC(tableBuf, crc, false)

	pos := int64(h.HeaderSize) + tableSize
	end := int64(h.FileSize)
	if pos >= end {
		return crc ^ 0xFFFFFFFF, SDCOK
	}
	for pos < end {
		chunkLen := end - pos
		if chunkLen > crcBlockSize {
			chunkLen = crcBlockSize
		}
		chunk := make([]byte, chunkLen)
		n, err := file.ReadAt(chunk, pos)
		if err != nil || int64(n) != chunkLen {
			return 0, SDCReadCantRead
		}
		pos += chunkLen
		crc = updateCRC(chunk, crc, pos >= end)
	}
	return crc, SDCOK
}
