package sdc

// decodeCompressedResource reads a compressed resource's on-disk payload —
// size_on_disk bytes in all, starting with the 8-byte
// CompressedResourceHeader — from pos and returns the uncompressed payload
// bytes.
//
// The format defines exactly one algorithm today (CompressionNone, where
// the "compressed" bytes are in fact the uncompressed payload itself
// verbatim). Any other CompressionType value is a format extension this
// reader doesn't understand yet; it is surfaced as
// ErrResourceCantGetResource rather than guessed at, preserving the
// decision point for whoever adds the next algorithm.
func (r *Reader) decodeCompressedResource(pos ResourcePosition) ([]byte, ESldError) {
	onDisk := pos.OnDiskSize()
	if onDisk < CompressedHeaderSize {
		return nil, ErrResourceCantGetResource
	}

	buf := make([]byte, onDisk)
	n, err := r.file.ReadAt(buf, int64(pos.Shift))
	if err != nil || n != len(buf) {
		return nil, ErrResourceCantGetResource
	}

	hdr := decodeCompressedResourceHeader(buf[:CompressedHeaderSize])
	payload := buf[CompressedHeaderSize:]

	switch hdr.CompressionType {
	case CompressionNone:
		if uint32(len(payload)) < hdr.UncompressedSize {
			return nil, ErrResourceCantGetResource
		}
		return payload[:hdr.UncompressedSize], ErrOK
	default:
		return nil, ErrResourceCantGetResource
	}
}
