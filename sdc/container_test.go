package sdc

import (
	"encoding/binary"
	"unicode/utf16"
)

// memFile is an in-memory File backed by a byte slice, used throughout the
// test suite to build exact byte-for-byte containers without touching disk.
type memFile struct {
	data []byte
}

func (m *memFile) IsOpen() bool { return m.data != nil }

func (m *memFile) ReadAt(dst []byte, offset int64) (int, error) {
	if offset < 0 || offset > int64(len(m.data)) {
		return 0, nil
	}
	n := copy(dst, m.data[offset:])
	return n, nil
}

func (m *memFile) Size() int64 { return int64(len(m.data)) }

// testResource describes one resource to embed in a built test container.
type testResource struct {
	Type, Index uint32
	Payload     []byte
	Compressed  bool // wrap Payload in a CompressedResourceHeader(None, len(Payload))
}

// testProperty is a (name, value) pair for the property sidecar.
type testProperty struct {
	Name, Value string
}

// buildContainer assembles a well-formed SDC byte buffer with a correct
// CRC, given a resource table (assumed already in the caller's desired
// order — sorted ascending by (Type, Index) when sorted is true) and an
// optional property sidecar (assumed pre-sorted by Name ascending).
func buildContainer(sorted bool, resources []testResource, props []testProperty) []byte {
	var body []byte
	positions := make([]ResourcePosition, len(resources))
	bodyStart := int64(HeaderSize) + int64(len(resources))*ResourceRecordSize

	for i, r := range resources {
		shift := bodyStart + int64(len(body))
		var onDisk []byte
		size := uint32(len(r.Payload))
		if r.Compressed {
			hdr := make([]byte, CompressedHeaderSize)
			binary.LittleEndian.PutUint16(hdr[0:2], uint16(CompressionNone))
			binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(r.Payload)))
			onDisk = append(hdr, r.Payload...)
			size = uint32(len(onDisk)) | resourceCompressedBit
		} else {
			onDisk = r.Payload
		}
		positions[i] = ResourcePosition{Type: r.Type, Index: r.Index, Size: size, Shift: uint32(shift)}
		body = append(body, onDisk...)
	}

	// Property records sit back-to-front from EOF (see propertyOffset):
	// logical index 0 is nearest EOF, so props must be written in reverse
	// to make props[0] land at logical index 0.
	for i := len(props) - 1; i >= 0; i-- {
		body = append(body, encodePropertyRecord(props[i].Name, props[i].Value)...)
	}

	fileSize := bodyStart + int64(len(body))

	buf := make([]byte, fileSize)
	h := Header{
		Signature:             Signature,
		HeaderSize:            HeaderSize,
		Version:               CurrentVersion,
		FileSize:              uint32(fileSize),
		NumberOfResources:     uint32(len(resources)),
		ResourceRecordSize:    ResourceRecordSize,
		BaseAddPropertyCount:  uint32(len(props)),
		IsResourceTableSorted: 0,
	}
	if sorted {
		h.IsResourceTableSorted = 1
	}
	encodeHeader(buf[0:HeaderSize], h)

	off := int64(HeaderSize)
	for _, p := range positions {
		encodeResourcePosition(buf[off:off+ResourceRecordSize], p)
		off += ResourceRecordSize
	}
	copy(buf[bodyStart:], body)

	crc, serr := fileCRC(&memFile{data: buf}, buf[0:HeaderSize], h)
	if serr != SDCOK {
		panic("buildContainer: fileCRC failed: " + serr.Error())
	}
	binary.LittleEndian.PutUint32(buf[12:16], crc)
	return buf
}

func encodeHeader(buf []byte, h Header) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Signature)
	binary.LittleEndian.PutUint32(buf[4:8], h.HeaderSize)
	binary.LittleEndian.PutUint32(buf[8:12], h.Version)
	binary.LittleEndian.PutUint32(buf[12:16], h.CRC)
	binary.LittleEndian.PutUint32(buf[16:20], h.FileSize)
	binary.LittleEndian.PutUint32(buf[20:24], h.DictID)
	binary.LittleEndian.PutUint32(buf[24:28], h.NumberOfResources)
	binary.LittleEndian.PutUint32(buf[28:32], h.ResourceRecordSize)
	binary.LittleEndian.PutUint32(buf[32:36], h.DatabaseType)
	binary.LittleEndian.PutUint32(buf[36:40], h.IsResourceTableSorted)
	binary.LittleEndian.PutUint32(buf[40:44], h.BaseAddPropertyCount)
	binary.LittleEndian.PutUint32(buf[44:48], h.IsInApp)
	buf[48] = h.IsResourcesHaveNames
	buf[49] = h.HasCompressedResources
}

func encodeResourcePosition(buf []byte, p ResourcePosition) {
	binary.LittleEndian.PutUint32(buf[0:4], p.Type)
	binary.LittleEndian.PutUint32(buf[4:8], p.Index)
	binary.LittleEndian.PutUint32(buf[8:12], p.Size)
	binary.LittleEndian.PutUint32(buf[12:16], p.Shift)
}

func encodePropertyRecord(name, value string) []byte {
	buf := make([]byte, PropertyRecordSize)
	putUTF16Field(buf[:propertyFieldUnits*2], name)
	putUTF16Field(buf[propertyFieldUnits*2:], value)
	return buf
}

func putUTF16Field(buf []byte, s string) {
	units := utf16.Encode([]rune(s))
	for i, u := range units {
		if i >= propertyFieldUnits-1 {
			break
		}
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], u)
	}
}
