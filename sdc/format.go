// Package sdc implements a reader for the SlovoEd Data Container (SDC)
// format: a single file packaging heterogeneous, opaque binary resources
// (wordlist indexes, articles, comparison tables, media, ...) addressed by
// a (type, index) key, with an optional sorted lookup table, optional
// per-resource compression, a CRC-32 integrity check, and a sorted
// key/value property sidecar at the file tail.
//
// # Binary Layout (Little Endian)
//
//	[header 100 bytes][resource table, 16 bytes * NumberOfResources]
//	[resource payloads, in table order][property array at file tail]
//
// This package only reads containers; there is no writer here — producers
// build SDC files offline.
package sdc

import "encoding/binary"

const (
	// Signature is the literal 4 bytes 'S','L','D','2' read as a
	// little-endian u32.
	Signature uint32 = 0x32444C53

	// CurrentVersion is the highest container version this reader
	// understands. A container reporting a higher version is rejected at
	// Open with ErrCommonTooHighDictionaryVersion.
	CurrentVersion uint32 = 0x00000101

	// HeaderSize is the on-disk size of Header, in bytes.
	HeaderSize = 100

	// ResourceRecordSize is the on-disk size of a ResourcePosition, in
	// bytes. A container whose header disagrees is too new for this
	// reader to trust.
	ResourceRecordSize = 16

	// CompressedHeaderSize is the on-disk size of CompressedResourceHeader.
	CompressedHeaderSize = 8

	// PropertyRecordSize is the on-disk size of one property record: a
	// 256-UTF16-unit name followed by a 256-UTF16-unit value.
	PropertyRecordSize = 2048

	propertyFieldUnits = 256

	// resourceCompressedBit is bit 31 of ResourcePosition.Size.
	resourceCompressedBit = uint32(1) << 31
	resourceSizeMask      = resourceCompressedBit - 1
)

// Header is the fixed 100-byte container header at file offset 0.
type Header struct {
	Signature              uint32
	HeaderSize             uint32
	Version                uint32
	CRC                    uint32
	FileSize               uint32
	DictID                 uint32
	NumberOfResources      uint32
	ResourceRecordSize     uint32
	DatabaseType           uint32
	IsResourceTableSorted  uint32
	BaseAddPropertyCount   uint32
	IsInApp                uint32
	IsResourcesHaveNames   uint8
	HasCompressedResources uint8
	// 2 bytes padding, 48 bytes reserved follow on disk; not retained in
	// memory beyond round-tripping through CRC verification.
}

// decodeHeader parses a HeaderSize-byte buffer into h.
func decodeHeader(buf []byte, h *Header) {
	h.Signature = binary.LittleEndian.Uint32(buf[0:4])
	h.HeaderSize = binary.LittleEndian.Uint32(buf[4:8])
	h.Version = binary.LittleEndian.Uint32(buf[8:12])
	h.CRC = binary.LittleEndian.Uint32(buf[12:16])
	h.FileSize = binary.LittleEndian.Uint32(buf[16:20])
	h.DictID = binary.LittleEndian.Uint32(buf[20:24])
	h.NumberOfResources = binary.LittleEndian.Uint32(buf[24:28])
	h.ResourceRecordSize = binary.LittleEndian.Uint32(buf[28:32])
	h.DatabaseType = binary.LittleEndian.Uint32(buf[32:36])
	h.IsResourceTableSorted = binary.LittleEndian.Uint32(buf[36:40])
	h.BaseAddPropertyCount = binary.LittleEndian.Uint32(buf[40:44])
	h.IsInApp = binary.LittleEndian.Uint32(buf[44:48])
	h.IsResourcesHaveNames = buf[48]
	h.HasCompressedResources = buf[49]
}

// putCRC overwrites only the CRC field of an encoded header buffer. Used by
// CheckData, which must hash the header with this field zeroed.
func putCRC(buf []byte, crc uint32) {
	binary.LittleEndian.PutUint32(buf[12:16], crc)
}

// ResourcePosition is one 16-byte entry of the resource-position table
// immediately following the header. (Type, Index) pairs are unique across
// the table; if the header's IsResourceTableSorted is set, the table is
// sorted by (Type asc, Index asc).
type ResourcePosition struct {
	Type  uint32
	Index uint32
	Size  uint32
	Shift uint32
}

// Compressed reports whether bit 31 of Size marks this resource as stored
// in compressed form.
func (p ResourcePosition) Compressed() bool {
	return p.Size&resourceCompressedBit != 0
}

// OnDiskSize returns the low 31 bits of Size: the byte length of the
// payload as stored on disk (compressed or not).
func (p ResourcePosition) OnDiskSize() uint32 {
	return p.Size & resourceSizeMask
}

func decodeResourcePosition(buf []byte) ResourcePosition {
	return ResourcePosition{
		Type:  binary.LittleEndian.Uint32(buf[0:4]),
		Index: binary.LittleEndian.Uint32(buf[4:8]),
		Size:  binary.LittleEndian.Uint32(buf[8:12]),
		Shift: binary.LittleEndian.Uint32(buf[12:16]),
	}
}

// CompressionType identifies the algorithm used to compress a resource's
// on-disk payload. Only CompressionNone is defined by the format today; any
// other value is surfaced as ErrResourceCantGetResource, leaving the
// decision point open for a future algorithm.
type CompressionType uint16

// CompressionNone is the only compression algorithm this format currently
// defines — the resource is in fact stored uncompressed past its header.
const CompressionNone CompressionType = 0

// CompressedResourceHeader is the 8-byte prefix stored immediately before a
// compressed resource's payload.
type CompressedResourceHeader struct {
	CompressionType  CompressionType
	UncompressedSize uint32
}

func decodeCompressedResourceHeader(buf []byte) CompressedResourceHeader {
	return CompressedResourceHeader{
		CompressionType:  CompressionType(binary.LittleEndian.Uint16(buf[0:2])),
		UncompressedSize: binary.LittleEndian.Uint32(buf[4:8]),
	}
}
