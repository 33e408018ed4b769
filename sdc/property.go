package sdc

import "unicode/utf16"

// propertyOffset returns the file offset of the i-th property record.
// Property records are stored back-to-front from the end of the file:
// index 0 is the record nearest EOF. The array is sorted by name
// ascending in index order regardless of that physical layout.
func propertyOffset(fileSize uint64, i uint32) int64 {
	return int64(fileSize) - int64(i+1)*PropertyRecordSize
}

// decodeUTF16Field decodes a null-terminated UTF-16LE field (propertyFieldUnits
// code units wide on disk) into a Go string.
func decodeUTF16Field(buf []byte) string {
	units := make([]uint16, 0, propertyFieldUnits)
	for i := 0; i+1 < len(buf) && len(units) < propertyFieldUnits; i += 2 {
		u := uint16(buf[i]) | uint16(buf[i+1])<<8
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}

// readPropertyName reads only the name field of the i-th property record,
// to minimize I/O during binary search — the value field is read only on a
// hit.
func (r *Reader) readPropertyName(i uint32) (string, ESldError) {
	buf := make([]byte, propertyFieldUnits*2)
	n, err := r.file.ReadAt(buf, propertyOffset(uint64(r.header.FileSize), i))
	if err != nil || n != len(buf) {
		return "", ErrResourceCantGetResource
	}
	return decodeUTF16Field(buf), ErrOK
}

// readPropertyRecord reads the full name/value record at index i.
func (r *Reader) readPropertyRecord(i uint32) (name, value string, serr SDCError) {
	buf := make([]byte, PropertyRecordSize)
	n, err := r.file.ReadAt(buf, propertyOffset(uint64(r.header.FileSize), i))
	if err != nil || n != len(buf) {
		return "", "", SDCReadCantRead
	}
	name = decodeUTF16Field(buf[:propertyFieldUnits*2])
	value = decodeUTF16Field(buf[propertyFieldUnits*2:])
	return name, value, SDCOK
}

// NumberOfProperties returns the base property count from the header (0 if
// the reader is closed).
func (r *Reader) NumberOfProperties() uint32 {
	if !r.opened {
		return 0
	}
	return r.header.BaseAddPropertyCount
}

// PropertyByKey looks up a property by name using an inclusive-bounds
// binary search over the sorted property array, following the original
// reader's exact lower/upper-bound discipline rather than a generic
// sort.Search fencepost — records sitting exactly at either boundary are
// what that discipline exists to get right. Only the name field is read
// per probe; the value is read once, on a hit.
func (r *Reader) PropertyByKey(key string) (string, bool) {
	if !r.opened || r.header.BaseAddPropertyCount == 0 {
		return "", false
	}

	lower := int64(0)
	upper := int64(r.header.BaseAddPropertyCount) - 1
	for lower <= upper {
		mid := lower + (upper-lower)/2
		name, err := r.readPropertyName(uint32(mid))
		if err != ErrOK {
			return "", false
		}
		switch {
		case name == key:
			_, value, serr := r.readPropertyRecord(uint32(mid))
			if serr != SDCOK {
				return "", false
			}
			return value, true
		case name < key:
			lower = mid + 1
		default:
			upper = mid - 1
		}
	}
	return "", false
}

// PropertyByIndex returns the name/value pair stored at logical index i.
func (r *Reader) PropertyByIndex(i uint32) (name, value string, serr SDCError) {
	if !r.opened {
		return "", "", SDCReadNotOpened
	}
	if i >= r.header.BaseAddPropertyCount {
		return "", "", SDCReadWrongPropertyIndex
	}
	return r.readPropertyRecord(i)
}
