package sdc

import "hash/crc32"

// crcStartValue is the initial running value for a fresh CRC computation.
const crcStartValue uint32 = 0xFFFFFFFF

// crcBlockSize bounds how much of the file body CheckData hashes per read,
// matching the format's own integrity-verifier block size.
const crcBlockSize = 0xFFFF

// updateCRC folds buf into a running CRC-32 computation using the
// reflected IEEE 802.3 polynomial (0xEDB88320) — crc32.IEEETable already
// holds that exact table, so there is no reason to hand-roll a generator.
// Unlike crc32.Update (which inverts on entry and exit of every call and so
// cannot be chained without re-deriving the pre-invert value), this keeps
// the running value un-inverted across calls: pass the previous return
// value as start, and set invert only on the final chunk of a chain.
func updateCRC(buf []byte, start uint32, invert bool) uint32 {
	tab := crc32.IEEETable
	crc := start
	for _, b := range buf {
		crc = tab[byte(crc)^b] ^ (crc >> 8)
	}
	if invert {
		crc ^= 0xFFFFFFFF
	}
	return crc
}
