package sdc

import (
	"hash/crc32"
	"testing"
)

// TestUpdateCRCMatchesStdlibIEEE confirms updateCRC, run as a single
// full-invert chunk, reproduces the same checksum as crc32.ChecksumIEEE —
// it only differs from the stdlib helper in letting a caller chain
// multiple calls without inverting between them.
func TestUpdateCRCMatchesStdlibIEEE(t *testing.T) {
	data := []byte("123456789")
	got := updateCRC(data, crcStartValue, true)
	want := crc32.ChecksumIEEE(data)
	if got != want {
		t.Errorf("updateCRC = %#x, want %#x (stdlib IEEE checksum)", got, want)
	}
}

// TestUpdateCRCChaining confirms that splitting a buffer into two chunks
// and chaining the running value (inverting only on the final chunk)
// produces the same result as hashing the whole buffer in one call.
func TestUpdateCRCChaining(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	whole := updateCRC(data, crcStartValue, true)

	split := len(data) / 3
	mid := updateCRC(data[:split], crcStartValue, false)
	chained := updateCRC(data[split:], mid, true)

	if chained != whole {
		t.Errorf("chained CRC = %#x, want %#x", chained, whole)
	}
}
