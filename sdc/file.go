package sdc

import "os"

// File is the capability this reader needs from its backing storage: an
// absolute, seek-free random-access read and a size query. The reader never
// seeks and issues every read against an explicit offset, so any source —
// an os.File, a byte slice, a network range-reader — can satisfy it.
//
// A File is borrowed for the lifetime of the Reader that opens it; the
// reader never closes it.
type File interface {
	// IsOpen reports whether the file is usable for reads.
	IsOpen() bool

	// ReadAt reads len(dst) bytes starting at offset into dst, returning
	// the number of bytes actually read. A short read (n < len(dst)) with
	// a nil error is treated by the reader as a read failure; callers
	// should return io.EOF or a similar error on real short reads so the
	// count and error agree.
	ReadAt(dst []byte, offset int64) (int, error)

	// Size returns the total file length in bytes.
	Size() int64
}

// OSFile adapts an *os.File to the File interface.
type OSFile struct {
	f *os.File
}

// OpenOSFile opens path for reading and wraps it as a File.
func OpenOSFile(path string) (*OSFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &OSFile{f: f}, nil
}

// IsOpen reports whether the underlying os.File is set.
func (o *OSFile) IsOpen() bool {
	return o != nil && o.f != nil
}

// ReadAt reads len(dst) bytes at offset from the underlying file.
func (o *OSFile) ReadAt(dst []byte, offset int64) (int, error) {
	return o.f.ReadAt(dst, offset)
}

// Size stats the underlying file and returns its length.
func (o *OSFile) Size() int64 {
	info, err := o.f.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}

// Close releases the underlying os.File. The Reader never calls this; it is
// the caller's responsibility once the Reader using it is also closed.
func (o *OSFile) Close() error {
	if o.f == nil {
		return nil
	}
	return o.f.Close()
}
