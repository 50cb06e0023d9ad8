package persist

import "bytes"

// MmapOps implements Ops against a byte slice backed by a memory-mapped
// file. Memcpy is always a plain copy (Go gives us no portable
// non-temporal store primitive) and ignores its flags; it skips the copy
// when dst already equals src. Persist/Drain call down to the
// platform-specific msync/fdatasync pair in mmap_linux.go /
// mmap_darwin.go / mmap_other.go.
type MmapOps struct {
	data []byte
	fd   int
}

// NewMmapOps wraps data (the full mapped region) and fd (the underlying
// file descriptor, used for Drain's fdatasync) in an Ops implementation.
func NewMmapOps(data []byte, fd int) *MmapOps {
	return &MmapOps{data: data, fd: fd}
}

func (m *MmapOps) Memcpy(dst, src []byte, _ CopyFlag) []byte {
	if bytes.Equal(dst, src) {
		return dst
	}
	copy(dst, src)
	return dst
}

func (m *MmapOps) Persist(addr []byte) {
	if len(addr) == 0 {
		return
	}
	_ = msync(addr)
}

func (m *MmapOps) Drain() {
	_ = fdatasync(m.fd)
}
