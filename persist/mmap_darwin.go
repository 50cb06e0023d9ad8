//go:build darwin

package persist

import "golang.org/x/sys/unix"

// msync flushes addr's pages to the backing file.
func msync(addr []byte) error {
	return unix.Msync(addr, unix.MS_SYNC)
}

// fdatasync flushes fd's data to stable storage. Darwin has no
// fdatasync(2); fsync is the closest equivalent (F_FULLFSYNC gives
// stronger guarantees but is deliberately left for callers who need it).
func fdatasync(fd int) error {
	return unix.Fsync(fd)
}
