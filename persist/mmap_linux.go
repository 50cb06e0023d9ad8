//go:build linux || freebsd

package persist

import "golang.org/x/sys/unix"

// msync flushes addr's pages to the backing file.
func msync(addr []byte) error {
	return unix.Msync(addr, unix.MS_SYNC)
}

// fdatasync flushes fd's data to stable storage. fdatasync skips the
// metadata sync fsync would also perform.
func fdatasync(fd int) error {
	return unix.Fdatasync(fd)
}
