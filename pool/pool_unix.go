//go:build linux || darwin

package pool

import (
	"fmt"
	"os"
	"syscall"
)

// Create makes a new pool file of size bytes (header included), writes
// a fresh pool header, and mmaps it RW.
func Create(path string, size int64) (*Pool, error) {
	if size < HeaderSize {
		return nil, fmt.Errorf("pool: size %d smaller than header size %d", size, HeaderSize)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("pool: mmap failed: %w", err)
	}

	writeHeader(data, size)

	fd := int(f.Fd())
	p := newPool(f, data, size, fd, func() error {
		if err := syscall.Munmap(data); err != nil {
			return err
		}
		return f.Close()
	})
	return p, nil
}

// Open mmaps an existing pool file RW.
func Open(path string) (*Pool, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	size := st.Size()
	if size < HeaderSize {
		_ = f.Close()
		return nil, errShortHeader
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("pool: mmap failed: %w", err)
	}

	if err := validateHeader(data); err != nil {
		_ = syscall.Munmap(data)
		_ = f.Close()
		return nil, err
	}

	fd := int(f.Fd())
	p := newPool(f, data, size, fd, func() error {
		if err := syscall.Munmap(data); err != nil {
			return err
		}
		return f.Close()
	})
	return p, nil
}

func (p *Pool) Close() error {
	if p == nil || p.closer == nil {
		return errClosed
	}
	err := p.closer()
	p.data = nil
	p.closer = nil
	return err
}

// Append grows the pool file by n bytes and remaps it. New bytes are
// zero-initialized by the OS.
func (p *Pool) Append(n int64) error {
	if p == nil || p.data == nil {
		return errClosed
	}
	if n <= 0 {
		return nil
	}

	newSize := p.size + n

	if err := syscall.Munmap(p.data); err != nil {
		return fmt.Errorf("pool: unmap before grow: %w", err)
	}
	p.data = nil

	if err := p.file.Truncate(newSize); err != nil {
		p.remapBestEffort(p.size)
		return fmt.Errorf("pool: truncate for grow: %w", err)
	}

	data, err := syscall.Mmap(p.fd, 0, int(newSize), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		p.remapBestEffort(p.size)
		return fmt.Errorf("pool: remap after grow: %w", err)
	}

	p.data = data
	p.size = newSize
	p.rebindOps()
	return nil
}

// Truncate shrinks the pool file to newSize bytes and remaps it.
func (p *Pool) Truncate(newSize int64) error {
	if p == nil || p.data == nil {
		return errClosed
	}
	if newSize < HeaderSize {
		return fmt.Errorf("pool: truncate size %d smaller than header size %d", newSize, HeaderSize)
	}
	if newSize > p.size {
		return fmt.Errorf("pool: truncate cannot grow (current %d, requested %d); use Append", p.size, newSize)
	}
	if newSize == p.size {
		return nil
	}


	if err := syscall.Munmap(p.data); err != nil {
		return fmt.Errorf("pool: unmap before truncate: %w", err)
	}
	p.data = nil

	if err := p.file.Truncate(newSize); err != nil {
		p.remapBestEffort(p.size)
		return fmt.Errorf("pool: truncate file: %w", err)
	}

	data, err := syscall.Mmap(p.fd, 0, int(newSize), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		p.remapBestEffort(p.size)
		return fmt.Errorf("pool: remap after truncate: %w", err)
	}

	p.data = data
	p.size = newSize
	p.rebindOps()
	return nil
}

// remapBestEffort tries to restore the mapping at size after a failed
// grow/shrink, so the Pool is left in a usable (if unchanged) state
// rather than with a nil backing slice.
func (p *Pool) remapBestEffort(size int64) {
	data, err := syscall.Mmap(p.fd, 0, int(size), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err == nil {
		p.data = data
		p.rebindOps()
	}
}
