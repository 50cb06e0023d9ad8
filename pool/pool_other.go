//go:build !linux && !darwin

package pool

import (
	"fmt"
	"io"
	"os"
)

// Create makes a new pool file of size bytes (header included), writes
// a fresh pool header, and loads it into memory.
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

	data := make([]byte, size)
	writeHeader(data, size)
	if _, err := f.WriteAt(data, 0); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}

	p := newPool(f, data, size, -1, f.Close)
	return p, nil
}

// Open loads an existing pool file into memory.
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

	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := validateHeader(data); err != nil {
		_ = f.Close()
		return nil, err
	}

	p := newPool(f, data, size, -1, f.Close)
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

// Append grows the pool file by n bytes and extends the in-memory
// buffer. New bytes are zero-initialized.
func (p *Pool) Append(n int64) error {
	if p == nil || p.data == nil {
		return errClosed
	}
	if n <= 0 {
		return nil
	}

	newData := make([]byte, p.size+n)
	copy(newData, p.data)

	if _, err := p.file.Seek(p.size, io.SeekStart); err != nil {
		return fmt.Errorf("pool: seek to end: %w", err)
	}
	if _, err := p.file.Write(make([]byte, n)); err != nil {
		return fmt.Errorf("pool: write extension: %w", err)
	}

	p.data = newData
	p.size += n
	p.rebindOps()
	return nil
}

// Truncate shrinks the pool file to newSize bytes and resizes the
// in-memory buffer.
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

	if err := p.file.Truncate(newSize); err != nil {
		return fmt.Errorf("pool: truncate file: %w", err)
	}

	p.data = p.data[:newSize]
	p.size = newSize
	p.rebindOps()
	return nil
}
