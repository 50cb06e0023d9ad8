package pool

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pool")

	const size = HeaderSize + 4*1024*1024
	p, err := Create(path, size)
	require.NoError(t, err)
	require.Equal(t, int64(size), p.Size())
	require.Equal(t, uint64(HeaderSize), p.Layout().Zone0Offset)
	require.NoError(t, p.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.Equal(t, int64(size), reopened.Size())
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pool")
	p, err := Create(path, HeaderSize+4096)
	require.NoError(t, err)
	copy(p.Data()[:8], "NOTAPOOL")
	require.NoError(t, p.Close())

	_, err = Open(path)
	require.ErrorIs(t, err, errBadMagic)
}

func TestAppendGrowsAndZeroes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.pool")
	p, err := Create(path, HeaderSize+4096)
	require.NoError(t, err)
	defer p.Close()

	before := p.Size()
	require.NoError(t, p.Append(4096))
	require.Equal(t, before+4096, p.Size())

	tail := p.Data()[before:]
	for _, b := range tail {
		require.Zero(t, b)
	}
}

func TestTruncateRejectsGrow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.pool")
	p, err := Create(path, HeaderSize+8192)
	require.NoError(t, err)
	defer p.Close()

	err = p.Truncate(p.Size() + 1)
	require.Error(t, err)
}

func TestRunLockIsStableByKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locks.pool")
	p, err := Create(path, HeaderSize+4096)
	require.NoError(t, err)
	defer p.Close()

	a := p.RunLock(0, 5)
	b := p.RunLock(0, 5)
	c := p.RunLock(0, 6)
	require.Same(t, a, b)
	require.NotSame(t, a, c)
}
