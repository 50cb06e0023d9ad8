package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromOffsetHugeRoundTrip(t *testing.T) {
	h := newTestHeap(0, 4*1024*1024)
	setChunkHeader(h, 0, 5, ChunkHeader{Type: ChunkTypeUsed, Flags: 0, SizeIdx: 1})

	userOff := h.Layout().ChunkBase(0, 5) + uint64(headerSizeFor(HeaderLegacy))

	got, err := FromOffset(h, userOff, true, 4096)
	require.NoError(t, err)
	require.Equal(t, uint32(0), got.ZoneID)
	require.Equal(t, uint32(5), got.ChunkID)
	require.Equal(t, uint16(0), got.BlockOff)
	require.Equal(t, KindHuge, got.Kind)
	require.Equal(t, HeaderLegacy, got.HeaderType)
	require.Equal(t, uint32(1), got.SizeIdx)
}

func TestFromOffsetRejectsZero(t *testing.T) {
	h := newTestHeap(0, 4*1024*1024)
	_, err := FromOffset(h, 0, false, 0)
	require.ErrorIs(t, err, ErrBadOffset)
}

func TestFromOffsetRejectsFooterSlot(t *testing.T) {
	h := newTestHeap(0, 4*1024*1024)
	setChunkHeader(h, 0, 6, ChunkHeader{Type: ChunkTypeFooter, Flags: 0, SizeIdx: 2})

	off := h.Layout().ChunkBase(0, 6) + uint64(headerSizeFor(HeaderLegacy))
	_, err := FromOffset(h, off, false, 0)
	require.ErrorIs(t, err, ErrBadOffset)
}

func TestFromOffsetResolvesRunDataBackReference(t *testing.T) {
	h := newTestHeap(0, 8*1024*1024)
	const head = uint32(20)
	const blockSize = uint64(ChunkSize)

	setChunkHeader(h, 0, head, ChunkHeader{Type: ChunkTypeRun, Flags: FlagHeaderNone, SizeIdx: 5})
	InitRunMeta(h, 0, head, blockSize, 0)
	setChunkHeader(h, 0, head+2, ChunkHeader{Type: ChunkTypeRunData, Flags: FlagHeaderNone, SizeIdx: 2})

	poolOff := h.Layout().ChunkBase(0, head) + RunMetaSize + 2*blockSize

	got, err := FromOffset(h, poolOff, false, 0)
	require.NoError(t, err)
	require.Equal(t, head, got.ChunkID)
	require.Equal(t, uint16(2), got.BlockOff)
	require.Equal(t, KindRun, got.Kind)
	require.Equal(t, HeaderNone, got.HeaderType)
}

func TestRebuildStateFromHandBuiltDescriptor(t *testing.T) {
	h := newTestHeap(0, 4*1024*1024)
	setChunkHeader(h, 0, 7, ChunkHeader{Type: ChunkTypeRun, Flags: FlagCompactHeader, SizeIdx: 1})

	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, BlockOff: 3}
	RebuildState(m)

	require.Equal(t, KindRun, m.Kind)
	require.Equal(t, HeaderCompact, m.HeaderType)
}
