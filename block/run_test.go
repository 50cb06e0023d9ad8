package block

import (
	"testing"

	"github.com/kilnsys/pmemblock/block/redo"
	"github.com/stretchr/testify/require"
)

func newRunTestHeap(t *testing.T, zoneID, chunkID uint32, blockSize, alignment uint64, flags ChunkFlags) *testHeap {
	t.Helper()
	h := newTestHeap(0, 16*1024*1024)
	setChunkHeader(h, zoneID, chunkID, ChunkHeader{Type: ChunkTypeRun, Flags: flags, SizeIdx: 1})
	InitRunMeta(h, zoneID, chunkID, blockSize, alignment)
	return h
}

func TestRunAllocateSetsExactBitRange(t *testing.T) {
	h := newRunTestHeap(t, 0, 7, 128, 0, 0)
	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, BlockOff: 10, SizeIdx: 4, Kind: KindRun, HeaderType: HeaderLegacy}

	m.PrepHdr(OpAllocate, nil)

	require.Equal(t, uint64(0x3C00), runBitmapWord(m, 0))
	require.Equal(t, StateAllocated, m.GetState())

	m.PrepHdr(OpFree, nil)
	require.Equal(t, uint64(0), runBitmapWord(m, 0))
	require.Equal(t, StateFree, m.GetState())
}

func TestRunAllocateWithContextIsNotTransient(t *testing.T) {
	h := newRunTestHeap(t, 0, 7, 128, 0, 0)
	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, BlockOff: 10, SizeIdx: 4, Kind: KindRun, HeaderType: HeaderLegacy}

	ctx := redo.NewLog()
	m.PrepHdr(OpAllocate, ctx)
	require.Equal(t, 1, ctx.PersistentEntries())

	ctx.Commit(h.Data(), h.Ops())
	require.Equal(t, uint64(0x3C00), runBitmapWord(m, 0))
}

func TestRunFullWordBoundary(t *testing.T) {
	h := newRunTestHeap(t, 0, 7, 64, 0, 0)
	ok := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, BlockOff: 0, SizeIdx: 64, Kind: KindRun, HeaderType: HeaderLegacy}
	ok.PrepHdr(OpAllocate, nil)
	require.Equal(t, ^uint64(0), runBitmapWord(ok, 0))

	bad := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, BlockOff: 1, SizeIdx: 64, Kind: KindRun, HeaderType: HeaderLegacy}
	require.Panics(t, func() { bad.PrepHdr(OpAllocate, nil) })
}

func TestRunMixedRangeReportsAllocated(t *testing.T) {
	h := newRunTestHeap(t, 0, 7, 128, 0, 0)
	head := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, BlockOff: 0, SizeIdx: 1, Kind: KindRun, HeaderType: HeaderLegacy}
	head.PrepHdr(OpAllocate, nil)

	span := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, BlockOff: 0, SizeIdx: 2, Kind: KindRun, HeaderType: HeaderLegacy}
	require.Equal(t, StateAllocated, span.GetState())
}

func TestRunEnsureHeaderTypeAsserts(t *testing.T) {
	h := newRunTestHeap(t, 0, 7, 128, 0, FlagCompactHeader)
	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, Kind: KindRun}
	require.NotPanics(t, func() { m.EnsureHeaderType(HeaderCompact) })
	require.Panics(t, func() { m.EnsureHeaderType(HeaderLegacy) })
}

func TestRunUninitializedBlockSizePanics(t *testing.T) {
	h := newTestHeap(0, 4*1024*1024)
	setChunkHeader(h, 0, 7, ChunkHeader{Type: ChunkTypeRun, Flags: 0, SizeIdx: 1})
	InitRunMeta(h, 0, 7, 0, 0)

	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, SizeIdx: 1, Kind: KindRun}
	require.Panics(t, func() { m.BlockSize() })
}

func TestRunAlignedDataStart(t *testing.T) {
	h := newRunTestHeap(t, 0, 30, 0, 64, FlagAligned)
	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 30, SizeIdx: 1, Kind: KindRun, HeaderType: HeaderCompact}

	base := runMetaBase(m) + RunMetaSize
	hsz := uint64(headerSizeFor(HeaderCompact))
	wantStart := AlignUp(base+hsz, 64) - hsz

	require.Equal(t, wantStart, runDataStart(m))
	require.Equal(t, wantStart, uint64(len(h.Data()))-uint64(len(m.GetRealData())))
}

func TestRunAlignedDataStartMultipleAlignments(t *testing.T) {
	for _, alignment := range []uint64{64, 128, 4096} {
		h := newRunTestHeap(t, 0, 9, 256, alignment, FlagAligned)
		m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 9, SizeIdx: 1, Kind: KindRun, HeaderType: HeaderCompact}

		base := runMetaBase(m) + RunMetaSize
		hsz := uint64(headerSizeFor(HeaderCompact))
		require.Equal(t, AlignUp(base+hsz, alignment)-hsz, runDataStart(m))
	}
}

func TestReadRunMetaReflectsBitmapOccupancy(t *testing.T) {
	h := newRunTestHeap(t, 0, 7, 128, 0, 0)
	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 7, BlockOff: 10, SizeIdx: 4, Kind: KindRun, HeaderType: HeaderLegacy}

	view := ReadRunMeta(h, 0, 7)
	require.Equal(t, uint64(128), view.BlockSize)
	require.Equal(t, uint64(0), view.Alignment)
	require.Equal(t, 0, view.AllocatedCount())

	m.PrepHdr(OpAllocate, nil)

	view = ReadRunMeta(h, 0, 7)
	require.Equal(t, 4, view.AllocatedCount())
}
