package block

import (
	"testing"

	"github.com/kilnsys/pmemblock/block/redo"
	"github.com/stretchr/testify/require"
)

func TestHugeSingleChunkAllocate(t *testing.T) {
	h := newTestHeap(0, 4*1024*1024)
	setChunkHeader(h, 0, 5, ChunkHeader{Type: ChunkTypeFree, Flags: 0, SizeIdx: 1})

	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 5, SizeIdx: 1, Kind: KindHuge, HeaderType: HeaderLegacy}
	m.PrepHdr(OpAllocate, nil)

	got := ReadChunkHeader(h, 0, 5)
	require.Equal(t, ChunkHeader{Type: ChunkTypeUsed, Flags: 0, SizeIdx: 1}, got)
	require.Equal(t, StateAllocated, m.GetState())

	// No footer: size_idx == 1.
	next := ReadChunkHeader(h, 0, 6)
	require.Equal(t, ChunkTypeFree, next.Type)
}

func TestHugeMultiChunkAllocateWithContext(t *testing.T) {
	h := newTestHeap(0, 8*1024*1024)
	setChunkHeader(h, 0, 10, ChunkHeader{Type: ChunkTypeFree, Flags: 0, SizeIdx: 3})

	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 10, SizeIdx: 3, Kind: KindHuge, HeaderType: HeaderLegacy}

	ctx := redo.NewLog()
	m.PrepHdr(OpAllocate, ctx)

	// The footer entry must never reach the persistent log.
	require.Equal(t, 1, ctx.PersistentEntries())

	ctx.Commit(h.Data(), h.Ops())

	require.Equal(t, ChunkHeader{Type: ChunkTypeUsed, Flags: 0, SizeIdx: 3}, ReadChunkHeader(h, 0, 10))
	require.Equal(t, ChunkHeader{Type: ChunkTypeFooter, Flags: 0, SizeIdx: 3}, ReadChunkHeader(h, 0, 12))
}

func TestHugeFreeClearsHeader(t *testing.T) {
	h := newTestHeap(0, 4*1024*1024)
	setChunkHeader(h, 0, 5, ChunkHeader{Type: ChunkTypeUsed, Flags: 0, SizeIdx: 1})

	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 5, SizeIdx: 1, Kind: KindHuge, HeaderType: HeaderLegacy}
	m.PrepHdr(OpFree, nil)

	require.Equal(t, StateFree, m.GetState())
}

func TestHugeEnsureHeaderTypeUpgradesOnlyWhenFree(t *testing.T) {
	h := newTestHeap(0, 4*1024*1024)
	setChunkHeader(h, 0, 5, ChunkHeader{Type: ChunkTypeFree, Flags: 0})

	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 5, Kind: KindHuge, HeaderType: HeaderLegacy}
	m.EnsureHeaderType(HeaderCompact)

	got := ReadChunkHeader(h, 0, 5)
	require.Equal(t, FlagCompactHeader, got.Flags)

	setChunkHeader(h, 0, 6, ChunkHeader{Type: ChunkTypeUsed, Flags: 0})
	mUsed := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 6, Kind: KindHuge}
	require.Panics(t, func() { mUsed.EnsureHeaderType(HeaderCompact) })
}

func TestHugeUnknownStateOnCorruptType(t *testing.T) {
	h := newTestHeap(0, 4*1024*1024)
	setChunkHeader(h, 0, 5, ChunkHeader{Type: ChunkTypeFooter, Flags: 0, SizeIdx: 1})

	m := &MemoryBlock{Heap: h, ZoneID: 0, ChunkID: 5, Kind: KindHuge}
	require.Equal(t, StateUnknown, m.GetState())
}
