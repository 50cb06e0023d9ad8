package block

import (
	"encoding/binary"
	"math/bits"
)

// RunBitmapWords is the fixed width of a run's bitmap: RunBitmapWords *
// BitsPerValue is the maximum number of sub-blocks one run can track.
const RunBitmapWords = 4

// MaxBlocksPerRun is the capacity of a run's bitmap.
const MaxBlocksPerRun = RunBitmapWords * BitsPerValue

const (
	runBlockSizeOff = 0
	runAlignmentOff = 8
	runBitmapOff    = 16
)

// RunMetaSize is the on-media footprint of a run's metadata area: an
// 8-byte block_size, an 8-byte alignment (0 if the run is unaligned),
// and the bitmap itself. It sits at the start of the run's head chunk,
// before any block data.
const RunMetaSize = runBitmapOff + RunBitmapWords*8

// runMetaBase returns the absolute pool offset of m's run metadata area
// (the start of the head chunk's data region).
func runMetaBase(m *MemoryBlock) uint64 {
	return m.Heap.Layout().ChunkBase(m.ZoneID, m.ChunkID)
}

func runBlockSize(m *MemoryBlock) uint64 {
	base := runMetaBase(m)
	return binary.LittleEndian.Uint64(m.Heap.Data()[base+runBlockSizeOff : base+runBlockSizeOff+8])
}

func runAlignment(m *MemoryBlock) uint64 {
	base := runMetaBase(m)
	return binary.LittleEndian.Uint64(m.Heap.Data()[base+runAlignmentOff : base+runAlignmentOff+8])
}

// runBitmapWordOffset returns the absolute pool offset of bitmap word
// wordIdx within m's run.
func runBitmapWordOffset(m *MemoryBlock, wordIdx int) uint64 {
	return runMetaBase(m) + runBitmapOff + uint64(wordIdx)*8
}

func runBitmapWord(m *MemoryBlock, wordIdx int) uint64 {
	off := runBitmapWordOffset(m, wordIdx)
	return loadWord(m.Heap.Data()[off : off+8])
}

// RunMetaView is a read-only snapshot of a run's metadata, for callers
// that want to inspect a run without assembling a full MemoryBlock
// descriptor for one of its sub-blocks.
type RunMetaView struct {
	BlockSize uint64
	Alignment uint64
	bitmap    [RunBitmapWords]uint64
}

// AllocatedCount returns the number of set bits across the run's bitmap,
// i.e. the number of currently allocated sub-blocks.
func (v RunMetaView) AllocatedCount() int {
	n := 0
	for _, w := range v.bitmap {
		n += bits.OnesCount64(w)
	}
	return n
}

// ReadRunMeta reads the run metadata area at the head of (zoneID,
// chunkID) directly from h, without requiring a live MemoryBlock.
func ReadRunMeta(h Heap, zoneID, chunkID uint32) RunMetaView {
	base := h.Layout().ChunkBase(zoneID, chunkID)
	data := h.Data()
	v := RunMetaView{
		BlockSize: binary.LittleEndian.Uint64(data[base+runBlockSizeOff : base+runBlockSizeOff+8]),
		Alignment: binary.LittleEndian.Uint64(data[base+runAlignmentOff : base+runAlignmentOff+8]),
	}
	for w := 0; w < RunBitmapWords; w++ {
		off := base + runBitmapOff + uint64(w)*8
		v.bitmap[w] = loadWord(data[off : off+8])
	}
	return v
}

// InitRunMeta writes a fresh, all-free run metadata area for a run whose
// head chunk is (zoneID, chunkID): blockSize must be nonzero, alignment
// may be 0 for an unaligned run. Used when a higher allocator carves a
// new run out of a FREE chunk; not part of the descriptor capability set
// itself (there is no live MemoryBlock yet at that point).
func InitRunMeta(h Heap, zoneID, chunkID uint32, blockSize, alignment uint64) {
	base := h.Layout().ChunkBase(zoneID, chunkID)
	data := h.Data()
	binary.LittleEndian.PutUint64(data[base+runBlockSizeOff:base+runBlockSizeOff+8], blockSize)
	binary.LittleEndian.PutUint64(data[base+runAlignmentOff:base+runAlignmentOff+8], alignment)
	for w := 0; w < RunBitmapWords; w++ {
		off := base + runBitmapOff + uint64(w)*8
		storeWordDirect(data[off:off+8], 0, h.Ops())
	}
	if ops := h.Ops(); ops != nil {
		ops.Drain()
	}
}
