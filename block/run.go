package block

import (
	"sync"

	"github.com/kilnsys/pmemblock/block/redo"
)

// runOps implements blockOps for run sub-blocks.
type runOps struct{}

// runDataStart returns the absolute pool offset at which a run's first
// block's real data begins, past metadata and any alignment padding.
func runDataStart(m *MemoryBlock) uint64 {
	base := runMetaBase(m) + RunMetaSize
	hdr := ReadChunkHeader(m.Heap, m.ZoneID, m.ChunkID)
	if hdr.Flags&FlagAligned == 0 {
		return base
	}
	alignment := runAlignment(m)
	hsz := uint64(headerSizeFor(m.HeaderType))
	return AlignUp(base+hsz, alignment) - hsz
}

func (runOps) blockSize(m *MemoryBlock) uint64 {
	bs := runBlockSize(m)
	if bs == 0 {
		corrupt("run at zone %d chunk %d is uninitialized (block_size=0)", m.ZoneID, m.ChunkID)
	}
	return bs
}

func (runOps) realDataOffset(m *MemoryBlock) uint64 {
	return runDataStart(m) + uint64(m.BlockOff)*runBlockSize(m)
}

func (runOps) lock(m *MemoryBlock) *sync.Mutex {
	return m.Heap.RunLock(m.ZoneID, m.ChunkID)
}

// bitmapRange computes the bitmap word index and bitmask a block
// [blockOff, blockOff+sizeIdx) occupies. A span may not cross a 64-bit
// word boundary: size_idx == BitsPerValue requires blockOff%BitsPerValue
// == 0, and any size_idx > BitsPerValue is a contract violation.
func bitmapRange(blockOff uint16, sizeIdx uint32) (wordIdx int, mask uint64) {
	if sizeIdx > BitsPerValue {
		corrupt("run size_idx %d exceeds BitsPerValue (%d)", sizeIdx, BitsPerValue)
	}
	wordIdx = int(blockOff) / BitsPerValue
	bit := uint(blockOff) % BitsPerValue
	if sizeIdx == BitsPerValue {
		if bit != 0 {
			corrupt("run size_idx=64 requires block_off%%64==0, got block_off=%d", blockOff)
		}
		return wordIdx, ^uint64(0)
	}
	return wordIdx, ((uint64(1) << sizeIdx) - 1) << bit
}

func (runOps) state(m *MemoryBlock) State {
	wordIdx, mask := bitmapRange(m.BlockOff, m.SizeIdx)
	if runBitmapWord(m, wordIdx)&mask != 0 {
		return StateAllocated
	}
	return StateFree
}

// ensureHeaderType asserts rather than mutates: runs are created with
// their header-type flag already in place.
func (runOps) ensureHeaderType(m *MemoryBlock, want HeaderType) {
	hdr := ReadChunkHeader(m.Heap, m.ZoneID, m.ChunkID)
	if headerTypeFromFlags(hdr.Flags) != want {
		corrupt("run at zone %d chunk %d was not created with header type %s", m.ZoneID, m.ChunkID, want)
	}
}

func (runOps) prepHdr(m *MemoryBlock, op Op, ctx redo.Context) {
	wordIdx, mask := bitmapRange(m.BlockOff, m.SizeIdx)
	addr := runBitmapWordOffset(m, wordIdx)

	var bop redo.BitwiseOp
	switch op {
	case OpAllocate:
		bop = redo.OpOr
	case OpFree:
		bop = redo.OpAnd
	default:
		corrupt("prep_hdr on RUN with unrecognized op %v", op)
	}

	if ctx != nil {
		ctx.AppendBitwise(addr, mask, bop, false)
		return
	}

	slot := m.Heap.Data()[addr : addr+8]
	word := loadWord(slot)
	switch bop {
	case redo.OpOr:
		word |= mask
	case redo.OpAnd:
		word &^= mask
	}
	ops := m.Heap.Ops()
	storeWordDirect(slot, word, ops)
	if ops != nil {
		ops.Drain()
	}
}
