package block

import (
	"sync"

	"github.com/kilnsys/pmemblock/block/redo"
)

// hugeOps implements blockOps for multi-chunk huge allocations. There is
// no per-block lock: huge allocations are serialized by the enclosing
// bucket, owned by the allocator above this package.
type hugeOps struct{}

func (hugeOps) blockSize(*MemoryBlock) uint64 { return ChunkSize }

func (hugeOps) realDataOffset(m *MemoryBlock) uint64 {
	return m.Heap.Layout().ChunkBase(m.ZoneID, m.ChunkID)
}

func (hugeOps) lock(*MemoryBlock) *sync.Mutex { return nil }

func (hugeOps) state(m *MemoryBlock) State {
	hdr := ReadChunkHeader(m.Heap, m.ZoneID, m.ChunkID)
	switch hdr.Type {
	case ChunkTypeUsed:
		return StateAllocated
	case ChunkTypeFree:
		return StateFree
	default:
		return StateUnknown
	}
}

// ensureHeaderType ORs the flag selecting want into the chunk header if
// it is FREE and does not already carry it. The chunk must already be
// FREE and the caller must hold its bucket lock; this is an 8-byte
// atomic store followed by persist, never a redo-log entry, since it
// only ever touches a FREE chunk no concurrent allocator can be racing.
func (hugeOps) ensureHeaderType(m *MemoryBlock, want HeaderType) {
	hdr := ReadChunkHeader(m.Heap, m.ZoneID, m.ChunkID)
	if hdr.Type != ChunkTypeFree {
		corrupt("ensure_header_type called on zone %d chunk %d which is not FREE (type=%s)", m.ZoneID, m.ChunkID, hdr.Type)
	}
	flag := flagForHeaderType(want)
	if flag != 0 && hdr.Flags&flag == 0 {
		hdr.Flags |= flag
		WriteChunkHeader(m.Heap, m.ZoneID, m.ChunkID, hdr, nil, false)
	}
}

func (hugeOps) prepHdr(m *MemoryBlock, op Op, ctx redo.Context) {
	hdr := ReadChunkHeader(m.Heap, m.ZoneID, m.ChunkID)
	switch op {
	case OpAllocate:
		hdr.Type = ChunkTypeUsed
	case OpFree:
		hdr.Type = ChunkTypeFree
	default:
		corrupt("prep_hdr on HUGE with unrecognized op %v", op)
	}
	hdr.SizeIdx = m.SizeIdx
	WriteChunkHeader(m.Heap, m.ZoneID, m.ChunkID, hdr, ctx, false)

	if m.SizeIdx <= 1 {
		return
	}

	// The footer's slot may still hold a valid head for the next chunk,
	// so it must never be written before the head's own state is
	// durable: drain before touching it.
	if ctx == nil {
		if ops := m.Heap.Ops(); ops != nil {
			ops.Drain()
		}
	}

	// The footer is a runtime convenience rebuilt from the head on boot:
	// it is never replayed from an on-media redo log, and intermediate
	// slots between head and footer carry no meaning at all.
	footerChunk := m.ChunkID + m.SizeIdx - 1
	footer := ChunkHeader{Type: ChunkTypeFooter, Flags: 0, SizeIdx: m.SizeIdx}
	WriteChunkHeader(m.Heap, m.ZoneID, footerChunk, footer, ctx, true)

	obs := m.Heap.Observer()
	for c := m.ChunkID + 1; c < footerChunk; c++ {
		obs.MemNoaccess(chunkHeaderSlot(m.Heap, m.ZoneID, c))
	}
}
