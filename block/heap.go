package block

import (
	"sync"

	"github.com/kilnsys/pmemblock/block/redo"
	"github.com/kilnsys/pmemblock/block/sanitizer"
	"github.com/kilnsys/pmemblock/persist"
)

// Heap is the capability set this package consumes from its enclosing
// pool: a byte-addressable backing region, the layout that maps offsets
// within it, persistence primitives, an optional sanitizer observer, and
// per-run locks. Any type implementing Heap can host memory blocks; the
// pool package is the production implementation, but tests commonly back
// it with a plain in-memory buffer.
type Heap interface {
	// Data returns the full backing slice. Every offset this package
	// computes (via Layout) is an index into this slice.
	Data() []byte

	// Layout returns the address translator for this heap's pool.
	Layout() *Layout

	// Ops returns the persistence primitives (memcpy/persist/drain) this
	// heap commits through. May be nil in tests that never need to
	// persist (direct in-memory stores still happen; only the durability
	// call is skipped).
	Ops() persist.Ops

	// Observer returns the sanitizer callback this heap reports
	// memory-state transitions to. Never nil; heaps with nothing
	// attached return sanitizer.Noop{}.
	Observer() sanitizer.Observer

	// RunLock returns the mutex serializing access to the run headed at
	// (zoneID, chunkID). The descriptor layer never acquires it itself;
	// callers hold it across prep_hdr through redo-log commit.
	RunLock(zoneID, chunkID uint32) *sync.Mutex
}

// chunkHeaderSlot returns the byte range backing the chunk header record
// for (zoneID, chunkID).
func chunkHeaderSlot(h Heap, zoneID, chunkID uint32) []byte {
	off := h.Layout().ChunkHeaderAbsOffset(zoneID, chunkID)
	return h.Data()[off : off+ChunkHeaderRecordSize]
}

// ReadChunkHeader reads the current chunk header for (zoneID, chunkID).
func ReadChunkHeader(h Heap, zoneID, chunkID uint32) ChunkHeader {
	return readChunkHeaderAt(chunkHeaderSlot(h, zoneID, chunkID))
}

// WriteChunkHeader commits hdr to (zoneID, chunkID)'s chunk header
// record. With a nil ctx it stores directly (atomic store + persist);
// when transient is also set in that case, the write is additionally
// reported to the sanitizer as clean rather than participating in any
// redo log. With a non-nil ctx, it schedules a SET entry instead,
// tagged transient or not as requested.
func WriteChunkHeader(h Heap, zoneID, chunkID uint32, hdr ChunkHeader, ctx redo.Context, transient bool) {
	slot := chunkHeaderSlot(h, zoneID, chunkID)
	if ctx == nil {
		storeChunkHeaderAt(slot, hdr, h.Ops())
		if transient {
			h.Observer().SetClean(slot)
		}
		return
	}
	off := h.Layout().ChunkHeaderAbsOffset(zoneID, chunkID)
	ctx.AppendSet(off, hdr.encode(), transient)
}
