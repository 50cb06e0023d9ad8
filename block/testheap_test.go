package block

import (
	"sync"

	"github.com/kilnsys/pmemblock/block/sanitizer"
	"github.com/kilnsys/pmemblock/persist"
)

// testHeap is a plain in-memory Heap used throughout this package's
// tests: no mmap, no real persistence, just a byte slice and a layout.
type testHeap struct {
	data   []byte
	layout *Layout
	mu     sync.Mutex
	locks  map[uint64]*sync.Mutex
}

func newTestHeap(zone0Offset uint64, size int) *testHeap {
	return &testHeap{
		data:   make([]byte, size),
		layout: NewLayout(zone0Offset),
		locks:  make(map[uint64]*sync.Mutex),
	}
}

func (h *testHeap) Data() []byte                 { return h.data }
func (h *testHeap) Layout() *Layout              { return h.layout }
func (h *testHeap) Ops() persist.Ops             { return nil }
func (h *testHeap) Observer() sanitizer.Observer { return sanitizer.Noop{} }

func (h *testHeap) RunLock(zoneID, chunkID uint32) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := uint64(zoneID)<<32 | uint64(chunkID)
	if l, ok := h.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	h.locks[key] = l
	return l
}

func setChunkHeader(h Heap, zoneID, chunkID uint32, hdr ChunkHeader) {
	WriteChunkHeader(h, zoneID, chunkID, hdr, nil, false)
}
