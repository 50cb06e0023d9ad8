package block

import (
	"fmt"
	"sync"

	"github.com/kilnsys/pmemblock/block/header"
	"github.com/kilnsys/pmemblock/block/redo"
)

// MemoryBlock is a cursor over one allocation unit: either a multi-chunk
// huge span or a sub-block of a run. It borrows Heap; it owns none of
// the memory it describes, and two descriptors may legally refer to the
// same block at once. Mutating methods require the caller to hold the
// block's lock (GetLock), per the concurrency model.
type MemoryBlock struct {
	Heap       Heap
	ZoneID     uint32
	ChunkID    uint32
	BlockOff   uint16 // 0 for HUGE
	SizeIdx    uint32
	Kind       Kind
	HeaderType HeaderType
}

// blockOps is the block-kind capability set: the two implementations,
// hugeOps and runOps, are the only variants — there is no dynamic
// registration, matching the "tagged variant, static dispatch" design.
type blockOps interface {
	blockSize(m *MemoryBlock) uint64
	realDataOffset(m *MemoryBlock) uint64
	lock(m *MemoryBlock) *sync.Mutex
	state(m *MemoryBlock) State
	ensureHeaderType(m *MemoryBlock, want HeaderType)
	prepHdr(m *MemoryBlock, op Op, ctx redo.Context)
}

func (m *MemoryBlock) ops() blockOps {
	if m.Kind == KindRun {
		return runOps{}
	}
	return hugeOps{}
}

func codecFor(ht HeaderType) header.Codec {
	switch ht {
	case HeaderCompact:
		return header.For(header.Compact)
	case HeaderNone:
		return header.For(header.None)
	default:
		return header.For(header.Legacy)
	}
}

func headerSizeFor(ht HeaderType) int {
	return codecFor(ht).HeaderSize()
}

func (m *MemoryBlock) codec() header.Codec { return codecFor(m.HeaderType) }

func (m *MemoryBlock) headerSize() int { return m.codec().HeaderSize() }

// BlockSize is the per-unit size this block's kind reports: CHUNKSIZE
// for HUGE, the run's stored block_size for RUN.
func (m *MemoryBlock) BlockSize() uint64 { return m.ops().blockSize(m) }

// GetRealData returns the block's data region, header included, running
// to the end of the pool's backing slice (callers needing an exact
// length use GetRealSize or GetUserSize).
func (m *MemoryBlock) GetRealData() []byte {
	off := m.ops().realDataOffset(m)
	return m.Heap.Data()[off:]
}

// GetUserData returns the block's data region past its allocation
// header.
func (m *MemoryBlock) GetUserData() []byte {
	return m.GetRealData()[m.headerSize():]
}

// GetRealSize returns header-included size. When SizeIdx is known it is
// derived from units; otherwise (a descriptor rebuilt from media without
// a known unit count) it falls back to the header codec's stored size.
func (m *MemoryBlock) GetRealSize() uint64 {
	if m.SizeIdx != 0 {
		return m.BlockSize() * uint64(m.SizeIdx)
	}
	hdr := m.GetRealData()[:m.headerSize()]
	return m.codec().GetSize(hdr, m.BlockSize())
}

// GetUserSize returns the block's size past its allocation header.
func (m *MemoryBlock) GetUserSize() uint64 {
	return m.GetRealSize() - uint64(m.headerSize())
}

func (m *MemoryBlock) GetExtra() uint64 {
	return m.codec().GetExtra(m.GetRealData()[:m.headerSize()])
}

func (m *MemoryBlock) GetFlags() uint16 {
	return m.codec().GetFlags(m.GetRealData()[:m.headerSize()])
}

// WriteHeader encodes size/extra/flags into the block's allocation
// header. The write is relaxed and non-temporal; it does not persist or
// drain on its own.
func (m *MemoryBlock) WriteHeader(size, extra uint64, flags uint16) {
	m.codec().Write(m.GetRealData()[:m.headerSize()], size, extra, flags, m.Heap.Ops(), m.Heap.Observer())
}

func (m *MemoryBlock) InvalidateHeader() {
	m.codec().Invalidate(m.GetRealData()[:m.headerSize()], m.Heap.Observer())
}

func (m *MemoryBlock) ReinitHeader() {
	m.codec().Reinit(m.GetRealData()[:m.headerSize()], m.Heap.Observer())
}

// GetLock returns the mutex a caller must hold across prep_hdr through
// redo-log commit. HUGE blocks return nil: they are serialized by the
// enclosing bucket, external to this package.
func (m *MemoryBlock) GetLock() *sync.Mutex { return m.ops().lock(m) }

// GetState reports this block's observed allocation state.
func (m *MemoryBlock) GetState() State { return m.ops().state(m) }

// EnsureHeaderType upgrades the chunk's header-type flag to want if the
// chunk is FREE and does not already carry it.
func (m *MemoryBlock) EnsureHeaderType(want HeaderType) { m.ops().ensureHeaderType(m, want) }

// PrepHdr schedules (or performs, if ctx is nil) the persistent update
// that commits op (ALLOCATE/FREE) for this block.
func (m *MemoryBlock) PrepHdr(op Op, ctx redo.Context) { m.ops().prepHdr(m, op, ctx) }

// Zero clears the block's user data.
func (m *MemoryBlock) Zero() {
	n := m.GetUserSize()
	data := m.GetUserData()[:n]
	for i := range data {
		data[i] = 0
	}
}

func (m *MemoryBlock) String() string {
	return fmt.Sprintf("MemoryBlock{zone=%d chunk=%d off=%d size_idx=%d kind=%s header=%s}",
		m.ZoneID, m.ChunkID, m.BlockOff, m.SizeIdx, m.Kind, m.HeaderType)
}
