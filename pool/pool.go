package pool

import (
	"os"
	"sync"

	"github.com/kilnsys/pmemblock/block"
	"github.com/kilnsys/pmemblock/block/sanitizer"
	"github.com/kilnsys/pmemblock/persist"
)

// Pool is a pool file mapped into memory: a fixed HeaderSize-byte header
// followed by zone 0. It implements block.Heap, so a *Pool can back
// block.MemoryBlock descriptors directly.
type Pool struct {
	file   *os.File
	data   []byte
	size   int64
	fd     int
	layout *block.Layout
	ops    persist.Ops
	obs    sanitizer.Observer

	locksMu sync.Mutex
	locks   map[uint64]*sync.Mutex

	closer func() error
}

func newPool(file *os.File, data []byte, size int64, fd int, closer func() error) *Pool {
	p := &Pool{
		file:   file,
		data:   data,
		size:   size,
		fd:     fd,
		layout: block.NewLayout(HeaderSize),
		obs:    sanitizer.Noop{},
		locks:  make(map[uint64]*sync.Mutex),
		closer: closer,
	}
	p.ops = persist.NewMmapOps(data, fd)
	return p
}

// SetObserver attaches a sanitizer observer; pass nil to go back to a
// no-op observer.
func (p *Pool) SetObserver(obs sanitizer.Observer) {
	if obs == nil {
		obs = sanitizer.Noop{}
	}
	p.obs = obs
}

func (p *Pool) Data() []byte          { return p.data }
func (p *Pool) Layout() *block.Layout { return p.layout }
func (p *Pool) Ops() persist.Ops      { return p.ops }
func (p *Pool) Observer() sanitizer.Observer {
	return p.obs
}

// RunLock returns the mutex serializing access to the run headed at
// (zoneID, chunkID), creating it on first use. The map itself is
// protected by a short-lived lock; the returned mutex is held by the
// caller across its own critical section.
func (p *Pool) RunLock(zoneID, chunkID uint32) *sync.Mutex {
	p.locksMu.Lock()
	defer p.locksMu.Unlock()
	key := uint64(zoneID)<<32 | uint64(chunkID)
	if l, ok := p.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	p.locks[key] = l
	return l
}

// Size returns the pool's current size in bytes, header included.
func (p *Pool) Size() int64 { return p.size }

// rebindOps rebuilds the persistence ops after p.data has been
// remapped: the old ops closure otherwise keeps pointing at the stale
// (now invalid) slice.
func (p *Pool) rebindOps() {
	p.ops = persist.NewMmapOps(p.data, p.fd)
}

// FD returns the underlying file descriptor, or -1 if this pool is not
// memory-mapped (the whole-file buffer used on platforms without the mmap
// path).
func (p *Pool) FD() int { return p.fd }
