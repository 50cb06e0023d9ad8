package block

import (
	"sync/atomic"

	"github.com/kilnsys/pmemblock/persist"
)

// loadWord atomically loads the 64-bit word stored at the start of slot.
// slot must be at least 8 bytes.
func loadWord(slot []byte) uint64 {
	return atomic.LoadUint64((*uint64)(wordPtr(slot)))
}

// storeWordDirect atomically stores value into slot and persists it
// through ops. It does not drain; callers that need a commit boundary
// call ops.Drain() themselves once all of a transaction's words are
// written.
func storeWordDirect(slot []byte, value uint64, ops persist.Ops) {
	atomic.StoreUint64((*uint64)(wordPtr(slot)), value)
	if ops != nil {
		ops.Persist(slot[:8])
	}
}
