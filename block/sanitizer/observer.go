// Package sanitizer models the optional VG-style memory-state observer:
// transitions the block package reports as it writes headers, commits
// allocations, and frees blocks. An embedding application can plug in a
// real memory checker (e.g. a Valgrind client request shim); by default
// nothing listens and every call compiles away to nothing of consequence.
package sanitizer

// Observer receives memory-state transition notifications. addr is the
// byte range the transition applies to.
type Observer interface {
	MemUndefined(addr []byte)
	MemDefined(addr []byte)
	MemNoaccess(addr []byte)
	TxAdd(addr []byte)
	TxRemove(addr []byte)
	SetClean(addr []byte)
}

// Noop is an Observer that does nothing. It is the default used whenever
// a Heap does not supply one.
type Noop struct{}

func (Noop) MemUndefined([]byte) {}
func (Noop) MemDefined([]byte)   {}
func (Noop) MemNoaccess([]byte)  {}
func (Noop) TxAdd([]byte)        {}
func (Noop) TxRemove([]byte)     {}
func (Noop) SetClean([]byte)     {}
