package block

import "unsafe"

// wordPtr reinterprets the first 8 bytes of slot as a *uint64 so
// sync/atomic can load/store it as a single aligned machine word. This is
// the one place this package reaches for unsafe: Go has no portable way
// to perform an atomic 64-bit load/store directly against a byte slice,
// and the chunk-header's crash-atomicity invariant depends on exactly
// that. Callers must ensure slot is 8-byte aligned and at least 8 bytes.
func wordPtr(slot []byte) unsafe.Pointer {
	return unsafe.Pointer(&slot[0])
}
