package persist

// CopyFlag modifies the behaviour of Memcpy.
type CopyFlag int

const (
	// FlagNone performs an ordinary copy with no special handling.
	FlagNone CopyFlag = 0
	// FlagNonTemporal hints that the destination should bypass the cache
	// hierarchy, appropriate for large, write-once ranges.
	FlagNonTemporal CopyFlag = 1 << iota
	// FlagNoDrain skips the implicit drain a persistent memcpy would
	// otherwise perform; the caller takes responsibility for draining.
	FlagNoDrain
	// FlagRelaxed marks the store as not requiring immediate ordering
	// against subsequent operations (still eventually persisted).
	FlagRelaxed
)

// Ops is the persistence capability a Heap exposes to the block package:
// copy bytes into the mapped region, persist a range, and drain any
// pending non-temporal stores. Implementations need not be thread-safe;
// callers serialize access the same way they serialize block mutation.
type Ops interface {
	// Memcpy copies src into dst (both backed by the mapped pool) honouring
	// flags, and returns dst for chaining.
	Memcpy(dst, src []byte, flags CopyFlag) []byte

	// Persist ensures addr's current contents are durable. It does not
	// order itself relative to other in-flight persists; call Drain for
	// that.
	Persist(addr []byte)

	// Drain blocks until all previously issued non-temporal stores and
	// Persist calls are ordered before whatever happens next.
	Drain()
}
