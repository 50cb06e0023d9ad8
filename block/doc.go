// Package block implements the memory-block descriptor layer of a
// persistent-memory heap: the code that classifies and mutates individual
// allocation units (huge chunks, run sub-blocks) living inside a
// byte-addressable, crash-consistent pool organized as zones, chunks, and
// runs.
//
// A MemoryBlock is a cursor, not an owner: it borrows a Heap and a pool
// offset and exposes a uniform set of operations (size, real data pointer,
// state, header read/write, allocate/free preparation) that dispatch
// statically on two small tagged variants — the block kind (huge or run)
// and the allocation-header encoding (legacy, compact, or none). Mutating
// operations either commit directly with an atomic store and persist, or
// append entries to a caller-supplied redo-log context (package
// block/redo) for later commit.
//
// Sub-packages:
//   - block/header holds the three header codecs.
//   - block/redo holds the operation-context abstraction consumed here.
//   - block/sanitizer holds the optional memory-state observer.
package block
