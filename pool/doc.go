// Package pool is the thin mmap harness a block.Heap is built on: it
// opens, grows, and closes a pool file and hands the block package a
// byte slice view of it plus the persistence primitives to commit
// writes. It does not implement the pool lifecycle API (root-object
// accessors, transactional allocation) that sits above the descriptor
// layer — only enough to host one.
package pool
