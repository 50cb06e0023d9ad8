// Package persist provides the memcpy/persist/drain primitives and dirty
// range tracking the block package relies on to make non-temporal writes
// durable. An Ops implementation backs a mapped pool's persistence
// guarantees; Tracker records dirty ranges and coalesces them into
// page-aligned, non-overlapping ranges, the way a page cache would. It
// does not flush them itself.
package persist
