package redo

import (
	"encoding/binary"

	"github.com/kilnsys/pmemblock/persist"
)

// entryKind distinguishes a SET entry from a masked bitwise entry. Whether
// an entry is persistent (belongs in the on-media redo log) or transient
// (only applied in-memory at commit time) is recorded separately in
// entry.transient.
type entryKind int

const (
	kindSet entryKind = iota
	kindBitwise
)

type entry struct {
	kind      entryKind
	addr      uint64
	value     uint64 // kindSet
	mask      uint64 // kindBitwise
	op        BitwiseOp
	transient bool
}

// Log is a minimal in-process Context: entries accumulate in program
// order and Commit applies them to data in the same order, then persists
// and drains. Persistent entries would additionally be appended to an
// on-media log by a real redo engine before data is touched; Log omits
// that (out of scope here) but preserves the transient/persistent
// distinction so callers can inspect which entries a real engine would
// have recorded.
type Log struct {
	entries []entry
}

// NewLog returns an empty operation context.
func NewLog() *Log {
	return &Log{}
}

func (l *Log) AppendSet(addr uint64, value uint64, transient bool) {
	l.entries = append(l.entries, entry{kind: kindSet, addr: addr, value: value, transient: transient})
}

func (l *Log) AppendBitwise(addr uint64, mask uint64, op BitwiseOp, transient bool) {
	l.entries = append(l.entries, entry{kind: kindBitwise, addr: addr, mask: mask, op: op, transient: transient})
}

// PersistentEntries reports how many scheduled entries a real redo-log
// engine would have to durably record (i.e. excludes transient ones).
func (l *Log) PersistentEntries() int {
	n := 0
	for _, e := range l.entries {
		if !e.transient {
			n++
		}
	}
	return n
}

// Reset discards all scheduled entries without applying them.
func (l *Log) Reset() {
	l.entries = l.entries[:0]
}

// Commit applies every scheduled entry to data (indexed by absolute pool
// offset) in the order it was appended, then persists the touched ranges
// and drains ops.
func (l *Log) Commit(data []byte, ops persist.Ops) {
	for _, e := range l.entries {
		word := binary.LittleEndian.Uint64(data[e.addr : e.addr+8])
		switch e.kind {
		case kindSet:
			word = e.value
		case kindBitwise:
			switch e.op {
			case OpOr:
				word |= e.mask
			case OpAnd:
				word &^= e.mask
			}
		}
		binary.LittleEndian.PutUint64(data[e.addr:e.addr+8], word)
		if ops != nil {
			ops.Persist(data[e.addr : e.addr+8])
		}
	}
	l.entries = l.entries[:0]
	if ops != nil {
		ops.Drain()
	}
}
