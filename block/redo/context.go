package redo

// BitwiseOp is the masked update operator append_bitwise schedules.
type BitwiseOp int

const (
	OpOr BitwiseOp = iota
	OpAnd
)

// Context is the capability the block package consumes to schedule
// persistent updates instead of writing them directly. addr is an
// absolute pool offset.
type Context interface {
	// AppendSet schedules a 64-bit store of value at addr. If transient,
	// the entry is applied at commit but never recorded in the on-media
	// redo log.
	AppendSet(addr uint64, value uint64, transient bool)

	// AppendBitwise schedules a masked update of the 64-bit word at addr:
	// OR sets the bits in mask, AND clears them. If transient, the entry
	// is applied at commit but never recorded in the on-media redo log.
	AppendBitwise(addr uint64, mask uint64, op BitwiseOp, transient bool)
}
