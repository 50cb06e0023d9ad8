package header

import (
	"github.com/kilnsys/pmemblock/block/sanitizer"
	"github.com/kilnsys/pmemblock/persist"
)

// Type identifies which codec governs a block's allocation header.
type Type int

const (
	Legacy Type = iota
	Compact
	None
)

// SizeShift is the bit position at which flags are packed above a size
// field, used by both the legacy and compact on-media layouts.
const SizeShift = 48

// Compact48Mask extracts the low 48 bits of a compact size_field.
const Compact48Mask = (uint64(1) << SizeShift) - 1

// Codec is the uniform capability set every header kind implements. m is
// the allocation header's byte range (its size is HeaderSize() for
// LEGACY/COMPACT, zero-length irrelevant for NONE). unitSize is the
// block's unit size (block_size from the block-ops capability), needed
// only by NONE's get_size.
type Codec interface {
	// HeaderSize is the number of bytes this header occupies on media.
	HeaderSize() int

	GetSize(m []byte, unitSize uint64) uint64
	GetExtra(m []byte) uint64
	GetFlags(m []byte) uint16

	// Write performs a relaxed, non-temporal copy of the encoded header
	// into m: the header is first marked undefined, and the store is
	// bracketed by sanitizer TxAdd/TxRemove notifications. It does not
	// persist or drain; the caller owns the commit boundary.
	Write(m []byte, size, extra uint64, flags uint16, ops persist.Ops, obs sanitizer.Observer)

	// Invalidate marks m's bytes as logically clean/unused.
	Invalidate(m []byte, obs sanitizer.Observer)

	// Reinit refreshes sanitizer bookkeeping for m after a restart,
	// without altering its contents.
	Reinit(m []byte, obs sanitizer.Observer)
}

// For returns the codec singleton for t.
func For(t Type) Codec {
	switch t {
	case Compact:
		return compactCodec{}
	case None:
		return noneCodec{}
	default:
		return legacyCodec{}
	}
}
