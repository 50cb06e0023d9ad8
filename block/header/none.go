package header

import (
	"github.com/kilnsys/pmemblock/block/sanitizer"
	"github.com/kilnsys/pmemblock/persist"
)

// noneCodec implements the headerless encoding: user data starts exactly
// at the block's real data offset, with no bytes spent on size, extra,
// or flags. Every accessor reports a fixed value rather than reading m.
type noneCodec struct{}

func (noneCodec) HeaderSize() int { return 0 }

// GetSize reports unitSize verbatim: with no header to store a size, the
// block's real size is whatever the caller's block-kind ops already
// compute from size_idx and block_size.
func (noneCodec) GetSize(_ []byte, unitSize uint64) uint64 { return unitSize }

func (noneCodec) GetExtra(_ []byte) uint64 { return 0 }
func (noneCodec) GetFlags(_ []byte) uint16 { return 0 }

func (noneCodec) Write(_ []byte, _, _ uint64, _ uint16, _ persist.Ops, _ sanitizer.Observer) {}

func (noneCodec) Invalidate(_ []byte, _ sanitizer.Observer) {}
func (noneCodec) Reinit(_ []byte, _ sanitizer.Observer)     {}
