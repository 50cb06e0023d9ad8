package header

import (
	"encoding/binary"

	"github.com/kilnsys/pmemblock/block/sanitizer"
	"github.com/kilnsys/pmemblock/persist"
)

// compactSize is the on-media footprint of the compact allocation header:
// a packed size+flags word followed by a caller-defined extra word.
const compactSize = 16

// compactCodec implements the 16-byte allocation header: the low 48 bits
// of the first word hold the size, the high 16 bits hold flags, and the
// second word is an opaque extra value.
type compactCodec struct{}

func (compactCodec) HeaderSize() int { return compactSize }

func (compactCodec) GetSize(m []byte, _ uint64) uint64 {
	return binary.LittleEndian.Uint64(m[0:8]) & Compact48Mask
}

func (compactCodec) GetExtra(m []byte) uint64 {
	return binary.LittleEndian.Uint64(m[8:16])
}

func (compactCodec) GetFlags(m []byte) uint16 {
	return uint16(binary.LittleEndian.Uint64(m[0:8]) >> SizeShift)
}

// Write packs size and flags into the first word and stores extra in the
// second. A real implementation may widen this store to a full cacheline
// when the block is large enough and cacheline-aligned, trading a wider
// write for fewer flush operations later; that optimization is latency
// only and is omitted here since it has no effect on the stored value.
func (compactCodec) Write(m []byte, size, extra uint64, flags uint16, ops persist.Ops, obs sanitizer.Observer) {
	packed := (size & Compact48Mask) | (uint64(flags) << SizeShift)
	var buf [compactSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], packed)
	binary.LittleEndian.PutUint64(buf[8:16], extra)

	hdr := m[:compactSize]
	obs.MemUndefined(hdr)
	obs.TxAdd(hdr)
	if ops != nil {
		ops.Memcpy(hdr, buf[:], persist.FlagNonTemporal|persist.FlagNoDrain|persist.FlagRelaxed)
	} else {
		copy(hdr, buf[:])
	}
	obs.TxRemove(hdr)
}

func (compactCodec) Invalidate(m []byte, obs sanitizer.Observer) {
	obs.MemNoaccess(m[:compactSize])
}

func (compactCodec) Reinit(m []byte, obs sanitizer.Observer) {
	obs.MemDefined(m[:compactSize])
}
