package header

import (
	"encoding/binary"

	"github.com/kilnsys/pmemblock/block/sanitizer"
	"github.com/kilnsys/pmemblock/persist"
)

// legacySize is the on-media footprint of the legacy allocation header:
// size(8) + type_num(8) + root_size(8) + unused(40).
const legacySize = 64

// legacyCodec implements the original 64-byte allocation header: a plain
// size, a caller-defined type number, and a root_size field whose high 16
// bits double as the block's flags.
type legacyCodec struct{}

func (legacyCodec) HeaderSize() int { return legacySize }

func (legacyCodec) GetSize(m []byte, _ uint64) uint64 {
	return binary.LittleEndian.Uint64(m[0:8])
}

func (legacyCodec) GetExtra(m []byte) uint64 {
	return binary.LittleEndian.Uint64(m[8:16])
}

func (legacyCodec) GetFlags(m []byte) uint16 {
	rootSize := binary.LittleEndian.Uint64(m[16:24])
	return uint16(rootSize >> SizeShift)
}

func (legacyCodec) Write(m []byte, size, extra uint64, flags uint16, ops persist.Ops, obs sanitizer.Observer) {
	var buf [legacySize]byte
	binary.LittleEndian.PutUint64(buf[0:8], size)
	binary.LittleEndian.PutUint64(buf[8:16], extra)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(flags)<<SizeShift)

	hdr := m[:legacySize]
	obs.MemUndefined(hdr)
	obs.TxAdd(hdr)
	if ops != nil {
		ops.Memcpy(hdr, buf[:], persist.FlagNonTemporal|persist.FlagNoDrain|persist.FlagRelaxed)
	} else {
		copy(hdr, buf[:])
	}
	obs.TxRemove(hdr)

	// unused fields of the legacy header double as a red zone
	obs.MemNoaccess(hdr[24:legacySize])
}

func (legacyCodec) Invalidate(m []byte, obs sanitizer.Observer) {
	obs.MemNoaccess(m[:legacySize])
}

func (legacyCodec) Reinit(m []byte, obs sanitizer.Observer) {
	obs.MemDefined(m[:legacySize])
}
