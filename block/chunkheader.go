package block

import (
	"encoding/binary"

	"github.com/kilnsys/pmemblock/persist"
)

// ChunkHeader is the 8-byte on-media record describing one chunk slot:
//
//	u16 type
//	u16 flags
//	u32 size_idx
//
// The record is kept exactly 8 bytes, 8-byte aligned, so a single store
// updates it atomically with respect to crash: after recovery either the
// old or the new value is observed, never a torn mix.
type ChunkHeader struct {
	Type    ChunkType
	Flags   ChunkFlags
	SizeIdx uint32
}

// encode packs h into its on-media 8-byte little-endian form.
func (h ChunkHeader) encode() uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint16(b[0:2], uint16(h.Type))
	binary.LittleEndian.PutUint16(b[2:4], uint16(h.Flags))
	binary.LittleEndian.PutUint32(b[4:8], h.SizeIdx)
	return binary.LittleEndian.Uint64(b[:])
}

// decodeChunkHeader unpacks an 8-byte little-endian record.
func decodeChunkHeader(v uint64) ChunkHeader {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return ChunkHeader{
		Type:    ChunkType(binary.LittleEndian.Uint16(b[0:2])),
		Flags:   ChunkFlags(binary.LittleEndian.Uint16(b[2:4])),
		SizeIdx: binary.LittleEndian.Uint32(b[4:8]),
	}
}

// readChunkHeaderAt reads the chunk header record stored at the first 8
// bytes of slot. slot must be at least ChunkHeaderRecordSize bytes.
func readChunkHeaderAt(slot []byte) ChunkHeader {
	return decodeChunkHeader(loadWord(slot))
}

// storeChunkHeaderAt atomically stores h into slot's first 8 bytes and
// persists the write through ops. This is the "relaxed atomic 64-bit
// store, then persist" path used whenever no redo-log context is given.
func storeChunkHeaderAt(slot []byte, h ChunkHeader, ops persist.Ops) {
	storeWordDirect(slot, h.encode(), ops)
}
