package pool

import "encoding/binary"

// HeaderSize is the size of the pool header that precedes zone 0. It is
// also the value this package's Layout is built with as Zone0Offset.
const HeaderSize = 4096

// magic identifies a pool file; it is checked on Open.
var magic = [8]byte{'P', 'M', 'E', 'M', 'B', 'L', 'K', 0}

const formatVersion = 1

const (
	magicOff   = 0
	versionOff = 8
	poolSizeOff = 16
)

// writeHeader initializes a fresh pool header at the start of data.
func writeHeader(data []byte, poolSize int64) {
	copy(data[magicOff:magicOff+8], magic[:])
	binary.LittleEndian.PutUint32(data[versionOff:versionOff+4], formatVersion)
	binary.LittleEndian.PutUint64(data[poolSizeOff:poolSizeOff+8], uint64(poolSize))
}

// validateHeader checks that data begins with a recognized pool header.
func validateHeader(data []byte) error {
	if len(data) < HeaderSize {
		return errShortHeader
	}
	if string(data[magicOff:magicOff+8]) != string(magic[:]) {
		return errBadMagic
	}
	version := binary.LittleEndian.Uint32(data[versionOff : versionOff+4])
	if version != formatVersion {
		return errUnsupportedVersion
	}
	return nil
}
