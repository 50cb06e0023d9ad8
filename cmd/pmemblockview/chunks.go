package main

import (
	"github.com/kilnsys/pmemblock/block"
	"github.com/kilnsys/pmemblock/pool"
)

// zoneChunkCounts returns, for each zone with at least one full chunk slot
// within poolSize, the number of usable chunk slots in that zone.
func zoneChunkCounts(poolSize int64, layout *block.Layout) []uint32 {
	preamble := uint64(block.ZoneHeaderSize) + uint64(block.MaxChunksPerZone())*block.ChunkHeaderRecordSize
	maxDataBytes := uint64(block.ZoneMaxSize) - preamble

	var counts []uint32
	for zoneID := uint32(0); ; zoneID++ {
		zoneBase := layout.ZoneBase(zoneID)
		if zoneBase >= uint64(poolSize) {
			break
		}
		remaining := uint64(poolSize) - zoneBase
		if remaining <= preamble {
			break
		}
		dataBytes := remaining - preamble
		if dataBytes > maxDataBytes {
			dataBytes = maxDataBytes
		}
		n := uint32(dataBytes / block.ChunkSize)
		if n > block.MaxChunksPerZone() {
			n = block.MaxChunksPerZone()
		}
		if n == 0 {
			break
		}
		counts = append(counts, n)
	}
	return counts
}

// chunkRow is one row in the chunk browser: a chunk's header plus the
// coordinates it lives at.
type chunkRow struct {
	ZoneID  uint32
	ChunkID uint32
	Header  block.ChunkHeader
}

func (r chunkRow) headerType() block.HeaderType {
	switch {
	case r.Header.Flags&block.FlagCompactHeader != 0:
		return block.HeaderCompact
	case r.Header.Flags&block.FlagHeaderNone != 0:
		return block.HeaderNone
	default:
		return block.HeaderLegacy
	}
}

// Title and Description satisfy list.Item via list.DefaultDelegate.
func (r chunkRow) Title() string {
	return chunkTypeStyle(r.Header.Type.String()).Render(
		formatChunkTitle(r),
	)
}

func (r chunkRow) Description() string {
	return formatChunkDesc(r)
}

func (r chunkRow) FilterValue() string {
	return r.Header.Type.String()
}

func walkChunks(p *pool.Pool) []chunkRow {
	layout := p.Layout()
	counts := zoneChunkCounts(p.Size(), layout)

	var rows []chunkRow
	for zoneID, n := range counts {
		for chunkID := uint32(0); chunkID < n; chunkID++ {
			hdr := block.ReadChunkHeader(p, uint32(zoneID), chunkID)
			rows = append(rows, chunkRow{ZoneID: uint32(zoneID), ChunkID: chunkID, Header: hdr})
		}
	}
	return rows
}
