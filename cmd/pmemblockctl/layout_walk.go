package main

import (
	"github.com/kilnsys/pmemblock/block"
	"github.com/kilnsys/pmemblock/pool"
)

// zoneChunkCounts returns, for each zone that has at least one full chunk
// slot within poolSize, the number of chunk slots usable in that zone. A
// zone whose chunk-header array doesn't even fully fit in the remaining
// pool bytes ends the walk: pools are grown zone by zone, so a short tail
// means the pool simply doesn't extend that far yet.
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

// chunkRecord is one chunk header together with the coordinates it was
// read from, for commands that walk every chunk in a pool.
type chunkRecord struct {
	ZoneID  uint32
	ChunkID uint32
	Header  block.ChunkHeader
}

// walkChunks visits every chunk header in p in zone-then-chunk order.
func walkChunks(p *pool.Pool) []chunkRecord {
	layout := p.Layout()
	counts := zoneChunkCounts(p.Size(), layout)

	var records []chunkRecord
	for zoneID, n := range counts {
		for chunkID := uint32(0); chunkID < n; chunkID++ {
			hdr := block.ReadChunkHeader(p, uint32(zoneID), chunkID)
			records = append(records, chunkRecord{ZoneID: uint32(zoneID), ChunkID: chunkID, Header: hdr})
		}
	}
	return records
}
