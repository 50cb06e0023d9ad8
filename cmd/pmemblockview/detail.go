package main

import (
	"fmt"
	"strings"

	"github.com/kilnsys/pmemblock/block"
	"github.com/kilnsys/pmemblock/pool"
)

func formatChunkTitle(r chunkRow) string {
	return fmt.Sprintf("zone %d / chunk %-6d %s", r.ZoneID, r.ChunkID, r.Header.Type)
}

func formatChunkDesc(r chunkRow) string {
	return fmt.Sprintf("flags=0x%04x size_idx=%d header=%s", uint16(r.Header.Flags), r.Header.SizeIdx, r.headerType())
}

// detailText renders the right-hand inspection pane for the currently
// selected chunk: its raw header fields, and for RUN chunks the run
// metadata and bitmap occupancy.
func detailText(p *pool.Pool, r chunkRow) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Zone:       %d\n", r.ZoneID)
	fmt.Fprintf(&b, "Chunk:      %d\n", r.ChunkID)
	fmt.Fprintf(&b, "Type:       %s\n", r.Header.Type)
	fmt.Fprintf(&b, "Flags:      0x%04x\n", uint16(r.Header.Flags))
	fmt.Fprintf(&b, "Size idx:   %d\n", r.Header.SizeIdx)
	fmt.Fprintf(&b, "Header:     %s\n", r.headerType())
	fmt.Fprintf(&b, "Offset:     0x%x\n", p.Layout().ChunkBase(r.ZoneID, r.ChunkID))

	if r.Header.Type == block.ChunkTypeRun {
		meta := block.ReadRunMeta(p, r.ZoneID, r.ChunkID)
		fmt.Fprintf(&b, "\nRun metadata:\n")
		fmt.Fprintf(&b, "  Block size:  %d\n", meta.BlockSize)
		fmt.Fprintf(&b, "  Alignment:   %d\n", meta.Alignment)
		fmt.Fprintf(&b, "  Allocated:   %d/%d\n", meta.AllocatedCount(), block.MaxBlocksPerRun)
	}

	return b.String()
}

// offsetString is what gets copied to the clipboard for the Copy key: the
// absolute pool offset of the chunk's data area. This is where any
// allocation header starts, not the user-data offset block.FromOffset
// takes.
func offsetString(p *pool.Pool, r chunkRow) string {
	return fmt.Sprintf("0x%x", p.Layout().ChunkBase(r.ZoneID, r.ChunkID))
}
