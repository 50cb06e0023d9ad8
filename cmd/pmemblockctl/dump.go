package main

import (
	"fmt"
	"strings"

	"github.com/kilnsys/pmemblock/block"
	"github.com/kilnsys/pmemblock/pool"
	"github.com/spf13/cobra"
)

var (
	dumpZone     int
	dumpUsedOnly bool
	dumpCompact  bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpZone, "zone", -1, "Dump only a specific zone (-1 = all zones)")
	cmd.Flags().BoolVar(&dumpUsedOnly, "used-only", false, "Show only non-free chunks")
	cmd.Flags().BoolVar(&dumpCompact, "compact", false, "Compact output")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <pool>",
		Short: "Human-readable dump of a pool's zones and chunks",
		Long: `The dump command walks every zone and chunk in a pool and prints
each chunk's header: type, flags, and size index. Run chunks additionally
report their run metadata (block size, alignment, and allocated-block
count from the bitmap).

Example:
  pmemblockctl dump heap.pool
  pmemblockctl dump heap.pool --zone 0
  pmemblockctl dump heap.pool --used-only --compact
  pmemblockctl dump heap.pool --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

type chunkDump struct {
	Zone    uint32 `json:"zone"`
	Chunk   uint32 `json:"chunk"`
	Type    string `json:"type"`
	Flags   uint16 `json:"flags"`
	SizeIdx uint32 `json:"size_idx"`
	Header  string `json:"header,omitempty"`

	RunBlockSize  uint64 `json:"run_block_size,omitempty"`
	RunAlignment  uint64 `json:"run_alignment,omitempty"`
	RunAllocCount int    `json:"run_alloc_count,omitempty"`
}

func runDump(args []string) error {
	poolPath := args[0]

	printVerbose("Opening pool: %s\n", poolPath)

	p, err := pool.Open(poolPath)
	if err != nil {
		return fmt.Errorf("failed to open pool: %w", err)
	}
	defer p.Close()

	records := walkChunks(p)

	var dumps []chunkDump
	for _, rec := range records {
		if dumpZone >= 0 && rec.ZoneID != uint32(dumpZone) {
			continue
		}
		if dumpUsedOnly && rec.Header.Type == block.ChunkTypeFree {
			continue
		}

		ht := headerTypeFromFlags(rec.Header.Flags)

		cd := chunkDump{
			Zone:    rec.ZoneID,
			Chunk:   rec.ChunkID,
			Type:    rec.Header.Type.String(),
			Flags:   uint16(rec.Header.Flags),
			SizeIdx: rec.Header.SizeIdx,
			Header:  ht.String(),
		}
		if rec.Header.Type == block.ChunkTypeRun {
			blockSize, alignment, allocCount := runOccupancy(p, rec.ZoneID, rec.ChunkID)
			cd.RunBlockSize = blockSize
			cd.RunAlignment = alignment
			cd.RunAllocCount = allocCount
		}
		dumps = append(dumps, cd)
	}

	if jsonOut {
		result := map[string]interface{}{
			"pool":   poolPath,
			"chunks": dumps,
		}
		return printJSON(result)
	}

	if !dumpCompact {
		printInfo("\nPool Dump: %s\n", poolPath)
		printInfo("%s\n\n", strings.Repeat("=", 40))
	}

	var lastZone uint32 = ^uint32(0)
	for _, cd := range dumps {
		if !dumpCompact && cd.Zone != lastZone {
			printInfo("[zone %d]\n", cd.Zone)
			lastZone = cd.Zone
		}
		printInfo("  chunk %-6d %-8s flags=0x%04x size_idx=%d header=%s\n",
			cd.Chunk, cd.Type, cd.Flags, cd.SizeIdx, cd.Header)
		if cd.Type == block.ChunkTypeRun.String() {
			printInfo("    run: block_size=%d alignment=%d allocated=%d/%d\n",
				cd.RunBlockSize, cd.RunAlignment, cd.RunAllocCount, block.MaxBlocksPerRun)
		}
	}

	return nil
}

// headerTypeFromFlags mirrors block's internal flag-to-header-type rule
// for display purposes.
func headerTypeFromFlags(flags block.ChunkFlags) block.HeaderType {
	switch {
	case flags&block.FlagCompactHeader != 0:
		return block.HeaderCompact
	case flags&block.FlagHeaderNone != 0:
		return block.HeaderNone
	default:
		return block.HeaderLegacy
	}
}

// runOccupancy reads a run chunk's metadata and counts how many of its
// MaxBlocksPerRun bitmap bits are set.
func runOccupancy(p *pool.Pool, zoneID, chunkID uint32) (blockSize, alignment uint64, allocCount int) {
	meta := block.ReadRunMeta(p, zoneID, chunkID)
	return meta.BlockSize, meta.Alignment, meta.AllocatedCount()
}
