package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kilnsys/pmemblock/block"
	"github.com/kilnsys/pmemblock/pool"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <pool>",
		Short: "Show detailed pool statistics",
		Long: `The stats command shows detailed statistics about a pool: chunk
counts by type, header-type distribution among allocated chunks, and run
occupancy.

Example:
  pmemblockctl stats heap.pool
  pmemblockctl stats heap.pool --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

type PoolStats struct {
	FilePath string
	FileSize int64

	ZoneCount   int
	TotalChunks int

	ChunksByType   map[string]int
	HeaderTypes    map[string]int
	UsedBytes      int64
	FreeBytes      int64
	RunBlocksTotal int
	RunBlocksUsed  int
}

func runStats(args []string) error {
	poolPath := args[0]

	printVerbose("Opening pool: %s\n", poolPath)

	p, err := pool.Open(poolPath)
	if err != nil {
		return fmt.Errorf("failed to open pool: %w", err)
	}
	defer p.Close()

	counts := zoneChunkCounts(p.Size(), p.Layout())
	records := walkChunks(p)

	stats := PoolStats{
		FilePath:     poolPath,
		FileSize:     p.Size(),
		ZoneCount:    len(counts),
		TotalChunks:  len(records),
		ChunksByType: make(map[string]int),
		HeaderTypes:  make(map[string]int),
	}

	for _, rec := range records {
		stats.ChunksByType[rec.Header.Type.String()]++

		switch rec.Header.Type {
		case block.ChunkTypeFree:
			stats.FreeBytes += block.ChunkSize
		case block.ChunkTypeUsed:
			stats.UsedBytes += block.ChunkSize
			stats.HeaderTypes[headerTypeFromFlags(rec.Header.Flags).String()]++
		case block.ChunkTypeRun:
			meta := block.ReadRunMeta(p, rec.ZoneID, rec.ChunkID)
			alloc := meta.AllocatedCount()
			stats.RunBlocksTotal += block.MaxBlocksPerRun
			stats.RunBlocksUsed += alloc
			stats.HeaderTypes[headerTypeFromFlags(rec.Header.Flags).String()]++
		}
	}

	if jsonOut {
		return printJSON(stats)
	}

	printInfo("\nPool Statistics: %s\n", poolPath)
	printInfo("%s\n\n", strings.Repeat("=", 40))

	printInfo("File Information:\n")
	printInfo("  Path: %s\n", poolPath)
	printInfo("  Size: %s (%s bytes)\n\n", formatBytes(stats.FileSize), formatNumber(stats.FileSize))

	printInfo("Structure:\n")
	printInfo("  Zones: %d\n", stats.ZoneCount)
	printInfo("  Total chunk slots: %s\n", formatNumber(int64(stats.TotalChunks)))
	printInfo("  Used bytes: %s\n", formatBytes(stats.UsedBytes))
	printInfo("  Free bytes: %s\n\n", formatBytes(stats.FreeBytes))

	if len(stats.ChunksByType) > 0 {
		printInfo("Chunks by Type:\n")
		var types []string
		for t := range stats.ChunksByType {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool {
			return stats.ChunksByType[types[i]] > stats.ChunksByType[types[j]]
		})
		for _, t := range types {
			count := stats.ChunksByType[t]
			percentage := float64(count) * 100.0 / float64(stats.TotalChunks)
			printInfo("  %s: %s (%.1f%%)\n", t, formatNumber(int64(count)), percentage)
		}
		printInfo("\n")
	}

	if len(stats.HeaderTypes) > 0 {
		printInfo("Header Types (allocated chunks):\n")
		for _, ht := range []string{"LEGACY", "COMPACT", "NONE"} {
			if count, ok := stats.HeaderTypes[ht]; ok {
				printInfo("  %s: %d\n", ht, count)
			}
		}
		printInfo("\n")
	}

	if stats.RunBlocksTotal > 0 {
		percentage := float64(stats.RunBlocksUsed) * 100.0 / float64(stats.RunBlocksTotal)
		printInfo("Run Occupancy:\n")
		printInfo("  Allocated sub-blocks: %d/%d (%.1f%%)\n", stats.RunBlocksUsed, stats.RunBlocksTotal, percentage)
	}

	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	// Add commas
	var result strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}
