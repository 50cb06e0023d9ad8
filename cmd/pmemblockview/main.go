package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kilnsys/pmemblock/cmd/pmemblockview/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args := os.Args[1:]
	debugMode := false

	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("pmemblockview %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	poolPath := filteredArgs[0]
	logger.Info("starting pmemblockview", "path", poolPath, "debug", debugMode)

	if _, err := os.Stat(poolPath); err != nil {
		logger.Error("pool file not found", "path", poolPath, "error", err)
		fmt.Fprintf(os.Stderr, "Error: pool file not found: %s\n", poolPath)
		os.Exit(1)
	}

	m := NewModel(poolPath)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing resources", "error", err)
		}
	}

	logger.Info("pmemblockview exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: pmemblockview [options] <pool-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'pmemblockview --help' for more information.\n")
}

func printHelp() {
	fmt.Println("pmemblockview - Interactive TUI for persistent-memory block pools")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  pmemblockview [options] <pool-file>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches an interactive terminal UI for walking a pool's zones and")
	fmt.Println("  chunks, inspecting chunk headers and run occupancy as you go.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Move selection")
	fmt.Println("    tab         Switch between chunk list and detail pane")
	fmt.Println("    u           Toggle used-only filter")
	fmt.Println("    y           Copy selected chunk's offset")
	fmt.Println("    r           Reread the pool from disk")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.pmemblockview/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  pmemblockview heap.pool")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'pmemblockctl' command instead.")
}
