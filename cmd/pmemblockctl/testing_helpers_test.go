package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kilnsys/pmemblock/block"
	"github.com/kilnsys/pmemblock/pool"
)

// testPool creates a small pool file with a handful of chunks in known
// states (free, used with a footer, a run with two allocated blocks) and
// returns the path to it.
func testPool(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.pool")
	p, err := pool.Create(path, pool.HeaderSize+8*block.ChunkSize)
	if err != nil {
		t.Fatalf("pool.Create: %v", err)
	}
	defer p.Close()

	block.WriteChunkHeader(p, 0, 0, block.ChunkHeader{Type: block.ChunkTypeUsed, SizeIdx: 2}, nil, false)
	block.WriteChunkHeader(p, 0, 1, block.ChunkHeader{Type: block.ChunkTypeFooter}, nil, true)
	block.WriteChunkHeader(p, 0, 2, block.ChunkHeader{Type: block.ChunkTypeFree}, nil, false)
	block.WriteChunkHeader(p, 0, 3, block.ChunkHeader{Type: block.ChunkTypeRun, SizeIdx: 1}, nil, false)
	block.InitRunMeta(p, 0, 3, 128, 0)

	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
