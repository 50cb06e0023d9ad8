package main

import (
	"testing"

	"github.com/kilnsys/pmemblock/block"
	"github.com/kilnsys/pmemblock/pool"
)

func TestValidateCommandPasses(t *testing.T) {
	path := testPool(t)

	quiet = false
	verbose = false
	jsonOut = false

	output, err := captureOutput(t, func() error {
		return runValidate([]string{path})
	})
	if err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	assertContains(t, output, []string{"Result: ✓ VALID"})
}

func TestValidateCommandCatchesMissingFooter(t *testing.T) {
	path := testPool(t)

	p, err := pool.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	block.WriteChunkHeader(p, 0, 1, block.ChunkHeader{Type: block.ChunkTypeFree}, nil, false)
	p.Close()

	quiet = false
	verbose = false
	jsonOut = false

	output, err := captureOutput(t, func() error {
		return runValidate([]string{path})
	})
	if err == nil {
		t.Fatalf("runValidate() expected error for corrupted footer")
	}
	assertContains(t, output, []string{"Result: ✗ INVALID"})
}
