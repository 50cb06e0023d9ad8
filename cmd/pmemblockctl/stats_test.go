package main

import "testing"

func TestStatsCommand(t *testing.T) {
	path := testPool(t)

	quiet = false
	verbose = false
	jsonOut = false

	output, err := captureOutput(t, func() error {
		return runStats([]string{path})
	})
	if err != nil {
		t.Fatalf("runStats() error = %v", err)
	}
	assertContains(t, output, []string{"Pool Statistics", "Chunks by Type", "Run Occupancy"})

	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runStats([]string{path})
	})
	if err != nil {
		t.Fatalf("runStats() json error = %v", err)
	}
	assertJSON(t, output)
}
