package main

import "testing"

func TestInfoCommand(t *testing.T) {
	path := testPool(t)

	quiet = false
	verbose = false
	jsonOut = false

	output, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	if err != nil {
		t.Fatalf("runInfo() error = %v", err)
	}
	assertContains(t, output, []string{"Pool Information", "Zone 0 offset", "Chunk size"})

	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	if err != nil {
		t.Fatalf("runInfo() json error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{"\"zone_count\""})
}
