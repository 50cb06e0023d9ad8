package main

import "testing"

func TestDumpCommand(t *testing.T) {
	tests := []struct {
		name           string
		zone           int
		usedOnly       bool
		compact        bool
		wantJSON       bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "dump everything",
			zone:        -1,
			wantContain: []string{"chunk 0", "USED", "FOOTER", "FREE", "RUN"},
		},
		{
			name:           "dump compact",
			zone:           -1,
			compact:        true,
			wantContain:    []string{"chunk 0"},
			wantNotContain: []string{"Pool Dump", "===="},
		},
		{
			name:        "dump as JSON",
			zone:        -1,
			wantJSON:    true,
			wantContain: []string{"\"type\"", "\"chunk\""},
		},
		{
			name:           "dump used-only hides free chunks",
			zone:           -1,
			usedOnly:       true,
			wantContain:    []string{"USED", "RUN"},
			wantNotContain: []string{"chunk 2 "},
		},
		{
			name:        "dump single zone",
			zone:        0,
			wantContain: []string{"[zone 0]"},
		},
	}

	path := testPool(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiet = false
			verbose = false
			jsonOut = tt.wantJSON
			dumpZone = tt.zone
			dumpUsedOnly = tt.usedOnly
			dumpCompact = tt.compact

			output, err := captureOutput(t, func() error {
				return runDump([]string{path})
			})
			if err != nil {
				t.Fatalf("runDump() error = %v", err)
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}

			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}
