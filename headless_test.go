package main

import (
	"testing"

	"github.com/pthm-cable/terrarium/input"
)

func TestCheckStop(t *testing.T) {
	script := func(steps ...input.Step) *input.Script {
		s, err := input.NewScript(steps)
		if err != nil {
			t.Fatalf("NewScript: %v", err)
		}
		return s
	}
	quitting := script(input.Step{Frame: 9, Event: "quit"})
	empty := script()
	noQuit := script(input.Step{Frame: 0, Event: "move", X: 10, Y: 10})

	tests := []struct {
		name    string
		frames  int
		src     *input.Script
		wantErr bool
	}{
		{"frame limit, no script", 600, empty, false},
		{"no limit, quitting script", 0, quitting, false},
		{"no limit, no script", 0, empty, true},
		{"no limit, script without quit", 0, noQuit, true},
		{"negative limit", -1, quitting, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStop(tt.frames, tt.src)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkStop(%d) error = %v, wantErr %v", tt.frames, err, tt.wantErr)
			}
		})
	}
}
