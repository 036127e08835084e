package input

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Step is one frame-stamped entry of a replay file.
//
//	- { frame: 0, event: key, key: "2" }
//	- { frame: 0, event: move, x: 194, y: 69 }
//	- { frame: 0, event: mouse_down, button: left }
//	- { frame: 3, event: mouse_up, button: left }
//	- { frame: 9, event: quit }
type Step struct {
	Frame  int     `yaml:"frame"`
	Event  string  `yaml:"event"` // key, move, mouse_down, mouse_up, quit
	Key    string  `yaml:"key,omitempty"`
	Button string  `yaml:"button,omitempty"`
	X      float32 `yaml:"x,omitempty"`
	Y      float32 `yaml:"y,omitempty"`
}

type scriptEntry struct {
	frame int
	move  bool
	x, y  float32
	ev    Event
}

// Script replays recorded input one frame per Poll call. Cursor moves take
// effect before the frame's events are returned.
type Script struct {
	entries        []scriptEntry
	next           int
	frame          int
	mouseX, mouseY float32
}

// LoadScript reads a YAML list of steps.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return NewScript(steps)
}

// NewScript validates steps and orders them by frame, keeping file order
// within a frame.
func NewScript(steps []Step) (*Script, error) {
	entries := make([]scriptEntry, 0, len(steps))
	for i, st := range steps {
		if st.Frame < 0 {
			return nil, fmt.Errorf("step %d: negative frame %d", i, st.Frame)
		}
		e := scriptEntry{frame: st.Frame}
		switch st.Event {
		case "move":
			e.move = true
			e.x, e.y = st.X, st.Y
		case "quit":
			e.ev = Event{Kind: EventQuit}
		case "key":
			k, err := ParseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			e.ev = Event{Kind: EventKeyDown, Key: k}
		case "mouse_down", "mouse_up":
			b, err := ParseButton(st.Button)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			kind := EventMouseDown
			if st.Event == "mouse_up" {
				kind = EventMouseUp
			}
			e.ev = Event{Kind: kind, Button: b}
		default:
			return nil, fmt.Errorf("step %d: unknown event %q", i, st.Event)
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].frame < entries[j].frame
	})
	return &Script{entries: entries}, nil
}

func (s *Script) Poll(buf []Event) []Event {
	for s.next < len(s.entries) && s.entries[s.next].frame <= s.frame {
		e := s.entries[s.next]
		s.next++
		if e.move {
			s.mouseX, s.mouseY = e.x, e.y
			continue
		}
		buf = append(buf, e.ev)
	}
	s.frame++
	return buf
}

func (s *Script) MousePosition() (float32, float32) {
	return s.mouseX, s.mouseY
}

// Quits reports whether the script contains a quit step.
func (s *Script) Quits() bool {
	for _, e := range s.entries {
		if !e.move && e.ev.Kind == EventQuit {
			return true
		}
	}
	return false
}

// Done reports whether every step has been replayed.
func (s *Script) Done() bool {
	return s.next >= len(s.entries)
}
