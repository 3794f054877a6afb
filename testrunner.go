package canopy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Text   string  `json:"text,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var keyNames = map[string]Key{
	"escape":    KeyEscape,
	"enter":     KeyEnter,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"left":      KeyLeft,
	"right":     KeyRight,
	"up":        KeyUp,
	"down":      KeyDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"tab":       KeyTab,
	"space":     KeySpace,
}

var modNames = map[string]KeyModifiers{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"meta":  ModMeta,
}

// parseChord reads a key name with optional modifier prefixes, such as
// "enter" or "shift+ctrl+left".
func parseChord(s string) (Key, KeyModifiers, error) {
	parts := strings.Split(strings.ToLower(s), "+")
	var mods KeyModifiers
	for _, p := range parts[:len(parts)-1] {
		m, ok := modNames[p]
		if !ok {
			return 0, 0, fmt.Errorf("unknown modifier %q", p)
		}
		mods |= m
	}
	key, ok := keyNames[parts[len(parts)-1]]
	if !ok {
		return 0, 0, fmt.Errorf("unknown key %q", s)
	}
	return key, mods, nil
}

// stepAction queues one step's input and returns how many further frames
// the runner should idle.
type stepAction func(c *Context) int

// compileStep validates st and turns it into the action run at its frame.
func compileStep(st testStep) (stepAction, error) {
	switch st.Action {
	case "click":
		return func(c *Context) int {
			c.InjectClick(st.X, st.Y)
			return 0
		}, nil
	case "drag":
		return func(c *Context) int {
			c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
			return 0
		}, nil
	case "key":
		key, mods, err := parseChord(st.Key)
		if err != nil {
			return nil, err
		}
		return func(c *Context) int {
			c.InjectKey(key, mods)
			return 0
		}, nil
	case "text":
		if st.Text == "" {
			return nil, fmt.Errorf("empty text")
		}
		return func(c *Context) int {
			c.InjectText(st.Text)
			return 0
		}, nil
	case "wait":
		// The frame that reads the step counts as the first.
		idle := max(st.Frames-1, 0)
		return func(*Context) int { return idle }, nil
	}
	return nil, fmt.Errorf("unknown action %q", st.Action)
}

// TestRunner sequences injected input across frames for automated UI
// tests. Attach it with SetTestRunner; it advances once per Update.
//
// Steps: "click" (x, y), "drag" (fromX, fromY, toX, toY, frames), "key"
// (key name with optional "shift+", "ctrl+", "alt+", "meta+" prefixes),
// "text" (text), "wait" (frames).
type TestRunner struct {
	actions []stepAction
	next    int
	idle    int
	done    bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	r := &TestRunner{actions: make([]stepAction, len(script.Steps))}
	for i, st := range script.Steps {
		act, err := compileStep(st)
		if err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
		r.actions[i] = act
	}
	return r, nil
}

// SetTestRunner attaches a TestRunner to the context. Pass nil to detach.
func (c *Context) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps have been executed and their input
// consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at the start of each Update. A step waits until the previous
// step's injected input has been consumed.
func (r *TestRunner) step(c *Context) {
	switch {
	case r.done, c.PendingInjections() > 0:
		return
	case r.idle > 0:
		r.idle--
		return
	case r.next == len(r.actions):
		r.done = true
		return
	}
	r.idle = r.actions[r.next](c)
	r.next++
	if r.next == len(r.actions) && r.idle == 0 && c.PendingInjections() == 0 {
		r.done = true
	}
}
