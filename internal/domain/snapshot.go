package domain

// OSC command types recognized by the snapshot formatter. Window-title and
// working-directory events are the only ones whose payload may reach the
// prompt; every other payload is dropped to avoid leaking shell state.
const (
	OSCSetTitleAndIcon = 0
	OSCSetTitle        = 2
	OSCWorkingDir      = 7
)

// Cell is one character position in a captured terminal framebuffer.
type Cell struct {
	Char rune `json:"char"`
}

// OSCEvent is an out-of-band terminal control sequence captured alongside the
// framebuffer (window-title change, working-directory report, clipboard
// write, ...).
type OSCEvent struct {
	Command int    `json:"command"`
	Payload string `json:"payload"`
}

// TerminalSnapshot is the value handed over by the terminal-emulation
// collaborator: a screen grid plus recent OSC events. The pipeline only
// formats it; it never parses raw byte streams.
type TerminalSnapshot struct {
	Cols        int        `json:"cols"`
	Rows        int        `json:"rows"`
	CursorRow   int        `json:"cursor_row"`
	CursorCol   int        `json:"cursor_col"`
	Framebuffer [][]Cell   `json:"framebuffer"`
	OSCEvents   []OSCEvent `json:"osc_events"`
}
