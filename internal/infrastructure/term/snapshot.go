// Package term formats captured terminal snapshots into prompt text. The
// snapshot arrives as a value from the terminal-emulation collaborator; this
// package never parses raw escape sequences.
package term

import (
	"fmt"
	"strings"

	"github.com/mtakeda/plansh/internal/domain"
)

// Format renders a snapshot as text for the system prompt: the last few
// non-blank screen rows plus recent OSC events. Only window-title and
// working-directory event payloads are included, capped with an ellipsis
// marker; every other payload is dropped so clipboard writes and prompt
// hooks cannot leak shell state into a provider request.
func Format(snap *domain.TerminalSnapshot) string {
	if snap == nil {
		return ""
	}

	rows := visibleRows(snap)
	events := recentEvents(snap)
	if len(rows) == 0 && len(events) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Terminal snapshot (%dx%d, cursor at row %d, col %d):\n",
		snap.Cols, snap.Rows, snap.CursorRow, snap.CursorCol)
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(row)
		b.WriteByte('\n')
	}
	if len(events) > 0 {
		b.WriteString("Recent terminal events:\n")
		for _, ev := range events {
			b.WriteString("  ")
			b.WriteString(ev)
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func visibleRows(snap *domain.TerminalSnapshot) []string {
	var rows []string
	for _, cells := range snap.Framebuffer {
		var line strings.Builder
		for _, cell := range cells {
			if cell.Char == 0 {
				line.WriteByte(' ')
				continue
			}
			line.WriteRune(cell.Char)
		}
		text := strings.TrimRight(line.String(), " ")
		if text != "" {
			rows = append(rows, text)
		}
	}
	if len(rows) > domain.MaxSnapshotRows {
		rows = rows[len(rows)-domain.MaxSnapshotRows:]
	}
	return rows
}

func recentEvents(snap *domain.TerminalSnapshot) []string {
	events := snap.OSCEvents
	if len(events) > domain.MaxSnapshotEvents {
		events = events[len(events)-domain.MaxSnapshotEvents:]
	}

	var out []string
	for _, ev := range events {
		switch ev.Command {
		case domain.OSCSetTitleAndIcon, domain.OSCSetTitle:
			out = append(out, "title: "+capPayload(ev.Payload))
		case domain.OSCWorkingDir:
			out = append(out, "cwd: "+capPayload(ev.Payload))
		default:
			out = append(out, fmt.Sprintf("osc(%d)", ev.Command))
		}
	}
	return out
}

func capPayload(payload string) string {
	runes := []rune(payload)
	if len(runes) <= domain.SnapshotPayloadLimit {
		return payload
	}
	return string(runes[:domain.SnapshotPayloadLimit]) + "…"
}
