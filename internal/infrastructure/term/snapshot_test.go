package term

import (
	"strings"
	"testing"

	"github.com/mtakeda/plansh/internal/domain"
)

func row(text string, width int) []domain.Cell {
	cells := make([]domain.Cell, width)
	for i, r := range []rune(text) {
		if i >= width {
			break
		}
		cells[i] = domain.Cell{Char: r}
	}
	return cells
}

func TestFormatNilSnapshot(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Fatalf("Format(nil) = %q, want empty", got)
	}
}

func TestFormatKeepsLastNonBlankRows(t *testing.T) {
	snap := &domain.TerminalSnapshot{Cols: 20, Rows: 15}
	for i := 0; i < 12; i++ {
		snap.Framebuffer = append(snap.Framebuffer, row("line", 20))
	}
	snap.Framebuffer = append(snap.Framebuffer, row("", 20))
	snap.Framebuffer = append(snap.Framebuffer, row("last", 20))

	got := Format(snap)
	if strings.Count(got, "\n") > domain.MaxSnapshotRows+1 {
		t.Fatalf("too many rows in output:\n%s", got)
	}
	if !strings.Contains(got, "last") {
		t.Fatalf("expected trailing row to survive:\n%s", got)
	}
	lines := strings.Split(got, "\n")
	// Header plus at most MaxSnapshotRows rows.
	if len(lines) != domain.MaxSnapshotRows+1 {
		t.Fatalf("got %d lines, want %d", len(lines), domain.MaxSnapshotRows+1)
	}
}

func TestFormatRedactsUnknownEventPayloads(t *testing.T) {
	snap := &domain.TerminalSnapshot{
		Cols: 80, Rows: 24,
		OSCEvents: []domain.OSCEvent{
			{Command: domain.OSCSetTitle, Payload: "vim main.go"},
			{Command: domain.OSCWorkingDir, Payload: "/home/user/project"},
			{Command: 52, Payload: "c2VjcmV0IGNsaXBib2FyZA=="},
		},
	}

	got := Format(snap)
	if !strings.Contains(got, "title: vim main.go") {
		t.Errorf("title payload missing:\n%s", got)
	}
	if !strings.Contains(got, "cwd: /home/user/project") {
		t.Errorf("cwd payload missing:\n%s", got)
	}
	if strings.Contains(got, "c2VjcmV0") {
		t.Errorf("clipboard payload leaked:\n%s", got)
	}
	if !strings.Contains(got, "osc(52)") {
		t.Errorf("unknown event should still be listed:\n%s", got)
	}
}

func TestFormatCapsLongPayloads(t *testing.T) {
	long := strings.Repeat("x", 150)
	snap := &domain.TerminalSnapshot{
		OSCEvents: []domain.OSCEvent{{Command: domain.OSCSetTitle, Payload: long}},
	}

	got := Format(snap)
	if !strings.Contains(got, strings.Repeat("x", domain.SnapshotPayloadLimit)+"…") {
		t.Fatalf("payload not capped with ellipsis:\n%s", got)
	}
	if strings.Contains(got, strings.Repeat("x", domain.SnapshotPayloadLimit+1)) {
		t.Fatalf("payload exceeds cap:\n%s", got)
	}
}

func TestFormatKeepsOnlyRecentEvents(t *testing.T) {
	snap := &domain.TerminalSnapshot{}
	for i := 0; i < 9; i++ {
		snap.OSCEvents = append(snap.OSCEvents, domain.OSCEvent{Command: 133})
	}
	snap.OSCEvents = append(snap.OSCEvents, domain.OSCEvent{Command: domain.OSCWorkingDir, Payload: "/tmp"})

	got := Format(snap)
	if strings.Count(got, "osc(133)") != domain.MaxSnapshotEvents-1 {
		t.Fatalf("expected %d redacted events, got:\n%s", domain.MaxSnapshotEvents-1, got)
	}
	if !strings.Contains(got, "cwd: /tmp") {
		t.Fatalf("most recent event missing:\n%s", got)
	}
}
