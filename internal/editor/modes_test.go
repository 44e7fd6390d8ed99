package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func keyEsc() *tcell.EventKey       { return tcell.NewEventKey(tcell.KeyEscape, 0, 0) }
func keyEnter() *tcell.EventKey     { return tcell.NewEventKey(tcell.KeyEnter, '\r', 0) }
func keyBackspace() *tcell.EventKey { return tcell.NewEventKey(tcell.KeyBackspace2, 0, 0) }

func TestInsertEntryPoints(t *testing.T) {
	tests := []struct {
		name    string
		key     rune
		wantCol int
	}{
		{"i stays put", 'i', 1},
		{"I jumps to line start", 'I', 0},
		{"a advances one", 'a', 2},
		{"A jumps past line end", 'A', 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor("abc")
			e.cursor.Col = 1
			e.HandleKey(keyRune(tt.key))
			if e.mode != ModeInsert {
				t.Fatalf("mode = %v, want insert", e.mode)
			}
			if e.cursor.Col != tt.wantCol {
				t.Fatalf("col = %d, want %d", e.cursor.Col, tt.wantCol)
			}
		})
	}
}

func TestEscapeLeavesInsertAndStepsBack(t *testing.T) {
	e := newTestEditor("")
	e.HandleKey(keyRune('i'))
	typeString(e, "hi")
	e.HandleKey(keyEsc())

	if e.Content() != "hi" {
		t.Fatalf("content = %q, want %q", e.Content(), "hi")
	}
	if e.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", e.mode)
	}
	if e.cursor.Row != 0 || e.cursor.Col != 1 {
		t.Fatalf("cursor = %+v, want row 0 col 1", e.cursor)
	}
}

func TestEnterIgnoredInNormalMode(t *testing.T) {
	e := newTestEditor("abc")
	e.HandleKey(keyEnter())
	if e.Content() != "abc" {
		t.Fatalf("content = %q, want %q", e.Content(), "abc")
	}
	if e.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", e.mode)
	}
}

func TestEnterSplitsLineInInsertMode(t *testing.T) {
	e := newTestEditor("abc")
	e.cursor.Col = 1
	e.HandleKey(keyRune('i'))
	e.HandleKey(keyEnter())
	if e.Content() != "a\nbc" {
		t.Fatalf("content = %q, want %q", e.Content(), "a\nbc")
	}
	if e.cursor.Row != 1 || e.cursor.Col != 0 {
		t.Fatalf("cursor = %+v, want row 1 col 0", e.cursor)
	}
}

func TestTabInsertsTabRune(t *testing.T) {
	e := newTestEditor("ab")
	e.HandleKey(keyRune('i'))
	e.HandleKey(tcell.NewEventKey(tcell.KeyTab, '\t', 0))
	if e.Content() != "\tab" {
		t.Fatalf("content = %q, want %q", e.Content(), "\tab")
	}
}

func TestNormalLineJumps(t *testing.T) {
	e := newTestEditor("abcdef")
	e.HandleKey(keyRune('$'))
	if e.cursor.Col != 5 {
		t.Fatalf("$ col = %d, want 5", e.cursor.Col)
	}
	e.HandleKey(keyRune('0'))
	if e.cursor.Col != 0 {
		t.Fatalf("0 col = %d, want 0", e.cursor.Col)
	}
}

func TestQuitCommand(t *testing.T) {
	e := newTestEditor("abc")
	e.HandleKey(keyRune(':'))
	if e.mode != ModeCommand {
		t.Fatalf("mode = %v, want command", e.mode)
	}
	e.HandleKey(keyRune('q'))
	if !e.HandleKey(keyEnter()) {
		t.Fatalf("expected quit")
	}
	if e.cmdErr != "" {
		t.Fatalf("cmdErr = %q, want empty", e.cmdErr)
	}
}

func TestUnknownCommand(t *testing.T) {
	e := newTestEditor("abc")
	e.HandleKey(keyRune(':'))
	e.HandleKey(keyRune('x'))
	if e.HandleKey(keyEnter()) {
		t.Fatalf("unexpected quit")
	}
	if e.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", e.mode)
	}
	if e.cmdErr != "Unknown command: x" {
		t.Fatalf("cmdErr = %q", e.cmdErr)
	}
	if len(e.cmd) != 0 {
		t.Fatalf("cmd buffer not cleared: %q", string(e.cmd))
	}
}

func TestCommandErrorClearedOnReentry(t *testing.T) {
	e := newTestEditor("abc")
	e.HandleKey(keyRune(':'))
	e.HandleKey(keyRune('x'))
	e.HandleKey(keyEnter())
	if e.cmdErr == "" {
		t.Fatalf("expected a command error")
	}

	e.HandleKey(keyRune(':'))
	if e.cmdErr != "" {
		t.Fatalf("cmdErr = %q, want cleared on ':'", e.cmdErr)
	}
}

func TestCommandErrorClearedOnInsert(t *testing.T) {
	e := newTestEditor("abc")
	e.cmdErr = "Unknown command: x"
	e.HandleKey(keyRune('i'))
	if e.cmdErr != "" {
		t.Fatalf("cmdErr = %q, want cleared on insert entry", e.cmdErr)
	}
}

func TestCommandEscapeDiscards(t *testing.T) {
	e := newTestEditor("abc")
	e.HandleKey(keyRune(':'))
	typeString(e, "qq")
	e.HandleKey(keyEsc())
	if e.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", e.mode)
	}
	if len(e.cmd) != 0 {
		t.Fatalf("cmd buffer not cleared: %q", string(e.cmd))
	}
}

func TestCommandBackspace(t *testing.T) {
	e := newTestEditor("abc")
	e.HandleKey(keyRune(':'))
	typeString(e, "wq")

	e.HandleKey(keyBackspace())
	if got := string(e.cmd); got != "w" {
		t.Fatalf("cmd = %q, want %q", got, "w")
	}
	if e.mode != ModeCommand {
		t.Fatalf("mode = %v, want command", e.mode)
	}

	// Backspace on an empty buffer falls back to Normal.
	e.HandleKey(keyBackspace())
	e.HandleKey(keyBackspace())
	if e.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", e.mode)
	}
}

func TestCommandKeysDoNotTouchDocument(t *testing.T) {
	e := newTestEditor("abc")
	e.HandleKey(keyRune(':'))
	typeString(e, "hello")
	e.HandleKey(keyEsc())
	if e.Content() != "abc" {
		t.Fatalf("content = %q, want %q", e.Content(), "abc")
	}
}

func TestExecCommand(t *testing.T) {
	outcome, err := execCommand("q")
	if err != nil || outcome != OutcomeQuit {
		t.Fatalf("execCommand(q) = %v, %v", outcome, err)
	}

	for _, cmd := range []string{"", "w", "quit", "Q", " q"} {
		outcome, err := execCommand(cmd)
		if err == nil {
			t.Fatalf("execCommand(%q): expected error", cmd)
		}
		if outcome != OutcomeNone {
			t.Fatalf("execCommand(%q) outcome = %v, want none", cmd, outcome)
		}
		want := "Unknown command: " + cmd
		if err.Error() != want {
			t.Fatalf("execCommand(%q) error = %q, want %q", cmd, err.Error(), want)
		}
	}
}
