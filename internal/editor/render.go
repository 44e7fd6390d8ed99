package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Render draws one frame. The text body and gutter repaint only when
// the dirty flag is set; the status bar and cursor position are
// refreshed on every draw, so pure cursor motion and command-line
// editing never repaint the body.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	e.width = w
	e.height = h
	rows := h - 1
	if rows < 0 {
		rows = 0
	}
	gutter := e.gutterWidth()

	s.HideCursor()

	if e.dirty {
		s.SetStyle(e.styleMain)
		s.Clear()
		lineCount := e.text.LineCount()
		for y := 0; y < rows; y++ {
			lineIdx := e.topLine + y
			e.drawGutter(s, y, w, gutter, lineIdx, lineCount)
			if lineIdx < lineCount {
				e.drawLine(s, y, w, gutter, e.text.Line(lineIdx))
			}
		}
		e.dirty = false
	}

	e.drawStatusBar(s, w, h-1)

	var cx, cy int
	if e.mode == ModeCommand {
		// Past the "CMD | " prompt on the status row.
		cx = 6 + len(e.cmd)
		cy = h - 1
	} else {
		line := strings.TrimSuffix(e.text.Line(e.cursor.Row), "\n")
		cx = gutter + visualCol([]rune(line), e.cursor.Col, e.tabWidth)
		cy = e.cursor.Row - e.topLine
	}
	if cx >= w {
		cx = w - 1
	}
	cursorStyle := tcell.CursorStyleSteadyBlock
	if e.mode != ModeNormal {
		cursorStyle = tcell.CursorStyleSteadyBar
	}
	s.SetCursorStyle(cursorStyle)
	s.ShowCursor(cx, cy)
	s.Show()
}

// gutterWidth is the column at which line text starts. Line numbers are
// right-aligned in the column before it.
func (e *Editor) gutterWidth() int {
	padding := int(math.Ceil(math.Log10(float64(e.text.LineCount()))))
	if padding < 5 {
		padding = 5
	}
	return padding
}

func (e *Editor) drawGutter(s tcell.Screen, y, w, gutter, lineIdx, lineCount int) {
	var label string
	style := e.styleLineNumber
	if lineIdx < lineCount {
		label = fmt.Sprintf("%*d", gutter-1, lineIdx+1)
	} else {
		label = fmt.Sprintf("%*s", gutter-1, "~")
		style = e.styleFiller
	}
	for x, r := range label {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
	}
}

func (e *Editor) drawLine(s tcell.Screen, y, w, gutter int, line string) {
	x := gutter
	for _, r := range strings.TrimSuffix(line, "\n") {
		if x >= w {
			break
		}
		if r == '\t' {
			for i := 0; i < e.tabWidth && x < w; i++ {
				s.SetContent(x, y, ' ', nil, e.styleMain)
				x++
			}
			continue
		}
		s.SetContent(x, y, r, nil, e.styleMain)
		x++
	}
}

func (e *Editor) drawStatusBar(s tcell.Screen, w, y int) {
	if y < 0 {
		return
	}
	rest := fmt.Sprintf("%d lines | %d bytes", e.text.LineCount(), e.text.Bytes())
	restStyle := e.styleStatus
	switch {
	case e.mode == ModeCommand:
		rest = string(e.cmd)
		restStyle = e.styleCommand
	case e.cmdErr != "":
		rest = e.cmdErr
		restStyle = e.styleError
	}
	x := 0
	for _, r := range e.mode.String() + " | " {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, e.styleStatus)
		x++
	}
	for _, r := range rest {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, restStyle)
		x++
	}
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, e.styleStatus)
	}
}

// visualCol maps a logical cursor column to a screen column. Tabs
// render as tabWidth columns apiece, every other rune as one.
func visualCol(line []rune, col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	v := 0
	for i := 0; i < col; i++ {
		if line[i] == '\t' {
			v += tabWidth
			continue
		}
		v++
	}
	return v
}
