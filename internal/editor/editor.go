package editor

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/vkarasov/rovi/internal/config"
	"github.com/vkarasov/rovi/internal/logger"
	"github.com/vkarasov/rovi/internal/rope"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
)

// String returns the short mode tag shown in the status bar.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INS"
	case ModeCommand:
		return "CMD"
	default:
		return "NRM"
	}
}

type Cursor struct {
	Row int
	Col int
}

// Editor owns the document, cursor, viewport and mode state. All
// mutation happens on the event-loop goroutine; there is no locking.
type Editor struct {
	text      rope.Rope
	cursor    Cursor
	topLine   int
	stickyCol int
	mode      Mode
	cmd       []rune
	cmdErr    string
	dirty     bool
	filename  string

	tabWidth int
	width    int
	height   int

	styleMain       tcell.Style
	styleStatus     tcell.Style
	styleCommand    tcell.Style
	styleError      tcell.Style
	styleLineNumber tcell.Style
	styleFiller     tcell.Style
}

func New(cfg config.Config) *Editor {
	tabWidth := cfg.Editor.TabWidth
	if tabWidth < 1 {
		tabWidth = 1
	}
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorBlack)
	statusFg := parseColor(cfg.Theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(cfg.Theme.StatuslineBackground, tcell.ColorGray)
	commandFg := parseColor(cfg.Theme.CommandForeground, tcell.ColorBlue)
	errorFg := parseColor(cfg.Theme.ErrorForeground, tcell.ColorRed)
	lineNumberFg := parseColor(cfg.Theme.LineNumberForeground, tcell.ColorGray)
	fillerFg := parseColor(cfg.Theme.FillerForeground, tcell.ColorBlue)
	return &Editor{
		text:            rope.New(),
		mode:            ModeNormal,
		dirty:           true,
		tabWidth:        tabWidth,
		styleMain:       tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		styleStatus:     tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		styleCommand:    tcell.StyleDefault.Foreground(commandFg).Background(statusBg),
		styleError:      tcell.StyleDefault.Foreground(errorFg).Background(statusBg),
		styleLineNumber: tcell.StyleDefault.Foreground(lineNumberFg).Background(mainBg),
		styleFiller:     tcell.StyleDefault.Foreground(fillerFg).Background(mainBg),
	}
}

// OpenFile replaces the document with the contents of path, read as
// UTF-8 text.
func (e *Editor) OpenFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	text, err := rope.FromReader(f)
	if err != nil {
		return err
	}
	e.text = text
	e.cursor = Cursor{}
	e.topLine = 0
	e.stickyCol = 0
	e.mode = ModeNormal
	e.cmd = e.cmd[:0]
	e.cmdErr = ""
	e.filename = path
	e.dirty = true
	logger.Info("opened file", "path", path, "lines", e.text.LineCount(), "bytes", e.text.Bytes())
	return nil
}

// SetText replaces the document with the given text and resets the
// cursor and viewport.
func (e *Editor) SetText(text string) {
	e.text = rope.FromString(text)
	e.cursor = Cursor{}
	e.topLine = 0
	e.stickyCol = 0
	e.dirty = true
}

// Content returns the full document text.
func (e *Editor) Content() string {
	return e.text.String()
}

// Resize records a new terminal size and pulls the viewport back so the
// cursor stays inside the visible band. A resize may move topLine by
// more than one line; keystroke-driven scrolling never does.
func (e *Editor) Resize(w, h int) {
	e.width = w
	e.height = h
	rows := e.visibleRows()
	if e.cursor.Row < e.topLine {
		e.topLine = e.cursor.Row
	}
	if e.cursor.Row > e.topLine+rows-1 {
		e.topLine = e.cursor.Row - rows + 1
	}
	if e.topLine < 0 {
		e.topLine = 0
	}
	e.dirty = true
}

// visibleRows is the number of text rows, one terminal row being
// reserved for the status bar.
func (e *Editor) visibleRows() int {
	rows := e.height - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

// HandleKey dispatches one key event through the active mode. It
// returns true when the editor should stop.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	switch e.mode {
	case ModeInsert:
		e.handleInsert(ev)
		return false
	case ModeCommand:
		return e.handleCommand(ev)
	default:
		e.handleNormal(ev)
		return false
	}
}

func (e *Editor) handleNormal(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft:
		e.moveLeft()
	case tcell.KeyDown:
		e.moveDown()
	case tcell.KeyUp:
		e.moveUp()
	case tcell.KeyRight:
		e.moveRight()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'i':
			e.enterInsert()
		case 'I':
			e.cursor.Col = 0
			e.enterInsert()
		case 'a':
			e.enterInsert()
			e.moveRight()
		case 'A':
			e.cursor.Col = e.lineLength(e.cursor.Row)
			e.enterInsert()
			e.moveRight()
		case 'h':
			e.moveLeft()
		case 'j':
			e.moveDown()
		case 'k':
			e.moveUp()
		case 'l':
			e.moveRight()
		case ':':
			e.cmdErr = ""
			e.mode = ModeCommand
		case '0':
			e.cursor.Col = 0
		case '$':
			e.cursor.Col = e.lineLength(e.cursor.Row)
		}
	}
}

func (e *Editor) handleInsert(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.moveLeft()
		e.mode = ModeNormal
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.backspace()
	case tcell.KeyEnter:
		e.insertNewline()
	case tcell.KeyLeft:
		e.moveLeft()
	case tcell.KeyDown:
		e.moveDown()
	case tcell.KeyUp:
		e.moveUp()
	case tcell.KeyRight:
		e.moveRight()
	case tcell.KeyTab:
		e.insertRune('\t')
	case tcell.KeyRune:
		e.insertRune(ev.Rune())
	}
}

func (e *Editor) handleCommand(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		e.cmd = append(e.cmd, ev.Rune())
	case tcell.KeyEscape:
		e.cmd = e.cmd[:0]
		e.mode = ModeNormal
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.cmd) == 0 {
			e.mode = ModeNormal
		} else {
			e.cmd = e.cmd[:len(e.cmd)-1]
		}
	case tcell.KeyEnter:
		cmd := string(e.cmd)
		e.cmd = e.cmd[:0]
		outcome, err := execCommand(cmd)
		if err != nil {
			e.cmdErr = err.Error()
			logger.Warn("command failed", "cmd", cmd, "err", err)
			e.mode = ModeNormal
			return false
		}
		if outcome == OutcomeQuit {
			logger.Info("quit requested")
			return true
		}
		e.mode = ModeNormal
	}
	return false
}

func (e *Editor) enterInsert() {
	e.cmdErr = ""
	e.mode = ModeInsert
}

// lineLength returns the maximum permitted cursor column on the given
// line under the current mode. The trailing newline is never a cursor
// target, and outside Insert mode the cursor rests on a character, so
// the end-of-line position is only reachable in Insert.
func (e *Editor) lineLength(row int) int {
	line := e.text.Line(row)
	n := utf8.RuneCountInString(line)
	if strings.HasSuffix(line, "\n") {
		n--
	}
	if e.mode != ModeInsert {
		n--
	}
	if n < 0 {
		n = 0
	}
	return n
}

// charOffset translates the 2-D cursor into an absolute rune offset.
func (e *Editor) charOffset() int {
	return e.text.LineStart(e.cursor.Row) + e.cursor.Col
}

func (e *Editor) moveLeft() {
	if e.cursor.Col > 0 {
		e.cursor.Col--
	}
	e.stickyCol = e.cursor.Col
}

func (e *Editor) moveRight() {
	if e.cursor.Col < e.lineLength(e.cursor.Row) {
		e.cursor.Col++
	}
	e.stickyCol = e.cursor.Col
}

func (e *Editor) moveUp() {
	if e.cursor.Row == 0 {
		return
	}
	e.cursor.Row--
	e.cursor.Col = min(e.stickyCol, e.lineLength(e.cursor.Row))
	if e.cursor.Row < e.topLine {
		e.topLine--
		e.dirty = true
	}
}

func (e *Editor) moveDown() {
	if e.cursor.Row >= e.text.LineCount()-1 {
		return
	}
	e.cursor.Row++
	e.cursor.Col = min(e.stickyCol, e.lineLength(e.cursor.Row))
	if e.cursor.Row > e.topLine+e.visibleRows()-2 {
		e.topLine++
		e.dirty = true
	}
}

func (e *Editor) insertRune(r rune) {
	e.text = e.text.InsertRune(e.charOffset(), r)
	e.cursor.Col++
	e.stickyCol = e.cursor.Col
	e.dirty = true
}

func (e *Editor) backspace() {
	offset := e.charOffset()
	if e.cursor.Col > 0 {
		e.text = e.text.Delete(offset-1, offset)
		e.cursor.Col--
		e.stickyCol = e.cursor.Col
		e.dirty = true
		return
	}
	if e.cursor.Row == 0 {
		return
	}
	// Join with the previous line by deleting its terminating newline.
	prevLen := e.lineLength(e.cursor.Row - 1)
	start := e.text.LineStart(e.cursor.Row-1) + prevLen
	e.text = e.text.Delete(start, offset)
	e.cursor.Row--
	e.cursor.Col = prevLen
	if e.cursor.Row < e.topLine {
		e.topLine--
	}
	e.stickyCol = e.cursor.Col
	e.dirty = true
}

func (e *Editor) insertNewline() {
	e.text = e.text.InsertRune(e.charOffset(), '\n')
	e.cursor.Row++
	e.cursor.Col = 0
	if e.cursor.Row > e.topLine+e.visibleRows()-2 {
		e.topLine++
	}
	e.stickyCol = e.cursor.Col
	e.dirty = true
}
