package app

import (
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/vkarasov/rovi/internal/config"
	"github.com/vkarasov/rovi/internal/editor"
	"github.com/vkarasov/rovi/internal/logger"
)

// App is the top-level runtime for rovi.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

// Run drives the synchronous event loop: one blocking input event,
// one dispatch through the mode state machine, one draw, repeat.
// tcell's Fini restores the terminal on every exit path.
func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Editor.Debug); err != nil {
		return err
	}
	defer logger.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ed := editor.New(cfg)
	if len(a.args) > 0 {
		if err := ed.OpenFile(a.args[0]); err != nil {
			logger.Error("open file failed", "path", a.args[0], "err", err)
			return err
		}
	}
	ed.Resize(s.Size())

	ed.Render(s)
	for {
		switch ev := s.PollEvent().(type) {
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			logger.Debug("terminal resized", "width", w, "height", h)
			s.Sync()
			ed.Resize(w, h)
		}
		ed.Render(s)
	}
}
