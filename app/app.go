package app

import (
	"context"

	"github.com/soocke/graph-score/ui/presenter"
	"github.com/soocke/graph-score/ui/theme"
	"github.com/soocke/graph-score/ui/view"

	tk "modernc.org/tk9.0"
)

// TkApp hosts the interaction loop in a Tk window. Keys and buttons dispatch
// commands on the Tk thread; a TclAfter loop drives presenters and the idle
// re-render.
type TkApp struct {
	ctx     context.Context
	c       *AppContainer
	root    *view.RootView
	loop    *presenter.Loop
	afterID string
	closed  bool
}

func NewTkApp(ctx context.Context, c *AppContainer, root *view.RootView) *TkApp {
	return &TkApp{ctx: ctx, c: c, root: root}
}

// Start builds the window and blocks until it is closed.
func (a *TkApp) Start() {
	cfg := a.c.Config
	tk.App.WmTitle(cfg.WindowTitle)
	tk.WmProtocol(tk.App, "WM_DELETE_WINDOW", a.requestQuit)
	theme.SetDark(cfg.DarkMode)

	a.root.Build(a.onKey, a.requestQuit)
	a.c.Interaction.OnQuit = a.exitHandler
	a.loop = presenter.NewLoop(a.c.SessionPresenter, a.c.StatePresenter, a.idle, a.scheduleUpdate)

	a.c.Interaction.Start()
	a.loop.Tick()
	tk.App.Wait()
	a.c.LogSummary()
}

func (a *TkApp) onKey(key string) {
	if err := a.c.Interaction.DispatchKey(a.ctx, key); err != nil && a.c.Logger != nil {
		a.c.Logger.Error("command failed", "key", key, "error", err)
	}
}

// requestQuit routes window close and Exit through the interaction loop, so a
// running scan restores its slice before the window is destroyed.
func (a *TkApp) requestQuit() { a.onKey("Escape") }

func (a *TkApp) idle() {
	if a.ctx.Err() != nil {
		a.requestQuit()
		return
	}
	a.c.Interaction.Tick()
}

func (a *TkApp) scheduleUpdate() {
	if a.closed {
		return
	}
	// TclAfter keeps the update loop on Tk's event loop thread.
	a.afterID = tk.TclAfter(a.c.Config.IdleTick(), a.loop.Tick)
}

func (a *TkApp) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	if a.afterID != "" {
		tk.TclAfterCancel(a.afterID)
	}
	tk.Destroy(tk.App)
}
