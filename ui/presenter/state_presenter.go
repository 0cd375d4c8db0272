package presenter

import (
	"time"

	"github.com/soocke/graph-score/domain/scan"
)

// StateView shows the controller state and locks configuration while scanning.
type StateView interface {
	SetStateLabel(string)
	SetConfigEditable(bool)
}

// StatePresenter receives controller transitions and reflects them on the view.
type StatePresenter struct {
	view    StateView
	latest  scan.State
	primed  bool
	pending []scan.State
}

func NewStatePresenter(view StateView) *StatePresenter {
	return &StatePresenter{view: view}
}

// OnTransition is a scan.StateListener; the state is queued and reflected on
// the next Tick.
func (p *StatePresenter) OnTransition(_, next scan.State) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick flushes the most recent queued state to the view.
func (p *StatePresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if !p.primed {
		p.primed = true
		p.apply(p.latest)
	}
	if len(p.pending) == 0 {
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	if last != p.latest {
		p.apply(last)
	}
}

func (p *StatePresenter) apply(s scan.State) {
	p.latest = s
	p.view.SetStateLabel("State: " + s.String())
	p.view.SetConfigEditable(s == scan.StateIdle)
}
