package presenter

import (
	"time"

	"github.com/soocke/graph-score/domain/scan"
	"github.com/soocke/graph-score/ui/model"
)

// SessionView displays scan durations and counters.
type SessionView interface {
	SetSession(scan, total time.Duration)
	SetCounts(scans, analyses int)
}

// SessionPresenter formats the session model onto the view. Scans are counted
// from controller transitions, so a scan finishing between two ticks still counts.
type SessionPresenter struct {
	sess *model.SessionModel
	now  func() time.Time
	view SessionView
}

// NewSessionPresenter returns a new SessionPresenter. now stamps transitions;
// nil means time.Now.
func NewSessionPresenter(sess *model.SessionModel, now func() time.Time, view SessionView) *SessionPresenter {
	if now == nil {
		now = time.Now
	}
	return &SessionPresenter{sess: sess, now: now, view: view}
}

// OnTransition is a scan.StateListener that opens and closes session scans.
func (p *SessionPresenter) OnTransition(prev, next scan.State) {
	if p == nil || p.sess == nil {
		return
	}
	switch {
	case next == scan.StateScanning:
		p.sess.BeginScan(p.now())
	case prev == scan.StateScanning:
		p.sess.EndScan(p.now())
	}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil {
		return
	}
	p.sess.OnTick(now)
	if p.view == nil {
		return
	}
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	p.view.SetCounts(p.sess.Counts())
}
