package presenter

import "time"

// Loop aggregates presenters and drives periodic updates.
//
// Tick updates the state and session presenters, runs Idle (the interaction
// loop's idle re-render) and invokes the scheduler callback. The zero value is
// usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	State    *StatePresenter
	Idle     func()
	Schedule func()
	Now      func() time.Time
}

func NewLoop(sess *SessionPresenter, state *StatePresenter, idle func(), schedule func()) *Loop {
	return &Loop{Session: sess, State: state, Idle: idle, Schedule: schedule, Now: time.Now}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	if l.State != nil {
		l.State.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Idle != nil {
		l.Idle()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
