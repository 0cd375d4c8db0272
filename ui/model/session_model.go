package model

import (
	"time"
)

// SessionModel tracks time spent scanning: the current (or last) scan and the
// accumulated total, plus how many scans and analyses ran. It is decoupled from
// the UI; presenters poll Values() and update views. The zero value is ready to use.
type SessionModel struct {
	scanning    bool
	scanStart   time.Time
	lastScan    time.Duration
	accumulated time.Duration
	scans       int
	analyses    int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// BeginScan starts timing a scan and counts it. A scan already in progress is
// left untouched.
func (m *SessionModel) BeginScan(now time.Time) {
	if m == nil || m.scanning {
		return
	}
	m.scanning = true
	m.scanStart = now
	m.lastScan = 0
	m.scans++
}

// EndScan stops the running scan and adds its duration to the total.
func (m *SessionModel) EndScan(now time.Time) {
	if m == nil || !m.scanning {
		return
	}
	m.lastScan = now.Sub(m.scanStart)
	m.accumulated += m.lastScan
	m.scanning = false
}

// OnTick refreshes the running scan's duration.
func (m *SessionModel) OnTick(now time.Time) {
	if m == nil || !m.scanning {
		return
	}
	m.lastScan = now.Sub(m.scanStart)
}

// RecordAnalysis counts one full-frame analysis.
func (m *SessionModel) RecordAnalysis() {
	if m != nil {
		m.analyses++
	}
}

// Values returns the current scan duration and the accumulated total. The total
// includes the ongoing scan.
func (m *SessionModel) Values() (scan, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	scan = m.lastScan
	total = m.accumulated
	if m.scanning {
		total += scan
	}
	return
}

// Counts returns the number of scans started and analyses run.
func (m *SessionModel) Counts() (scans, analyses int) {
	if m == nil {
		return 0, 0
	}
	return m.scans, m.analyses
}
