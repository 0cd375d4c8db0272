package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows scan durations and the scan/analysis counters.
type SessionStats interface {
	SetSession(scan, total time.Duration)
	SetCounts(scans, analyses int)
}

type sessionStats struct {
	scanLbl   *LabelWidget
	totalLbl  *LabelWidget
	countsLbl *LabelWidget
}

// NewSessionStats creates the labels in row starting at startCol.
func NewSessionStats(row, startCol int) SessionStats {
	s := &sessionStats{scanLbl: Label(Width(14)), totalLbl: Label(Width(14)), countsLbl: Label(Width(22))}
	Grid(s.scanLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	Grid(s.countsLbl, Row(row), Column(startCol+3), Sticky("w"), Padx("0.2m"))
	s.SetSession(0, 0)
	s.SetCounts(0, 0)
	return s
}

func (s *sessionStats) SetSession(scan, total time.Duration) {
	if s == nil || s.scanLbl == nil {
		return
	}
	s.scanLbl.Configure(Txt("Scan: " + clock(scan)))
	s.totalLbl.Configure(Txt("Total: " + clock(total)))
}

func (s *sessionStats) SetCounts(scans, analyses int) {
	if s == nil || s.countsLbl == nil {
		return
	}
	s.countsLbl.Configure(Txt(fmt.Sprintf("Scans: %d  Analyses: %d", scans, analyses)))
}

// clock formats d as mm:ss.t
func clock(d time.Duration) string {
	tenths := int(d / (100 * time.Millisecond))
	return fmt.Sprintf("%02d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}
