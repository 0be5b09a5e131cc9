package service

import "github.com/hance08/txengine/internal/model"

type KindCount struct {
	Applied  int
	Rejected int
}

// Summary describes one run.
type Summary struct {
	RunID     string
	Events    map[model.Kind]KindCount
	Malformed int
	Accounts  int
	Locked    int
}

func newSummary(runID string) *Summary {
	return &Summary{RunID: runID, Events: make(map[model.Kind]KindCount)}
}

func (s *Summary) applied(kind model.Kind) {
	c := s.Events[kind]
	c.Applied++
	s.Events[kind] = c
}

func (s *Summary) rejected(kind model.Kind) {
	c := s.Events[kind]
	c.Rejected++
	s.Events[kind] = c
}

func (s *Summary) Applied() int {
	n := 0
	for _, c := range s.Events {
		n += c.Applied
	}
	return n
}

func (s *Summary) Rejected() int {
	n := 0
	for _, c := range s.Events {
		n += c.Rejected
	}
	return n
}
