package explorer

import (
	"context"
	"sync"
)

// Stage is a level of the drill-down: artist, then album, then track.
type Stage int

const (
	StageArtist Stage = iota
	StageAlbum
	StageTrack

	numStages
)

func (s Stage) String() string {
	switch s {
	case StageArtist:
		return "artist"
	case StageAlbum:
		return "album"
	case StageTrack:
		return "track"
	default:
		return "unknown"
	}
}

// Selection discards results of superseded selections. Starting work at a
// stage cancels in-flight work at that stage and every deeper one, so a
// late answer for an old artist never lands on top of a newer choice.
type Selection struct {
	mu      sync.Mutex
	gens    [numStages]uint64
	cancels [numStages]context.CancelFunc
}

// Ticket identifies one unit of work started by Begin.
type Ticket struct {
	sel   *Selection
	stage Stage
	gen   uint64
	ctx   context.Context
}

// Begin starts work at stage and returns its ticket. The ticket's context
// is canceled as soon as the work is superseded.
func (s *Selection) Begin(parent context.Context, stage Stage) *Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidate(stage)

	ctx, cancel := context.WithCancel(parent)
	s.cancels[stage] = cancel

	return &Ticket{sel: s, stage: stage, gen: s.gens[stage], ctx: ctx}
}

// Reset supersedes all work from stage down without starting new work.
func (s *Selection) Reset(stage Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidate(stage)
}

// Close cancels all outstanding work.
func (s *Selection) Close() {
	s.Reset(StageArtist)
}

func (s *Selection) invalidate(stage Stage) {
	for st := stage; st < numStages; st++ {
		s.gens[st]++
		if s.cancels[st] != nil {
			s.cancels[st]()
			s.cancels[st] = nil
		}
	}
}

// Context is canceled once the ticket is superseded.
func (t *Ticket) Context() context.Context { return t.ctx }

// Stage returns the stage the ticket was issued for.
func (t *Ticket) Stage() Stage { return t.stage }

// Current reports whether the ticket's result may still be applied.
func (t *Ticket) Current() bool {
	t.sel.mu.Lock()
	defer t.sel.mu.Unlock()
	return t.sel.gens[t.stage] == t.gen
}
