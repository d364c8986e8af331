package sources

import (
	"context"
	"fmt"

	"github.com/cratedig/cratedig/internal/lastfm"
	"github.com/cratedig/cratedig/pkg/board"
)

// Seed loads the user's chosen reference track onto the board. It records
// the permanent "Initial song" assertion and makes it the solving target.
// Seed never proposes competing candidates and ignores feedback.
type Seed struct {
	ws       *board.Workspace
	provider *lastfm.Client

	// lastID and lastInfo remember the most recent lookup so an immediate
	// repeat of the same (artist, track) pair costs no external call.
	lastID   string
	lastInfo *lastfm.TrackInfo
}

// NewSeed creates the seed source.
func NewSeed(ws *board.Workspace, provider *lastfm.Client) *Seed {
	return &Seed{ws: ws, provider: provider}
}

// Name implements board.Notifiable.
func (s *Seed) Name() string { return "seed" }

// Load fetches full metadata for the named track, wraps it as a candidate,
// records a permanent "Initial song" assertion for it, and sets it as the
// board's solving target. The candidate is returned but not admitted to the
// pool: the reference track is what the search is relative to, not part of
// the search space.
func (s *Seed) Load(ctx context.Context, artist, track string) (*board.Candidate, error) {
	id := fmt.Sprintf("%s - %s", artist, track)
	if s.lastID != id {
		info, err := s.provider.GetTrackInfo(ctx, artist, track)
		if err != nil {
			return nil, fmt.Errorf("load seed track %q: %w", id, err)
		}
		s.lastID = id
		s.lastInfo = info
	}

	c := newCandidate(s, s.lastInfo)
	c.Subscribe(s)

	assertion := board.NewAssertion(c, s, board.ReasonInitial)
	s.ws.Record(assertion)
	s.ws.SetSolving(assertion)
	return c, nil
}

// OnFeedback implements board.Notifiable. The seed source never changes its
// mind about the reference track, so feedback is ignored.
func (s *Seed) OnFeedback(*board.Candidate, board.Feedback) {}
