// Package sources implements the knowledge sources that cooperate on the
// blackboard: the seed loader, the similar-track gatherer, the tag matcher,
// and the playcount matcher. Each source applies its own heuristic, records
// retractable hypotheses for its best pick, and reacts to user feedback
// delivered through the board's notification protocol.
package sources

import (
	"context"

	"github.com/cratedig/cratedig/internal/lastfm"
	"github.com/cratedig/cratedig/pkg/board"
)

// ScoredPick is a scoring source's best candidate together with its score.
type ScoredPick struct {
	Score     float64
	Candidate *board.Candidate
}

// Chooser is the capability the arbiter consumes: derive a best pick from
// the current pool. A nil pick with a nil error means the source has no
// winner; callers must check before using the result.
type Chooser interface {
	board.Notifiable
	Choose(ctx context.Context) (*ScoredPick, error)
}

// newCandidate wraps a provider track record as a board candidate owned by
// the given source.
func newCandidate(source board.Notifiable, info *lastfm.TrackInfo) *board.Candidate {
	return &board.Candidate{
		Artist:    info.Artist,
		Track:     info.Name,
		Listeners: info.Listeners,
		Duration:  info.Duration,
		Playcount: info.Playcount,
		URL:       info.URL,
		Source:    source,
	}
}
