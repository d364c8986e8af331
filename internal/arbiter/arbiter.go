// Package arbiter resolves the competing picks of the two scoring sources
// into a single recommendation and drives the feedback side of the cycle.
//
// The arbiter deliberately holds the two scoring sources as an explicit,
// fixed pair rather than iterating a polymorphic collection: the
// arbitration policy (playcount evaluated first, ties kept by playcount,
// nil-pick handling) is specific to exactly these two.
package arbiter

import (
	"context"
	"fmt"

	"github.com/cratedig/cratedig/internal/sources"
	"github.com/cratedig/cratedig/pkg/board"
)

// DefaultGatherCount is how many fresh candidates are gathered when the
// search restarts from an accepted track.
const DefaultGatherCount = 4

// RefillCount is how many candidates the gatherer back-fills after one of
// its own candidates is rejected.
const RefillCount = 1

// Arbiter compares the scoring sources' best hypotheses and applies user
// feedback to the board.
type Arbiter struct {
	ws        *board.Workspace
	playcount sources.Chooser
	tags      sources.Chooser
	gatherer  *sources.Gatherer

	gatherCount int
}

// New creates an arbiter over the given workspace and sources. gatherCount
// controls how many candidates restock the pool after an acceptance; zero
// means DefaultGatherCount.
func New(ws *board.Workspace, playcount, tags sources.Chooser, gatherer *sources.Gatherer, gatherCount int) *Arbiter {
	if gatherCount <= 0 {
		gatherCount = DefaultGatherCount
	}
	return &Arbiter{
		ws:          ws,
		playcount:   playcount,
		tags:        tags,
		gatherer:    gatherer,
		gatherCount: gatherCount,
	}
}

// Recommend returns the overall best candidate, or nil when the search is
// exhausted: an empty pool, or neither scoring source producing a pick.
// The playcount source is evaluated first and keeps ties.
func (a *Arbiter) Recommend(ctx context.Context) (*board.Candidate, error) {
	if len(a.ws.Pool()) == 0 {
		return nil, nil
	}

	byPlaycount, err := a.playcount.Choose(ctx)
	if err != nil {
		return nil, fmt.Errorf("playcount source: %w", err)
	}
	byTags, err := a.tags.Choose(ctx)
	if err != nil {
		return nil, fmt.Errorf("tag source: %w", err)
	}

	switch {
	case byPlaycount != nil && byTags != nil:
		if byPlaycount.Score >= byTags.Score {
			return byPlaycount.Candidate, nil
		}
		return byTags.Candidate, nil
	case byPlaycount != nil:
		return byPlaycount.Candidate, nil
	case byTags != nil:
		return byTags.Candidate, nil
	default:
		return nil, nil
	}
}

// Accept applies an accepted verdict: every subscribed source is notified
// (the gatherer records the permanent "liked" assertion and promotes the
// track to the new solving target), the whole pool is cleared, and the
// gatherer restocks it from the accepted track as the new seed.
func (a *Arbiter) Accept(ctx context.Context, c *board.Candidate) error {
	c.Notify(board.FeedbackAccepted)
	a.ws.ClearPool()
	if err := a.gatherer.Gather(ctx, c.Artist, c.Track, a.gatherCount); err != nil {
		return fmt.Errorf("restock pool after acceptance of %q: %w", c.ID(), err)
	}
	return nil
}

// Reject applies a rejected verdict: the candidate is evicted and every
// subscribed source notified (the gatherer records the permanent "disliked"
// assertion, the scoring sources resign and adjust strategy). If the
// rejected candidate originated with the gatherer, the pool is back-filled
// from the current solving track.
func (a *Arbiter) Reject(ctx context.Context, c *board.Candidate) error {
	a.ws.Evict(c)
	c.Notify(board.FeedbackRejected)

	if c.Source == a.gatherer {
		solving := a.ws.Solving().Candidate
		if err := a.gatherer.Gather(ctx, solving.Artist, solving.Track, RefillCount); err != nil {
			return fmt.Errorf("refill pool after rejection of %q: %w", c.ID(), err)
		}
	}
	return nil
}
