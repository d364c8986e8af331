package sources

import (
	"context"
	"fmt"

	"github.com/cratedig/cratedig/internal/lastfm"
	"github.com/cratedig/cratedig/pkg/board"
)

// DefaultTagLimit caps how many top tags are kept per track. The provider
// treats its limit parameter as advisory, so the list is truncated
// client-side as well.
const DefaultTagLimit = 19

// TagMatcher scores pool candidates by how many top tags they share with
// the reference track. The candidate with the strictly largest overlap
// wins; ties keep the first one found in pool order.
type TagMatcher struct {
	ws       *board.Workspace
	provider *lastfm.Client
	limit    int
}

// NewTagMatcher creates the tag-matching source. limit caps the tag list
// per track; zero means DefaultTagLimit.
func NewTagMatcher(ws *board.Workspace, provider *lastfm.Client, limit int) *TagMatcher {
	if limit <= 0 {
		limit = DefaultTagLimit
	}
	return &TagMatcher{ws: ws, provider: provider, limit: limit}
}

// Name implements board.Notifiable.
func (t *TagMatcher) Name() string { return "tag-matcher" }

// ensureTags populates a candidate's tag list if it has not been fetched
// yet, caching the result on the candidate itself.
func (t *TagMatcher) ensureTags(ctx context.Context, c *board.Candidate) error {
	if c.Tags != nil {
		return nil
	}
	tags, err := t.provider.GetTopTags(ctx, c.Artist, c.Track, t.limit)
	if err != nil {
		return fmt.Errorf("fetch tags for %q: %w", c.ID(), err)
	}
	if tags == nil {
		tags = []string{}
	}
	c.Tags = tags
	return nil
}

// Choose finds the pool candidate sharing the most tags with the reference
// track. Score is matched count over reference tag count, times 100. A nil
// pick means no candidate shares any tag with the reference (or the pool is
// empty); no hypothesis is recorded in that case.
func (t *TagMatcher) Choose(ctx context.Context) (*ScoredPick, error) {
	reference := t.ws.Solving().Candidate
	if err := t.ensureTags(ctx, reference); err != nil {
		return nil, err
	}

	bestCount := 0
	var best *board.Candidate
	for _, c := range t.ws.Pool() {
		if err := t.ensureTags(ctx, c); err != nil {
			return nil, err
		}
		matched := 0
		for _, want := range reference.Tags {
			for _, have := range c.Tags {
				if want == have {
					matched++
					break
				}
			}
		}
		// Strictly greater, so the first candidate found keeps a tie.
		if matched > bestCount {
			bestCount = matched
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}

	pick := &ScoredPick{
		Score:     float64(bestCount) / float64(len(reference.Tags)) * 100.0,
		Candidate: best,
	}
	t.register(pick)
	return pick, nil
}

// register performs the resign-or-reuse bookkeeping: an existing retractable
// hypothesis targeting the same winner is kept as-is; one targeting a
// different candidate is retracted before the replacement is recorded.
func (t *TagMatcher) register(pick *ScoredPick) {
	if prior := t.ws.FindRetractable(t); prior != nil {
		if prior.Candidate.ID() == pick.Candidate.ID() {
			return
		}
		// Safe: FindRetractable only returns retractable hypotheses.
		_ = t.ws.Retract(prior)
	}

	h := board.NewAssumption(pick.Candidate, t, "Closest match on tags").WithScore(pick.Score)
	t.ws.Record(h)
	pick.Candidate.Subscribe(t)
}

// OnFeedback unconditionally resigns the current hypothesis, whatever the
// verdict was; the matcher re-derives its pick from scratch on the next
// Choose.
func (t *TagMatcher) OnFeedback(*board.Candidate, board.Feedback) {
	if h := t.ws.FindRetractable(t); h != nil {
		_ = t.ws.Retract(h)
	}
}
