package sources

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/cratedig/cratedig/pkg/board"
)

// Strategy names the playcount matcher's current angle of attack relative
// to the reference track.
type Strategy string

const (
	StrategyClosest   Strategy = "closest playcount"
	StrategyMore      Strategy = "more plays"
	StrategyALotMore  Strategy = "a lot more plays"
	StrategyFewer     Strategy = "fewer plays"
	StrategyALotFewer Strategy = "a lot fewer plays"
)

// quality is the matcher's confidence modifier, adjusted by feedback.
type quality int

const (
	qualityNone quality = iota
	qualityGood
	qualityPoor
)

// PlaycountMatcher picks candidates by play count relative to the reference
// track. It runs a small state machine: a current strategy, a quality
// modifier earned through feedback, and two fallback queues of escalating
// strategies consumed on repeated rejection.
type PlaycountMatcher struct {
	ws *board.Workspace

	// tryThis is the current strategy; empty means unset, which the next
	// Choose resolves to StrategyClosest.
	tryThis    Strategy
	quality    quality
	moreQueue  []Strategy
	fewerQueue []Strategy
}

// NewPlaycountMatcher creates the playcount-matching source.
func NewPlaycountMatcher(ws *board.Workspace) *PlaycountMatcher {
	p := &PlaycountMatcher{ws: ws}
	p.moreQueue, p.fewerQueue = initStrategyQueues()
	return p
}

// initStrategyQueues returns the fallback queues in their initial state.
// Queues are popped from the tail, so the escalated "a lot" strategies are
// tried before the moderate ones.
func initStrategyQueues() (more, fewer []Strategy) {
	return []Strategy{StrategyMore, StrategyALotMore},
		[]Strategy{StrategyFewer, StrategyALotFewer}
}

// Name implements board.Notifiable.
func (p *PlaycountMatcher) Name() string { return "playcount-matcher" }

// bucket is one running best candidate for a strategy during a Choose pass.
type bucket struct {
	delta int64
	pick  *board.Candidate
	score float64
}

// Choose examines the pool in a single pass, tracking the best candidate
// for every strategy at once, then picks with the current strategy and its
// fallback chain. Scores: the closest bucket earns 100 minus the percentage
// playcount difference; the directional extremes earn the percentage
// difference itself (more extreme = higher), except entries that reached a
// directional bucket by being displaced from closest, which keep their
// closest-style score. Returns a nil pick only when the pool is empty.
func (p *PlaycountMatcher) Choose(ctx context.Context) (*ScoredPick, error) {
	if len(p.ws.Pool()) == 0 {
		return nil, nil
	}
	reference := p.ws.Solving().Candidate

	positions := map[Strategy]*bucket{
		StrategyClosest:   {delta: math.MaxInt64},
		StrategyALotMore:  {delta: math.MinInt64},
		StrategyALotFewer: {delta: math.MaxInt64},
		StrategyMore:      {delta: math.MaxInt64},
		StrategyFewer:     {delta: math.MinInt64},
	}

	for _, c := range p.ws.Pool() {
		delta := c.Playcount - reference.Playcount
		pctDiff := math.Abs(float64(delta) / float64(reference.Playcount) * 100)

		if abs64(delta) < abs64(positions[StrategyClosest].delta) {
			// A new closest displaces the old one into the directional
			// bucket matching its sign relative to the new closest,
			// keeping its closest-style score.
			prev := *positions[StrategyClosest]
			if prev.delta > delta {
				positions[StrategyMore] = &prev
			} else if prev.delta < delta {
				positions[StrategyFewer] = &prev
			}
			positions[StrategyClosest] = &bucket{delta: delta, pick: c, score: 100 - pctDiff}
		}
		if delta > 0 && delta > positions[StrategyALotMore].delta {
			positions[StrategyALotMore] = &bucket{delta: delta, pick: c, score: pctDiff}
		}
		if delta < 0 && delta < positions[StrategyALotFewer].delta {
			positions[StrategyALotFewer] = &bucket{delta: delta, pick: c, score: pctDiff}
		}
		if delta > 0 && delta < positions[StrategyMore].delta && delta > positions[StrategyClosest].delta {
			positions[StrategyMore] = &bucket{delta: delta, pick: c, score: 100 - pctDiff}
		}
		if delta < 0 && delta > positions[StrategyFewer].delta && delta < positions[StrategyClosest].delta {
			positions[StrategyFewer] = &bucket{delta: delta, pick: c, score: 100 - pctDiff}
		}
	}

	if p.tryThis == "" {
		p.tryThis = StrategyClosest
	}
	best := p.fallback(positions)

	score := best.score
	switch p.quality {
	case qualityGood:
		score *= 1.25
	case qualityPoor:
		score *= 0.75
	}

	pick := &ScoredPick{Score: score, Candidate: best.pick}
	p.register(pick)
	return pick, nil
}

// fallback resolves the current strategy against the computed buckets.
// An empty bucket falls back to its paired strategy (a lot more <-> more,
// a lot fewer <-> fewer); if that is empty too, the matcher resets to
// closest, which always has a candidate when the pool is non-empty.
func (p *PlaycountMatcher) fallback(positions map[Strategy]*bucket) *bucket {
	best := positions[p.tryThis]
	if best.pick != nil || p.tryThis == StrategyClosest {
		return best
	}

	paired := map[Strategy]Strategy{
		StrategyALotMore:  StrategyMore,
		StrategyMore:      StrategyALotMore,
		StrategyALotFewer: StrategyFewer,
		StrategyFewer:     StrategyALotFewer,
	}
	next := paired[p.tryThis]
	best = positions[next]
	if best.pick == nil {
		p.tryThis = StrategyClosest
		return positions[StrategyClosest]
	}
	p.tryThis = next
	return best
}

// register performs the resign-or-reuse bookkeeping, exactly as the tag
// matcher does: keep a prior hypothesis for the same candidate, retract one
// for a different candidate before recording the replacement.
func (p *PlaycountMatcher) register(pick *ScoredPick) {
	if prior := p.ws.FindRetractable(p); prior != nil {
		if prior.Candidate.ID() == pick.Candidate.ID() {
			return
		}
		_ = p.ws.Retract(prior)
	}

	h := board.NewAssumption(pick.Candidate, p, fmt.Sprintf("Try %s", p.tryThis)).WithScore(pick.Score)
	p.ws.Record(h)
	pick.Candidate.Subscribe(p)
}

// OnFeedback advances the state machine. Acceptance marks the source good
// and resets the fallback queues. Rejection resigns the current hypothesis,
// clears the strategy, and pops the next escalation from the queue for the
// opposite direction of the rejected candidate's playcount error; once a
// queue runs dry the matcher marks itself poor, resets both queues, and
// lets the next Choose fall back to closest.
func (p *PlaycountMatcher) OnFeedback(c *board.Candidate, fb board.Feedback) {
	if fb == board.FeedbackAccepted {
		p.quality = qualityGood
		p.moreQueue, p.fewerQueue = initStrategyQueues()
		return
	}

	if h := p.ws.FindRetractable(p); h != nil {
		_ = p.ws.Retract(h)
	}
	p.tryThis = ""

	reference := p.ws.Solving().Candidate
	if c.Playcount < reference.Playcount {
		if n := len(p.moreQueue); n > 0 {
			p.tryThis = p.moreQueue[n-1]
			p.moreQueue = p.moreQueue[:n-1]
		}
	} else {
		if n := len(p.fewerQueue); n > 0 {
			p.tryThis = p.fewerQueue[n-1]
			p.fewerQueue = p.fewerQueue[:n-1]
		}
	}

	if p.tryThis == "" {
		log.Printf("[INFO] playcount matcher has tried all strategies without success, applying a penalty to its suggestions")
		p.quality = qualityPoor
		p.moreQueue, p.fewerQueue = initStrategyQueues()
	}
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
