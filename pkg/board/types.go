// Package board implements the shared blackboard at the heart of cratedig.
// The board is the central mutable workspace where independent knowledge
// sources cooperate on the recommendation problem: it owns the pool of
// candidate tracks under consideration, the append-ordered log of every
// hypothesis made about them, and the single "solving" hypothesis that all
// scoring is relative to.
//
// Knowledge sources never talk to each other directly. They subscribe to
// the candidates they care about and learn about user feedback through the
// synchronous notification protocol on Candidate.
package board

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Feedback is the user's verdict on a presented candidate.
type Feedback string

const (
	// FeedbackAccepted means the user liked the recommended track.
	FeedbackAccepted Feedback = "accepted"

	// FeedbackRejected means the user turned the recommendation down.
	FeedbackRejected Feedback = "rejected"
)

// Validate checks if the Feedback is a valid enum value.
func (f Feedback) Validate() error {
	switch f {
	case FeedbackAccepted, FeedbackRejected:
		return nil
	default:
		return fmt.Errorf("unknown feedback: %q", f)
	}
}

// Notifiable is the capability a knowledge source needs in order to
// subscribe to a candidate. OnFeedback is invoked synchronously, in
// subscription order, when the user responds to a recommendation.
type Notifiable interface {
	// Name identifies the source in hypothesis provenance and board output.
	Name() string

	// OnFeedback delivers the user's verdict on a candidate this source
	// subscribed to. Implementations may retract hypotheses or repopulate
	// the pool; they must not notify the same candidate recursively.
	OnFeedback(c *Candidate, fb Feedback)
}

// Candidate is a track under consideration as a recommendation.
// Identity is the (Artist, Track) pair; no two candidates with the same
// identity may coexist in the pool.
type Candidate struct {
	Artist    string
	Track     string
	Listeners int64
	Duration  int64
	Playcount int64
	URL       string

	// Tags is the track's top tag list, fetched lazily by the tag-matching
	// source. nil means not yet fetched; an empty non-nil slice means the
	// provider returned no tags.
	Tags []string

	// Source is the knowledge source that produced this candidate.
	Source Notifiable

	subscribers []Notifiable
}

// ID returns the candidate's identity string, "Artist - Track".
func (c *Candidate) ID() string {
	return fmt.Sprintf("%s - %s", c.Artist, c.Track)
}

// Subscribe registers a source to be notified of feedback on this candidate.
func (c *Candidate) Subscribe(n Notifiable) {
	c.subscribers = append(c.subscribers, n)
}

// Unsubscribe removes the first subscription held by the given source.
// Unknown sources are ignored.
func (c *Candidate) Unsubscribe(n Notifiable) {
	for i, sub := range c.subscribers {
		if sub == n {
			c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
			return
		}
	}
}

// Subscribers returns the current subscription list in subscription order.
func (c *Candidate) Subscribers() []Notifiable {
	return c.subscribers
}

// Notify delivers feedback to every subscribed source, synchronously and in
// subscription order. Delivery itself never alters the subscriber list, but
// a callback may subscribe further sources; those are notified too, after
// the ones already queued. All callbacks complete before Notify returns.
func (c *Candidate) Notify(fb Feedback) {
	for i := 0; i < len(c.subscribers); i++ {
		c.subscribers[i].OnFeedback(c, fb)
	}
}

// Hypothesis is a timestamped claim about a candidate's merit, with full
// provenance. A retractable hypothesis (an assumption) may be withdrawn by
// its source as evidence changes; a permanent one (an assertion) marks
// ground truth such as "this is the seed track" and can never be retracted.
type Hypothesis struct {
	ID          string
	Candidate   *Candidate
	Source      Notifiable
	Reason      string
	Score       *float64
	Retractable bool
	CreatedAt   time.Time
}

// Well-known hypothesis reasons. The gatherer's uniqueness filter treats
// candidates named by these assertions as already considered.
const (
	ReasonInitial  = "Initial song"
	ReasonLiked    = "Liked by user"
	ReasonDisliked = "Disliked by user"
)

// NewAssumption creates a retractable hypothesis.
func NewAssumption(c *Candidate, source Notifiable, reason string) *Hypothesis {
	return &Hypothesis{
		ID:          uuid.New().String(),
		Candidate:   c,
		Source:      source,
		Reason:      reason,
		Retractable: true,
		CreatedAt:   time.Now(),
	}
}

// NewAssertion creates a permanent hypothesis. Assertions mark ground truth
// and may never be retracted.
func NewAssertion(c *Candidate, source Notifiable, reason string) *Hypothesis {
	return &Hypothesis{
		ID:          uuid.New().String(),
		Candidate:   c,
		Source:      source,
		Reason:      reason,
		Retractable: false,
		CreatedAt:   time.Now(),
	}
}

// WithScore attaches a score to the hypothesis and returns it.
func (h *Hypothesis) WithScore(score float64) *Hypothesis {
	h.Score = &score
	return h
}
