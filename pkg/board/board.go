package board

import "fmt"

// Workspace is the blackboard itself: the candidate pool, the hypothesis
// log, and the current solving target.
//
// The workspace is strictly single-threaded. Every mutation happens inside
// a Choose or Notify call that has already returned before the next one
// starts, so no locking is required; sources are responsible for finishing
// a retraction before recording its replacement.
type Workspace struct {
	pool       []*Candidate
	hypotheses []*Hypothesis
	solving    *Hypothesis
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// Admit adds a candidate to the pool. Admitting a candidate whose identity
// is already present fails with ErrDuplicateCandidate and leaves the pool
// unchanged; callers are expected to de-duplicate first.
func (w *Workspace) Admit(c *Candidate) error {
	for _, existing := range w.pool {
		if existing.ID() == c.ID() {
			return fmt.Errorf("admit %q: %w", c.ID(), ErrDuplicateCandidate)
		}
	}
	w.pool = append(w.pool, c)
	return nil
}

// Evict removes a candidate from the pool. Evicting a candidate that is not
// in the pool is a no-op. The candidate's subscriber list is left intact so
// that feedback already in flight still reaches every interested source;
// once evicted, the candidate is simply never notified again.
func (w *Workspace) Evict(c *Candidate) {
	for i, existing := range w.pool {
		if existing == c {
			w.pool = append(w.pool[:i], w.pool[i+1:]...)
			return
		}
	}
}

// ClearPool evicts every candidate. Used when the user accepts a
// recommendation and the search restarts from a new reference track.
func (w *Workspace) ClearPool() {
	w.pool = nil
}

// Pool returns the live candidates in insertion order.
func (w *Workspace) Pool() []*Candidate {
	return w.pool
}

// Record appends a hypothesis to the log. The log is append-ordered and is
// never reordered, only appended to and removed from.
func (w *Workspace) Record(h *Hypothesis) {
	w.hypotheses = append(w.hypotheses, h)
}

// Retract removes a retractable hypothesis from the log. Retracting a
// permanent hypothesis fails with ErrPermanentHypothesis. Retracting a
// hypothesis that is not on the board is a programming error.
func (w *Workspace) Retract(h *Hypothesis) error {
	if !h.Retractable {
		return fmt.Errorf("retract %q (%s): %w", h.Reason, h.ID, ErrPermanentHypothesis)
	}
	for i, existing := range w.hypotheses {
		if existing == h {
			w.hypotheses = append(w.hypotheses[:i], w.hypotheses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("retract %q (%s): hypothesis not on the board", h.Reason, h.ID)
}

// Hypotheses returns the hypothesis log in append order.
func (w *Workspace) Hypotheses() []*Hypothesis {
	return w.hypotheses
}

// Solving returns the current reference hypothesis, or nil before the first
// seed is loaded.
func (w *Workspace) Solving() *Hypothesis {
	return w.solving
}

// SetSolving makes h the reference hypothesis all scoring is relative to.
// It is always the most recent permanent hypothesis about a liked or seed
// track.
func (w *Workspace) SetSolving(h *Hypothesis) {
	w.solving = h
}

// FindRetractable returns the first retractable hypothesis owned by the
// given source, in log order, or nil if the source holds none. Sources use
// this for resign-or-reuse bookkeeping before registering a new claim.
func (w *Workspace) FindRetractable(source Notifiable) *Hypothesis {
	for _, h := range w.hypotheses {
		if h.Source == source && h.Retractable {
			return h
		}
	}
	return nil
}

// Considered returns the set of candidate identities that have already been
// judged: seed tracks, liked tracks, disliked tracks, and everything still
// in the live pool. The gatherer filters fetched candidates against this
// set before admitting them.
func (w *Workspace) Considered() map[string]bool {
	seen := make(map[string]bool)
	for _, h := range w.hypotheses {
		switch h.Reason {
		case ReasonInitial, ReasonLiked, ReasonDisliked:
			seen[h.Candidate.ID()] = true
		}
	}
	for _, c := range w.pool {
		seen[c.ID()] = true
	}
	return seen
}
