package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotify(t *testing.T) {
	t.Run("delivers in subscription order", func(t *testing.T) {
		var order []string
		first := &fakeSource{name: "first"}
		first.onNotify = func(*Candidate, Feedback) { order = append(order, "first") }
		second := &fakeSource{name: "second"}
		second.onNotify = func(*Candidate, Feedback) { order = append(order, "second") }

		c := newTrack("Artist A", "Song A")
		c.Subscribe(first)
		c.Subscribe(second)
		c.Notify(FeedbackAccepted)

		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("delivery does not alter the subscriber list", func(t *testing.T) {
		src := &fakeSource{name: "src"}
		c := newTrack("Artist A", "Song A")
		c.Subscribe(src)

		c.Notify(FeedbackRejected)
		c.Notify(FeedbackRejected)

		assert.Len(t, c.Subscribers(), 1)
		assert.Equal(t, []Feedback{FeedbackRejected, FeedbackRejected}, src.feedback)
	})

	t.Run("subscriber added mid-notify is notified in the same fan-out", func(t *testing.T) {
		late := &fakeSource{name: "late"}
		c := newTrack("Artist A", "Song A")
		early := &fakeSource{name: "early"}
		early.onNotify = func(cand *Candidate, _ Feedback) { cand.Subscribe(late) }
		c.Subscribe(early)

		c.Notify(FeedbackAccepted)

		assert.Equal(t, []Feedback{FeedbackAccepted}, late.feedback)
	})

	t.Run("unsubscribed source receives nothing", func(t *testing.T) {
		src := &fakeSource{name: "src"}
		other := &fakeSource{name: "other"}
		c := newTrack("Artist A", "Song A")
		c.Subscribe(src)
		c.Subscribe(other)

		c.Unsubscribe(src)
		c.Notify(FeedbackAccepted)

		assert.Empty(t, src.feedback)
		assert.Equal(t, []Feedback{FeedbackAccepted}, other.feedback)
	})

	t.Run("unsubscribing an unknown source is a no-op", func(t *testing.T) {
		c := newTrack("Artist A", "Song A")
		c.Subscribe(&fakeSource{name: "src"})
		c.Unsubscribe(&fakeSource{name: "stranger"})
		assert.Len(t, c.Subscribers(), 1)
	})
}

func TestCandidateID(t *testing.T) {
	c := newTrack("Townes Van Zandt", "Pancho and Lefty")
	assert.Equal(t, "Townes Van Zandt - Pancho and Lefty", c.ID())
}
