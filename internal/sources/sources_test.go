package sources

import (
	"github.com/cratedig/cratedig/pkg/board"
)

// stubSource satisfies board.Notifiable for tests that need an owner for
// candidates and hypotheses without real source behaviour.
type stubSource struct {
	name string
}

func (s *stubSource) Name() string                                { return s.name }
func (s *stubSource) OnFeedback(*board.Candidate, board.Feedback) {}

// newBoardWithReference builds a workspace whose solving target is a
// reference track with the given playcount and tags.
func newBoardWithReference(playcount int64, tags []string) (*board.Workspace, *board.Candidate) {
	ws := board.New()
	owner := &stubSource{name: "reference-owner"}
	ref := &board.Candidate{
		Artist:    "Seed Artist",
		Track:     "Seed Song",
		Playcount: playcount,
		Tags:      tags,
		Source:    owner,
	}
	assertion := board.NewAssertion(ref, owner, board.ReasonInitial)
	ws.Record(assertion)
	ws.SetSolving(assertion)
	return ws, ref
}

// admitTrack adds a pool candidate with the given playcount and tags.
func admitTrack(ws *board.Workspace, owner board.Notifiable, artist string, playcount int64, tags []string) *board.Candidate {
	c := &board.Candidate{
		Artist:    artist,
		Track:     artist + " Song",
		Playcount: playcount,
		Tags:      tags,
		Source:    owner,
	}
	if err := ws.Admit(c); err != nil {
		panic(err)
	}
	return c
}
