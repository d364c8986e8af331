package arbiter

import (
	"context"
	"errors"
	"testing"

	"github.com/cratedig/cratedig/internal/sources"
	"github.com/cratedig/cratedig/internal/testutil"
	"github.com/cratedig/cratedig/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChooser is a scoring source with a canned answer.
type stubChooser struct {
	name string
	pick *sources.ScoredPick
	err  error
}

func (s *stubChooser) Name() string                                { return s.name }
func (s *stubChooser) OnFeedback(*board.Candidate, board.Feedback) {}
func (s *stubChooser) Choose(context.Context) (*sources.ScoredPick, error) {
	return s.pick, s.err
}

func scored(c *board.Candidate, score float64) *sources.ScoredPick {
	return &sources.ScoredPick{Score: score, Candidate: c}
}

func TestRecommend(t *testing.T) {
	playcountPick := &board.Candidate{Artist: "Artist P", Track: "Track P"}
	tagsPick := &board.Candidate{Artist: "Artist T", Track: "Track T"}

	// newBoard returns a workspace with one pool entry so arbitration
	// actually consults the sources.
	newBoard := func(t *testing.T) *board.Workspace {
		ws := board.New()
		require.NoError(t, ws.Admit(&board.Candidate{Artist: "Artist X", Track: "Track X"}))
		return ws
	}

	t.Run("an empty pool short-circuits to no recommendation", func(t *testing.T) {
		arb := New(board.New(),
			&stubChooser{name: "playcount", pick: scored(playcountPick, 90)},
			&stubChooser{name: "tags", pick: scored(tagsPick, 100)},
			nil, 0)

		c, err := arb.Recommend(context.Background())
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("the higher score wins", func(t *testing.T) {
		arb := New(newBoard(t),
			&stubChooser{name: "playcount", pick: scored(playcountPick, 90)},
			&stubChooser{name: "tags", pick: scored(tagsPick, 100)},
			nil, 0)

		c, err := arb.Recommend(context.Background())
		require.NoError(t, err)
		assert.Same(t, tagsPick, c)
	})

	t.Run("a tie keeps the playcount pick", func(t *testing.T) {
		arb := New(newBoard(t),
			&stubChooser{name: "playcount", pick: scored(playcountPick, 75)},
			&stubChooser{name: "tags", pick: scored(tagsPick, 75)},
			nil, 0)

		c, err := arb.Recommend(context.Background())
		require.NoError(t, err)
		assert.Same(t, playcountPick, c)
	})

	t.Run("a lone pick wins regardless of which source made it", func(t *testing.T) {
		arb := New(newBoard(t),
			&stubChooser{name: "playcount"},
			&stubChooser{name: "tags", pick: scored(tagsPick, 5)},
			nil, 0)
		c, err := arb.Recommend(context.Background())
		require.NoError(t, err)
		assert.Same(t, tagsPick, c)

		arb = New(newBoard(t),
			&stubChooser{name: "playcount", pick: scored(playcountPick, 5)},
			&stubChooser{name: "tags"},
			nil, 0)
		c, err = arb.Recommend(context.Background())
		require.NoError(t, err)
		assert.Same(t, playcountPick, c)
	})

	t.Run("no picks at all means no recommendation", func(t *testing.T) {
		arb := New(newBoard(t),
			&stubChooser{name: "playcount"},
			&stubChooser{name: "tags"},
			nil, 0)

		c, err := arb.Recommend(context.Background())
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("source failures propagate", func(t *testing.T) {
		boom := errors.New("boom")
		arb := New(newBoard(t),
			&stubChooser{name: "playcount", err: boom},
			&stubChooser{name: "tags"},
			nil, 0)

		_, err := arb.Recommend(context.Background())
		require.ErrorIs(t, err, boom)
	})
}

// newSessionFixture wires the full engine against a fake provider: a seed
// track with two related artists, one close in playcount and tags, one far
// off in both.
func newSessionFixture(t *testing.T) (*board.Workspace, *sources.Seed, *Arbiter) {
	provider := testutil.NewProvider(t)
	seedTrack := testutil.Track{Artist: "Seed Artist", Name: "Seed Song", Playcount: 1000}
	trackA := testutil.Track{Artist: "Artist A", Name: "Track A", Playcount: 1100}
	trackB := testutil.Track{Artist: "Artist B", Name: "Track B", Playcount: 500}

	provider.AddTrack(seedTrack)
	provider.AddTrack(trackA)
	provider.AddTrack(trackB)
	provider.Similar["Seed Artist"] = []string{"Artist A", "Artist B"}
	provider.TopTracks["Artist A"] = trackA
	provider.TopTracks["Artist B"] = trackB
	provider.AddTags("Seed Artist", "Seed Song", []string{"rock"})
	provider.AddTags("Artist A", "Track A", []string{"rock", "pop"})
	provider.AddTags("Artist B", "Track B", []string{"jazz"})

	client := provider.Client(t)
	ws := board.New()
	seed := sources.NewSeed(ws, client)
	gatherer := sources.NewGatherer(ws, client, 0)
	arb := New(ws, sources.NewPlaycountMatcher(ws), sources.NewTagMatcher(ws, client, 0), gatherer, 0)

	ctx := context.Background()
	_, err := seed.Load(ctx, "Seed Artist", "Seed Song")
	require.NoError(t, err)
	require.NoError(t, gatherer.Gather(ctx, "Seed Artist", "Seed Song", DefaultGatherCount))
	return ws, seed, arb
}

func TestRecommendationCycle(t *testing.T) {
	t.Run("first recommendation is the all-round closest match", func(t *testing.T) {
		_, _, arb := newSessionFixture(t)

		c, err := arb.Recommend(context.Background())
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Artist A - Track A", c.ID())
	})

	t.Run("rejection records the dislike and surfaces the alternative", func(t *testing.T) {
		ws, _, arb := newSessionFixture(t)
		ctx := context.Background()

		first, err := arb.Recommend(ctx)
		require.NoError(t, err)
		require.NotNil(t, first)

		require.NoError(t, arb.Reject(ctx, first))

		disliked := false
		for _, h := range ws.Hypotheses() {
			if h.Reason == board.ReasonDisliked && h.Candidate.ID() == first.ID() {
				disliked = true
			}
		}
		assert.True(t, disliked, "expected a disliked assertion for the rejected track")

		second, err := arb.Recommend(ctx)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, "Artist B - Track B", second.ID())
	})

	t.Run("acceptance promotes the track and restarts the search from it", func(t *testing.T) {
		ws, _, arb := newSessionFixture(t)
		ctx := context.Background()

		c, err := arb.Recommend(ctx)
		require.NoError(t, err)
		require.NotNil(t, c)

		require.NoError(t, arb.Accept(ctx, c))

		require.NotNil(t, ws.Solving())
		assert.Equal(t, board.ReasonLiked, ws.Solving().Reason)
		assert.Equal(t, c.ID(), ws.Solving().Candidate.ID())

		// The accepted artist has no related artists registered, so the
		// restocked pool is empty and the search is exhausted.
		assert.Empty(t, ws.Pool())
		next, err := arb.Recommend(ctx)
		require.NoError(t, err)
		assert.Nil(t, next)
	})

	t.Run("a drained feed ends the search after repeated rejection", func(t *testing.T) {
		ws, _, arb := newSessionFixture(t)
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			c, err := arb.Recommend(ctx)
			require.NoError(t, err)
			require.NotNil(t, c)
			require.NoError(t, arb.Reject(ctx, c))
		}

		assert.Empty(t, ws.Pool())
		c, err := arb.Recommend(ctx)
		require.NoError(t, err)
		assert.Nil(t, c)
	})
}
