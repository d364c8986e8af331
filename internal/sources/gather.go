package sources

import (
	"context"
	"fmt"

	"github.com/cratedig/cratedig/internal/lastfm"
	"github.com/cratedig/cratedig/pkg/board"
)

// DefaultSimilarLimit is how many related artists the gatherer asks the
// provider for when building a feed.
const DefaultSimilarLimit = 20

// Gatherer populates the pool with external candidates: the top track of
// each artist related to the seed. It builds the feed once per seed artist
// and hands candidates out a few at a time as the pool drains.
type Gatherer struct {
	ws           *board.Workspace
	provider     *lastfm.Client
	similarLimit int

	// thinkingAbout is the artist the current feed was built for. A Gather
	// call for a different artist rebuilds the feed.
	thinkingAbout string

	// feed holds (artist, track) pairs most-similar first. Consumption
	// takes from the tail, so the least-similar options are spent first
	// and the strongest matches are saved for later rounds. Deliberate;
	// do not "fix" by consuming from the front.
	feed []feedItem
}

type feedItem struct {
	artist string
	track  string
}

// NewGatherer creates the gathering source. limit controls how many related
// artists seed the feed; zero means DefaultSimilarLimit.
func NewGatherer(ws *board.Workspace, provider *lastfm.Client, limit int) *Gatherer {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	return &Gatherer{ws: ws, provider: provider, similarLimit: limit}
}

// Name implements board.Notifiable.
func (g *Gatherer) Name() string { return "gatherer" }

// Gather pulls up to count unique candidates off the feed for the given
// seed track and admits them to the pool, subscribed to this source. Feed
// items whose identity has already been considered (seed, liked, disliked,
// or live in the pool) are discarded and the next item tried; an exhausted
// feed yields fewer than count admissions, never an error.
func (g *Gatherer) Gather(ctx context.Context, artist, track string, count int) error {
	if g.thinkingAbout != artist {
		if err := g.buildFeed(ctx, artist); err != nil {
			return fmt.Errorf("gather candidates similar to %q: %w", fmt.Sprintf("%s - %s", artist, track), err)
		}
		g.thinkingAbout = artist
	}

	for i := 0; i < count; i++ {
		c, err := g.nextUnique(ctx)
		if err != nil {
			return err
		}
		if c == nil {
			return nil
		}
		if err := g.ws.Admit(c); err != nil {
			return err
		}
		c.Subscribe(g)
	}
	return nil
}

// buildFeed fetches the related-artist list and each one's top track.
func (g *Gatherer) buildFeed(ctx context.Context, artist string) error {
	similar, err := g.provider.GetSimilarArtists(ctx, artist, g.similarLimit)
	if err != nil {
		return err
	}

	feed := make([]feedItem, 0, len(similar))
	for _, name := range similar {
		top, err := g.provider.GetTopTrack(ctx, name)
		if err != nil {
			return err
		}
		feed = append(feed, feedItem{artist: top.Artist, track: top.Name})
	}
	g.feed = feed
	return nil
}

// nextUnique pops feed items until one survives the uniqueness filter,
// fetching full metadata for each. Returns (nil, nil) when the feed is
// exhausted.
func (g *Gatherer) nextUnique(ctx context.Context) (*board.Candidate, error) {
	for len(g.feed) > 0 {
		item := g.feed[len(g.feed)-1]
		g.feed = g.feed[:len(g.feed)-1]

		info, err := g.provider.GetTrackInfo(ctx, item.artist, item.track)
		if err != nil {
			return nil, err
		}
		c := newCandidate(g, info)
		if !g.ws.Considered()[c.ID()] {
			return c, nil
		}
	}
	return nil, nil
}

// OnFeedback records the ground-truth assertion for the user's verdict.
// On acceptance the liked track also becomes the new solving target, so
// that every score from here on is relative to it. Pool clearing and
// regathering are cycle concerns and live in the arbiter.
func (g *Gatherer) OnFeedback(c *board.Candidate, fb board.Feedback) {
	switch fb {
	case board.FeedbackAccepted:
		assertion := board.NewAssertion(c, g, board.ReasonLiked)
		g.ws.Record(assertion)
		g.ws.SetSolving(assertion)
	case board.FeedbackRejected:
		g.ws.Record(board.NewAssertion(c, g, board.ReasonDisliked))
	}
}
