// Package testutil provides a scriptable fake of the audioscrobbler API
// for tests: fixtures are registered per artist/track and served over an
// httptest server that speaks the provider's JSON dialect, including its
// quirks (numbers as strings, single-element lists collapsed to objects).
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/cratedig/cratedig/internal/lastfm"
	"github.com/stretchr/testify/require"
)

// Track is a provider track fixture.
type Track struct {
	Artist    string
	Name      string
	Listeners int64
	Duration  int64
	Playcount int64
	URL       string
}

// Provider is a fake audioscrobbler server. Register fixtures, then build
// clients against URL(). Requests counts lookups per API method so tests
// can assert on caching behaviour.
type Provider struct {
	// Tracks holds full track records, keyed by "artist|track".
	Tracks map[string]Track

	// Similar holds related-artist lists keyed by artist, most-similar
	// first.
	Similar map[string][]string

	// TopTracks holds each artist's single top track.
	TopTracks map[string]Track

	// Tags holds top-tag lists keyed by "artist|track".
	Tags map[string][]string

	// Requests counts handled lookups per API method.
	Requests map[string]int

	srv *httptest.Server
}

// NewProvider starts a fake provider server, shut down via t.Cleanup.
func NewProvider(t *testing.T) *Provider {
	p := &Provider{
		Tracks:    make(map[string]Track),
		Similar:   make(map[string][]string),
		TopTracks: make(map[string]Track),
		Tags:      make(map[string][]string),
		Requests:  make(map[string]int),
	}
	p.srv = httptest.NewServer(http.HandlerFunc(p.handle))
	t.Cleanup(p.srv.Close)
	return p
}

// URL returns the fake server's base URL for lastfm.Config.BaseURL.
func (p *Provider) URL() string {
	return p.srv.URL
}

// Client builds a provider client pointed at the fake server.
func (p *Provider) Client(t *testing.T) *lastfm.Client {
	client, err := lastfm.New(lastfm.Config{
		APIKey:  "test-key",
		BaseURL: p.srv.URL,
	})
	require.NoError(t, err)
	return client
}

// AddTrack registers a full track record.
func (p *Provider) AddTrack(track Track) {
	p.Tracks[trackKey(track.Artist, track.Name)] = track
}

// AddTags registers a track's top-tag list.
func (p *Provider) AddTags(artist, track string, tags []string) {
	p.Tags[trackKey(artist, track)] = tags
}

func trackKey(artist, track string) string {
	return artist + "|" + track
}

func (p *Provider) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	method := q.Get("method")
	p.Requests[method]++

	switch method {
	case "track.getInfo":
		track, ok := p.Tracks[trackKey(q.Get("artist"), q.Get("track"))]
		if !ok {
			writeAPIError(w, "Track not found")
			return
		}
		fmt.Fprint(w, trackInfoJSON(track))

	case "artist.getSimilar":
		names := p.Similar[q.Get("artist")]
		body := `{"similarartists":{"artist":[`
		for i, name := range names {
			if i > 0 {
				body += ","
			}
			body += fmt.Sprintf(`{"name":%q}`, name)
		}
		body += `]}}`
		fmt.Fprint(w, body)

	case "artist.getTopTracks":
		track, ok := p.TopTracks[q.Get("artist")]
		if !ok {
			fmt.Fprint(w, `{"toptracks":{"track":[]}}`)
			return
		}
		fmt.Fprintf(w, `{"toptracks":{"track":[%s]}}`, trackJSON(track))

	case "track.getTopTags":
		tags := p.Tags[trackKey(q.Get("artist"), q.Get("track"))]
		body := `{"toptags":{"tag":[`
		for i, tag := range tags {
			if i > 0 {
				body += ","
			}
			body += fmt.Sprintf(`{"name":%q}`, tag)
		}
		body += `]}}`
		fmt.Fprint(w, body)

	default:
		writeAPIError(w, "Invalid method")
	}
}

// trackInfoJSON serialises a fixture the way track.getInfo does: numeric
// fields quoted as strings.
func trackInfoJSON(track Track) string {
	return fmt.Sprintf(`{"track":%s}`, trackJSON(track))
}

func trackJSON(track Track) string {
	return fmt.Sprintf(
		`{"name":%q,"url":%q,"listeners":%q,"duration":%q,"playcount":%q,"artist":{"name":%q}}`,
		track.Name, track.URL,
		strconv.FormatInt(track.Listeners, 10),
		strconv.FormatInt(track.Duration, 10),
		strconv.FormatInt(track.Playcount, 10),
		track.Artist,
	)
}

func writeAPIError(w http.ResponseWriter, message string) {
	fmt.Fprintf(w, `{"error":6,"message":%q}`, message)
}
