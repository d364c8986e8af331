// Package lastfm is the external data provider collaborator: a thin client
// for the audioscrobbler web API that supplies track metadata, tag lists,
// and similar-artist lists to the knowledge sources.
//
// The client holds no process-wide state; credentials and tuning arrive in
// an explicit Config at construction. Lookups can optionally be served from
// a Redis-backed response cache so that repeated sessions do not hammer the
// provider.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://ws.audioscrobbler.com"

// ProviderError reports a failed external lookup: a non-success HTTP status
// or an application-level error envelope. Provider errors are non-local -
// they surface up through the calling knowledge source and terminate the
// current recommendation cycle. The core never retries them.
type ProviderError struct {
	Method  string
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed: %d %s", e.Method, e.Status, e.Message)
}

// Config carries everything the client needs at construction.
type Config struct {
	// APIKey is the provider credential. Required.
	APIKey string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// Autocorrect asks the provider to fix common artist/track misspellings.
	Autocorrect bool

	// HTTPClient overrides the HTTP client used for lookups.
	HTTPClient *http.Client

	// Cache, when non-nil, serves lookups from Redis before the network.
	Cache *Cache
}

// Client performs provider lookups. Safe for reuse across calls; not
// intended for concurrent use, matching the engine's single-threaded model.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a provider client. Returns an error if no API key is set.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("lastfm: API key cannot be empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, httpClient: httpClient}, nil
}

// GetTrackInfo fetches the full metadata record for a single track.
func (c *Client) GetTrackInfo(ctx context.Context, artist, track string) (*TrackInfo, error) {
	const method = "track.getInfo"
	body, err := c.request(ctx, method, url.Values{
		"artist": {artist},
		"track":  {track},
	})
	if err != nil {
		return nil, err
	}

	var resp trackInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("lastfm: decode %s response: %w", method, err)
	}
	if resp.Track == nil {
		return nil, &ProviderError{Method: method, Status: http.StatusOK, Message: "response has no track record"}
	}

	info := resp.Track.toTrackInfo()
	if info.Artist == "" {
		info.Artist = artist
	}
	return info, nil
}

// GetSimilarArtists fetches up to limit artist names similar to the given
// artist, most-similar first.
func (c *Client) GetSimilarArtists(ctx context.Context, artist string, limit int) ([]string, error) {
	const method = "artist.getSimilar"
	body, err := c.request(ctx, method, url.Values{
		"artist": {artist},
		"limit":  {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}

	var resp similarArtistsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("lastfm: decode %s response: %w", method, err)
	}

	names := make([]string, 0, len(resp.SimilarArtists.Artist))
	for _, a := range resp.SimilarArtists.Artist {
		names = append(names, a.Name)
	}
	return names, nil
}

// GetTopTrack fetches the single most-played track for an artist.
func (c *Client) GetTopTrack(ctx context.Context, artist string) (*TrackInfo, error) {
	const method = "artist.getTopTracks"
	body, err := c.request(ctx, method, url.Values{
		"artist": {artist},
		"limit":  {"1"},
	})
	if err != nil {
		return nil, err
	}

	var resp topTracksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("lastfm: decode %s response: %w", method, err)
	}
	if len(resp.TopTracks.Track) == 0 {
		return nil, &ProviderError{Method: method, Status: http.StatusOK, Message: fmt.Sprintf("no top tracks for artist %q", artist)}
	}

	info := resp.TopTracks.Track[0].toTrackInfo()
	if info.Artist == "" {
		info.Artist = artist
	}
	return info, nil
}

// GetTopTags fetches up to limit tag names for a track, most-popular first.
// The provider treats its limit parameter as advisory, so the result is
// truncated client-side.
func (c *Client) GetTopTags(ctx context.Context, artist, track string, limit int) ([]string, error) {
	const method = "track.getTopTags"
	body, err := c.request(ctx, method, url.Values{
		"artist": {artist},
		"track":  {track},
		"limit":  {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}

	var resp topTagsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("lastfm: decode %s response: %w", method, err)
	}

	tags := make([]string, 0, len(resp.TopTags.Tag))
	for _, tag := range resp.TopTags.Tag {
		tags = append(tags, tag.Name)
	}
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

// request performs a single API call, consulting the cache first when one
// is configured. Returns the raw response body on success.
func (c *Client) request(ctx context.Context, method string, params url.Values) ([]byte, error) {
	cacheKey := CacheKey(method, params)
	if c.cfg.Cache != nil {
		if body, ok := c.cfg.Cache.Get(ctx, cacheKey); ok {
			return body, nil
		}
	}

	params.Set("method", method)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("format", "json")
	if c.cfg.Autocorrect {
		params.Set("autocorrect", "1")
	}

	endpoint := fmt.Sprintf("%s/2.0/?%s", c.cfg.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("lastfm: build %s request: %w", method, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lastfm: %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lastfm: read %s response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Method: method, Status: resp.StatusCode, Message: resp.Status}
	}

	// Application-level failures arrive as a 200 with an error envelope.
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != 0 {
		return nil, &ProviderError{Method: method, Status: resp.StatusCode, Message: envelope.Message}
	}

	if c.cfg.Cache != nil {
		c.cfg.Cache.Set(ctx, cacheKey, body)
	}
	return body, nil
}
