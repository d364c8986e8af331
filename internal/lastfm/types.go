package lastfm

import (
	"encoding/json"
	"strconv"
)

// TrackInfo is the normalised track record returned by the provider.
type TrackInfo struct {
	Name      string
	Artist    string
	Listeners int64
	Duration  int64
	Playcount int64
	URL       string
}

// flexInt decodes a JSON number that the provider serialises inconsistently:
// sometimes a bare number, sometimes a quoted string ("playcount": "123").
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*f = flexInt(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// oneOrMany decodes a list field that the provider collapses to a single
// object when it contains exactly one element.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, (*[]T)(o))
	}
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*o = oneOrMany[T]{single}
	return nil
}

type rawArtist struct {
	Name string `json:"name"`
}

func (a *rawArtist) UnmarshalJSON(data []byte) error {
	// Some endpoints return the artist as a bare name string.
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &a.Name)
	}
	type alias rawArtist
	return json.Unmarshal(data, (*alias)(a))
}

type rawTrack struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Listeners flexInt   `json:"listeners"`
	Duration  flexInt   `json:"duration"`
	Playcount flexInt   `json:"playcount"`
	Artist    rawArtist `json:"artist"`
}

func (t *rawTrack) toTrackInfo() *TrackInfo {
	return &TrackInfo{
		Name:      t.Name,
		Artist:    t.Artist.Name,
		Listeners: int64(t.Listeners),
		Duration:  int64(t.Duration),
		Playcount: int64(t.Playcount),
		URL:       t.URL,
	}
}

type trackInfoResponse struct {
	Track *rawTrack `json:"track"`
}

type similarArtistsResponse struct {
	SimilarArtists struct {
		Artist oneOrMany[rawArtist] `json:"artist"`
	} `json:"similarartists"`
}

type topTracksResponse struct {
	TopTracks struct {
		Track oneOrMany[rawTrack] `json:"track"`
	} `json:"toptracks"`
}

type rawTag struct {
	Name string `json:"name"`
}

type topTagsResponse struct {
	TopTags struct {
		Tag oneOrMany[rawTag] `json:"tag"`
	} `json:"toptags"`
}

// apiError is the provider's in-band error envelope, delivered with a 200
// status for application-level failures such as "Track not found".
type apiError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}
