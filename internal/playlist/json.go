package playlist

import (
	"encoding/json"
	"fmt"
	"io"

	"seekr/internal/track"
)

type jsonEntry struct {
	Artist    artistField `json:"artist"`
	Artists   artistField `json:"artists"`
	Title     string      `json:"title"`
	Name      string      `json:"name"`
	Album     string      `json:"album"`
	ID        string      `json:"id"`
	SpotifyID string      `json:"spotify_id"`
	URI       string      `json:"uri"`
}

// artistField accepts either a string or a list of strings.
type artistField string

func (a *artistField) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = artistField(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("artist must be a string or list of strings: %w", err)
	}
	*a = artistField(joinArtists(many))
	return nil
}

func decodeJSON(r io.Reader) ([]track.PlaylistTrack, error) {
	var entries []jsonEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}
	tracks := make([]track.PlaylistTrack, 0, len(entries))
	for _, e := range entries {
		tracks = append(tracks, track.PlaylistTrack{
			Artist:    firstNonEmpty(string(e.Artist), string(e.Artists)),
			Title:     firstNonEmpty(e.Title, e.Name),
			Album:     e.Album,
			ServiceID: firstNonEmpty(e.ID, e.SpotifyID, e.URI),
		})
	}
	return tracks, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
