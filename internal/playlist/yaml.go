package playlist

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"seekr/internal/track"
)

// yamlEntry mirrors jsonEntry for hand-maintained YAML playlists.
type yamlEntry struct {
	Artist    any    `yaml:"artist"`
	Artists   any    `yaml:"artists"`
	Title     string `yaml:"title"`
	Name      string `yaml:"name"`
	Album     string `yaml:"album"`
	ID        string `yaml:"id"`
	SpotifyID string `yaml:"spotify_id"`
	URI       string `yaml:"uri"`
}

func decodeYAML(r io.Reader) ([]track.PlaylistTrack, error) {
	var entries []yamlEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	tracks := make([]track.PlaylistTrack, 0, len(entries))
	for i, e := range entries {
		artist, err := yamlArtist(e.Artist)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		artists, err := yamlArtist(e.Artists)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		tracks = append(tracks, track.PlaylistTrack{
			Artist:    firstNonEmpty(artist, artists),
			Title:     firstNonEmpty(e.Title, e.Name),
			Album:     e.Album,
			ServiceID: firstNonEmpty(e.ID, e.SpotifyID, e.URI),
		})
	}
	return tracks, nil
}

func yamlArtist(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", fmt.Errorf("artist list must contain strings, got %T", item)
			}
			names = append(names, s)
		}
		return joinArtists(names), nil
	default:
		return fmt.Sprint(v), nil
	}
}
