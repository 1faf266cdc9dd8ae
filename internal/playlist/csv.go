package playlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"seekr/internal/track"
)

var (
	artistHeaders = []string{"artist", "artists", "artist name(s)", "artist name"}
	titleHeaders  = []string{"title", "name", "track name", "track"}
	albumHeaders  = []string{"album", "album name"}
	idHeaders     = []string{"id", "spotify_id", "track uri", "uri"}
)

func decodeCSV(r io.Reader) ([]track.PlaylistTrack, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []track.PlaylistTrack{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := indexHeader(header)
	artistCol := lookup(columns, artistHeaders)
	titleCol := lookup(columns, titleHeaders)
	if artistCol < 0 && titleCol < 0 {
		return nil, fmt.Errorf("header has no artist or title column: %v", header)
	}
	albumCol := lookup(columns, albumHeaders)
	idCol := lookup(columns, idHeaders)

	var tracks []track.PlaylistTrack
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(tracks)+2, err)
		}
		tracks = append(tracks, track.PlaylistTrack{
			Artist:    joinArtists(strings.Split(field(record, artistCol), ";")),
			Title:     field(record, titleCol),
			Album:     field(record, albumCol),
			ServiceID: field(record, idCol),
		})
	}
	if tracks == nil {
		tracks = []track.PlaylistTrack{}
	}
	return tracks, nil
}

func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}
	return columns
}

func lookup(columns map[string]int, names []string) int {
	for _, name := range names {
		if idx, ok := columns[name]; ok {
			return idx
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
