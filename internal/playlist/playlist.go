package playlist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"seekr/internal/services"
	"seekr/internal/track"
)

// Format identifies a playlist file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// DetectFormat infers the playlist format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", services.Wrap(services.ErrValidation, "playlist", "detect format",
			fmt.Sprintf("unsupported playlist extension %q (want .json, .csv, or .yaml)", filepath.Ext(path)), nil)
	}
}

// Load reads the playlist at path. Positions are 1-based in file order.
func Load(path string) ([]track.PlaylistTrack, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer file.Close()
	return Decode(file, format)
}

// Decode parses a playlist stream in the given format.
func Decode(r io.Reader, format Format) ([]track.PlaylistTrack, error) {
	var (
		tracks []track.PlaylistTrack
		err    error
	)
	switch format {
	case FormatJSON:
		tracks, err = decodeJSON(r)
	case FormatCSV:
		tracks, err = decodeCSV(r)
	case FormatYAML:
		tracks, err = decodeYAML(r)
	default:
		return nil, services.Wrap(services.ErrValidation, "playlist", "decode",
			fmt.Sprintf("unknown format %q", format), nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "playlist", "decode", string(format), err)
	}
	for i := range tracks {
		tracks[i].Position = i + 1
		tracks[i].Artist = strings.TrimSpace(tracks[i].Artist)
		tracks[i].Title = strings.TrimSpace(tracks[i].Title)
		tracks[i].Album = strings.TrimSpace(tracks[i].Album)
		tracks[i].ServiceID = strings.TrimSpace(tracks[i].ServiceID)
	}
	return tracks, nil
}

func joinArtists(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, ", ")
}
