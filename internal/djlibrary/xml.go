package djlibrary

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"seekr/internal/services"
	"seekr/internal/track"
)

type rekordboxXMLTrack struct {
	TrackID   string `xml:"TrackID,attr"`
	Name      string `xml:"Name,attr"`
	Artist    string `xml:"Artist,attr"`
	Album     string `xml:"Album,attr"`
	Kind      string `xml:"Kind,attr"`
	TotalTime int    `xml:"TotalTime,attr"`
	Location  string `xml:"Location,attr"`
}

type rekordboxXML struct {
	XMLName    xml.Name `xml:"DJ_PLAYLISTS"`
	Collection struct {
		Tracks []rekordboxXMLTrack `xml:"TRACK"`
	} `xml:"COLLECTION"`
}

type xmlReader struct {
	path string
}

func (r *xmlReader) Tracks(ctx context.Context) ([]track.Candidate, error) {
	if err := ensureContext(ctx).Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open library xml: %w", err)
	}
	defer file.Close()

	var doc rekordboxXML
	if err := xml.NewDecoder(file).Decode(&doc); err != nil {
		return nil, services.Wrap(services.ErrValidation, "library", "decode xml", r.path, err)
	}

	out := make([]track.Candidate, 0, len(doc.Collection.Tracks))
	for _, t := range doc.Collection.Tracks {
		filePath := decodeLocation(t.Location)
		format := formatFromPath(filePath)
		if format == "" {
			format = formatFromKind(t.Kind)
		}
		out = append(out, track.Candidate{
			Kind:     track.SourceLibrary,
			Artist:   strings.TrimSpace(t.Artist),
			Title:    strings.TrimSpace(t.Name),
			Album:    strings.TrimSpace(t.Album),
			Location: "rekordbox:" + t.TrackID,
			FilePath: filePath,
			Duration: time.Duration(t.TotalTime) * time.Second,
			Format:   format,
		})
	}
	return out, nil
}

func (r *xmlReader) Close() error { return nil }

// decodeLocation turns "file://localhost/Music/a%20b.mp3" into a local path.
// Windows drive paths lose the leading slash.
func decodeLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	u, err := url.Parse(location)
	if err != nil || u.Scheme != "file" {
		return location
	}
	p := u.Path
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return p
}
