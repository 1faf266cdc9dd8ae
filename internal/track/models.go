package track

import (
	"strings"
	"time"
)

// SourceKind identifies where a candidate came from.
type SourceKind string

const (
	SourceFilesystem SourceKind = "filesystem"
	SourceLibrary    SourceKind = "library"
)

var allSourceKinds = []SourceKind{SourceFilesystem, SourceLibrary}

// AllSourceKinds returns every source kind in report column order.
func AllSourceKinds() []SourceKind {
	out := make([]SourceKind, len(allSourceKinds))
	copy(out, allSourceKinds)
	return out
}

// Label returns the human readable column label for the kind.
func (k SourceKind) Label() string {
	switch k {
	case SourceFilesystem:
		return "Filesystem"
	case SourceLibrary:
		return "Library"
	default:
		return string(k)
	}
}

// Status is the accept/reject outcome for one source kind.
type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
)

// PlaylistTrack is one entry of the playlist export.
type PlaylistTrack struct {
	Position  int    `json:"position"`
	Artist    string `json:"artist"`
	Title     string `json:"title"`
	Album     string `json:"album,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
}

// IsMalformed reports whether the track carries neither artist nor title.
func (t PlaylistTrack) IsMalformed() bool {
	return blank(t.Artist) && blank(t.Title)
}

// DisplayName renders "Artist - Title", dropping whichever side is empty.
func (t PlaylistTrack) DisplayName() string {
	return displayName(t.Artist, t.Title)
}

// Candidate is one local representation of a possibly matching track.
type Candidate struct {
	Artist   string        `json:"artist"`
	Title    string        `json:"title"`
	Album    string        `json:"album,omitempty"`
	Kind     SourceKind    `json:"kind"`
	Location string        `json:"location"`
	FilePath string        `json:"file_path,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Format   string        `json:"format,omitempty"`
}

// IsMalformed reports whether the candidate carries neither artist nor title.
func (c Candidate) IsMalformed() bool {
	return blank(c.Artist) && blank(c.Title)
}

// DisplayName renders "Artist - Title", dropping whichever side is empty.
func (c Candidate) DisplayName() string {
	return displayName(c.Artist, c.Title)
}

// MatchResult is the outcome of scoring one playlist track against every
// candidate of a single source kind.
type MatchResult struct {
	Kind   SourceKind `json:"kind"`
	Best   *Candidate `json:"best,omitempty"`
	Score  int        `json:"score"`
	Status Status     `json:"status"`
}

// NotFound returns the empty outcome for a kind with no usable candidates.
func NotFound(kind SourceKind) MatchResult {
	return MatchResult{Kind: kind, Status: StatusNotFound}
}

// Found reports whether the result was accepted.
func (r MatchResult) Found() bool {
	return r.Status == StatusFound
}

// Location returns the best candidate location, or "" when there is none.
func (r MatchResult) Location() string {
	if r.Best == nil {
		return ""
	}
	return r.Best.Location
}

// TrackMatches pairs a playlist track with its outcome for every source kind.
type TrackMatches struct {
	Track      PlaylistTrack `json:"track"`
	Filesystem MatchResult   `json:"filesystem"`
	Library    MatchResult   `json:"library"`
}

// For returns the result for kind. Unknown kinds are NotFound.
func (m TrackMatches) For(kind SourceKind) MatchResult {
	switch kind {
	case SourceFilesystem:
		return normalizeResult(kind, m.Filesystem)
	case SourceLibrary:
		return normalizeResult(kind, m.Library)
	default:
		return NotFound(kind)
	}
}

// Missing reports whether no source kind found the track. A kind that was
// never scored counts as NotFound.
func (m TrackMatches) Missing() bool {
	for _, kind := range allSourceKinds {
		if m.For(kind).Found() {
			return false
		}
	}
	return true
}

// normalizeResult fills the zero value left behind when a kind was not scored.
func normalizeResult(kind SourceKind, r MatchResult) MatchResult {
	if r.Status == "" {
		r.Status = StatusNotFound
	}
	if r.Kind == "" {
		r.Kind = kind
	}
	return r
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func displayName(artist, title string) string {
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	switch {
	case artist != "" && title != "":
		return artist + " - " + title
	case artist != "":
		return artist
	default:
		return title
	}
}
