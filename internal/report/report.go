package report

import (
	"fmt"

	"seekr/internal/track"
)

// Row is one playlist track with its outcome for every source kind.
type Row struct {
	Track      track.PlaylistTrack `json:"track"`
	Filesystem track.MatchResult   `json:"filesystem"`
	Library    track.MatchResult   `json:"library"`
}

// Result returns the row outcome for kind.
func (r Row) Result(kind track.SourceKind) track.MatchResult {
	return track.TrackMatches{Track: r.Track, Filesystem: r.Filesystem, Library: r.Library}.For(kind)
}

// Missing reports whether every source kind is NotFound.
func (r Row) Missing() bool {
	return track.TrackMatches{Track: r.Track, Filesystem: r.Filesystem, Library: r.Library}.Missing()
}

// Report is the full reconciliation view.
type Report struct {
	Rows []Row `json:"rows"`
}

// Checklist is the missing-only view.
type Checklist struct {
	Rows []Row `json:"rows"`
}

// Summary counts report rows by outcome.
type Summary struct {
	Total            int `json:"total"`
	InLibrary        int `json:"in_library"`
	OnFilesystemOnly int `json:"on_filesystem_only"`
	Missing          int `json:"missing"`
}

// Build projects matches into the report and checklist views.
func Build(matches []track.TrackMatches) (Report, Checklist) {
	rep := Report{Rows: make([]Row, 0, len(matches))}
	check := Checklist{Rows: make([]Row, 0)}
	for _, m := range matches {
		row := Row{
			Track:      m.Track,
			Filesystem: m.For(track.SourceFilesystem),
			Library:    m.For(track.SourceLibrary),
		}
		rep.Rows = append(rep.Rows, row)
		if row.Missing() {
			check.Rows = append(check.Rows, row)
		}
	}
	return rep, check
}

// BuildFrom pairs tracks with their matches by position and builds both views.
// The two slices must be aligned.
func BuildFrom(tracks []track.PlaylistTrack, matches []track.TrackMatches) (Report, Checklist, error) {
	if len(tracks) != len(matches) {
		return Report{}, Checklist{}, fmt.Errorf("build report: %d tracks but %d match sets", len(tracks), len(matches))
	}
	paired := make([]track.TrackMatches, len(matches))
	for i, m := range matches {
		m.Track = tracks[i]
		paired[i] = m
	}
	rep, check := Build(paired)
	return rep, check, nil
}

// Summarize counts rows: library hits first, then filesystem-only hits, then
// rows found nowhere.
func Summarize(rep Report) Summary {
	s := Summary{Total: len(rep.Rows)}
	for _, row := range rep.Rows {
		switch {
		case row.Library.Found():
			s.InLibrary++
		case row.Filesystem.Found():
			s.OnFilesystemOnly++
		default:
			s.Missing++
		}
	}
	return s
}
