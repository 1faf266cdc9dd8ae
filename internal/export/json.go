package export

import (
	"encoding/json"
	"io"
	"time"

	"seekr/internal/reconcile"
	"seekr/internal/report"
	"seekr/internal/track"
)

type jsonReport struct {
	RunID       string             `json:"run_id"`
	GeneratedAt string             `json:"generated_at"`
	Threshold   int                `json:"threshold"`
	Sources     []track.SourceKind `json:"sources"`
	Candidates  map[string]int     `json:"candidates"`
	Summary     report.Summary     `json:"summary"`
	Tracks      []jsonRow          `json:"tracks"`
	Skipped     []jsonSkippedTrack `json:"skipped_tracks"`
}

type jsonRow struct {
	Position   int        `json:"position"`
	Artist     string     `json:"artist"`
	Title      string     `json:"title"`
	Album      string     `json:"album,omitempty"`
	ServiceID  string     `json:"service_id,omitempty"`
	Missing    bool       `json:"missing"`
	Filesystem jsonResult `json:"filesystem"`
	Library    jsonResult `json:"library"`
}

type jsonResult struct {
	Status    track.Status   `json:"status"`
	Score     int            `json:"score"`
	Candidate *jsonCandidate `json:"candidate,omitempty"`
}

type jsonCandidate struct {
	Artist          string  `json:"artist"`
	Title           string  `json:"title"`
	Album           string  `json:"album,omitempty"`
	Location        string  `json:"location"`
	FilePath        string  `json:"file_path,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Format          string  `json:"format,omitempty"`
}

type jsonSkippedTrack struct {
	Position int    `json:"position"`
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	Reason   string `json:"reason"`
}

// WriteReportJSON writes the full run result as indented JSON.
func WriteReportJSON(w io.Writer, res *reconcile.Result) error {
	doc := jsonReport{
		RunID:       res.RunID,
		GeneratedAt: res.StartedAt.UTC().Format(time.RFC3339),
		Threshold:   res.Threshold,
		Sources:     res.Sources,
		Candidates:  make(map[string]int, len(res.CandidateCounts)),
		Summary:     res.Summary,
		Tracks:      make([]jsonRow, 0, len(res.Report.Rows)),
		Skipped:     make([]jsonSkippedTrack, 0, len(res.SkippedTracks)),
	}
	if doc.Sources == nil {
		doc.Sources = []track.SourceKind{}
	}
	for kind, n := range res.CandidateCounts {
		doc.Candidates[string(kind)] = n
	}
	for _, row := range res.Report.Rows {
		doc.Tracks = append(doc.Tracks, jsonRow{
			Position:   row.Track.Position,
			Artist:     row.Track.Artist,
			Title:      row.Track.Title,
			Album:      row.Track.Album,
			ServiceID:  row.Track.ServiceID,
			Missing:    row.Missing(),
			Filesystem: toJSONResult(row.Result(track.SourceFilesystem)),
			Library:    toJSONResult(row.Result(track.SourceLibrary)),
		})
	}
	for _, s := range res.SkippedTracks {
		doc.Skipped = append(doc.Skipped, jsonSkippedTrack{
			Position: s.Position,
			Artist:   s.Track.Artist,
			Title:    s.Track.Title,
			Reason:   s.Reason,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func toJSONResult(res track.MatchResult) jsonResult {
	out := jsonResult{Status: res.Status, Score: res.Score}
	if res.Best != nil {
		out.Candidate = &jsonCandidate{
			Artist:          res.Best.Artist,
			Title:           res.Best.Title,
			Album:           res.Best.Album,
			Location:        res.Best.Location,
			FilePath:        res.Best.FilePath,
			DurationSeconds: res.Best.Duration.Seconds(),
			Format:          res.Best.Format,
		}
	}
	return out
}
