package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"seekr/internal/catalog"
	"seekr/internal/logging"
	"seekr/internal/matcher"
	"seekr/internal/report"
	"seekr/internal/services"
	"seekr/internal/track"
)

const stageMatch = "match"

// Input carries the already-loaded data for one run. A source that was not
// supplied is treated as empty and every track is NotFound for it.
type Input struct {
	Tracks             []track.PlaylistTrack
	Filesystem         []track.Candidate
	Library            []track.Candidate
	FilesystemSupplied bool
	LibrarySupplied    bool
}

// Sources returns the supplied source kinds in report column order.
func (in Input) Sources() []track.SourceKind {
	var out []track.SourceKind
	if in.FilesystemSupplied {
		out = append(out, track.SourceFilesystem)
	}
	if in.LibrarySupplied {
		out = append(out, track.SourceLibrary)
	}
	return out
}

// Options tunes a run.
type Options struct {
	// Threshold is the inclusive acceptance score in [0,100].
	Threshold int
	// Workers parallelizes matching across tracks; <= 1 is sequential.
	Workers int
}

// SkippedTrack records a playlist entry excluded from matching.
type SkippedTrack struct {
	Position int
	Track    track.PlaylistTrack
	Reason   string
}

// Result is the outcome of one run.
type Result struct {
	RunID             string
	Threshold         int
	Sources           []track.SourceKind
	Report            report.Report
	Checklist         report.Checklist
	Summary           report.Summary
	SkippedTracks     []SkippedTrack
	SkippedCandidates []catalog.Skipped
	CandidateCounts   map[track.SourceKind]int
	StartedAt         time.Time
	Elapsed           time.Duration
}

// Run reconciles in.Tracks against the supplied candidate sources.
func Run(ctx context.Context, logger *slog.Logger, in Input, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	m, err := matcher.New(opts.Threshold)
	if err != nil {
		return nil, err
	}
	if !in.FilesystemSupplied && !in.LibrarySupplied {
		return nil, services.Wrap(services.ErrConfiguration, "reconcile", "sources",
			"at least one of filesystem or library must be supplied", nil)
	}

	started := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithStage(ctx, stageMatch)
	log := logging.WithContext(ctx, logging.NewComponentLogger(logger, "reconcile"))

	var filesystem, library []track.Candidate
	if in.FilesystemSupplied {
		filesystem = in.Filesystem
	}
	if in.LibrarySupplied {
		library = in.Library
	}
	idx := catalog.Build(filesystem, library)
	skippedCandidates := idx.Skipped()
	for _, s := range skippedCandidates {
		logging.WarnWithContext(log, "candidate skipped", "candidate_skipped",
			logging.String("source", string(s.Kind)),
			logging.Int("position", s.Position),
			logging.String("location", s.Candidate.Location),
			logging.String("reason", s.Reason),
			logging.String(logging.FieldErrorHint, "check the tags or library entry for this file"),
			logging.String(logging.FieldImpact, "candidate cannot match any track"),
		)
	}

	tracks, skippedTracks := filterTracks(in.Tracks)
	for _, s := range skippedTracks {
		logging.WarnWithContext(log, "playlist track skipped", "track_skipped",
			logging.Int("position", s.Position),
			logging.String("reason", s.Reason),
			logging.String(logging.FieldErrorHint, "fix the playlist entry and rerun"),
			logging.String(logging.FieldImpact, "track excluded from report and checklist"),
		)
	}

	counts := make(map[track.SourceKind]int, 2)
	for _, kind := range track.AllSourceKinds() {
		counts[kind] = idx.Len(kind)
	}
	log.Info("matching started",
		logging.Int("tracks", len(tracks)),
		logging.Int("filesystem_candidates", counts[track.SourceFilesystem]),
		logging.Int("library_candidates", counts[track.SourceLibrary]),
		logging.Int("threshold", m.Threshold()),
	)

	matches, err := m.MatchAll(ctx, tracks, idx, opts.Workers)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "reconcile", "match", "matching interrupted", err)
	}
	if log.Enabled(ctx, slog.LevelDebug) {
		logDecisions(log, in.Sources(), matches, m.Threshold())
	}

	rep, checklist := report.Build(matches)
	summary := report.Summarize(rep)
	elapsed := time.Since(started)
	log.Info("matching complete",
		logging.Int("tracks", summary.Total),
		logging.Int("in_library", summary.InLibrary),
		logging.Int("filesystem_only", summary.OnFilesystemOnly),
		logging.Int("missing", summary.Missing),
		logging.Int("skipped_tracks", len(skippedTracks)),
		logging.Int("skipped_candidates", len(skippedCandidates)),
		logging.Duration("stage_duration", elapsed),
	)

	return &Result{
		RunID:             runID,
		Threshold:         m.Threshold(),
		Sources:           in.Sources(),
		Report:            rep,
		Checklist:         checklist,
		Summary:           summary,
		SkippedTracks:     skippedTracks,
		SkippedCandidates: skippedCandidates,
		CandidateCounts:   counts,
		StartedAt:         started,
		Elapsed:           elapsed,
	}, nil
}

// filterTracks assigns 1-based positions to unnumbered tracks and splits off
// malformed entries.
func filterTracks(in []track.PlaylistTrack) ([]track.PlaylistTrack, []SkippedTrack) {
	kept := make([]track.PlaylistTrack, 0, len(in))
	var skipped []SkippedTrack
	for i, t := range in {
		if t.Position == 0 {
			t.Position = i + 1
		}
		if t.IsMalformed() {
			skipped = append(skipped, SkippedTrack{
				Position: t.Position,
				Track:    t,
				Reason:   "missing artist and title",
			})
			continue
		}
		kept = append(kept, t)
	}
	return kept, skipped
}

func logDecisions(log *slog.Logger, sources []track.SourceKind, matches []track.TrackMatches, threshold int) {
	for _, tm := range matches {
		for _, kind := range sources {
			res := tm.For(kind)
			reason := "no candidates"
			candidate := ""
			if res.Best != nil {
				candidate = res.Best.DisplayName()
				if res.Found() {
					reason = "score at or above threshold"
				} else {
					reason = "best score below threshold"
				}
			}
			attrs := logging.DecisionAttrs("match", string(res.Status), reason)
			attrs = append(attrs,
				logging.Int("position", tm.Track.Position),
				logging.String("track", tm.Track.DisplayName()),
				logging.String("source", string(kind)),
				logging.String("candidate", candidate),
				logging.Int("score", res.Score),
				logging.Int("threshold", threshold),
			)
			log.Debug("match decision", logging.Args(attrs...)...)
		}
	}
}
