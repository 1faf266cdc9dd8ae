package matcher

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"seekr/internal/catalog"
	"seekr/internal/services"
	"seekr/internal/textutil"
	"seekr/internal/track"
)

const (
	MinThreshold = 0
	MaxThreshold = 100
)

// Matcher scores playlist tracks against a candidate index.
type Matcher struct {
	threshold int
}

// New returns a Matcher accepting scores >= threshold.
func New(threshold int) (*Matcher, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	return &Matcher{threshold: threshold}, nil
}

// ValidateThreshold rejects thresholds outside [MinThreshold, MaxThreshold].
func ValidateThreshold(threshold int) error {
	if threshold < MinThreshold || threshold > MaxThreshold {
		return services.Wrap(services.ErrConfiguration, "match", "threshold",
			fmt.Sprintf("must be between %d and %d, got %d", MinThreshold, MaxThreshold, threshold), nil)
	}
	return nil
}

// Threshold returns the configured acceptance threshold.
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Match scores t against every candidate of each source kind.
func (m *Matcher) Match(t track.PlaylistTrack, idx *catalog.Index) track.TrackMatches {
	key := textutil.Normalize(t.Artist, t.Title)
	titleLen := utf8.RuneCountInString(t.Title)
	return track.TrackMatches{
		Track:      t,
		Filesystem: m.best(track.SourceFilesystem, key, titleLen, idx.Entries(track.SourceFilesystem)),
		Library:    m.best(track.SourceLibrary, key, titleLen, idx.Entries(track.SourceLibrary)),
	}
}

func (m *Matcher) best(kind track.SourceKind, key textutil.Key, titleLen int, entries []catalog.Entry) track.MatchResult {
	if len(entries) == 0 {
		return track.NotFound(kind)
	}
	bestIdx := -1
	bestScore := -1
	bestGap := 0
	for i := range entries {
		score := textutil.TokenSetRatio(key, entries[i].Key)
		gap := abs(utf8.RuneCountInString(entries[i].Candidate.Title) - titleLen)
		// strict comparisons keep the earliest candidate on a full tie
		if score > bestScore || (score == bestScore && gap < bestGap) {
			bestIdx, bestScore, bestGap = i, score, gap
		}
	}

	best := entries[bestIdx].Candidate
	result := track.MatchResult{
		Kind:   kind,
		Best:   &best,
		Score:  bestScore,
		Status: track.StatusNotFound,
	}
	if bestScore >= m.threshold {
		result.Status = track.StatusFound
	}
	return result
}

// MatchAll matches every track, preserving input order. workers <= 1 runs
// sequentially. Cancellation stops scheduling further tracks and returns the
// context error.
func (m *Matcher) MatchAll(ctx context.Context, tracks []track.PlaylistTrack, idx *catalog.Index, workers int) ([]track.TrackMatches, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	out := make([]track.TrackMatches, len(tracks))
	if workers <= 1 || len(tracks) < 2 {
		for i, t := range tracks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = m.Match(t, idx)
		}
		return out, nil
	}

	workers = min(workers, len(tracks))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = m.Match(tracks[i], idx)
			}
		}()
	}

	var err error
feed:
	for i := range tracks {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, err
	}
	return out, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
