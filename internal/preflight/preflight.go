package preflight

import (
	"seekr/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// RunAll executes the preflight checks for a run. The music directory and
// library are only checked when configured; at least one must be. The
// playlist is checked when playlistPath is non-empty.
func RunAll(cfg *config.Config, playlistPath string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if playlistPath != "" {
		results = append(results, CheckReadableFile("Playlist", playlistPath))
	}

	if cfg.Paths.MusicDir == "" && cfg.Paths.LibraryPath == "" {
		results = append(results, Result{Name: "Sources", Detail: "neither music_dir nor library_path is configured"})
	}
	if cfg.Paths.MusicDir != "" {
		results = append(results, CheckReadableDirectory("Music directory", cfg.Paths.MusicDir))
	}
	if cfg.Paths.LibraryPath != "" {
		results = append(results, CheckLibrary("DJ library", cfg.Paths.LibraryPath, cfg.Library.Format))
	}

	// Report directory (always checked)
	results = append(results, CheckCreatableDirectory("Report directory", cfg.Paths.ReportDir))

	return results
}

// Failures returns the results that did not pass.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
