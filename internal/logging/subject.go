package logging

import "strings"

// FormatSubject builds the run/stage subject string used in console output.
// Run IDs are shortened to their first segment.
func FormatSubject(runID, stage string) string {
	runID = strings.TrimSpace(runID)
	stage = strings.TrimSpace(stage)
	if i := strings.IndexByte(runID, '-'); i > 0 {
		runID = runID[:i]
	}
	switch {
	case runID != "" && stage != "":
		return "Run " + runID + " (" + stage + ")"
	case runID != "":
		return "Run " + runID
	default:
		return stage
	}
}
