package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"seekr/internal/export"
	"seekr/internal/reconcile"
	"seekr/internal/report"
	"seekr/internal/track"
)

const notChecked = "-"

// renderRunResult formats the summary table followed by either every track
// (showAll) or only the missing ones.
func renderRunResult(res *reconcile.Result, showAll, colorize bool) string {
	var b strings.Builder

	for _, line := range renderSectionHeader("Summary", colorize) {
		b.WriteString(line + "\n")
	}
	b.WriteString(renderSummaryTable(res, colorize) + "\n")

	if len(res.SkippedTracks) > 0 {
		b.WriteString("\n")
		b.WriteString(renderStatusLine("Skipped", statusWarn,
			fmt.Sprintf("%d playlist entries without artist or title", len(res.SkippedTracks)), colorize) + "\n")
	}

	rows := res.Report.Rows
	title := "All tracks"
	if !showAll {
		rows = res.Checklist.Rows
		title = "Missing tracks"
	}
	b.WriteString("\n")
	for _, line := range renderSectionHeader(title, colorize) {
		b.WriteString(line + "\n")
	}
	if len(rows) == 0 {
		b.WriteString(renderStatusLine("Missing", statusOK, "every track was found", colorize) + "\n")
		return b.String()
	}
	b.WriteString(renderTrackTable(res, rows, colorize) + "\n")
	return b.String()
}

func renderSummaryTable(res *reconcile.Result, colorize bool) string {
	s := res.Summary
	rows := [][]string{
		{paint("In library", statusOK, colorize), strconv.Itoa(s.InLibrary)},
		{paint("Filesystem only", statusWarn, colorize), strconv.Itoa(s.OnFilesystemOnly)},
		{paint("Missing", statusError, colorize), strconv.Itoa(s.Missing)},
		{"Total", strconv.Itoa(s.Total)},
	}
	for _, kind := range track.AllSourceKinds() {
		value := notChecked
		if sourceSupplied(res, kind) {
			value = strconv.Itoa(res.CandidateCounts[kind])
		}
		rows = append(rows, []string{kind.Label() + " candidates", value})
	}
	rows = append(rows, []string{"Threshold", strconv.Itoa(res.Threshold)})
	return renderTable([]string{"Result", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

func renderTrackTable(res *reconcile.Result, rows []report.Row, colorize bool) string {
	headers := []string{"#", "Artist", "Title", "Filesystem", "Library", "Best match"}
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		body = append(body, []string{
			strconv.Itoa(row.Track.Position),
			row.Track.Artist,
			row.Track.Title,
			resultCell(res, row.Result(track.SourceFilesystem), colorize),
			resultCell(res, row.Result(track.SourceLibrary), colorize),
			bestMatch(row),
		})
	}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
	return renderTable(headers, body, aligns)
}

func resultCell(res *reconcile.Result, r track.MatchResult, colorize bool) string {
	if !sourceSupplied(res, r.Kind) {
		return notChecked
	}
	if r.Best == nil {
		return paint("none", statusError, colorize)
	}
	value := strconv.Itoa(r.Score)
	if r.Found() {
		kind := statusWarn
		if r.Kind == track.SourceLibrary {
			kind = statusOK
		}
		return paint(value, kind, colorize)
	}
	return paint(value, statusError, colorize)
}

// bestMatch names the accepted candidate, preferring the library, or the
// closest rejected one when nothing was accepted.
func bestMatch(row report.Row) string {
	for _, r := range []track.MatchResult{row.Library, row.Filesystem} {
		if r.Found() {
			return r.Location()
		}
	}
	best := track.MatchResult{}
	for _, r := range []track.MatchResult{row.Library, row.Filesystem} {
		if r.Best != nil && (best.Best == nil || r.Score > best.Score) {
			best = r
		}
	}
	if best.Best == nil {
		return ""
	}
	return "~ " + best.Best.DisplayName()
}

func printWrittenFiles(w io.Writer, paths export.Paths, sel export.Selection) {
	if paths.ReportJSON != "" {
		fmt.Fprintf(w, "Wrote JSON report to %s\n", paths.ReportJSON)
	}
	if paths.ReportCSV != "" {
		fmt.Fprintf(w, "Wrote CSV report to %s\n", paths.ReportCSV)
	}
	switch {
	case paths.Checklist != "":
		fmt.Fprintf(w, "Wrote download checklist to %s\n", paths.Checklist)
	case sel.Checklist:
		fmt.Fprintln(w, "No missing tracks; download checklist not written")
	}
}
