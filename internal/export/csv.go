package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"seekr/internal/report"
	"seekr/internal/track"
)

var reportCSVHeader = []string{
	"position", "artist", "title", "album", "service_id",
	"filesystem_status", "filesystem_score", "filesystem_location",
	"library_status", "library_score", "library_location",
}

var checklistCSVHeader = []string{"fetched", "artist", "title"}

// WriteReportCSV writes one row per report row in playlist order.
func WriteReportCSV(w io.Writer, rep report.Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(reportCSVHeader); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		record := []string{
			strconv.Itoa(row.Track.Position),
			row.Track.Artist,
			row.Track.Title,
			row.Track.Album,
			row.Track.ServiceID,
		}
		for _, kind := range track.AllSourceKinds() {
			res := row.Result(kind)
			record = append(record, string(res.Status), strconv.Itoa(res.Score), res.Location())
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteChecklistCSV writes the download checklist. fetched is always false;
// the column exists for the user to tick off as they acquire tracks.
func WriteChecklistCSV(w io.Writer, checklist report.Checklist) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(checklistCSVHeader); err != nil {
		return err
	}
	for _, row := range checklist.Rows {
		if err := writer.Write([]string{"false", row.Track.Artist, row.Track.Title}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
