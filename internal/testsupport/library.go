package testsupport

import (
	"database/sql"
	"encoding/xml"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	_ "modernc.org/sqlite"
)

// LibraryTrack describes one DJ library row for fixtures.
type LibraryTrack struct {
	ID         string
	Artist     string
	Title      string
	Album      string
	FolderPath string
	Length     int
	Deleted    bool
}

const rekordboxSchema = `
CREATE TABLE djmdArtist (
	ID VARCHAR(255) PRIMARY KEY,
	Name VARCHAR(255),
	rb_local_deleted INTEGER DEFAULT 0
);
CREATE TABLE djmdAlbum (
	ID VARCHAR(255) PRIMARY KEY,
	Name VARCHAR(255),
	rb_local_deleted INTEGER DEFAULT 0
);
CREATE TABLE djmdContent (
	ID VARCHAR(255) PRIMARY KEY,
	FolderPath VARCHAR(255),
	Title VARCHAR(255),
	ArtistID VARCHAR(255),
	AlbumID VARCHAR(255),
	Length INTEGER,
	FileType INTEGER,
	rb_local_deleted INTEGER DEFAULT 0
);
`

// WriteRekordboxDB creates an unencrypted sqlite database using the
// Rekordbox 6 content/artist/album tables. Rows are inserted in slice order.
func WriteRekordboxDB(t testing.TB, path string, tracks []LibraryTrack) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(rekordboxSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	for i, tr := range tracks {
		id := tr.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		var artistID, albumID sql.NullString
		if tr.Artist != "" {
			artistID = sql.NullString{String: "a" + id, Valid: true}
			if _, err := db.Exec(`INSERT INTO djmdArtist (ID, Name) VALUES (?, ?)`, artistID.String, tr.Artist); err != nil {
				t.Fatalf("insert artist: %v", err)
			}
		}
		if tr.Album != "" {
			albumID = sql.NullString{String: "al" + id, Valid: true}
			if _, err := db.Exec(`INSERT INTO djmdAlbum (ID, Name) VALUES (?, ?)`, albumID.String, tr.Album); err != nil {
				t.Fatalf("insert album: %v", err)
			}
		}
		deleted := 0
		if tr.Deleted {
			deleted = 1
		}
		if _, err := db.Exec(
			`INSERT INTO djmdContent (ID, FolderPath, Title, ArtistID, AlbumID, Length, FileType, rb_local_deleted) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, tr.FolderPath, tr.Title, artistID, albumID, tr.Length, 1, deleted,
		); err != nil {
			t.Fatalf("insert content: %v", err)
		}
	}
}

type xmlTrack struct {
	TrackID   string `xml:"TrackID,attr"`
	Name      string `xml:"Name,attr"`
	Artist    string `xml:"Artist,attr"`
	Album     string `xml:"Album,attr"`
	Kind      string `xml:"Kind,attr"`
	TotalTime int    `xml:"TotalTime,attr"`
	Location  string `xml:"Location,attr"`
}

type xmlCollection struct {
	Entries int        `xml:"Entries,attr"`
	Tracks  []xmlTrack `xml:"TRACK"`
}

type xmlExport struct {
	XMLName    xml.Name      `xml:"DJ_PLAYLISTS"`
	Version    string        `xml:"Version,attr"`
	Collection xmlCollection `xml:"COLLECTION"`
}

// WriteRekordboxXML writes a Rekordbox XML collection export. Deleted tracks
// are omitted.
func WriteRekordboxXML(t testing.TB, path string, tracks []LibraryTrack) {
	t.Helper()

	doc := xmlExport{Version: "1.0.0"}
	for i, tr := range tracks {
		if tr.Deleted {
			continue
		}
		id := tr.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		location := ""
		if tr.FolderPath != "" {
			location = (&url.URL{Scheme: "file", Host: "localhost", Path: tr.FolderPath}).String()
		}
		doc.Collection.Tracks = append(doc.Collection.Tracks, xmlTrack{
			TrackID:   id,
			Name:      tr.Title,
			Artist:    tr.Artist,
			Album:     tr.Album,
			Kind:      "MP3 File",
			TotalTime: tr.Length,
			Location:  location,
		})
	}
	doc.Collection.Entries = len(doc.Collection.Tracks)

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal xml: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := fmt.Sprintf("%s%s\n", xml.Header, data)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
