package djlibrary

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"seekr/internal/services"
	"seekr/internal/track"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

var sqliteHeader = []byte("SQLite format 3\x00")

// Rekordbox djmdContent.FileType codes.
var rekordboxFileTypes = map[int]string{
	1:  "mp3",
	4:  "m4a",
	5:  "flac",
	11: "wav",
	12: "aiff",
}

const contentQuery = `
SELECT
	c.ID,
	COALESCE(c.Title, ''),
	COALESCE(a.Name, ''),
	COALESCE(al.Name, ''),
	COALESCE(c.FolderPath, ''),
	COALESCE(c.Length, 0),
	COALESCE(c.FileType, 0)
FROM djmdContent c
LEFT JOIN djmdArtist a ON a.ID = c.ArtistID
LEFT JOIN djmdAlbum al ON al.ID = c.AlbumID
WHERE COALESCE(c.rb_local_deleted, 0) = 0
ORDER BY c.rowid`

type sqliteReader struct {
	db   *sql.DB
	path string
}

func openSQLite(path string) (*sqliteReader, error) {
	if err := checkSQLiteHeader(path); err != nil {
		return nil, err
	}

	dsn := "file:" + strings.NewReplacer("?", "%3f", "#", "%23").Replace(path) + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open library db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA query_only = ON",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return &sqliteReader{db: db, path: path}, nil
}

// checkSQLiteHeader rejects files that are not plain sqlite databases. The
// live Rekordbox master.db is SQLCipher-encrypted and fails here.
func checkSQLiteHeader(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open library db: %w", err)
	}
	defer file.Close()

	head := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(file, head); err != nil || !bytes.Equal(head, sqliteHeader) {
		return services.Wrap(services.ErrValidation, "library", "open",
			path+" is not a readable sqlite database (encrypted Rekordbox master.db?); "+
				"export the collection as Rekordbox XML or point library_path at a decrypted copy", nil)
	}
	return nil
}

func (r *sqliteReader) Tracks(ctx context.Context) ([]track.Candidate, error) {
	ctx = ensureContext(ctx)
	var out []track.Candidate
	err := retryOnBusy(ctx, func() error {
		out = out[:0]
		rows, err := r.db.QueryContext(ctx, contentQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				id, title, artist, album, folder string
				length, fileType                 int
			)
			if err := rows.Scan(&id, &title, &artist, &album, &folder, &length, &fileType); err != nil {
				return err
			}
			format := rekordboxFileTypes[fileType]
			if format == "" {
				format = formatFromPath(folder)
			}
			out = append(out, track.Candidate{
				Kind:     track.SourceLibrary,
				Artist:   strings.TrimSpace(artist),
				Title:    strings.TrimSpace(title),
				Album:    strings.TrimSpace(album),
				Location: "rekordbox:" + id,
				FilePath: folder,
				Duration: time.Duration(length) * time.Second,
				Format:   format,
			})
		}
		return rows.Err()
	})
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return nil, services.Wrap(services.ErrValidation, "library", "tracks",
				r.path+" does not contain a Rekordbox 6 schema", err)
		}
		return nil, fmt.Errorf("query library tracks: %w", err)
	}
	if out == nil {
		out = []track.Candidate{}
	}
	return out, nil
}

func (r *sqliteReader) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
