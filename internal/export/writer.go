package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"seekr/internal/fileutil"
	"seekr/internal/reconcile"
	"seekr/internal/services"
	"seekr/internal/textutil"
)

const (
	lockFileName     = ".seekr.lock"
	lockRetryDelay   = 100 * time.Millisecond
	fileTimestamp    = "20060102_150405"
	reportJSONSuffix = "_report.json"
	reportCSVSuffix  = "_report.csv"
	checklistSuffix  = "_download-list.csv"
)

// Selection chooses which files Write produces.
type Selection struct {
	ReportJSON bool
	ReportCSV  bool
	Checklist  bool
}

// Any reports whether at least one file is selected.
func (s Selection) Any() bool {
	return s.ReportJSON || s.ReportCSV || s.Checklist
}

// Paths lists the files written by Write. Unwritten entries are empty.
type Paths struct {
	ReportJSON string
	ReportCSV  string
	Checklist  string
}

// Writer writes timestamped export files into Dir.
type Writer struct {
	Dir string
	// Label is appended to the timestamp as a filesystem-safe token when set,
	// typically the playlist name.
	Label string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Write renders the selected files for res. The checklist is skipped when
// no track is missing. The directory lock is held for the whole call.
func (w Writer) Write(ctx context.Context, res *reconcile.Result, sel Selection) (Paths, error) {
	var paths Paths
	if res == nil || !sel.Any() {
		return paths, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return paths, fmt.Errorf("create report directory: %w", err)
	}

	lock := flock.New(filepath.Join(w.Dir, lockFileName))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return paths, services.Wrap(services.ErrTransient, "export", "lock", w.Dir, err)
	}
	if !ok {
		return paths, services.Wrap(services.ErrTransient, "export", "lock", "report directory is locked by another run", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	stamp := now().Format(fileTimestamp)
	if strings.TrimSpace(w.Label) != "" {
		stamp += "_" + textutil.SanitizeToken(w.Label)
	}

	if sel.ReportJSON {
		if paths.ReportJSON, err = w.writeFile(stamp, reportJSONSuffix, func(out io.Writer) error {
			return WriteReportJSON(out, res)
		}); err != nil {
			return paths, err
		}
	}
	if sel.ReportCSV {
		if paths.ReportCSV, err = w.writeFile(stamp, reportCSVSuffix, func(out io.Writer) error {
			return WriteReportCSV(out, res.Report)
		}); err != nil {
			return paths, err
		}
	}
	if sel.Checklist && len(res.Checklist.Rows) > 0 {
		if paths.Checklist, err = w.writeFile(stamp, checklistSuffix, func(out io.Writer) error {
			return WriteChecklistCSV(out, res.Checklist)
		}); err != nil {
			return paths, err
		}
	}
	return paths, nil
}

func (w Writer) writeFile(stamp, suffix string, fill func(io.Writer) error) (string, error) {
	path, err := uniquePath(w.Dir, stamp, suffix)
	if err != nil {
		return "", err
	}
	if err := fileutil.WriteAtomic(path, 0o644, fill); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// uniquePath returns dir/stamp+suffix, adding -2, -3, ... to the stamp when
// a file from an earlier run in the same second already exists.
func uniquePath(dir, stamp, suffix string) (string, error) {
	for n := 1; ; n++ {
		name := stamp
		if n > 1 {
			name += "-" + strconv.Itoa(n)
		}
		path := filepath.Join(dir, name+suffix)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
}
