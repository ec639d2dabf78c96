// Package bibimport imports title/authors/text bibliographic records
// into the topic-modeling corpus format. Each record becomes one entry
// in an append-only tab-separated index file (ID, authors, title) and
// one standard corpus line. IDs are sequential integers continuing
// from the largest ID already in the index.
//
// The importer does not detect duplicates: re-importing the same input
// appends every record again. Deduplication is the caller's
// responsibility.
package bibimport

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
	"github.com/arlis-topics/pubtopics/internal/logging"
	"github.com/arlis-topics/pubtopics/internal/output"
)

// Importer reads blank-line-separated records and appends them to the
// index and corpus outputs.
type Importer struct {
	// IndexPath is the append-only bibliographic index file.
	IndexPath string

	// Out receives corpus lines.
	Out io.Writer

	// Errs receives per-record error reports.
	Errs *output.Writer

	// Logger receives operational logging. Nil discards it.
	Logger *slog.Logger
}

// ImportStats summarizes an import run.
type ImportStats struct {
	// Imported is the number of records appended.
	Imported int
	// Incomplete counts records dropped for an empty field. Dropped
	// records never consume an ID.
	Incomplete int
	// FirstID and LastID bound the IDs assigned this run; zero when
	// nothing was imported.
	FirstID int
	LastID  int
}

// Run imports every record from r. The index file is locked for the
// duration of the run so concurrent importers cannot interleave IDs.
func (im *Importer) Run(r io.Reader) (ImportStats, error) {
	logger := im.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	lock := flock.New(im.IndexPath + ".lock")
	if err := lock.Lock(); err != nil {
		return ImportStats{}, pterrors.Wrap(pterrors.ErrCodeIndexUnreadable, err).
			WithDetail("path", im.IndexPath)
	}
	defer func() { _ = lock.Unlock() }()

	nextID, err := nextIndexID(im.IndexPath)
	if err != nil {
		return ImportStats{}, err
	}

	idx, err := os.OpenFile(im.IndexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return ImportStats{}, pterrors.Wrap(pterrors.ErrCodeOutputUnopenable, err).
			WithDetail("path", im.IndexPath)
	}
	defer func() { _ = idx.Close() }()

	var stats ImportStats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return stats, pterrors.Wrap(pterrors.ErrCodeFileUnreadable, err)
	}

	for i := 0; i < len(lines); {
		// Skip the blank-line run separating records.
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		record := lines[i:min(i+3, len(lines))]
		i += len(record)

		title, authors, text := field(record, 0), field(record, 1), field(record, 2)
		if title == "" || authors == "" || text == "" {
			stats.Incomplete++
			im.Errs.Errorf("found incomplete record; title = %q, authors = %q, text = %q; skipping",
				title, authors, text)
			continue
		}

		if _, err := fmt.Fprintf(idx, "%d\t%s\t%s\n", nextID, authors, title); err != nil {
			return stats, pterrors.Wrap(pterrors.ErrCodeOutputUnopenable, err).
				WithDetail("path", im.IndexPath)
		}
		if _, err := fmt.Fprintf(im.Out, "%d %s\n", nextID, strings.Join(strings.Fields(text), " ")); err != nil {
			return stats, pterrors.Wrap(pterrors.ErrCodeOutputUnopenable, err)
		}
		if stats.Imported == 0 {
			stats.FirstID = nextID
		}
		stats.LastID = nextID
		stats.Imported++
		nextID++
	}

	logger.Info("import finished",
		"imported", stats.Imported, "incomplete", stats.Incomplete, "last_id", stats.LastID)
	return stats, nil
}

// field returns the trimmed nth line of a record, or "" past its end.
func field(record []string, n int) string {
	if n >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[n])
}

// nextIndexID returns one more than the largest ID in the index file,
// or 1 if the file does not exist or is empty. The index is
// append-only, so the largest ID is on the last non-empty line.
func nextIndexID(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, pterrors.Wrap(pterrors.ErrCodeIndexUnreadable, err).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	last := ""
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			last = sc.Text()
		}
	}
	if err := sc.Err(); err != nil {
		return 0, pterrors.Wrap(pterrors.ErrCodeIndexUnreadable, err).
			WithDetail("path", path)
	}
	if last == "" {
		return 1, nil
	}

	id, err := strconv.Atoi(strings.SplitN(last, "\t", 2)[0])
	if err != nil {
		return 0, pterrors.Newf(pterrors.ErrCodeIndexUnreadable,
			"index %s has a malformed last entry %q", path, last)
	}
	return id + 1, nil
}
