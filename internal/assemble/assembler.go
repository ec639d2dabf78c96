package assemble

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
	"github.com/arlis-topics/pubtopics/internal/logging"
	"github.com/arlis-topics/pubtopics/internal/output"
	"github.com/arlis-topics/pubtopics/internal/textproc"
)

// Assembler resolves identifiers against the sharded archive and emits
// one standard corpus line per abstract.
type Assembler struct {
	// Root is the archive root directory.
	Root string

	// Tag is the literal filename prefix, e.g. "PMID".
	Tag string

	// Out receives corpus lines.
	Out io.Writer

	// Errs receives per-record error reports, kept off Out so piped
	// data stays clean.
	Errs *output.Writer

	// Logger receives operational logging. Nil discards it.
	Logger *slog.Logger
}

// Stats summarizes an assembly run.
type Stats struct {
	// Written is the number of corpus lines emitted.
	Written int
	// Missing counts identifiers with no archive file, expected drift
	// between the ID list and the archive snapshot.
	Missing int
	// Empty counts archive files with no text.
	Empty int
	// Invalid counts identifiers that failed to parse.
	Invalid int
}

// Run processes identifiers in order, stopping after maxDocs attempts.
// Missing files, empty files, and malformed identifiers are reported
// and skipped; a file that exists but cannot be read aborts the run,
// since that signals an environment fault rather than corpus drift.
func (a *Assembler) Run(ids []string, maxDocs int) (Stats, error) {
	logger := a.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if _, err := os.Stat(a.Root); err != nil {
		return Stats{}, pterrors.Wrap(pterrors.ErrCodeArchiveRootMissing, err).
			WithDetail("root", a.Root)
	}

	var stats Stats
	for i, raw := range ids {
		if i >= maxDocs {
			a.Errs.Statusf("stopping at abstract %d", i)
			break
		}
		if err := a.one(raw, &stats); err != nil {
			return stats, err
		}
	}
	logger.Info("assembly finished",
		"written", stats.Written,
		"missing", stats.Missing,
		"empty", stats.Empty,
		"invalid", stats.Invalid)
	return stats, nil
}

// one handles a single identifier. Returns an error only for fatal
// conditions.
func (a *Assembler) one(raw string, stats *Stats) error {
	digits, err := ParseID(raw, a.Tag)
	if err != nil {
		stats.Invalid++
		a.Errs.Errorf("skipping unparsable identifier %q", raw)
		return nil
	}

	path := FilePath(a.Root, a.Tag, digits)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			stats.Missing++
			a.Errs.Errorf("unable to find file for ID %s; possibly newer than the archive snapshot, ignoring", digits)
			return nil
		}
		// Present but unreadable: environment fault, fatal.
		return pterrors.Wrap(pterrors.ErrCodeFileUnreadable, err).
			WithDetail("path", path)
	}

	tokens := textproc.TokenizeRaw(string(data))
	if len(tokens) == 0 {
		stats.Empty++
		a.Errs.Errorf("found empty file %s", path)
		return nil
	}

	if _, err := fmt.Fprintf(a.Out, "%s %s\n", CorpusID(digits), strings.Join(tokens, " ")); err != nil {
		return pterrors.Wrap(pterrors.ErrCodeOutputUnopenable, err)
	}
	stats.Written++
	return nil
}
