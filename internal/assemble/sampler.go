package assemble

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
	"github.com/arlis-topics/pubtopics/internal/logging"
	"github.com/arlis-topics/pubtopics/internal/output"
	"github.com/arlis-topics/pubtopics/internal/textproc"
)

// Sampler walks the whole shard tree and retains a fixed fraction of
// files: Numerator out of every Denominator, positions spread evenly by
// a running global file counter (never reset per shard). Shards are
// visited in lexicographic order; files within a shard in numeric order
// of their embedded identifiers, so two runs over an unchanged archive
// retain the same files.
type Sampler struct {
	Root        string
	Tag         string
	Numerator   int
	Denominator int

	// Every emits a progress update each N files walked.
	Every int

	Out    io.Writer
	Errs   *output.Writer
	Logger *slog.Logger
}

// SampleStats summarizes a sampling run.
type SampleStats struct {
	// Walked is the total number of archive files visited.
	Walked int
	// Retained is the number of abstracts written out.
	Retained int
	// Empty counts retained positions whose file had no text.
	Empty int
}

// Run walks the tree. An unreadable root or shard directory is fatal;
// so is a read failure on a retained file, since every file the walk
// found should be readable in a healthy archive.
func (s *Sampler) Run() (SampleStats, error) {
	logger := s.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if s.Numerator < 1 || s.Denominator < 1 || s.Numerator > s.Denominator {
		return SampleStats{}, pterrors.Newf(pterrors.ErrCodeConfigInvalid,
			"keep ratio %d/%d is not a valid fraction", s.Numerator, s.Denominator)
	}

	// Evenly spaced residues: keep file positions where
	// counter % Denominator lands on i*Denominator/Numerator.
	keep := make(map[int]bool, s.Numerator)
	for i := 0; i < s.Numerator; i++ {
		keep[i*s.Denominator/s.Numerator] = true
	}

	shards, err := shardDirs(s.Root)
	if err != nil {
		return SampleStats{}, err
	}

	var stats SampleStats
	for n, shard := range shards {
		files, err := s.shardFiles(shard)
		if err != nil {
			return stats, err
		}
		for _, file := range files {
			stats.Walked++
			if s.Every > 0 && stats.Walked%s.Every == 0 {
				s.Errs.Progressf("directory %d of %d, file %d; %d files included so far",
					n+1, len(shards), stats.Walked, stats.Retained)
			}
			if !keep[stats.Walked%s.Denominator] {
				continue
			}
			if err := s.emit(file, &stats); err != nil {
				return stats, err
			}
		}
	}
	s.Errs.ProgressDone()
	logger.Info("sampling finished",
		"walked", stats.Walked, "retained", stats.Retained, "empty", stats.Empty)
	return stats, nil
}

// emit writes the corpus line for one retained archive file.
func (s *Sampler) emit(path string, stats *SampleStats) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pterrors.Wrap(pterrors.ErrCodeFileUnreadable, err).
			WithDetail("path", path)
	}
	tokens := textproc.TokenizeRaw(string(data))
	if len(tokens) == 0 {
		stats.Empty++
		s.Errs.Errorf("found empty file %s", path)
		return nil
	}

	stem := strings.TrimSuffix(filepath.Base(path), ".txt")
	digits := strings.TrimPrefix(strings.ToLower(stem), strings.ToLower(s.Tag))
	if _, err := fmt.Fprintf(s.Out, "%s %s\n", CorpusID(digits), strings.Join(tokens, " ")); err != nil {
		return pterrors.Wrap(pterrors.ErrCodeOutputUnopenable, err)
	}
	stats.Retained++
	return nil
}

// shardDirs lists shard subdirectories in lexicographic order.
func shardDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, pterrors.Wrap(pterrors.ErrCodeArchiveRootMissing, err).
			WithDetail("root", root)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// shardFiles lists a shard's archive files ordered by the numeric
// value of their embedded identifiers. Files that do not carry the
// expected tag and numeric stem are ignored.
func (s *Sampler) shardFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pterrors.Wrap(pterrors.ErrCodeFileUnreadable, err).
			WithDetail("path", dir)
	}

	type numbered struct {
		path string
		id   int64
	}
	var files []numbered
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".txt") {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		digits := strings.TrimPrefix(strings.ToLower(stem), strings.ToLower(s.Tag))
		id, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			continue
		}
		files = append(files, numbered{path: filepath.Join(dir, name), id: id})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].id < files[j].id })

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}
