// Package corpus turns standard corpus files into a frozen vocabulary,
// an ordered document axis, and a sparse word-by-document count matrix
// for the external anchor-word topic routine.
//
// A corpus file holds one document per line: the leading space-separated
// field is the document ID, the remaining fields are its tokens. Files
// are processed in the order given, lines in file order, under one
// global document cap; identical inputs and parameters always produce
// identical vocabulary and axis lists.
//
// The whole corpus is memory-resident for the run. The document cap and
// the matrix cell ceiling exist to bound that memory: overruns fail
// with an explicit capacity error instead of an allocation crash.
package corpus

import (
	"log/slog"

	"github.com/james-bowman/sparse"

	"github.com/arlis-topics/pubtopics/internal/logging"
	"github.com/arlis-topics/pubtopics/internal/textproc"
)

// Options configures a corpus pass.
type Options struct {
	// MaxDocuments caps the document axis globally across all files.
	// Once reached, the rest of the current file and all remaining
	// files are skipped.
	MaxDocuments int

	// MinWordLength drops tokens shorter than this many runes.
	MinWordLength int

	// MaxCells caps the number of stored matrix cells. Only consulted
	// when counting.
	MaxCells int

	// Stopwords are excluded before any other token filter.
	Stopwords textproc.StopwordSet

	// Logger receives progress heartbeats. Nil discards them.
	Logger *slog.Logger

	// Heartbeat rate-limits progress logging. Nil disables heartbeats.
	Heartbeat *logging.Heartbeat
}

// Index is the frozen outcome of an indexing pass: the sorted set of
// distinct accepted tokens and the ordered, capped document axis.
// Vocabulary position defines the matrix row, axis position the column.
type Index struct {
	Vocabulary []string
	Documents  []string

	// SkippedLines counts empty lines, which never consume a document
	// slot. Reported so consumers holding external per-document
	// metadata can detect drift.
	SkippedLines int
}

// Matrix is a filled word-by-document count matrix together with the
// index it is aligned to. Counts is column-compressed, ready for the
// external linear-algebra consumer.
type Matrix struct {
	Index
	Counts *sparse.CSC
}

// Scan runs the indexing stage alone: one streaming pass establishing
// the vocabulary and document axis without counting.
func Scan(paths []string, opts Options) (*Index, error) {
	b := newBuilder(opts, false)
	if err := b.run(paths); err != nil {
		return nil, err
	}
	idx, _ := b.finalize()
	return idx, nil
}

// Build runs the full pipeline in a single streaming pass: document
// columns are assigned on first sight, cell counts accumulate in a
// coordinate structure, and the result is compressed once at the end.
func Build(paths []string, opts Options) (*Matrix, error) {
	b := newBuilder(opts, true)
	if err := b.run(paths); err != nil {
		return nil, err
	}
	idx, csc := b.finalize()
	return &Matrix{Index: *idx, Counts: csc}, nil
}
