package corpus

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/james-bowman/sparse"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
	"github.com/arlis-topics/pubtopics/internal/logging"
	"github.com/arlis-topics/pubtopics/internal/textproc"
)

// maxLineBytes bounds a single corpus line. Abstracts run a few KB;
// 4 MB leaves room for concatenated full-text documents.
const maxLineBytes = 4 * 1024 * 1024

// docRef records where a document ID was first seen, for duplicate
// reporting.
type docRef struct {
	col  int
	file string
	line int
}

// cellKey addresses one (token, document-column) matrix cell during
// accumulation, before vocabulary rows exist.
type cellKey struct {
	tok string
	col int
}

type builder struct {
	opts  Options
	count bool

	cols    map[string]docRef
	axis    []string
	vocab   map[string]struct{}
	cells   map[cellKey]float64
	skipped int
}

func newBuilder(opts Options, count bool) *builder {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &builder{
		opts:  opts,
		count: count,
		cols:  make(map[string]docRef),
		vocab: make(map[string]struct{}),
		cells: make(map[cellKey]float64),
	}
}

// run streams every path in order. Files after the document cap are
// skipped whole rather than partially processed.
func (b *builder) run(paths []string) error {
	for i, path := range paths {
		if len(b.axis) >= b.opts.MaxDocuments {
			b.opts.Logger.Warn("document cap reached, skipping file",
				"file", path, "documents", len(b.axis))
			continue
		}
		b.opts.Logger.Info("reading file", "n", i+1, "file", path)
		if err := b.addFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return pterrors.Wrap(pterrors.ErrCodeCorpusUnreadable, err).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if len(b.axis) >= b.opts.MaxDocuments {
			b.opts.Logger.Warn("document cap reached mid-file",
				"file", path, "line", lineNo)
			break
		}
		if b.opts.Heartbeat.Ready() {
			b.opts.Logger.Info("indexing progress",
				"file", path,
				"line", lineNo,
				"documents", len(b.axis),
				"vocabulary", len(b.vocab))
		}
		if err := b.addLine(path, lineNo, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return pterrors.Wrap(pterrors.ErrCodeCorpusUnreadable, err).
			WithDetail("path", path)
	}
	return nil
}

func (b *builder) addLine(path string, lineNo int, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		// Empty lines never consume a document slot.
		b.skipped++
		return nil
	}

	fields := strings.Fields(line)
	id := fields[0]

	if prev, dup := b.cols[id]; dup {
		return pterrors.Newf(pterrors.ErrCodeDuplicateDocID,
			"duplicate document ID %q at %s:%d, first seen at %s:%d",
			id, path, lineNo, prev.file, prev.line).
			WithDetail("id", id)
	}
	col := len(b.axis)
	b.cols[id] = docRef{col: col, file: path, line: lineNo}
	b.axis = append(b.axis, id)

	for _, tok := range fields[1:] {
		if !textproc.Accept(tok, b.opts.Stopwords, b.opts.MinWordLength) {
			continue
		}
		b.vocab[tok] = struct{}{}
		if !b.count {
			continue
		}
		b.cells[cellKey{tok: tok, col: col}]++
		if b.opts.MaxCells > 0 && len(b.cells) > b.opts.MaxCells {
			return pterrors.CapacityError(fmt.Sprintf(
				"matrix cells exceed ceiling %d at %s:%d; lower the document cap or raise limits.max_matrix_cells",
				b.opts.MaxCells, path, lineNo))
		}
	}
	return nil
}

// finalize freezes the vocabulary in sorted order and, when counting,
// compresses the accumulated cells into column-compressed form in one
// conversion.
func (b *builder) finalize() (*Index, *sparse.CSC) {
	vocab := make([]string, 0, len(b.vocab))
	for tok := range b.vocab {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)

	idx := &Index{
		Vocabulary:   vocab,
		Documents:    b.axis,
		SkippedLines: b.skipped,
	}
	if !b.count {
		return idx, nil
	}
	if len(vocab) == 0 || len(b.axis) == 0 {
		// Degenerate corpus; there is no matrix to compress.
		return idx, nil
	}

	row := make(map[string]int, len(vocab))
	for i, tok := range vocab {
		row[tok] = i
	}

	type entry struct {
		r, c int
		v    float64
	}
	entries := make([]entry, 0, len(b.cells))
	for key, v := range b.cells {
		entries = append(entries, entry{r: row[key.tok], c: key.col, v: v})
	}
	// Column-major order for a cheap CSC conversion and deterministic
	// serialized output.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].c != entries[j].c {
			return entries[i].c < entries[j].c
		}
		return entries[i].r < entries[j].r
	})

	rows := make([]int, len(entries))
	cols := make([]int, len(entries))
	data := make([]float64, len(entries))
	for i, e := range entries {
		rows[i] = e.r
		cols[i] = e.c
		data[i] = e.v
	}

	coo := sparse.NewCOO(len(vocab), len(b.axis), rows, cols, data)
	return idx, coo.ToCSC()
}
