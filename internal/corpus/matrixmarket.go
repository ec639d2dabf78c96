package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/james-bowman/sparse"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
)

// WriteMatrixMarket serializes the count matrix in MatrixMarket
// coordinate format, the interchange format read by the external topic
// routine. Entries are written in column-major order, 1-based.
func WriteMatrixMarket(w io.Writer, m *sparse.CSC) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "%%MatrixMarket matrix coordinate integer general"); err != nil {
		return err
	}
	if m == nil {
		if _, err := fmt.Fprintln(bw, "0 0 0"); err != nil {
			return err
		}
		return bw.Flush()
	}

	rows, cols := m.Dims()

	type entry struct {
		r, c int
		v    float64
	}
	var entries []entry
	m.DoNonZero(func(i, j int, v float64) {
		entries = append(entries, entry{r: i, c: j, v: v})
	})
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].c != entries[j].c {
			return entries[i].c < entries[j].c
		}
		return entries[i].r < entries[j].r
	})

	if _, err := fmt.Fprintf(bw, "%d %d %d\n", rows, cols, len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", e.r+1, e.c+1, int64(e.v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteList writes one item per line. Used for the vocabulary and
// document-axis files, whose line position encodes the matrix index.
func WriteList(w io.Writer, items []string) error {
	bw := bufio.NewWriter(w)
	for _, item := range items {
		if _, err := fmt.Fprintln(bw, item); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadList reads a one-item-per-line file written by WriteList.
func ReadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pterrors.Wrap(pterrors.ErrCodeFileUnreadable, err).
			WithDetail("path", path)
	}
	var items []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items, nil
}
