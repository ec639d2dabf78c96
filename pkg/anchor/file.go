package anchor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// The interchange file carries a result without the cooccurrence
// matrix. Layout, all whitespace-separated:
//
//	<words> <topics>
//	<topics> lines of anchor row indices
//	<words> lines of <topics> weights
//
// This lets the inference routine run out of process and hand its
// result back for report rendering.

// WriteResult serializes a result to w.
func WriteResult(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)
	words, topics := r.WordTopic.Dims()
	if _, err := fmt.Fprintf(bw, "%d %d\n", words, topics); err != nil {
		return err
	}
	if len(r.Anchors) != topics {
		return fmt.Errorf("%d anchor sets for %d topics", len(r.Anchors), topics)
	}
	for _, anchors := range r.Anchors {
		parts := make([]string, len(anchors))
		for i, row := range anchors {
			parts[i] = strconv.Itoa(row)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	for i := 0; i < words; i++ {
		parts := make([]string, topics)
		for k := 0; k < topics; k++ {
			parts[k] = strconv.FormatFloat(r.WordTopic.At(i, k), 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadResult reads a result file written by WriteResult (or by the
// external routine following the same layout).
func LoadResult(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readResult(f, path)
}

func readResult(r io.Reader, path string) (*Result, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	scanLine := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("result file %s is truncated", path)
		}
		return sc.Text(), nil
	}

	header, err := scanLine()
	if err != nil {
		return nil, err
	}
	dims := strings.Fields(header)
	if len(dims) != 2 {
		return nil, fmt.Errorf("result file %s: malformed header %q", path, header)
	}
	words, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, fmt.Errorf("result file %s: bad word count %q", path, dims[0])
	}
	topics, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, fmt.Errorf("result file %s: bad topic count %q", path, dims[1])
	}
	if words < 1 || topics < 1 {
		return nil, fmt.Errorf("result file %s: dimensions %dx%d out of range", path, words, topics)
	}

	anchors := make([][]int, topics)
	for k := range anchors {
		line, err := scanLine()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		rows := make([]int, len(fields))
		for i, fld := range fields {
			row, err := strconv.Atoi(fld)
			if err != nil {
				return nil, fmt.Errorf("result file %s: bad anchor row %q for topic %d", path, fld, k)
			}
			rows[i] = row
		}
		anchors[k] = rows
	}

	weights := mat.NewDense(words, topics, nil)
	for i := 0; i < words; i++ {
		line, err := scanLine()
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) != topics {
			return nil, fmt.Errorf("result file %s: row %d has %d weights, want %d", path, i, len(fields), topics)
		}
		for k, fld := range fields {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("result file %s: bad weight %q at row %d", path, fld, i)
			}
			weights.Set(i, k, v)
		}
	}

	return &Result{WordTopic: weights, Anchors: anchors}, nil
}
