// Package anchor defines the boundary to the anchor-word topic-
// inference routine. The routine itself is external: it consumes the
// sparse word-by-document count matrix and hands back a word-topic
// weight matrix, a word-cooccurrence matrix, and per-topic anchor-word
// row indices. This package carries those types, an interface for
// in-process implementations, and a plain-file interchange format for
// out-of-process ones.
package anchor

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Modeler is an anchor-word topic-inference implementation.
type Modeler interface {
	// Model infers topics topics from the word-by-document count
	// matrix m. threshold is the minimum share of document
	// occurrences for a word to be an anchor candidate.
	Model(m *sparse.CSC, topics int, threshold float64) (*Result, error)
}

// Result is the output of the topic routine. Row indices refer to the
// frozen vocabulary the count matrix was built against.
type Result struct {
	// WordTopic is the word-topic weight matrix, vocabulary rows by
	// topic columns.
	WordTopic *mat.Dense

	// Cooccurrence is the word-cooccurrence matrix. May be nil; the
	// report path does not need it.
	Cooccurrence *mat.Dense

	// Anchors holds, per topic, the ordered anchor-word row indices.
	Anchors [][]int
}

// Topic is one rendered topic: its anchor words and its top weighted
// words, both in vocabulary terms.
type Topic struct {
	Anchors []string
	Words   []string
}

// Topics resolves the result against the vocabulary, returning for
// each topic its anchor words and the topN highest-weighted words.
// Ties break toward the lower row index so output is deterministic.
func (r *Result) Topics(vocab []string, topN int) ([]Topic, error) {
	words, topics := r.WordTopic.Dims()
	if words != len(vocab) {
		return nil, fmt.Errorf("word-topic matrix has %d rows for a vocabulary of %d words", words, len(vocab))
	}
	if len(r.Anchors) != topics {
		return nil, fmt.Errorf("%d anchor sets for %d topics", len(r.Anchors), topics)
	}
	if topN > words {
		topN = words
	}

	out := make([]Topic, topics)
	order := make([]int, words)
	for k := 0; k < topics; k++ {
		anchors := make([]string, len(r.Anchors[k]))
		for i, row := range r.Anchors[k] {
			if row < 0 || row >= words {
				return nil, fmt.Errorf("topic %d anchor row %d out of range [0, %d)", k, row, words)
			}
			anchors[i] = vocab[row]
		}

		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return r.WordTopic.At(order[i], k) > r.WordTopic.At(order[j], k)
		})

		top := make([]string, topN)
		for i := 0; i < topN; i++ {
			top[i] = vocab[order[i]]
		}
		out[k] = Topic{Anchors: anchors, Words: top}
	}
	return out, nil
}
