package anchor

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sampleResult() *Result {
	// 4 words, 2 topics.
	weights := mat.NewDense(4, 2, []float64{
		0.9, 0.1,
		0.5, 0.2,
		0.1, 0.8,
		0.3, 0.6,
	})
	return &Result{
		WordTopic: weights,
		Anchors:   [][]int{{0}, {2, 3}},
	}
}

var sampleVocab = []string{"aspirin", "dose", "mouse", "zebra"}

func TestTopics(t *testing.T) {
	topics, err := sampleResult().Topics(sampleVocab, 2)
	require.NoError(t, err)
	require.Len(t, topics, 2)

	assert.Equal(t, []string{"aspirin"}, topics[0].Anchors)
	assert.Equal(t, []string{"aspirin", "dose"}, topics[0].Words)

	assert.Equal(t, []string{"mouse", "zebra"}, topics[1].Anchors)
	assert.Equal(t, []string{"mouse", "zebra"}, topics[1].Words)
}

func TestTopicsClampsTopN(t *testing.T) {
	topics, err := sampleResult().Topics(sampleVocab, 100)
	require.NoError(t, err)
	assert.Len(t, topics[0].Words, 4)
}

func TestTopicsVocabularyMismatch(t *testing.T) {
	_, err := sampleResult().Topics([]string{"too", "short"}, 2)
	assert.Error(t, err)
}

func TestTopicsAnchorOutOfRange(t *testing.T) {
	r := sampleResult()
	r.Anchors = [][]int{{0}, {99}}
	_, err := r.Topics(sampleVocab, 2)
	assert.Error(t, err)
}

func TestWriteAndLoadResultRoundTrip(t *testing.T) {
	r := sampleResult()

	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, r))

	path := filepath.Join(t.TempDir(), "result.txt")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := LoadResult(path)
	require.NoError(t, err)

	assert.Equal(t, r.Anchors, got.Anchors)
	assert.True(t, mat.EqualApprox(r.WordTopic, got.WordTopic, 1e-12))
}

func TestLoadResultTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.txt")
	require.NoError(t, os.WriteFile(path, []byte("4 2\n0\n"), 0o644))
	_, err := LoadResult(path)
	assert.Error(t, err)
}

func TestLoadResultMalformedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a header\n"), 0o644))
	_, err := LoadResult(path)
	assert.Error(t, err)
}
