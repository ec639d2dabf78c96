package bibimport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlis-topics/pubtopics/internal/output"
)

func newTestImporter(t *testing.T) (*Importer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errs bytes.Buffer
	return &Importer{
		IndexPath: filepath.Join(t.TempDir(), "index.tsv"),
		Out:       &out,
		Errs:      output.New(&errs),
	}, &out, &errs
}

func TestImportAssignsSequentialIDs(t *testing.T) {
	im, out, _ := newTestImporter(t)

	input := "Aspirin and Fever\nSmith, Jones\nAspirin   reduces fever\tin mice.\n" +
		"\n\n" +
		"Beta Blockers\nDoe\nBeta blockers lower blood pressure.\n"

	stats, err := im.Run(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 1, stats.FirstID)
	assert.Equal(t, 2, stats.LastID)

	// Corpus lines: ID then whitespace-normalized text tokens.
	wantOut := "1 Aspirin reduces fever in mice.\n" +
		"2 Beta blockers lower blood pressure.\n"
	assert.Equal(t, wantOut, out.String())

	// Index records: ID, authors, title, tab-separated.
	idx, err := os.ReadFile(im.IndexPath)
	require.NoError(t, err)
	wantIdx := "1\tSmith, Jones\tAspirin and Fever\n" +
		"2\tDoe\tBeta Blockers\n"
	assert.Equal(t, wantIdx, string(idx))
}

func TestImportContinuesFromExistingIndex(t *testing.T) {
	im, out, _ := newTestImporter(t)
	existing := "41\tSomeone\tOld Title\n42\tAnother\tNewer Title\n"
	require.NoError(t, os.WriteFile(im.IndexPath, []byte(existing), 0o644))

	stats, err := im.Run(strings.NewReader("A Title\nAn Author\nSome text.\n"))
	require.NoError(t, err)
	assert.Equal(t, 43, stats.FirstID)
	assert.True(t, strings.HasPrefix(out.String(), "43 "))

	idx, err := os.ReadFile(im.IndexPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(idx), "43\tAn Author\tA Title\n"))
}

func TestImportDropsIncompleteWithoutConsumingID(t *testing.T) {
	im, out, errs := newTestImporter(t)
	existing := "42\tSomeone\tSome Title\n"
	require.NoError(t, os.WriteFile(im.IndexPath, []byte(existing), 0o644))

	// First record has a blank authors line; second is valid.
	input := "Orphan Title\n\nOrphan text.\n" +
		"\n" +
		"Good Title\nGood Author\nGood text.\n"

	stats, err := im.Run(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Incomplete)
	assert.Equal(t, 1, stats.Imported)

	// The dropped record did not consume ID 43.
	assert.Equal(t, 43, stats.FirstID)
	assert.Contains(t, out.String(), "43 Good text.")
	assert.Contains(t, errs.String(), "incomplete record")
}

func TestImportEmptyIndexFileStartsAtOne(t *testing.T) {
	im, _, _ := newTestImporter(t)
	require.NoError(t, os.WriteFile(im.IndexPath, []byte(""), 0o644))

	stats, err := im.Run(strings.NewReader("T\nA\nX\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FirstID)
}

func TestImportTruncatedFinalRecord(t *testing.T) {
	im, _, errs := newTestImporter(t)

	stats, err := im.Run(strings.NewReader("Only a title\nand authors\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Imported)
	assert.Equal(t, 1, stats.Incomplete)
	assert.Contains(t, errs.String(), "incomplete")
}

func TestImportReimportDuplicates(t *testing.T) {
	// No duplicate detection: importing the same input twice appends
	// everything again with fresh IDs.
	im, out, _ := newTestImporter(t)
	input := "T\nA\nSome text.\n"

	_, err := im.Run(strings.NewReader(input))
	require.NoError(t, err)
	stats, err := im.Run(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FirstID)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestDecodeReader(t *testing.T) {
	// "café" in cp1252: e9 for é.
	raw := []byte{'c', 'a', 'f', 0xe9}
	r, err := DecodeReader(bytes.NewReader(raw), "cp1252")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "café", string(got))
}

func TestDecodeReaderUTF8Passthrough(t *testing.T) {
	r, err := DecodeReader(strings.NewReader("naïve"), "UTF-8")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "naïve", string(got))
}

func TestDecodeReaderUnknownEncoding(t *testing.T) {
	_, err := DecodeReader(strings.NewReader(""), "ebcdic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cp1252")
}
