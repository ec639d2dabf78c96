package assemble

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
	"github.com/arlis-topics/pubtopics/internal/output"
)

// writeArchive lays out a shard tree: id -> raw abstract text.
func writeArchive(t *testing.T, tag string, abstracts map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for digits, text := range abstracts {
		dir := filepath.Join(root, Shard(digits))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		path := FilePath(root, tag, digits)
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	return root
}

func newTestAssembler(root string) (*Assembler, *bytes.Buffer, *bytes.Buffer) {
	var out, errs bytes.Buffer
	return &Assembler{
		Root: root,
		Tag:  "PMID",
		Out:  &out,
		Errs: output.New(&errs),
	}, &out, &errs
}

func TestAssemblerEmitsCorpusLines(t *testing.T) {
	root := writeArchive(t, "PMID", map[string]string{
		"7":       "Aspirin reduces FEVER.",
		"1234567": "Beta-blockers, in mice.",
	})
	a, out, _ := newTestAssembler(root)

	stats, err := a.Run([]string{"pmid7", "1234567"}, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Written)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "00000007 aspirin reduces fever", lines[0])
	assert.Equal(t, "01234567 beta-blockers in mice", lines[1])
}

func TestAssemblerSkipsMissingAndEmpty(t *testing.T) {
	root := writeArchive(t, "PMID", map[string]string{
		"1": "present text",
		"2": "   ",
	})
	a, out, errs := newTestAssembler(root)

	stats, err := a.Run([]string{"1", "2", "3"}, 100)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Written)
	assert.Equal(t, 1, stats.Empty)
	assert.Equal(t, 1, stats.Missing)

	// Diagnostics name the offender and stay off the data stream.
	assert.Contains(t, errs.String(), "empty file")
	assert.Contains(t, errs.String(), "ID 3")
	assert.NotContains(t, out.String(), "empty")
}

func TestAssemblerReportsUnparsableIdentifiers(t *testing.T) {
	root := writeArchive(t, "PMID", map[string]string{"1": "text here"})
	a, _, errs := newTestAssembler(root)

	stats, err := a.Run([]string{"PubMed ID", "1"}, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Invalid)
	assert.Equal(t, 1, stats.Written)
	assert.Contains(t, errs.String(), "PubMed ID")
}

func TestAssemblerStopsAtCap(t *testing.T) {
	root := writeArchive(t, "PMID", map[string]string{
		"1": "one", "2": "two", "3": "three",
	})
	a, _, errs := newTestAssembler(root)

	stats, err := a.Run([]string{"1", "2", "3"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Written)
	assert.Contains(t, errs.String(), "stopping at abstract 2")
}

func TestAssemblerMissingRootIsFatal(t *testing.T) {
	a, _, _ := newTestAssembler(filepath.Join(t.TempDir(), "nope"))
	_, err := a.Run([]string{"1"}, 100)
	require.Error(t, err)
	assert.Equal(t, pterrors.ErrCodeArchiveRootMissing, pterrors.GetCode(err))
}

func TestLoadIDsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("pmid7\n\n1234567\n"), 0o644))

	ids, err := LoadIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"pmid7", "1234567"}, ids)
}

func TestLoadIDsExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "PubMed ID"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "pmid7"))
	require.NoError(t, f.SetCellValue(sheet, "A3", 1234567))
	require.NoError(t, f.SetCellValue(sheet, "B2", "ignored column"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ids, err := LoadIDs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"PubMed ID", "pmid7", "1234567"}, ids)
}

func TestLoadIDsMissingFile(t *testing.T) {
	_, err := LoadIDs(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
