package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importInput = `Aspirin and fever
Smith J, Jones K
Aspirin reduces fever in mice.

Sleep patterns
Doe A
Mice sleep during the day.
`

func TestImportCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "index.tsv")
	outPath := filepath.Join(dir, "corpus.txt")

	cmd := NewRootCmd()
	var errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(importInput))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"import",
		"--index", indexPath,
		"--output", outPath,
	})

	require.NoError(t, cmd.Execute())

	idx, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Equal(t,
		"1\tSmith J, Jones K\tAspirin and fever\n"+
			"2\tDoe A\tSleep patterns\n",
		string(idx))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t,
		"1 Aspirin reduces fever in mice.\n"+
			"2 Mice sleep during the day.\n",
		string(data))

	assert.Contains(t, errOut.String(), "imported 2 records as IDs 1 through 2")
}

func TestImportCmd_ContinuesIDs(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "index.tsv")
	require.NoError(t, os.WriteFile(indexPath,
		[]byte("41\tDoe A\tOlder entry\n"), 0o644))

	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader("Title\nAuthors\nText body.\n"))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"import",
		"--index", indexPath,
		"--output", filepath.Join(dir, "corpus.txt"),
	})

	require.NoError(t, cmd.Execute())

	idx, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Contains(t, string(idx), "42\tAuthors\tTitle\n")
}

func TestImportCmd_UnknownEncoding(t *testing.T) {
	dir := t.TempDir()

	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"import",
		"--index", filepath.Join(dir, "index.tsv"),
		"--encoding", "ebcdic",
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")
}
