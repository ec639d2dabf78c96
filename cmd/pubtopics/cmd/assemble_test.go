package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArchive lays out a minimal sharded archive under dir.
func writeArchive(t *testing.T, dir string, abstracts map[string]string) {
	t.Helper()
	for id, text := range abstracts {
		shard := ""
		if len(id) > 4 {
			shard = id[:len(id)-4]
		}
		for len(shard) < 4 {
			shard = "0" + shard
		}
		shardDir := filepath.Join(dir, shard)
		require.NoError(t, os.MkdirAll(shardDir, 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(shardDir, "PMID"+id+".txt"), []byte(text), 0o644))
	}
}

func TestAssembleCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "archive")
	writeArchive(t, root, map[string]string{
		"1234567": "Aspirin reduces fever.",
		"7":       "Mice sleep.",
	})

	idsPath := filepath.Join(dir, "ids.txt")
	require.NoError(t, os.WriteFile(idsPath,
		[]byte("PMID1234567\n7\n9999999\n"), 0o644))
	outPath := filepath.Join(dir, "corpus.txt")

	cmd := NewRootCmd()
	var errOut bytes.Buffer
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"assemble",
		"--ids", idsPath,
		"--root", root,
		"--output", outPath,
	})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t,
		"01234567 aspirin reduces fever\n00000007 mice sleep\n",
		string(data))

	assert.Contains(t, errOut.String(), "unable to find file for ID 9999999")
	assert.Contains(t, errOut.String(), "wrote 2 abstracts; 1 missing, 0 empty, 0 invalid")
}

func TestAssembleCmd_MissingRoot(t *testing.T) {
	dir := t.TempDir()
	idsPath := filepath.Join(dir, "ids.txt")
	require.NoError(t, os.WriteFile(idsPath, []byte("1234567\n"), 0o644))

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"assemble",
		"--ids", idsPath,
		"--root", filepath.Join(dir, "no-such-archive"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERR_105_ARCHIVE_ROOT_MISSING")
}

func TestAssembleCmd_RequiresFlags(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"assemble"})

	err := cmd.Execute()
	require.Error(t, err)
}
