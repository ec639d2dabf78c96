// Package assemble builds standard corpus files from the sharded
// abstract archive, either from an explicit identifier list or by
// ratio-based sampling over the whole shard tree.
//
// The archive is laid out as root/<4-digit shard>/<tag><id>.txt, one
// UTF-8 line of raw abstract text per file. The shard name is the
// identifier's digits with the last four removed, left-padded with
// zeros to at least four characters.
package assemble

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
)

// ParseID normalizes an external identifier: case-insensitive, an
// optional tag prefix (e.g. "PMID"), and a digit body of variable
// length. Returns the digit string.
func ParseID(raw, tag string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(raw))
	id = strings.TrimPrefix(id, strings.ToLower(tag))
	if id == "" {
		return "", pterrors.Newf(pterrors.ErrCodeBadIdentifier,
			"empty identifier %q", raw)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", pterrors.Newf(pterrors.ErrCodeBadIdentifier,
				"identifier %q is not numeric", raw)
		}
	}
	return id, nil
}

// Shard derives the shard directory name from an identifier's digits:
// drop the last four digits, then left-pad with zeros to four
// characters. ID "7" shards to "0000", "1234567" to "0123".
func Shard(digits string) string {
	prefix := ""
	if len(digits) > 4 {
		prefix = digits[:len(digits)-4]
	}
	for len(prefix) < 4 {
		prefix = "0" + prefix
	}
	return prefix
}

// FilePath returns the archive file for an identifier: the shard
// directory plus the tag and the unpadded numeric identifier.
func FilePath(root, tag, digits string) string {
	n, _ := strconv.ParseInt(digits, 10, 64)
	return filepath.Join(root, Shard(digits), tag+strconv.FormatInt(n, 10)+".txt")
}

// CorpusID renders the 8-digit zero-padded document ID used on corpus
// lines.
func CorpusID(digits string) string {
	n, _ := strconv.ParseInt(digits, 10, 64)
	return fmt.Sprintf("%08d", n)
}
