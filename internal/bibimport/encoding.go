package bibimport

import (
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
)

// knownEncodings maps accepted input-encoding names to decoders.
// Output is always UTF-8.
var knownEncodings = map[string]encoding.Encoding{
	"utf-8":      nil, // no transformation
	"cp1252":     charmap.Windows1252,
	"latin-1":    charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"utf-16":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
}

// KnownEncodings lists the accepted input-encoding names.
func KnownEncodings() []string {
	return []string{"utf-8", "cp1252", "latin-1", "iso-8859-1", "utf-16"}
}

// DecodeReader wraps r so it yields UTF-8 regardless of the named
// input encoding.
func DecodeReader(r io.Reader, name string) (io.Reader, error) {
	enc, ok := knownEncodings[strings.ToLower(name)]
	if !ok {
		return nil, pterrors.Newf(pterrors.ErrCodeBadEncoding,
			"unknown encoding %q; known encodings are %s",
			name, strings.Join(KnownEncodings(), ", "))
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
