package assemble

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	pterrors "github.com/arlis-topics/pubtopics/internal/errors"
)

// LoadIDs reads an identifier list. An .xlsx workbook yields the first
// column of the first sheet (a header row, if present, is reported and
// skipped downstream like any other unparsable identifier); anything
// else is treated as a plain text file with one identifier per line.
// Returned identifiers are raw: parsing and validation happen per
// record so a bad entry skips one record instead of failing the run.
func LoadIDs(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadIDsExcel(path)
	}
	return loadIDsText(path)
}

func loadIDsText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pterrors.Wrap(pterrors.ErrCodeFileUnreadable, err).
			WithDetail("path", path)
	}
	var ids []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ids = append(ids, line)
	}
	return ids, nil
}

func loadIDsExcel(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, pterrors.Wrap(pterrors.ErrCodeFileUnreadable, err).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, pterrors.Newf(pterrors.ErrCodeFileUnreadable,
			"workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, pterrors.Wrap(pterrors.ErrCodeFileUnreadable, err).
			WithDetail("path", path)
	}

	var ids []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		ids = append(ids, cell)
	}
	return ids, nil
}
