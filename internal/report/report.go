// Package report renders topic-model results. Each topic is written as
// its anchor words followed by its top weighted words, either as
// delimited plain text or as a two-column spreadsheet.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arlis-topics/pubtopics/pkg/anchor"
)

// WriteText renders topics as plain text: one line of anchor words,
// one comma-delimited line of topic words, then a blank separator.
func WriteText(w io.Writer, topics []anchor.Topic) error {
	bw := bufio.NewWriter(w)
	for _, topic := range topics {
		if _, err := fmt.Fprintf(bw, "%s\n%s\n\n",
			strings.Join(topic.Anchors, " "),
			strings.Join(topic.Words, ", ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Spreadsheet layout constants, in default character widths and row
// height units.
const (
	anchorColWidth = 25
	wordsColWidth  = 125
	rowHeight      = 30
)

// WriteExcel renders topics as a workbook: anchors in column A, the
// comma-joined word list in column B, with wrapped cells.
func WriteExcel(path string, topics []anchor.Topic) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "justify", WrapText: true},
	})
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", anchorColWidth); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", wordsColWidth); err != nil {
		return err
	}
	if err := f.SetColStyle(sheet, "A:B", style); err != nil {
		return err
	}
	height := float64(rowHeight)
	custom := true
	if err := f.SetSheetProps(sheet, &excelize.SheetPropsOptions{
		DefaultRowHeight: &height,
		CustomHeight:     &custom,
	}); err != nil {
		return err
	}

	for i, topic := range topics {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), strings.Join(topic.Anchors, " ")); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), strings.Join(topic.Words, ", ")); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
