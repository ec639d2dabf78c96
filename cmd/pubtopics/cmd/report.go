package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arlis-topics/pubtopics/internal/corpus"
	"github.com/arlis-topics/pubtopics/internal/report"
	"github.com/arlis-topics/pubtopics/pkg/anchor"
)

func newReportCmd() *cobra.Command {
	var (
		resultPath string
		vocabPath  string
		topN       int
		outPath    string
		excel      bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a topic-model result as text or a spreadsheet",
		Long: `Report reads a model result file and the vocabulary it was built
against, and renders each topic as its anchor words followed by its top
weighted words. Plain text goes to stdout or --output; --excel writes a
two-column workbook instead and requires an output path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("words") {
				topN = cfg.Model.TopicWords
			}

			if excel {
				if outPath == "" || outPath == "-" {
					return fmt.Errorf("--excel requires --output; a workbook cannot go to stdout")
				}
				if !strings.EqualFold(filepath.Ext(outPath), ".xlsx") {
					return fmt.Errorf("--excel output %q must end in .xlsx", outPath)
				}
			}

			result, err := anchor.LoadResult(resultPath)
			if err != nil {
				return err
			}
			vocab, err := corpus.ReadList(vocabPath)
			if err != nil {
				return err
			}
			topics, err := result.Topics(vocab, topN)
			if err != nil {
				return err
			}

			if excel {
				return report.WriteExcel(outPath, topics)
			}

			out, closeOut, err := openOutput(cmd, outPath)
			if err != nil {
				return err
			}
			if err := report.WriteText(out, topics); err != nil {
				_ = closeOut()
				return err
			}
			return closeOut()
		},
	}

	cmd.Flags().StringVar(&resultPath, "result", "", "Model result file")
	cmd.Flags().StringVar(&vocabPath, "vocabulary", "", "Vocabulary file the model was built against")
	cmd.Flags().IntVarP(&topN, "words", "w", 0, "Words reported per topic (default from config)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Report output file (default stdout)")
	cmd.Flags().BoolVar(&excel, "excel", false, "Write an .xlsx workbook instead of plain text")
	_ = cmd.MarkFlagRequired("result")
	_ = cmd.MarkFlagRequired("vocabulary")

	return cmd
}
