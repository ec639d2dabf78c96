package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arlis-topics/pubtopics/internal/bibimport"
)

func newImportCmd() *cobra.Command {
	var (
		inputPath string
		indexPath string
		outPath   string
		encName   string
		errsPath  string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import bibliographic records into the corpus",
		Long: `Import reads three-line records (title, authors, text) separated by
blank lines, appends each to the tab-separated bibliographic index, and
writes one corpus line per record. IDs are sequential integers
continuing from the largest ID already in the index; the index file is
locked for the duration of the run.

Incomplete records are reported and skipped without consuming an ID.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if inputPath != "" && inputPath != "-" {
				f, err := os.Open(inputPath)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in = f
			}
			in, err := bibimport.DecodeReader(in, encName)
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(cmd, outPath)
			if err != nil {
				return err
			}
			errs, closeErrs, err := openErrs(cmd, errsPath)
			if err != nil {
				_ = closeOut()
				return err
			}

			im := &bibimport.Importer{
				IndexPath: indexPath,
				Out:       out,
				Errs:      errs,
				Logger:    slog.Default(),
			}
			stats, runErr := im.Run(in)

			if stats.Imported > 0 {
				errs.Statusf("imported %d records as IDs %d through %d; %d incomplete",
					stats.Imported, stats.FirstID, stats.LastID, stats.Incomplete)
			} else {
				errs.Statusf("imported 0 records; %d incomplete", stats.Incomplete)
			}

			if err := closeOut(); err != nil && runErr == nil {
				runErr = err
			}
			if err := closeErrs(); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Record file (default stdin)")
	cmd.Flags().StringVar(&indexPath, "index", "", "Append-only bibliographic index file")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Corpus output file (default stdout)")
	cmd.Flags().StringVar(&encName, "encoding", "utf-8",
		"Input encoding: "+strings.Join(bibimport.KnownEncodings(), ", "))
	cmd.Flags().StringVar(&errsPath, "errors", "", "Error report file (default stderr)")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
