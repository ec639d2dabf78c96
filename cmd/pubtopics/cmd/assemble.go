package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arlis-topics/pubtopics/internal/assemble"
)

func newAssembleCmd() *cobra.Command {
	var (
		idsPath  string
		root     string
		tag      string
		maxDocs  int
		outPath  string
		errsPath string
	)

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Assemble a corpus from an identifier list and the sharded archive",
		Long: `Assemble resolves each identifier in the list against the sharded
abstract archive and writes one corpus line per abstract to the output.

The identifier list is a plain text file with one ID per line, or an
.xlsx workbook whose first sheet's first column holds the IDs. Missing
files, empty files, and malformed identifiers are reported on the error
stream and skipped; the run only aborts when a file that exists cannot
be read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tag") {
				cfg.Archive.Tag = tag
			}
			if cmd.Flags().Changed("max-docs") {
				cfg.Limits.MaxDocuments = maxDocs
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ids, err := assemble.LoadIDs(idsPath)
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

			a := &assemble.Assembler{
				Root:   root,
				Tag:    cfg.Archive.Tag,
				Out:    out,
				Errs:   errs,
				Logger: slog.Default(),
			}
			stats, runErr := a.Run(ids, cfg.Limits.MaxDocuments)

			errs.Statusf("wrote %d abstracts; %d missing, %d empty, %d invalid",
				stats.Written, stats.Missing, stats.Empty, stats.Invalid)

			if err := closeOut(); err != nil && runErr == nil {
				runErr = err
			}
			if err := closeErrs(); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&idsPath, "ids", "", "Identifier list (.txt with one ID per line, or .xlsx)")
	cmd.Flags().StringVar(&root, "root", "", "Archive root directory")
	cmd.Flags().StringVar(&tag, "tag", "", "Filename prefix embedded in archive files (default from config)")
	cmd.Flags().IntVar(&maxDocs, "max-docs", 0, "Stop after this many identifiers")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Corpus output file (default stdout)")
	cmd.Flags().StringVar(&errsPath, "errors", "", "Error report file (default stderr)")
	_ = cmd.MarkFlagRequired("ids")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}
