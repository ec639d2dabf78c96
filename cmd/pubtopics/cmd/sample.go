package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arlis-topics/pubtopics/internal/assemble"
)

func newSampleCmd() *cobra.Command {
	var (
		root        string
		tag         string
		numerator   int
		denominator int
		outPath     string
		errsPath    string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample a fixed fraction of the whole archive into a corpus",
		Long: `Sample walks every shard of the archive in order and retains
numerator out of every denominator files, spread evenly by a running
global file counter. Two runs over an unchanged archive retain the same
files, so samples are reproducible.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tag") {
				cfg.Archive.Tag = tag
			}
			if err := cfg.Validate(); err != nil {
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

			s := &assemble.Sampler{
				Root:        root,
				Tag:         cfg.Archive.Tag,
				Numerator:   numerator,
				Denominator: denominator,
				Every:       cfg.Progress.SampleEvery,
				Out:         out,
				Errs:        errs,
				Logger:      slog.Default(),
			}
			stats, runErr := s.Run()

			errs.Statusf("walked %d files, retained %d abstracts; %d empty",
				stats.Walked, stats.Retained, stats.Empty)

			if err := closeOut(); err != nil && runErr == nil {
				runErr = err
			}
			if err := closeErrs(); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Archive root directory")
	cmd.Flags().StringVar(&tag, "tag", "", "Filename prefix embedded in archive files (default from config)")
	cmd.Flags().IntVar(&numerator, "numerator", 1, "Files retained out of every denominator")
	cmd.Flags().IntVar(&denominator, "denominator", 1000, "Sampling window size")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Corpus output file (default stdout)")
	cmd.Flags().StringVar(&errsPath, "errors", "", "Error report file (default stderr)")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}
