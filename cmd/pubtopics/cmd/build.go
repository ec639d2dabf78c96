package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arlis-topics/pubtopics/internal/corpus"
	"github.com/arlis-topics/pubtopics/internal/logging"
	"github.com/arlis-topics/pubtopics/internal/profiling"
	"github.com/arlis-topics/pubtopics/internal/textproc"
)

func newBuildCmd() *cobra.Command {
	var (
		matrixPath    string
		vocabPath     string
		docsPath      string
		stopwordsPath string
		maxDocs       int
		minWordLength int
		maxCells      int
	)

	cmd := &cobra.Command{
		Use:   "build <corpus-file>...",
		Short: "Build the word-by-document count matrix from corpus files",
		Long: `Build reads standard corpus files (one document per line, ID first)
and produces three aligned outputs: the sparse count matrix in
MatrixMarket coordinate format, the sorted vocabulary, and the ordered
document ID list. Vocabulary line position is the matrix row, document
position the column.

Arguments may be shell-style glob patterns; they are expanded and
processed in the order given. The document cap is global across all
files, so files past the cap are skipped entirely.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-docs") {
				cfg.Limits.MaxDocuments = maxDocs
			}
			if cmd.Flags().Changed("min-word-length") {
				cfg.Limits.MinWordLength = minWordLength
			}
			if cmd.Flags().Changed("max-cells") {
				cfg.Limits.MaxMatrixCells = maxCells
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			paths, err := expandGlobs(args)
			if err != nil {
				return err
			}

			var stopwords textproc.StopwordSet
			if stopwordsPath != "" {
				stopwords, err = textproc.LoadStopwords(stopwordsPath)
				if err != nil {
					return err
				}
			}

			m, err := corpus.Build(paths, corpus.Options{
				MaxDocuments:  cfg.Limits.MaxDocuments,
				MinWordLength: cfg.Limits.MinWordLength,
				MaxCells:      cfg.Limits.MaxMatrixCells,
				Stopwords:     stopwords,
				Logger:        slog.Default(),
				Heartbeat:     logging.NewHeartbeat(cfg.Progress.HeartbeatInterval),
			})
			if err != nil {
				return err
			}

			if err := writeFile(matrixPath, func(f *os.File) error {
				return corpus.WriteMatrixMarket(f, m.Counts)
			}); err != nil {
				return err
			}
			if err := writeFile(vocabPath, func(f *os.File) error {
				return corpus.WriteList(f, m.Vocabulary)
			}); err != nil {
				return err
			}
			if err := writeFile(docsPath, func(f *os.File) error {
				return corpus.WriteList(f, m.Documents)
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "read %d documents containing %d words\n",
				len(m.Documents), len(m.Vocabulary))
			if m.SkippedLines > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d empty lines\n", m.SkippedLines)
			}
			slog.Debug("build finished",
				"documents", len(m.Documents),
				"vocabulary", len(m.Vocabulary),
				"heap", profiling.FormatBytes(profiling.HeapAlloc()))
			return nil
		},
	}

	cmd.Flags().StringVar(&matrixPath, "matrix", "matrix.mtx", "Output path for the MatrixMarket count matrix")
	cmd.Flags().StringVar(&vocabPath, "vocabulary", "vocabulary.txt", "Output path for the sorted vocabulary")
	cmd.Flags().StringVar(&docsPath, "documents", "documents.txt", "Output path for the ordered document ID list")
	cmd.Flags().StringVar(&stopwordsPath, "stopwords", "", "Path to a stopword file, one word per line")
	cmd.Flags().IntVar(&maxDocs, "max-docs", 0, "Override the global document cap")
	cmd.Flags().IntVar(&minWordLength, "min-word-length", 0, "Override the minimum token length in runes")
	cmd.Flags().IntVar(&maxCells, "max-cells", 0, "Override the matrix cell ceiling")

	return cmd
}

// expandGlobs expands each argument as a glob pattern, keeping argument
// order and sorting matches within each pattern for a deterministic
// document axis. A pattern with no matches fails the run.
func expandGlobs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

// writeFile creates path and hands it to write, closing on the way out.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
