package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arlis-topics/pubtopics/internal/output"
)

// openOutput opens path for writing, or returns the command's stdout
// when path is empty or "-". The returned close function is a no-op for
// stdout.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// openErrs builds the diagnostic writer: stderr by default, or the
// given file so long runs can keep a reviewable error report.
func openErrs(cmd *cobra.Command, path string) (*output.Writer, func() error, error) {
	if path == "" {
		return output.New(cmd.ErrOrStderr()), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return output.New(f), f.Close, nil
}
