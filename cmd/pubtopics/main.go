// Package main provides the entry point for the pubtopics CLI.
package main

import (
	"os"

	"github.com/arlis-topics/pubtopics/cmd/pubtopics/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
