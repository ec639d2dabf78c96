//go:build ignore

// Package main generates a synthetic sharded abstract archive for
// benchmarking the assemble, sample, and build commands.
// Usage: go run scripts/generate-test-archive.go -abstracts 50000 -output testdata/bench
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numAbstracts = flag.Int("abstracts", 50000, "Number of abstracts to generate")
	outputDir    = flag.String("output", "testdata/bench", "Output directory")
	tag          = flag.String("tag", "PMID", "Filename prefix for archive files")
	seed         = flag.Int64("seed", 42, "Random seed for reproducibility")
)

// Vocabulary pools for synthetic abstracts. Drawn with a skewed
// distribution so term frequencies resemble real corpora.
var (
	commonWords = []string{
		"study", "results", "patients", "analysis", "treatment", "effect",
		"significant", "group", "data", "clinical", "observed", "increased",
		"associated", "response", "levels", "cells", "expression", "protein",
		"model", "method",
	}
	rareWords = []string{
		"angiogenesis", "apoptosis", "biomarker", "cytokine", "dopamine",
		"epidemiology", "fibrosis", "genotype", "histology", "immunoassay",
		"kinase", "ligand", "metabolite", "neuropathy", "oncogene",
		"phenotype", "receptor", "serotonin", "transcription", "vasculature",
	}
)

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	fmt.Printf("Generating %d abstracts under %s\n", *numAbstracts, *outputDir)

	for i := 1; i <= *numAbstracts; i++ {
		id := fmt.Sprintf("%d", i)
		shard := shardFor(id)
		dir := filepath.Join(*outputDir, shard)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", dir, err)
			os.Exit(1)
		}
		path := filepath.Join(dir, *tag+id+".txt")
		if err := os.WriteFile(path, []byte(abstract(rng)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}
		if i%10000 == 0 {
			fmt.Printf("  %d files written\n", i)
		}
	}

	fmt.Println("Done.")
}

// shardFor mirrors the archive layout: digits minus the last four,
// left-padded with zeros to four characters.
func shardFor(id string) string {
	prefix := ""
	if len(id) > 4 {
		prefix = id[:len(id)-4]
	}
	for len(prefix) < 4 {
		prefix = "0" + prefix
	}
	return prefix
}

// abstract produces 50 to 250 words, roughly 85% common terms.
func abstract(rng *rand.Rand) string {
	n := 50 + rng.Intn(200)
	words := make([]string, n)
	for i := range words {
		if rng.Intn(100) < 85 {
			words[i] = commonWords[rng.Intn(len(commonWords))]
		} else {
			words[i] = rareWords[rng.Intn(len(rareWords))]
		}
	}
	return strings.Join(words, " ") + "\n"
}
