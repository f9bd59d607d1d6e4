// Package main provides the factsheet CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "factsheet",
	Short: "Parse and query country fact sheets",
	Long: `factsheet parses structured country fact sheets (numbered sections,
labeled fields, bulleted lists) into a hierarchical report and answers
point and keyword queries over it.

Supported inputs: .txt, .md, .html, .pdf, .docx, .csv. All commands
output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
