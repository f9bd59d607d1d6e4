package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "List the sections of a fact sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

func runSections(cmd *cobra.Command, args []string) error {
	rep, err := loadReport(args[0])
	if err != nil {
		return fail(err)
	}

	if humanOutput {
		for _, sec := range rep.Sections {
			fmt.Printf("%d. %s\n", sec.Number, sec.Title)
		}
		return nil
	}

	type sectionInfo struct {
		Number  int    `json:"number"`
		Title   string `json:"title"`
		Entries int    `json:"entries"`
	}
	out := make([]sectionInfo, 0, len(rep.Sections))
	for _, sec := range rep.Sections {
		count := 0
		for range sec.Walk() {
			count++
		}
		out = append(out, sectionInfo{Number: sec.Number, Title: sec.Title, Entries: count})
	}
	outputJSON(map[string]any{"title": rep.Title, "sections": out})
	return nil
}
