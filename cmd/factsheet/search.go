package main

import (
	"fmt"
	"strings"

	"github.com/hkanaan/factsheet/internal/report"
	"github.com/hkanaan/factsheet/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <file> <keyword>",
	Short: "Search a fact sheet for a keyword",
	Long: `Search every field label, value and list item for a keyword
(case-insensitive substring match).

Example:
  factsheet search syria.txt Aleppo`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	rep, err := loadReport(args[0])
	if err != nil {
		return fail(err)
	}
	st := store.New(rep)

	type matchInfo struct {
		SectionNumber int          `json:"section_number"`
		SectionTitle  string       `json:"section_title"`
		Path          []string     `json:"path"`
		Entry         report.Entry `json:"entry"`
	}
	var out []matchInfo
	for m := range st.Search(args[1]) {
		out = append(out, matchInfo{
			SectionNumber: m.Section.Number,
			SectionTitle:  m.Section.Title,
			Path:          m.Path,
			Entry:         m.Entry,
		})
	}

	if humanOutput {
		if len(out) == 0 {
			fmt.Printf("no matches for %q\n", args[1])
			return nil
		}
		for _, m := range out {
			loc := fmt.Sprintf("%d. %s", m.SectionNumber, m.SectionTitle)
			if len(m.Path) > 0 {
				loc += " > " + strings.Join(m.Path, " > ")
			}
			fmt.Println(loc)
		}
		return nil
	}

	if out == nil {
		out = []matchInfo{}
	}
	outputJSON(map[string]any{"keyword": args[1], "matches": out})
	return nil
}
