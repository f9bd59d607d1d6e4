package main

import (
	"fmt"

	"github.com/hkanaan/factsheet/internal/report"
	"github.com/hkanaan/factsheet/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <file> <section> [<label>]",
	Short: "Get a section, or a single field value, by reference",
	Long: `Get a section by number or title; with a label, get one scalar field.

Examples:
  factsheet get syria.txt 6
  factsheet get syria.txt "Governance & Politics" President`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	rep, err := loadReport(args[0])
	if err != nil {
		return fail(err)
	}
	st := store.New(rep)

	if len(args) == 2 {
		sec, err := st.Section(args[1])
		if err != nil {
			return fail(err)
		}
		if humanOutput {
			one := &report.Report{Sections: []*report.Section{sec}}
			fmt.Print(one.Text())
			return nil
		}
		outputJSON(sec)
		return nil
	}

	value, err := st.Field(args[1], args[2])
	if err != nil {
		return fail(err)
	}
	if humanOutput {
		fmt.Println(value)
		return nil
	}
	outputJSON(map[string]string{
		"section": args[1],
		"label":   args[2],
		"value":   value,
	})
	return nil
}
