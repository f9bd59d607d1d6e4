package main

import (
	"fmt"
	"os"

	"github.com/hkanaan/factsheet/internal/report"
	"github.com/spf13/cobra"
)

var parseFormat string

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "json", "Output format: json, yaml or text")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a fact sheet and print the full report",
	Long: `Parse a fact sheet and print the parsed report.

Example:
  factsheet parse syria.txt --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	rep, err := loadReport(args[0])
	if err != nil {
		return fail(err)
	}

	switch parseFormat {
	case "json":
		data, err := report.MarshalReportJSON(rep)
		if err != nil {
			return fail(err)
		}
		outputRaw(data)
	case "yaml":
		data, err := report.MarshalReportYAML(rep)
		if err != nil {
			return fail(err)
		}
		os.Stdout.Write(data)
	case "text":
		fmt.Print(rep.Text())
	default:
		return fail(fmt.Errorf("unknown format %q (want json, yaml or text)", parseFormat))
	}
	return nil
}
