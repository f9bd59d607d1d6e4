package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hkanaan/factsheet/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a fact sheet to JSON, YAML or canonical text",
	Long: `Convert a fact sheet between formats. The output format is inferred
from the output file extension: .json, .yaml/.yml or .txt.

Example:
  factsheet convert syria.pdf syria.json`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	rep, err := loadReport(args[0])
	if err != nil {
		return fail(err)
	}

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(args[1])); ext {
	case ".json":
		data, err = report.MarshalReportJSON(rep)
	case ".yaml", ".yml":
		data, err = report.MarshalReportYAML(rep)
	case ".txt":
		data = []byte(rep.Text())
	default:
		return fail(fmt.Errorf("cannot infer output format from %q (want .json, .yaml or .txt)", ext))
	}
	if err != nil {
		return fail(err)
	}

	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		return fail(err)
	}
	if humanOutput {
		fmt.Printf("wrote %s (%d bytes)\n", args[1], len(data))
	} else {
		outputJSON(map[string]any{"output": args[1], "bytes": len(data)})
	}
	return nil
}
