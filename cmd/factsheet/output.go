package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hkanaan/factsheet/internal/parser"
	"github.com/hkanaan/factsheet/internal/report"
)

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// outputRaw re-indents and prints already-encoded JSON.
func outputRaw(data []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		os.Stdout.Write(data)
		return
	}
	buf.WriteByte('\n')
	buf.WriteTo(os.Stdout)
}

// fail prints an error in the selected output mode and returns it so
// cobra sets a non-zero exit code.
func fail(err error) error {
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	} else {
		outputJSON(map[string]string{"error": err.Error()})
	}
	return err
}

// loadReport parses the fact sheet at path using the parser matching its
// extension.
func loadReport(path string) (*report.Report, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = true
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return p.Parse(f, filepath.Base(path))
}
