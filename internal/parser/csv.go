package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hkanaan/factsheet/internal/report"
)

// CSVParser handles fact sheets exported as CSV rows of
// (section number, section title, label, value). Rows sharing a label
// within a section collapse into a ListField; rows with an empty label
// append to the section's anonymous list.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*report.Report, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) > 0 && isCSVHeader(records[0]) {
		records = records[1:]
	}

	var events []lineEvent
	lastSection := 0
	for i, row := range records {
		if len(row) < 4 {
			return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("expected 4 columns, got %d", len(row))}
		}
		num, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil || num <= 0 {
			return nil, &ParseError{Line: i + 1, Msg: fmt.Sprintf("invalid section number %q", row[0])}
		}
		if num != lastSection {
			events = append(events, lineEvent{kind: eventHeader, line: i + 1, number: num, value: strings.TrimSpace(row[1])})
			lastSection = num
		}

		label := strings.TrimSpace(row[2])
		value := strings.TrimSpace(row[3])
		switch {
		case label == "":
			events = append(events, lineEvent{kind: eventItem, line: i + 1, value: value})
		case labelRepeats(records, i, label):
			// Repeated labels become a list: open the block once, then
			// feed the values as items beneath it.
			if i == 0 || strings.TrimSpace(records[i-1][2]) != label || lastRowSection(records, i) != num {
				events = append(events, lineEvent{kind: eventLabeled, line: i + 1, depth: 0, label: label})
			}
			events = append(events, lineEvent{kind: eventItem, line: i + 1, depth: 1, value: value})
		default:
			events = append(events, lineEvent{kind: eventLabeled, line: i + 1, depth: 0, label: label, value: value})
		}
	}

	return buildReport(sliceEvents(events), strings.TrimSuffix(filename, ".csv"))
}

// labelRepeats reports whether the row's label occurs on an adjacent row
// of the same section, which marks a list rather than a scalar field.
func labelRepeats(records [][]string, i int, label string) bool {
	section := strings.TrimSpace(records[i][0])
	if i > 0 && len(records[i-1]) >= 4 &&
		strings.TrimSpace(records[i-1][2]) == label && strings.TrimSpace(records[i-1][0]) == section {
		return true
	}
	if i+1 < len(records) && len(records[i+1]) >= 4 &&
		strings.TrimSpace(records[i+1][2]) == label && strings.TrimSpace(records[i+1][0]) == section {
		return true
	}
	return false
}

func lastRowSection(records [][]string, i int) int {
	if i == 0 || len(records[i-1]) < 1 {
		return 0
	}
	n, _ := strconv.Atoi(strings.TrimSpace(records[i-1][0]))
	return n
}

func isCSVHeader(row []string) bool {
	if len(row) < 4 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[0]))
	return err != nil
}
