package report

import (
	"reflect"
	"testing"
)

func sampleReport() *Report {
	return &Report{
		Title: "Syrian Arab Republic",
		Sections: []*Section{
			{
				Number: 1,
				Title:  "General Information",
				Entries: []Entry{
					Field{Name: "Capital", Value: "Damascus"},
					ListField{Name: "Major Cities", Values: []string{"Aleppo", "Homs"}},
				},
			},
			{
				Number: 6,
				Title:  "Governance & Politics",
				Entries: []Entry{
					Field{Name: "President", Value: "Bashar al-Assad (since July 2000)"},
					SubSection{
						Name: "Government",
						Entries: []Entry{
							Field{Name: "Type", Value: "Presidential republic"},
						},
					},
				},
			},
		},
	}
}

func TestSection_Walk(t *testing.T) {
	rep := sampleReport()
	sec := rep.Sections[1]

	var paths [][]string
	var labels []string
	for path, e := range sec.Walk() {
		paths = append(paths, path)
		labels = append(labels, e.Label())
	}

	wantLabels := []string{"President", "Government", "Type"}
	if !reflect.DeepEqual(labels, wantLabels) {
		t.Errorf("expected labels %v, got %v", wantLabels, labels)
	}
	wantLast := []string{"Government", "Type"}
	if !reflect.DeepEqual(paths[2], wantLast) {
		t.Errorf("expected nested path %v, got %v", wantLast, paths[2])
	}
}

func TestSection_WalkSkipsAnonymousLabels(t *testing.T) {
	sec := &Section{
		Number: 3,
		Title:  "Economy",
		Entries: []Entry{
			ListField{Values: []string{"Agriculture", "Oil"}},
		},
	}
	for path := range sec.Walk() {
		if len(path) != 0 {
			t.Errorf("anonymous list should have empty path, got %v", path)
		}
	}
}

func TestReport_SectionByNumber(t *testing.T) {
	rep := sampleReport()
	if sec := rep.SectionByNumber(6); sec == nil || sec.Title != "Governance & Politics" {
		t.Errorf("unexpected section: %#v", sec)
	}
	if sec := rep.SectionByNumber(99); sec != nil {
		t.Errorf("expected nil for missing number, got %#v", sec)
	}
}

func TestReport_EntryCount(t *testing.T) {
	rep := sampleReport()
	if got := rep.EntryCount(); got != 5 {
		t.Errorf("expected 5 entries including nested, got %d", got)
	}
}

func TestReport_Validate(t *testing.T) {
	if err := sampleReport().Validate(); err != nil {
		t.Errorf("valid report rejected: %v", err)
	}

	tests := []struct {
		name string
		rep  *Report
	}{
		{"no sections", &Report{Title: "x"}},
		{"zero number", &Report{Sections: []*Section{{Number: 0, Title: "A"}}}},
		{"duplicate number", &Report{Sections: []*Section{
			{Number: 1, Title: "A"},
			{Number: 1, Title: "B"},
		}}},
		{"empty title", &Report{Sections: []*Section{{Number: 1, Title: "  "}}}},
		{"unnamed subsection", &Report{Sections: []*Section{{
			Number: 1, Title: "A",
			Entries: []Entry{SubSection{Entries: []Entry{Field{Name: "x", Value: "y"}}}},
		}}}},
	}
	for _, tt := range tests {
		if err := tt.rep.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
