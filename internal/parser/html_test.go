package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hkanaan/factsheet/internal/report"
)

func TestHTMLParser_SectionsAndLists(t *testing.T) {
	input := `<html><head><title>Syria Fact Sheet</title></head><body>
<h2>1. General Information</h2>
<p>Capital: Damascus</p>
<ul><li>Major Cities:<ul><li>Aleppo</li><li>Homs</li></ul></li></ul>
<h2>2. Economy</h2>
<p>Currency: Syrian pound</p>
<script>var ignored = "Label: noise";</script>
</body></html>`

	p := &HTMLParser{}
	rep, err := p.Parse(strings.NewReader(input), "syria.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Title != "Syria Fact Sheet" {
		t.Errorf("expected title from <title>, got %q", rep.Title)
	}
	if len(rep.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(rep.Sections))
	}

	gen := rep.Sections[0]
	if len(gen.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %#v", len(gen.Entries), gen.Entries)
	}
	if f, ok := gen.Entries[0].(report.Field); !ok || f.Value != "Damascus" {
		t.Errorf("unexpected entry[0]: %#v", gen.Entries[0])
	}
	cities, ok := gen.Entries[1].(report.ListField)
	if !ok {
		t.Fatalf("expected ListField, got %#v", gen.Entries[1])
	}
	if cities.Name != "Major Cities" {
		t.Errorf("expected list name %q, got %q", "Major Cities", cities.Name)
	}
	if want := []string{"Aleppo", "Homs"}; !reflect.DeepEqual(cities.Values, want) {
		t.Errorf("expected %v, got %v", want, cities.Values)
	}

	econ := rep.Sections[1]
	if f, ok := econ.Entries[0].(report.Field); !ok || f.Name != "Currency" {
		t.Errorf("unexpected economy entry: %#v", econ.Entries[0])
	}
}

func TestHTMLParser_NonNumberedHeadingsIgnored(t *testing.T) {
	input := `<body>
<h1>About this page</h1>
<h2>4. Geography</h2>
<p>Area: 185,180 sq km</p>
</body>`

	p := &HTMLParser{}
	rep, err := p.Parse(strings.NewReader(input), "geo.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(rep.Sections))
	}
	if rep.Sections[0].Number != 4 {
		t.Errorf("expected section 4, got %d", rep.Sections[0].Number)
	}
}

func TestHTMLParser_NoSectionsError(t *testing.T) {
	p := &HTMLParser{}
	if _, err := p.Parse(strings.NewReader("<body><p>nothing here</p></body>"), "empty.html"); err == nil {
		t.Fatal("expected error for html without numbered headings")
	}
}
