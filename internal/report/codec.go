package report

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry kind discriminators used by the JSON and YAML encodings.
const (
	kindField      = "field"
	kindList       = "list"
	kindSubSection = "subsection"
)

type entryJSON struct {
	Kind    string            `json:"kind"`
	Label   string            `json:"label"`
	Value   string            `json:"value,omitempty"`
	Values  []string          `json:"values,omitempty"`
	Entries []json.RawMessage `json:"entries,omitempty"`
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Label string `json:"label"`
		Value string `json:"value"`
	}{kindField, f.Name, f.Value})
}

func (l ListField) MarshalJSON() ([]byte, error) {
	values := l.Values
	if values == nil {
		values = []string{}
	}
	return json.Marshal(struct {
		Kind   string   `json:"kind"`
		Label  string   `json:"label"`
		Values []string `json:"values"`
	}{kindList, l.Name, values})
}

func (s SubSection) MarshalJSON() ([]byte, error) {
	entries := s.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(struct {
		Kind    string  `json:"kind"`
		Label   string  `json:"label"`
		Entries []Entry `json:"entries"`
	}{kindSubSection, s.Name, entries})
}

func (s *Section) MarshalJSON() ([]byte, error) {
	entries := s.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(struct {
		Number  int     `json:"number"`
		Title   string  `json:"title"`
		Entries []Entry `json:"entries"`
	}{s.Number, s.Title, entries})
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var raw struct {
		Number  int               `json:"number"`
		Title   string            `json:"title"`
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Number = raw.Number
	s.Title = raw.Title
	s.Entries = nil
	for _, r := range raw.Entries {
		e, err := decodeEntryJSON(r)
		if err != nil {
			return err
		}
		s.Entries = append(s.Entries, e)
	}
	return nil
}

func decodeEntryJSON(data []byte) (Entry, error) {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	switch raw.Kind {
	case kindField:
		return Field{Name: raw.Label, Value: raw.Value}, nil
	case kindList:
		return ListField{Name: raw.Label, Values: raw.Values}, nil
	case kindSubSection:
		sub := SubSection{Name: raw.Label}
		for _, r := range raw.Entries {
			e, err := decodeEntryJSON(r)
			if err != nil {
				return nil, err
			}
			sub.Entries = append(sub.Entries, e)
		}
		return sub, nil
	default:
		return nil, fmt.Errorf("unknown entry kind %q", raw.Kind)
	}
}

// MarshalReportJSON encodes a report as JSON.
func MarshalReportJSON(r *Report) ([]byte, error) {
	return json.Marshal(struct {
		Title    string     `json:"title"`
		Sections []*Section `json:"sections"`
	}{r.Title, r.Sections})
}

// UnmarshalReportJSON decodes a report from its JSON encoding.
func UnmarshalReportJSON(data []byte) (*Report, error) {
	var raw struct {
		Title    string     `json:"title"`
		Sections []*Section `json:"sections"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &Report{Title: raw.Title, Sections: raw.Sections}, nil
}

type entryYAML struct {
	Kind    string   `yaml:"kind"`
	Label   string   `yaml:"label"`
	Value   string   `yaml:"value,omitempty"`
	Values  []string `yaml:"values,omitempty"`
	Entries []Entry  `yaml:"entries,omitempty"`
}

func (f Field) MarshalYAML() (any, error) {
	return entryYAML{Kind: kindField, Label: f.Name, Value: f.Value}, nil
}

func (l ListField) MarshalYAML() (any, error) {
	return entryYAML{Kind: kindList, Label: l.Name, Values: l.Values}, nil
}

func (s SubSection) MarshalYAML() (any, error) {
	return entryYAML{Kind: kindSubSection, Label: s.Name, Entries: s.Entries}, nil
}

func (s *Section) MarshalYAML() (any, error) {
	return struct {
		Number  int     `yaml:"number"`
		Title   string  `yaml:"title"`
		Entries []Entry `yaml:"entries"`
	}{s.Number, s.Title, s.Entries}, nil
}

func (s *Section) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Number  int         `yaml:"number"`
		Title   string      `yaml:"title"`
		Entries []yaml.Node `yaml:"entries"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.Number = raw.Number
	s.Title = raw.Title
	s.Entries = nil
	for i := range raw.Entries {
		e, err := decodeEntryYAML(&raw.Entries[i])
		if err != nil {
			return err
		}
		s.Entries = append(s.Entries, e)
	}
	return nil
}

func decodeEntryYAML(node *yaml.Node) (Entry, error) {
	var raw struct {
		Kind    string      `yaml:"kind"`
		Label   string      `yaml:"label"`
		Value   string      `yaml:"value"`
		Values  []string    `yaml:"values"`
		Entries []yaml.Node `yaml:"entries"`
	}
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	switch raw.Kind {
	case kindField:
		return Field{Name: raw.Label, Value: raw.Value}, nil
	case kindList:
		return ListField{Name: raw.Label, Values: raw.Values}, nil
	case kindSubSection:
		sub := SubSection{Name: raw.Label}
		for i := range raw.Entries {
			e, err := decodeEntryYAML(&raw.Entries[i])
			if err != nil {
				return nil, err
			}
			sub.Entries = append(sub.Entries, e)
		}
		return sub, nil
	default:
		return nil, fmt.Errorf("unknown entry kind %q", raw.Kind)
	}
}

// MarshalReportYAML encodes a report as YAML.
func MarshalReportYAML(r *Report) ([]byte, error) {
	return yaml.Marshal(struct {
		Title    string     `yaml:"title"`
		Sections []*Section `yaml:"sections"`
	}{r.Title, r.Sections})
}

// UnmarshalReportYAML decodes a report from its YAML encoding.
func UnmarshalReportYAML(data []byte) (*Report, error) {
	var raw struct {
		Title    string     `yaml:"title"`
		Sections []*Section `yaml:"sections"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &Report{Title: raw.Title, Sections: raw.Sections}, nil
}
