package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoTables is returned when a document has no tables collection at
// the top level. That is a contract violation, not sparse data.
var ErrNoTables = errors.New("document has no tables collection")

// Record is a single row of a statistical table, keyed by the free-text
// field labels of the source. Values are string, number or absent.
//
// Records handed out by a Registry are shared and must be treated as
// read-only.
type Record map[string]interface{}

// Get returns the raw value stored under label. A missing field is
// reported as absent, never as zero.
func (r Record) Get(label string) (interface{}, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[label]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Number returns the coerced value of label, 0 when absent or unparseable.
func (r Record) Number(label string) float64 {
	v, _ := r.Get(label)
	return Number(v)
}

// Text returns the value of label as trimmed text.
func (r Record) Text(label string) string {
	v, ok := r.Get(label)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Document is the hand-curated source: named tables made of typed sections.
type Document struct {
	Tables []*Table `json:"tables"`
}

// Table is a statistical table of one domain (EDUCATION, SANTE...).
type Table struct {
	Name     string     `json:"nom"`
	Sections []*Section `json:"sections"`
}

// Section holds either a single record (province figures, or one commune
// per section) or an ordered sequence of per-commune records.
type Section struct {
	Type    string   `json:"type"`
	Records []Record `json:"donnees"`

	// Single is set when the source held one record rather than a list.
	Single bool `json:"-"`
}

// First returns the first record of the section, if any.
func (s *Section) First() (Record, bool) {
	if s == nil || len(s.Records) == 0 {
		return nil, false
	}
	return s.Records[0], true
}

// documentFromTree converts a decoded JSON or YAML tree into a Document.
// Both the French ("nom", "donnees") and English ("name", "data") keys
// are accepted.
func documentFromTree(tree interface{}) (*Document, error) {
	root, ok := asMap(tree)
	if !ok {
		return nil, ErrNoTables
	}
	rawTables, found := root["tables"]
	if !found || rawTables == nil {
		return nil, ErrNoTables
	}
	list, ok := rawTables.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: tables is %T, not a list", ErrNoTables, rawTables)
	}

	doc := &Document{}
	for i, rt := range list {
		m, ok := asMap(rt)
		if !ok {
			return nil, fmt.Errorf("table %d is %T, not an object", i, rt)
		}

		t := &Table{Name: strings.TrimSpace(textOf(firstOf(m, "nom", "name")))}

		sections, _ := firstOf(m, "sections").([]interface{})
		for _, rs := range sections {
			sm, ok := asMap(rs)
			if !ok {
				continue
			}
			s := &Section{Type: strings.TrimSpace(textOf(sm["type"]))}

			switch data := firstOf(sm, "donnees", "data").(type) {
			case []interface{}:
				for _, rr := range data {
					if r, ok := asMap(rr); ok {
						s.Records = append(s.Records, Record(r))
					}
				}
			default:
				if r, ok := asMap(data); ok {
					s.Records = []Record{Record(r)}
					s.Single = true
				}
			}

			t.Sections = append(t.Sections, s)
		}

		doc.Tables = append(doc.Tables, t)
	}

	return doc, nil
}

func firstOf(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func textOf(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// asMap accepts both the map shape produced by encoding/json and the one
// produced by yaml.v3 for untyped documents.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Record:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// MarshalJSON writes the section back in the shape it was read in.
func (s *Section) MarshalJSON() ([]byte, error) {
	type section struct {
		Type string      `json:"type"`
		Data interface{} `json:"donnees"`
	}
	out := section{Type: s.Type, Data: s.Records}
	if s.Single && len(s.Records) == 1 {
		out.Data = s.Records[0]
	}
	return json.Marshal(out)
}

// Info prints a summary of the tables of the document.
func (doc *Document) Info(w io.Writer) {
	records := 0
	for _, t := range doc.Tables {
		n := 0
		for _, s := range t.Sections {
			n += len(s.Records)
		}
		records += n
		fmt.Fprintf(w, "\t%-32s : %d sections, %d records\n", t.Name, len(t.Sections), n)
	}
	fmt.Fprintf(w, "\n\tTables  : %d\n\tRecords : %d\n\n", len(doc.Tables), records)
}
