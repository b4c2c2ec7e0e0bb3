package stats

import "strings"

// Entry is one per-commune record paired with the text that names its
// commune: a field of the record, or the type label of a section
// dedicated to that commune.
type Entry struct {
	NameHint string
	Record   Record
}

// Located is what the locator found for one domain.
type Located struct {
	Domain   Domain
	Table    *Table
	Province Record
	Entries  []Entry
}

// FindTable returns the table whose name matches pattern. An exact match
// (ignoring case and accents) wins over a substring match.
func (doc *Document) FindTable(pattern string) (*Table, bool) {
	if doc == nil || pattern == "" {
		return nil, false
	}

	want := strings.ToLower(foldAccents(strings.TrimSpace(pattern)))
	for _, t := range doc.Tables {
		if strings.ToLower(foldAccents(strings.TrimSpace(t.Name))) == want {
			return t, true
		}
	}
	for _, t := range doc.Tables {
		if matchLabel(t.Name, pattern) {
			return t, true
		}
	}
	return nil, false
}

// FindSections returns every section whose type label matches pattern.
func (t *Table) FindSections(pattern string) []*Section {
	if t == nil {
		return nil
	}
	var found []*Section
	for _, s := range t.Sections {
		if matchLabel(s.Type, pattern) {
			found = append(found, s)
		}
	}
	return found
}

// Locate finds the province record and the per-commune records of one
// domain. Both section shapes are flattened into the same sequence of
// entries: a section holding a list of records (the commune named by
// spec.NameField) and a section dedicated to a single commune (named by
// its type label when the record does not carry the name field).
// A generic label such as "Données par commune" names no commune; its
// entry is kept with an empty hint and left unresolved.
//
// A missing table or section is not an error; the result is just empty.
func Locate(doc *Document, spec DomainSpec) Located {
	loc := Located{Domain: spec.Domain}

	t, found := doc.FindTable(spec.Table)
	if !found {
		return loc
	}
	loc.Table = t

	for _, s := range t.Sections {
		isCommune := matchLabel(s.Type, spec.Commune)

		if !isCommune && matchLabel(s.Type, spec.Province) {
			if loc.Province == nil {
				loc.Province, _ = s.First()
			}
			continue
		}
		if !isCommune {
			continue
		}

		if s.Single {
			r, _ := s.First()
			hint := nameHint(r, spec.NameField)
			if hint == "" && namesCommune(s.Type) {
				hint = s.Type
			}
			loc.Entries = append(loc.Entries, Entry{NameHint: hint, Record: r})
			continue
		}

		for _, r := range s.Records {
			loc.Entries = append(loc.Entries, Entry{NameHint: nameHint(r, spec.NameField), Record: r})
		}
	}

	return loc
}

// nameHint returns the raw commune name held by field, or "" when the
// field is absent or blank.
func nameHint(r Record, field string) string {
	v, ok := r.Get(field)
	if !ok {
		return ""
	}
	s := textOf(v)
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
