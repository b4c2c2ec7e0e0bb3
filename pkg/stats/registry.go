package stats

import "encoding/json"

// Subdivision is a commune with one optional record per domain.
type Subdivision struct {
	name  string
	key   string
	slots [numDomains]Record
}

// Name is the raw text the commune was first seen under.
func (s *Subdivision) Name() string { return s.name }

// Key is the canonical key of the commune.
func (s *Subdivision) Key() string { return s.key }

// ShortName is Name without its leading "Commune de".
func (s *Subdivision) ShortName() string { return DisplayName(s.name) }

// Record returns the commune's record for d. A nil record means the
// domain has no data for this commune.
func (s *Subdivision) Record(d Domain) (Record, bool) {
	if s == nil || d < 0 || int(d) >= numDomains {
		return nil, false
	}
	r := s.slots[d]
	return r, r != nil
}

// Demographics returns the demographics record, nil when absent.
func (s *Subdivision) Demographics() Record { return s.slots[Demographics] }

// Education returns the education record, nil when absent.
func (s *Subdivision) Education() Record { return s.slots[Education] }

// Employment returns the employment record, nil when absent.
func (s *Subdivision) Employment() Record { return s.slots[Employment] }

// Health returns the health record, nil when absent.
func (s *Subdivision) Health() Record { return s.slots[Health] }

// Water returns the water and sanitation record, nil when absent.
func (s *Subdivision) Water() Record { return s.slots[Water] }

// Number reads a coerced field of one domain, 0 when absent.
func (s *Subdivision) Number(d Domain, label string) float64 {
	r, _ := s.Record(d)
	return r.Number(label)
}

// Registry is the assembled set of communes plus the province figures.
// Once returned by Assemble it is never mutated and may be shared by any
// number of readers.
type Registry struct {
	subdivisions []*Subdivision
	byKey        map[string]*Subdivision
	province     [numDomains]Record
}

func newRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Subdivision)}
}

// Subdivisions returns the communes in order of first encounter.
func (reg *Registry) Subdivisions() []*Subdivision {
	if reg == nil {
		return nil
	}
	out := make([]*Subdivision, len(reg.subdivisions))
	copy(out, reg.subdivisions)
	return out
}

// Len returns the number of communes.
func (reg *Registry) Len() int {
	if reg == nil {
		return 0
	}
	return len(reg.subdivisions)
}

// Lookup finds a commune by canonical key.
func (reg *Registry) Lookup(key string) (*Subdivision, bool) {
	if reg == nil {
		return nil, false
	}
	s, ok := reg.byKey[key]
	return s, ok
}

// Find finds a commune by any spelling of its name.
func (reg *Registry) Find(name string) (*Subdivision, bool) {
	key := NormalizeName(name)
	if key == "" {
		return nil, false
	}
	return reg.Lookup(key)
}

// Province returns the province-level record of d.
func (reg *Registry) Province(d Domain) (Record, bool) {
	if reg == nil || d < 0 || int(d) >= numDomains {
		return nil, false
	}
	r := reg.province[d]
	return r, r != nil
}

// ProvinceByName returns the province-level record of the named domain.
func (reg *Registry) ProvinceByName(domain string) (Record, bool) {
	d, ok := ParseDomain(domain)
	if !ok {
		return nil, false
	}
	return reg.Province(d)
}

// getOrCreate returns the commune for key, creating it under name on
// first encounter.
func (reg *Registry) getOrCreate(key, name string) (s *Subdivision, created bool) {
	if s, ok := reg.byKey[key]; ok {
		return s, false
	}
	s = &Subdivision{name: name, key: key}
	reg.byKey[key] = s
	reg.subdivisions = append(reg.subdivisions, s)
	return s, true
}

type subdivisionJSON struct {
	Name         string `json:"name"`
	Key          string `json:"key"`
	Demographics Record `json:"demographics,omitempty"`
	Education    Record `json:"education,omitempty"`
	Employment   Record `json:"employment,omitempty"`
	Health       Record `json:"health,omitempty"`
	Water        Record `json:"water,omitempty"`
}

// MarshalJSON writes the commune with its present domain records only.
func (s *Subdivision) MarshalJSON() ([]byte, error) {
	return json.Marshal(subdivisionJSON{
		Name:         s.name,
		Key:          s.key,
		Demographics: s.slots[Demographics],
		Education:    s.slots[Education],
		Employment:   s.slots[Employment],
		Health:       s.slots[Health],
		Water:        s.slots[Water],
	})
}

// MarshalJSON writes the registry as a snapshot for presentation code.
func (reg *Registry) MarshalJSON() ([]byte, error) {
	province := make(map[string]Record)
	for _, d := range Domains() {
		if r, ok := reg.Province(d); ok {
			province[d.String()] = r
		}
	}
	return json.Marshal(struct {
		Communes []*Subdivision    `json:"communes"`
		Province map[string]Record `json:"province"`
	}{
		Communes: reg.Subdivisions(),
		Province: province,
	})
}
