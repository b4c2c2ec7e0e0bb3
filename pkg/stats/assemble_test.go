package stats

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func names(reg *Registry) []string {
	var out []string
	for _, s := range reg.Subdivisions() {
		out = append(out, s.Name())
	}
	return out
}

func TestAssembleFixture(t *testing.T) {
	reg := Assemble(loadFixture(t))

	require.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"Commune de Tarfaya", "Commune de Daoura", "Commune d'El Hagounia"}, names(reg))

	tarfaya, found := reg.Lookup("tarfaya")
	require.True(t, found)
	for _, d := range Domains() {
		_, ok := tarfaya.Record(d)
		assert.True(t, ok, "tarfaya should have %s", d)
	}

	daoura, found := reg.Find("DAOURA")
	require.True(t, found)
	assert.NotNil(t, daoura.Demographics())
	assert.NotNil(t, daoura.Water())
	assert.Nil(t, daoura.Health())
	assert.Nil(t, daoura.Education())
	assert.Nil(t, daoura.Employment())

	hagounia, found := reg.Find("El Hagounia")
	require.True(t, found)
	assert.Nil(t, hagounia.Water())
	_, ok := hagounia.Health().Get(FieldAmbulances)
	assert.False(t, ok, "missing field is absent, not zero")
	assert.Equal(t, 0.0, hagounia.Number(Health, FieldAmbulances))

	for _, d := range Domains() {
		_, ok := reg.Province(d)
		assert.True(t, ok, "province record for %s", d)
	}
	r, ok := reg.ProvinceByName("health")
	require.True(t, ok)
	assert.Equal(t, 10.0, r.Number(FieldAmbulances))

	_, ok = reg.ProvinceByName("transport")
	assert.False(t, ok)
}

func TestAssembleMergesSpellingsOfOneCommune(t *testing.T) {
	doc := &Document{Tables: []*Table{
		{Name: "RENSEIGNEMENTS DEMOGRAPHIQUES", Sections: []*Section{
			{Type: "Données par commune", Records: []Record{{FieldCommune: "Commune de Tarfaya", FieldPopulation: 8000}}},
		}},
		{Name: "SANTE", Sections: []*Section{
			{Type: "Données par commune", Records: []Record{{FieldCommune: "TARFAYA", FieldHealthFacilities: 3}}},
		}},
	}}

	reg := Assemble(doc)

	require.Equal(t, 1, reg.Len())
	s := reg.Subdivisions()[0]
	assert.Equal(t, "tarfaya", s.Key())
	assert.Equal(t, "Commune de Tarfaya", s.Name())
	assert.NotNil(t, s.Demographics())
	assert.NotNil(t, s.Health())
	assert.Nil(t, s.Water())
}

func TestAssembleNameIsFirstSeen(t *testing.T) {
	doc := loadFixture(t)

	reversed := make([]DomainSpec, len(DefaultDomains))
	for i, s := range DefaultDomains {
		reversed[len(DefaultDomains)-1-i] = s
	}

	reg := Assemble(doc, WithDomains(reversed...))

	// Water comes first now, spelled "Tarfaya " there.
	tarfaya, found := reg.Lookup("tarfaya")
	require.True(t, found)
	assert.Equal(t, "Tarfaya ", tarfaya.Name())
	assert.Equal(t, []string{"Tarfaya ", "Commune de Daoura", "Commune d'El Hagounia"}, names(reg))
}

// slotsByKey flattens a registry into key -> domain -> record, which must
// not depend on the processing order of domains.
func slotsByKey(reg *Registry) map[string]map[string]Record {
	out := make(map[string]map[string]Record)
	for _, s := range reg.Subdivisions() {
		m := make(map[string]Record)
		for _, d := range Domains() {
			if r, ok := s.Record(d); ok {
				m[d.String()] = r
			}
		}
		out[s.Key()] = m
	}
	return out
}

func TestAssembleIsIndependentOfDomainOrder(t *testing.T) {
	doc := loadFixture(t)
	want := slotsByKey(Assemble(doc))

	orders := [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{3, 4, 0, 2, 1},
	}
	for _, order := range orders {
		specs := make([]DomainSpec, 0, len(order))
		for _, i := range order {
			specs = append(specs, DefaultDomains[i])
		}
		got := slotsByKey(Assemble(doc, WithDomains(specs...)))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("order %v changed the registry (-want +got):\n%s", order, diff)
		}
	}
}

func TestAssembleSkipsUnresolvedNames(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	doc := &Document{Tables: []*Table{
		{Name: "SANTE", Sections: []*Section{
			{Type: "Données par commune", Records: []Record{
				{FieldHealthFacilities: 1},
				{FieldCommune: "   ", FieldHealthFacilities: 2},
				{FieldCommune: "Commune de ", FieldHealthFacilities: 3},
				{FieldCommune: "Commune de Tah", FieldHealthFacilities: 4},
			}},
		}},
	}}

	reg := Assemble(doc, WithLogger(zap.New(core)))

	require.Equal(t, 1, reg.Len())
	assert.Equal(t, "tah", reg.Subdivisions()[0].Key())
	assert.Equal(t, 3, logs.FilterMessage("Unresolved commune name").Len())
}

func TestAssembleDuplicateRecordLastWins(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	doc := &Document{Tables: []*Table{
		{Name: "SANTE", Sections: []*Section{
			{Type: "Données par commune", Records: []Record{
				{FieldCommune: "Commune de Tah", FieldHealthFacilities: 1},
				{FieldCommune: "TAH", FieldHealthFacilities: 5},
			}},
		}},
	}}

	reg := Assemble(doc, WithLogger(zap.New(core)))

	require.Equal(t, 1, reg.Len())
	s := reg.Subdivisions()[0]
	assert.Equal(t, "Commune de Tah", s.Name())
	assert.Equal(t, 5.0, s.Number(Health, FieldHealthFacilities))
	assert.Equal(t, 1, logs.FilterMessage("Duplicate commune record, keeping the last one").Len())
}

func TestAssembleEmptyDocument(t *testing.T) {
	reg := Assemble(&Document{})
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Subdivisions())

	reg = Assemble(nil)
	assert.Equal(t, 0, reg.Len())
}

func TestAssembleRunsAreIndependent(t *testing.T) {
	doc := loadFixture(t)
	a := Assemble(doc)
	b := Assemble(&Document{})

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 0, b.Len())
}

func TestRegistrySubdivisionsIsACopy(t *testing.T) {
	reg := Assemble(loadFixture(t))

	subs := reg.Subdivisions()
	subs[0] = nil
	assert.NotNil(t, reg.Subdivisions()[0])
}

func TestRegistryConcurrentReaders(t *testing.T) {
	reg := Assemble(loadFixture(t))
	sc := DefaultScoring()
	want := sc.Priorities(reg)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, sc.Priorities(reg))
			assert.Equal(t, 11200.0, Sum(reg, Demographics, FieldPopulation))
		}()
	}
	wg.Wait()
}

func TestRegistryMarshalJSON(t *testing.T) {
	doc := &Document{Tables: []*Table{
		{Name: "SANTE", Sections: []*Section{
			{Type: "Données par province", Single: true, Records: []Record{{"ESSP": 8.0}}},
			{Type: "Données par commune", Records: []Record{{FieldCommune: "Commune de Tah", FieldHealthFacilities: 1.0}}},
		}},
	}}

	js, err := Assemble(doc).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"communes": [
			{"name": "Commune de Tah", "key": "tah", "health": {"Collectivités territoriales": "Commune de Tah", "Nombre d'établissements sanitaires": 1}}
		],
		"province": {"health": {"ESSP": 8}}
	}`, string(js))
}
