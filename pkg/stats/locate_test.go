package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *Document {
	t.Helper()
	doc, err := ReadDocument("testdata/tarfaya.json")
	require.NoError(t, err)
	return doc
}

func TestFindTable(t *testing.T) {
	doc := &Document{Tables: []*Table{
		{Name: "Bureau des EAUX usées"},
		{Name: "EAU"},
		{Name: "Santé publique"},
	}}

	tbl, found := doc.FindTable("eau")
	require.True(t, found)
	assert.Equal(t, "EAU", tbl.Name, "exact match wins over substring")

	tbl, found = doc.FindTable("SANTE")
	require.True(t, found)
	assert.Equal(t, "Santé publique", tbl.Name)

	_, found = doc.FindTable("EMPLOI")
	assert.False(t, found)

	var empty *Document
	_, found = empty.FindTable("EAU")
	assert.False(t, found)
}

func TestLocateListSection(t *testing.T) {
	loc := Locate(loadFixture(t), Health.Spec())

	require.NotNil(t, loc.Table)
	assert.Equal(t, 8.0, loc.Province.Number("ESSP"))
	require.Len(t, loc.Entries, 2)
	assert.Equal(t, "TARFAYA", loc.Entries[0].NameHint)
	assert.Equal(t, "Commune d'El Hagounia", loc.Entries[1].NameHint)
	assert.Equal(t, 14.0, loc.Entries[0].Record.Number(FieldDoctors))
}

func TestLocatePerCommuneSections(t *testing.T) {
	loc := Locate(loadFixture(t), Education.Spec())

	require.NotNil(t, loc.Province)
	assert.Equal(t, 40.0, loc.Province.Number(FieldPreschools))
	require.Len(t, loc.Entries, 2)
	assert.Equal(t, "Commune de Tarfaya", loc.Entries[0].NameHint)
	assert.Equal(t, "Commune d'El Hagounia", loc.Entries[1].NameHint)
}

func TestLocateMissingTable(t *testing.T) {
	doc := &Document{Tables: []*Table{{Name: "EDUCATION"}}}

	loc := Locate(doc, Water.Spec())
	assert.Nil(t, loc.Table)
	assert.Nil(t, loc.Province)
	assert.Empty(t, loc.Entries)
}

func TestLocateMissingSections(t *testing.T) {
	doc := &Document{Tables: []*Table{{
		Name:     "EAU",
		Sections: []*Section{{Type: "Notes", Records: []Record{{"a": 1}}}},
	}}}

	loc := Locate(doc, Water.Spec())
	assert.NotNil(t, loc.Table)
	assert.Nil(t, loc.Province)
	assert.Empty(t, loc.Entries)
}

func TestLocateSingleSectionPrefersNameField(t *testing.T) {
	doc := &Document{Tables: []*Table{{
		Name: "EMPLOI",
		Sections: []*Section{
			{Type: "Données par commune", Single: true, Records: []Record{{FieldCommune: "Commune de Tah", FieldActivityRate: 40}}},
			{Type: "Commune de Daoura", Single: true, Records: []Record{{FieldActivityRate: 20}}},
		},
	}}}

	loc := Locate(doc, Employment.Spec())
	require.Len(t, loc.Entries, 2)
	assert.Equal(t, "Commune de Tah", loc.Entries[0].NameHint)
	assert.Equal(t, "Commune de Daoura", loc.Entries[1].NameHint)
}

func TestLocateListRecordWithoutName(t *testing.T) {
	doc := &Document{Tables: []*Table{{
		Name: "SANTE",
		Sections: []*Section{{
			Type:    "Données par commune",
			Records: []Record{{FieldHealthFacilities: 1}, {FieldCommune: "", FieldHealthFacilities: 2}},
		}},
	}}}

	loc := Locate(doc, Health.Spec())
	require.Len(t, loc.Entries, 2)
	assert.Empty(t, loc.Entries[0].NameHint)
	assert.Empty(t, loc.Entries[1].NameHint)
}

func TestLocateSingleSectionWithGenericLabel(t *testing.T) {
	doc := &Document{Tables: []*Table{{
		Name: "EMPLOI",
		Sections: []*Section{
			{Type: "Données par commune", Single: true, Records: []Record{{FieldActivityRate: 40}}},
			{Type: "Données de la commune de Daoura", Single: true, Records: []Record{{FieldActivityRate: 20}}},
		},
	}}}

	loc := Locate(doc, Employment.Spec())
	require.Len(t, loc.Entries, 2)
	assert.Empty(t, loc.Entries[0].NameHint)
	assert.Equal(t, "Données de la commune de Daoura", loc.Entries[1].NameHint)

	reg := Assemble(doc)
	assert.Equal(t, 1, reg.Len())
	_, found := reg.Lookup("donneesparcommune")
	assert.False(t, found)
	assert.Equal(t, 20.0, Mean(reg, Employment, FieldActivityRate))
}

func TestNamesCommune(t *testing.T) {
	assert.True(t, namesCommune("Commune de Tarfaya"))
	assert.True(t, namesCommune("Commune d'El Hagounia"))
	assert.True(t, namesCommune("Données de la commune de Daoura"))
	assert.False(t, namesCommune("Données par commune"))
	assert.False(t, namesCommune("Données communales"))
	assert.False(t, namesCommune("Commune de "))
}
