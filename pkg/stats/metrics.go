package stats

import "math"

// PerInhabitants is the base of per-capita rates.
const PerInhabitants = 10_000

// PerCapita scales count per base inhabitants. A zero population gives 0.
func PerCapita(count, population, base float64) float64 {
	if population == 0 {
		return 0
	}
	return count / population * base
}

// GenderRatio is female / male, 0 when there are no males.
func GenderRatio(female, male float64) float64 {
	if male == 0 {
		return 0
	}
	return female / male
}

// Percent is part / whole * 100, 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// Sum adds a coerced field over all communes.
func Sum(reg *Registry, d Domain, label string) float64 {
	var total float64
	for _, s := range reg.Subdivisions() {
		total += s.Number(d, label)
	}
	return total
}

// Mean averages a coerced field over all communes, absent records
// counting as 0. An empty registry gives 0.
func Mean(reg *Registry, d Domain, label string) float64 {
	n := reg.Len()
	if n == 0 {
		return 0
	}
	return Sum(reg, d, label) / float64(n)
}

// Values returns a coerced field for every commune, in registry order.
func Values(reg *Registry, d Domain, label string) []float64 {
	subs := reg.Subdivisions()
	out := make([]float64, len(subs))
	for i, s := range subs {
		out[i] = s.Number(d, label)
	}
	return out
}

// SchoolCount is the number of schools of all four levels.
func SchoolCount(s *Subdivision) float64 {
	e := s.Education()
	return e.Number(FieldPreschools) +
		e.Number(FieldPrimaries) +
		e.Number(FieldColleges) +
		e.Number(FieldHighSchools)
}

// SchoolsPerCapita is the number of schools per 10,000 inhabitants.
func SchoolsPerCapita(s *Subdivision) float64 {
	return PerCapita(SchoolCount(s), s.Number(Demographics, FieldPopulation), PerInhabitants)
}

// HealthFacilitiesPerCapita is the number of health facilities per
// 10,000 inhabitants.
func HealthFacilitiesPerCapita(s *Subdivision) float64 {
	return PerCapita(s.Number(Health, FieldHealthFacilities), s.Number(Demographics, FieldPopulation), PerInhabitants)
}

// Density is inhabitants per km², 0 when the area is unknown.
func Density(s *Subdivision) float64 {
	area := s.Number(Demographics, FieldArea)
	if area == 0 {
		return 0
	}
	return s.Number(Demographics, FieldPopulation) / area
}

// HouseholdSize is the mean number of inhabitants per household, 0 when
// the household count is unknown.
func HouseholdSize(s *Subdivision) float64 {
	households := s.Number(Demographics, FieldHouseholds)
	if households == 0 {
		return 0
	}
	return s.Number(Demographics, FieldPopulation) / households
}

// ProductionCapacity is the drinking water production capacity in l/s.
func ProductionCapacity(s *Subdivision) float64 {
	return s.Number(Water, FieldProductionCapacity)
}

// ConnectionRate is the share of water connections linked to the public
// network, in percent.
func ConnectionRate(s *Subdivision) float64 {
	w := s.Water()
	return Percent(w.Number(FieldNetworkConnections), w.Number(FieldWaterConnections))
}

// GenderSplits returns the male and female population of every commune.
func GenderSplits(reg *Registry) []GenderSplit {
	subs := reg.Subdivisions()
	out := make([]GenderSplit, 0, len(subs))
	for _, s := range subs {
		g := GenderSplit{
			Commune: s.Name(),
			Male:    s.Number(Demographics, FieldMale),
			Female:  s.Number(Demographics, FieldFemale),
		}
		g.Ratio = GenderRatio(g.Female, g.Male)
		out = append(out, g)
	}
	return out
}

// SchoolLevels are the school levels, youngest first.
var SchoolLevels = []Level{
	{Name: "Préscolaire", Girls: FieldPreschoolGirls, Boys: FieldPreschoolBoys},
	{Name: "Primaire", Girls: FieldPrimaryGirls, Boys: FieldPrimaryBoys},
	{Name: "Collège", Girls: FieldCollegeGirls, Boys: FieldCollegeBoys},
	{Name: "Lycée", Girls: FieldHighSchoolGirls, Boys: FieldHighSchoolBoys},
}

// Enrollments sums girls and boys enrolled per level over all communes.
func Enrollments(reg *Registry, levels []Level) []Enrollment {
	out := make([]Enrollment, 0, len(levels))
	for _, l := range levels {
		e := Enrollment{
			Level: l.Name,
			Girls: Sum(reg, Education, l.Girls),
			Boys:  Sum(reg, Education, l.Boys),
		}
		e.Total = e.Girls + e.Boys
		e.Ratio = GenderRatio(e.Girls, e.Boys)
		out = append(out, e)
	}
	return out
}

// Stacked categories used by the dashboards.
var (
	HealthStaff = []Category{
		{Name: "Médecins", Domain: Health, Field: FieldDoctors},
		{Name: "Infirmiers", Domain: Health, Field: FieldNurses},
		{Name: "Sages-femmes", Domain: Health, Field: FieldMidwives},
	}

	SchoolEstablishments = []Category{
		{Name: "Préscolaire", Domain: Education, Field: FieldPreschools},
		{Name: "Primaire", Domain: Education, Field: FieldPrimaries},
		{Name: "Collège", Domain: Education, Field: FieldColleges},
		{Name: "Lycée", Domain: Education, Field: FieldHighSchools},
	}

	HealthInfrastructure = []Category{
		{Name: "ESSP", Domain: Health, Field: FieldHealthFacilities},
		{Name: "Ambulances", Domain: Health, Field: FieldAmbulances},
	}
)

// StackOf computes the cumulative bands of one commune: each category's
// upper bound is the sum of its own value and all preceding ones.
func StackOf(s *Subdivision, categories []Category) Stack {
	st := Stack{Commune: s.Name(), Bands: make([]Band, 0, len(categories))}
	for _, c := range categories {
		v := s.Number(c.Domain, c.Field)
		st.Bands = append(st.Bands, Band{
			Category: c.Name,
			Value:    v,
			Lower:    st.Total,
			Upper:    st.Total + v,
		})
		st.Total += v
	}
	return st
}

// Stacked computes StackOf for every commune, in registry order.
func Stacked(reg *Registry, categories []Category) []Stack {
	subs := reg.Subdivisions()
	out := make([]Stack, 0, len(subs))
	for _, s := range subs {
		out = append(out, StackOf(s, categories))
	}
	return out
}

// ActivePopulationOf sums the employed population and estimates the
// unemployed one from the mean unemployment rate.
func ActivePopulationOf(reg *Registry) ActivePopulation {
	a := ActivePopulation{
		Employed:         Sum(reg, Employment, FieldEmployed),
		MeanUnemployment: Mean(reg, Employment, FieldUnemploymentRate),
	}
	a.Unemployed = math.Round(a.Employed * (a.MeanUnemployment / 100))
	return a
}
