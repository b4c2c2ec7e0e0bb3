package stats

import "strings"

// Domain is one statistical subject area.
type Domain int

const (
	Demographics Domain = iota
	Education
	Employment
	Health
	Water

	numDomains = iota
)

var domainNames = [numDomains]string{
	Demographics: "demographics",
	Education:    "education",
	Employment:   "employment",
	Health:       "health",
	Water:        "water",
}

func (d Domain) String() string {
	if d < 0 || int(d) >= numDomains {
		return "unknown"
	}
	return domainNames[d]
}

// Domains returns all domains in their canonical order.
func Domains() []Domain {
	return []Domain{Demographics, Education, Employment, Health, Water}
}

// ParseDomain looks a domain up by its name.
func ParseDomain(name string) (Domain, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range domainNames {
		if n == name {
			return Domain(i), true
		}
	}
	return 0, false
}

// Field labels, as spelled in the curated sources.
const (
	FieldCommune = "Collectivités territoriales"

	FieldPopulation = "Population"
	FieldMale       = "Masculin"
	FieldFemale     = "Féminin"
	FieldArea       = "Superficie (Km²)"
	FieldHouseholds = "Nombre ménage"

	FieldPreschools      = "Nombre d'établissements préscolaires"
	FieldPrimaries       = "Nombre d'établissements Primaire"
	FieldColleges        = "Nombre d'établissements collège"
	FieldHighSchools     = "Nombre d'établissements Lycée"
	FieldPreschoolGirls  = "Nombre des élèves Préscolaire -Fille-"
	FieldPreschoolBoys   = "Nombre des élèves Préscolaire -Garçon-"
	FieldPrimaryGirls    = "Nombre des élèves Primaire -Fille-"
	FieldPrimaryBoys     = "Nombre des élèves Primaire -Garçon-"
	FieldCollegeGirls    = "Nombre des élèves collège -Fille-"
	FieldCollegeBoys     = "Nombre des élèves collège -Garçon-"
	FieldHighSchoolGirls = "Nombre des élèves Lycée -Fille-"
	FieldHighSchoolBoys  = "Nombre des élèves Lycée -Garçon-"

	FieldActivityRate     = "Taux d'activité des 15 ans et plus (%)"
	FieldUnemploymentRate = "Taux de chômage (%)"
	FieldEmployed         = "Population active occupée de 15 ans et plus"

	FieldHealthFacilities = "Nombre d'établissements sanitaires"
	FieldDoctors          = "Nombre de médcin"
	FieldNurses           = "Nombre d'infirmier"
	FieldMidwives         = "Nombre de sage femme"
	FieldAmbulances       = "Nombre d'ambulances"
	FieldDeliveryBeds     = "Nombre lit accouchement"

	FieldWaterConnections     = "Nombre de branchement EP"
	FieldNetworkConnections   = "Nombre de raccordement aux réseaux publics"
	FieldSanitationCoverage   = "Taux de couverture en assainissement"
	FieldProductionYield      = "Taux de rendement infrastructure production EP"
	FieldDistributionYield    = "Taux de rendement infrastructure distribution EP"
	FieldProductionCapacity   = "Capacité de production"
	FieldProductionFacilities = "Infrastructure Production EP"
)

// DomainSpec tells the locator where a domain lives in a Document.
type DomainSpec struct {
	Domain Domain

	// Table matches the table name, exactly or as a substring.
	Table string

	// Province and Commune match section type labels.
	Province string
	Commune  string

	// NameField holds the commune name inside per-commune records.
	NameField string
}

// DefaultDomains is the configuration table for the curated provincial
// sources.
var DefaultDomains = []DomainSpec{
	{Domain: Demographics, Table: "RENSEIGNEMENTS DEMOGRAPHIQUES", Province: "province", Commune: "commune", NameField: FieldCommune},
	{Domain: Education, Table: "EDUCATION", Province: "province", Commune: "commune", NameField: FieldCommune},
	{Domain: Employment, Table: "EMPLOI", Province: "province", Commune: "commune", NameField: FieldCommune},
	{Domain: Health, Table: "SANTE", Province: "province", Commune: "commune", NameField: FieldCommune},
	{Domain: Water, Table: "EAU", Province: "province", Commune: "commune", NameField: FieldCommune},
}

// Spec returns the default configuration of d.
func (d Domain) Spec() DomainSpec {
	for _, s := range DefaultDomains {
		if s.Domain == d {
			return s
		}
	}
	return DomainSpec{Domain: d}
}
