package stats

// Tier is the priority class of a commune. Lower tiers need attention
// first.
type Tier int

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "Haute"
	case TierMedium:
		return "Moyenne"
	case TierLow:
		return "Basse"
	}
	return "unknown"
}

// Priority is the composite priority score of one commune.
type Priority struct {
	Commune    string
	Key        string
	Health     float64
	Education  float64
	Employment float64
	Score      float64
	Tier       Tier
}

// Category is one band of a stacked total.
type Category struct {
	Name   string
	Domain Domain
	Field  string
}

// Band is the span a category occupies in a stacked bar.
type Band struct {
	Category string
	Value    float64
	Lower    float64
	Upper    float64
}

// Stack is the stacked totals of one commune.
type Stack struct {
	Commune string
	Bands   []Band
	Total   float64
}

// Level is one school level with its girls and boys enrollment fields.
type Level struct {
	Name  string
	Girls string
	Boys  string
}

// Enrollment is the province-wide enrollment of one school level.
type Enrollment struct {
	Level string
	Girls float64
	Boys  float64
	Total float64
	Ratio float64
}

// GenderSplit is the male and female population of one commune.
type GenderSplit struct {
	Commune string
	Male    float64
	Female  float64
	Ratio   float64
}

// WaterUrgency classifies a water priority score.
type WaterUrgency int

const (
	WaterGood WaterUrgency = iota
	WaterMedium
	WaterUrgent
)

func (u WaterUrgency) String() string {
	switch u {
	case WaterGood:
		return "Bon"
	case WaterMedium:
		return "Moyen"
	case WaterUrgent:
		return "Urgent"
	}
	return "unknown"
}

// WaterPriority is the water and sanitation priority of one commune.
type WaterPriority struct {
	Commune           string
	Coverage          float64
	ConnectionRate    float64
	DistributionYield float64
	ProductionYield   float64
	Score             float64
	Urgency           WaterUrgency
}

// ActivePopulation splits the employed population from an estimate of
// the unemployed one.
type ActivePopulation struct {
	Employed         float64
	Unemployed       float64
	MeanUnemployment float64
}
