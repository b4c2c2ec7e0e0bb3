package stats

import (
	"errors"
	"sort"
)

// Scoring holds the weights and thresholds of the priority scores. They
// are fixed configuration, never derived from the data.
type Scoring struct {
	HealthWeight    float64 `yaml:"health_weight"`
	EducationWeight float64 `yaml:"education_weight"`

	// Scores below HighThreshold are high priority, scores below
	// MediumThreshold medium priority, the rest low priority.
	HighThreshold   float64 `yaml:"high_threshold"`
	MediumThreshold float64 `yaml:"medium_threshold"`

	// Water scores above WaterUrgent are urgent, above WaterMedium medium.
	WaterUrgent float64 `yaml:"water_urgent"`
	WaterMedium float64 `yaml:"water_medium"`
}

// DefaultScoring returns the weights and thresholds used by the
// provincial dashboards.
func DefaultScoring() Scoring {
	return Scoring{
		HealthWeight:    20,
		EducationWeight: 5,
		HighThreshold:   100,
		MediumThreshold: 150,
		WaterUrgent:     40,
		WaterMedium:     25,
	}
}

// Validate checks that weights are non-negative and thresholds ordered.
func (sc Scoring) Validate() error {
	if sc.HealthWeight < 0 || sc.EducationWeight < 0 {
		return errors.New("scoring weights must not be negative")
	}
	if sc.HighThreshold > sc.MediumThreshold {
		return errors.New("high priority threshold must not exceed the medium one")
	}
	if sc.WaterMedium > sc.WaterUrgent {
		return errors.New("medium water threshold must not exceed the urgent one")
	}
	return nil
}

// Tier classifies a composite score.
func (sc Scoring) Tier(score float64) Tier {
	switch {
	case score < sc.HighThreshold:
		return TierHigh
	case score < sc.MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Score computes the composite priority score of one commune: health
// facilities times the health weight, pre-primary and primary schools
// times the education weight, plus the activity rate.
func (sc Scoring) Score(s *Subdivision) Priority {
	p := Priority{
		Commune:    s.Name(),
		Key:        s.Key(),
		Health:     s.Number(Health, FieldHealthFacilities) * sc.HealthWeight,
		Education:  (s.Number(Education, FieldPreschools) + s.Number(Education, FieldPrimaries)) * sc.EducationWeight,
		Employment: s.Number(Employment, FieldActivityRate),
	}
	p.Score = p.Health + p.Education + p.Employment
	p.Tier = sc.Tier(p.Score)
	return p
}

// Priorities scores every commune, in registry order.
func (sc Scoring) Priorities(reg *Registry) []Priority {
	subs := reg.Subdivisions()
	out := make([]Priority, 0, len(subs))
	for _, s := range subs {
		out = append(out, sc.Score(s))
	}
	return out
}

// Ranking returns the priorities sorted by ascending score, most urgent
// first. Ties keep registry order.
func (sc Scoring) Ranking(reg *Registry) []Priority {
	out := sc.Priorities(reg)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score < out[j].Score
	})
	return out
}

// Urgency classifies a water priority score.
func (sc Scoring) Urgency(score float64) WaterUrgency {
	switch {
	case score > sc.WaterUrgent:
		return WaterUrgent
	case score > sc.WaterMedium:
		return WaterMedium
	default:
		return WaterGood
	}
}

// WaterScore weighs the shortfall from 100% of sanitation coverage,
// connection rate, distribution yield and production yield.
func (sc Scoring) WaterScore(s *Subdivision) WaterPriority {
	w := s.Water()
	p := WaterPriority{
		Commune:           s.Name(),
		Coverage:          w.Number(FieldSanitationCoverage),
		ConnectionRate:    ConnectionRate(s),
		DistributionYield: w.Number(FieldDistributionYield),
		ProductionYield:   w.Number(FieldProductionYield),
	}
	p.Score = (100-p.Coverage)*0.4 +
		(100-p.ConnectionRate)*0.3 +
		(100-p.DistributionYield)*0.2 +
		(100-p.ProductionYield)*0.1
	p.Urgency = sc.Urgency(p.Score)
	return p
}

// WaterPriorities scores every commune and sorts by descending score,
// most urgent first.
func (sc Scoring) WaterPriorities(reg *Registry) []WaterPriority {
	subs := reg.Subdivisions()
	out := make([]WaterPriority, 0, len(subs))
	for _, s := range subs {
		out = append(out, sc.WaterScore(s))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
