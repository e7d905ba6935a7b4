package enrich

import (
	"fmt"
	"math"
	"sort"

	"github.com/MikeSquared-Agency/Ranker/internal/scoring"
)

// BaselinePerspective names the perspective computed from the parsed weights.
const BaselinePerspective = "Baseline"

// Profile is an alternative stakeholder weighting, keyed by domain name
// (the header without its "(N%)" token). Domains it omits weigh zero.
type Profile struct {
	Name    string             `yaml:"name" json:"name"`
	Weights map[string]float64 `yaml:"weights" json:"weights"`
}

// Term is one coefficient of a derived metric.
type Term struct {
	Domain string  `yaml:"domain" json:"domain"`
	Coef   float64 `yaml:"coef" json:"coef"`
}

// DerivedMetric is sum(Coef * score) / Divisor, optionally rounded half to even.
type DerivedMetric struct {
	Name    string  `yaml:"name" json:"name"`
	Terms   []Term  `yaml:"terms" json:"terms"`
	Divisor float64 `yaml:"divisor" json:"divisor"`
	Round   bool    `yaml:"round" json:"round"`
}

// Perspective is one weighting's score and competition rank per item.
type Perspective struct {
	Name   string    `json:"name"`
	Scores []float64 `json:"scores"`
	Ranks  []int     `json:"ranks"`
}

// Derived holds one derived metric's value per item.
type Derived struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Result is everything the enricher adds to a parsed model, co-indexed
// with the model's items.
type Result struct {
	Perspectives []Perspective `json:"perspectives"`
	Derived      []Derived     `json:"derived"`
	Categories   []string      `json:"categories"`
	Skipped      []string      `json:"skipped,omitempty"`
}

// Enricher computes stakeholder perspectives, derived metrics and
// categories for a parsed model.
type Enricher struct {
	profiles   []Profile
	metrics    []DerivedMetric
	categoryOf map[string]string
}

// New builds an Enricher. categories maps a category to its member items;
// an item listed under several categories keeps the alphabetically first.
func New(profiles []Profile, metrics []DerivedMetric, categories map[string][]string) *Enricher {
	names := make([]string, 0, len(categories))
	for c := range categories {
		names = append(names, c)
	}
	sort.Strings(names)

	lookup := make(map[string]string)
	for _, c := range names {
		for _, item := range categories[c] {
			if _, ok := lookup[item]; !ok {
				lookup[item] = c
			}
		}
	}
	return &Enricher{profiles: profiles, metrics: metrics, categoryOf: lookup}
}

// NewDefault builds an Enricher from the built-in profiles, metrics and
// categories.
func NewDefault() *Enricher {
	return New(DefaultProfiles(), DefaultDerivedMetrics(), DefaultCategories())
}

// Category returns the category of item, or DefaultCategory.
func (e *Enricher) Category(item string) string {
	if c, ok := e.categoryOf[item]; ok {
		return c
	}
	return DefaultCategory
}

// Enrich computes the additions for m. Profiles and metrics that reference
// a domain m does not have are left out and named in Result.Skipped.
func (e *Enricher) Enrich(m *scoring.Model) *Result {
	index := make(map[string]int, m.NumDomains())
	for j, h := range m.Domains {
		index[scoring.DomainName(h)] = j
	}

	baseline := m.Baseline()
	res := &Result{
		Perspectives: []Perspective{{
			Name:   BaselinePerspective,
			Scores: baseline,
			Ranks:  scoring.CompetitionRanks(baseline),
		}},
	}

	for _, p := range e.profiles {
		w, err := profileVector(p, index, m.NumDomains())
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("profile %s: %v", p.Name, err))
			continue
		}
		scores := scoring.WeightedScores(m.Scores, w)
		res.Perspectives = append(res.Perspectives, Perspective{
			Name:   p.Name,
			Scores: scores,
			Ranks:  scoring.CompetitionRanks(scores),
		})
	}

	for _, dm := range e.metrics {
		values, err := derive(dm, m, index)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("metric %s: %v", dm.Name, err))
			continue
		}
		res.Derived = append(res.Derived, Derived{Name: dm.Name, Values: values})
	}

	res.Categories = make([]string, m.NumItems())
	for i, item := range m.Items {
		res.Categories[i] = e.Category(item)
	}
	return res
}

func profileVector(p Profile, index map[string]int, n int) (scoring.WeightVector, error) {
	domains := make([]string, 0, len(p.Weights))
	for d := range p.Weights {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	w := make(scoring.WeightVector, n)
	for _, d := range domains {
		j, ok := index[d]
		if !ok {
			return nil, fmt.Errorf("unknown domain %q", d)
		}
		w[j] = p.Weights[d]
	}
	return w, nil
}

func derive(dm DerivedMetric, m *scoring.Model, index map[string]int) ([]float64, error) {
	if dm.Divisor == 0 {
		return nil, fmt.Errorf("zero divisor")
	}
	cols := make([]int, len(dm.Terms))
	for k, term := range dm.Terms {
		j, ok := index[term.Domain]
		if !ok {
			return nil, fmt.Errorf("unknown domain %q", term.Domain)
		}
		cols[k] = j
	}

	out := make([]float64, m.NumItems())
	for i := range out {
		var sum float64
		for k, term := range dm.Terms {
			sum += term.Coef * m.Scores.At(i, cols[k])
		}
		v := sum / dm.Divisor
		if dm.Round {
			v = math.RoundToEven(v)
		}
		out[i] = v
	}
	return out, nil
}
