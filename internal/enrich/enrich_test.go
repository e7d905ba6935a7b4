package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Ranker/internal/scoring"
	"github.com/MikeSquared-Agency/Ranker/internal/sheet"
)

func sixDomainModel(t *testing.T) *scoring.Model {
	t.Helper()
	tbl := &sheet.Table{
		Headers: []string{
			"Intervention", "Lifespan (30%)", "Healthspan (10%)", "Conservation (10%)",
			"Human Trials (20%)", "Safety & Tolerability (20%)", "Cost/Access (10%)",
		},
		Rows: [][]string{
			{"Spermidine", "4", "4", "5", "2", "4", "4"},
			{"Rapamycin", "4", "4", "5", "3", "3", "3"},
			{"Young blood plasma", "2", "3", "2", "2", "3", "1"},
			{"Mystery compound", "1", "1", "1", "1", "2", "1"},
		},
	}
	m, err := scoring.Parse(tbl, "Intervention")
	require.NoError(t, err)
	return m
}

func TestEnrichDefaults(t *testing.T) {
	m := sixDomainModel(t)
	res := NewDefault().Enrich(m)

	require.Len(t, res.Perspectives, 4)
	assert.Equal(t, BaselinePerspective, res.Perspectives[0].Name)
	assert.Equal(t, m.Baseline(), res.Perspectives[0].Scores)
	assert.Empty(t, res.Skipped)

	regulator := res.Perspectives[1]
	assert.Equal(t, "Regulator", regulator.Name)
	// Spermidine: .1*4 + .1*4 + 0*5 + .3*2 + .4*4 + .1*4 = 3.4
	assert.InDelta(t, 3.4, regulator.Scores[0], 1e-9)
	// Rapamycin: .4 + .4 + .9 + 1.2 + .3 = 3.2
	assert.InDelta(t, 3.2, regulator.Scores[1], 1e-9)
	assert.Equal(t, []int{1, 2, 3, 4}, regulator.Ranks)

	require.Len(t, res.Derived, 2)
	readiness := res.Derived[0]
	assert.Equal(t, "Translational_Readiness", readiness.Name)
	// (2+4)/2=3, (3+3)/2=3, (2+3)/2=2.5 rounds to even 2, (1+2)/2=1.5 rounds to 2
	assert.Equal(t, []float64{3, 3, 2, 2}, readiness.Values)

	aging := res.Derived[1]
	assert.InDelta(t, (3*4.0+4+5)/5, aging.Values[0], 1e-12)
	assert.InDelta(t, (3*2.0+3+2)/5, aging.Values[2], 1e-12)

	assert.Equal(t, []string{"Pharmacological", "Pharmacological", "Systemic & Other", DefaultCategory}, res.Categories)
}

func TestEnrichSkipsUnknownDomains(t *testing.T) {
	tbl := &sheet.Table{
		Headers: []string{"Intervention", "Lifespan (50%)", "Safety & Tolerability (50%)"},
		Rows:    [][]string{{"a", "3", "4"}, {"b", "4", "4"}},
	}
	m, err := scoring.Parse(tbl, "")
	require.NoError(t, err)

	e := New(
		[]Profile{
			{Name: "Cautious", Weights: map[string]float64{Safety: 1}},
			{Name: "Broken", Weights: map[string]float64{"Cost/Access": 1}},
		},
		[]DerivedMetric{
			{Name: "Half", Terms: []Term{{Domain: Lifespan, Coef: 1}}, Divisor: 2},
			{Name: "Missing", Terms: []Term{{Domain: HumanTrials, Coef: 1}}, Divisor: 1},
			{Name: "NoDivisor", Terms: []Term{{Domain: Lifespan, Coef: 1}}},
		},
		nil,
	)
	res := e.Enrich(m)

	require.Len(t, res.Perspectives, 2)
	assert.Equal(t, "Cautious", res.Perspectives[1].Name)
	assert.Equal(t, []int{1, 1}, res.Perspectives[1].Ranks, "equal safety scores tie")
	assert.Equal(t, []int{2, 1}, res.Perspectives[0].Ranks)

	require.Len(t, res.Derived, 1)
	assert.Equal(t, []float64{1.5, 2}, res.Derived[0].Values)
	assert.Len(t, res.Skipped, 3)
	assert.Equal(t, []string{DefaultCategory, DefaultCategory}, res.Categories)
}

func TestCategory(t *testing.T) {
	e := New(nil, nil, map[string][]string{
		"B": {"shared", "only-b"},
		"A": {"shared"},
	})
	assert.Equal(t, "A", e.Category("shared"))
	assert.Equal(t, "B", e.Category("only-b"))
	assert.Equal(t, DefaultCategory, e.Category("unknown"))

	d := NewDefault()
	assert.Equal(t, "Genetic & Epigenetic", d.Category("Telomere extension"))
	assert.Equal(t, "Cellular & Regenerative", d.Category("Xenotransplantation"))
}
