package enrich

// Domain names used by the default profiles and metrics.
const (
	Lifespan     = "Lifespan"
	Healthspan   = "Healthspan"
	Conservation = "Conservation"
	HumanTrials  = "Human Trials"
	Safety       = "Safety & Tolerability"
	CostAccess   = "Cost/Access"
)

// DefaultCategory is assigned to items no category lists.
const DefaultCategory = "Other"

// DefaultProfiles returns the regulator, investor and patient weightings.
func DefaultProfiles() []Profile {
	return []Profile{
		{Name: "Regulator", Weights: map[string]float64{
			Lifespan: 0.10, Healthspan: 0.10, Conservation: 0.00,
			HumanTrials: 0.30, Safety: 0.40, CostAccess: 0.10,
		}},
		{Name: "Investor", Weights: map[string]float64{
			Lifespan: 0.40, Healthspan: 0.20, Conservation: 0.10,
			HumanTrials: 0.10, Safety: 0.10, CostAccess: 0.10,
		}},
		{Name: "Patient", Weights: map[string]float64{
			Lifespan: 0.15, Healthspan: 0.15, Conservation: 0.00,
			HumanTrials: 0.25, Safety: 0.30, CostAccess: 0.15,
		}},
	}
}

// DefaultDerivedMetrics returns Translational_Readiness and Aging_Impact.
func DefaultDerivedMetrics() []DerivedMetric {
	return []DerivedMetric{
		{
			Name:    "Translational_Readiness",
			Terms:   []Term{{Domain: HumanTrials, Coef: 1}, {Domain: Safety, Coef: 1}},
			Divisor: 2,
			Round:   true,
		},
		{
			Name: "Aging_Impact",
			Terms: []Term{
				{Domain: Lifespan, Coef: 3},
				{Domain: Healthspan, Coef: 1},
				{Domain: Conservation, Coef: 1},
			},
			Divisor: 5,
		},
	}
}

// DefaultCategories returns the intervention classification.
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"Pharmacological": {
			"Rapamycin", "Metformin", "Acarbose", "GLP-1 agonists", "SGLT2 inhibitors",
			"Alpha-ketoglutarate", "Senolytics (D+Q)", "Fisetin", "NAD+ Restoration (NMN/NR)",
			"Mitochondria (Urolithin A)", "Elamipretide", "Spermidine", "Chloroquine",
			"Glutathione Precursors", "L-deprenyl", "17α-estradiol",
		},
		"Genetic & Epigenetic": {
			"Epigenetic reprogramming", "Gene therapy", "Proteostasis & Nucleolus",
			"Telomere extension",
		},
		"Cellular & Regenerative": {
			"Stem cell therapy", "Exosome therapy", "Chemical reprogramming",
			"Synthetic organs", "Immunotherapy senolytics", "Xenotransplantation",
		},
		"Systemic & Other": {
			"Gut Microbiome Modulation", "Anti-inflammatory", "Plasma dilution/apheresis",
			"Young blood plasma",
		},
	}
}
