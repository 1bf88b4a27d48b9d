package stats

import "fmt"

// Criteria decides when a (constant, tolerance) cell counts as a
// significant resonance worth flagging in logs and reports.
type Criteria struct {
	// MinResonances is the minimum number of hits.
	MinResonances int
	// MinSignificance is the minimum observed/expected ratio.
	MinSignificance float64
	// MaxPValue is the p-value bound applied to the binomial and Poisson
	// tests.
	MaxPValue float64
	// MinChiSquare is the chi-squared statistic bound (6.635 corresponds to
	// p < 0.01 at df=1).
	MinChiSquare float64
}

// DefaultCriteria returns the thresholds used by the scanner family.
func DefaultCriteria() Criteria {
	return Criteria{
		MinResonances:   10,
		MinSignificance: 2.0,
		MaxPValue:       0.01,
		MinChiSquare:    6.635,
	}
}

// Evaluate reports whether the analysis meets the criteria, with a short
// human-readable reason either way.
func (c Criteria) Evaluate(a *Analysis) (bool, string) {
	if a == nil || a.Summary.Count < c.MinResonances {
		return false, "too few resonances"
	}
	if a.Summary.Significance < c.MinSignificance {
		return false, fmt.Sprintf("low significance: %.2fx", a.Summary.Significance)
	}

	var passed []string
	if a.ChiSquare != nil && a.ChiSquare.Statistic > c.MinChiSquare {
		passed = append(passed, fmt.Sprintf("chi2=%.3f", a.ChiSquare.Statistic))
	}
	if a.Binomial != nil && a.Binomial.PValue < c.MaxPValue {
		passed = append(passed, fmt.Sprintf("binomial p=%.2e", a.Binomial.PValue))
	}
	if a.Poisson != nil && a.Poisson.PValue < c.MaxPValue {
		passed = append(passed, fmt.Sprintf("poisson p=%.2e", a.Poisson.PValue))
	}
	if len(passed) == 0 {
		return false, "no significant test"
	}

	reason := "significant tests: " + passed[0]
	for _, p := range passed[1:] {
		reason += ", " + p
	}
	return true, reason
}
