package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/MikeSquared-Agency/Ranker/internal/sheet"
)

// DefaultIDColumn is the identifier column used when none is configured.
const DefaultIDColumn = "Intervention"

// weightToken matches the "(<percent>%)" suffix of a domain column header.
var weightToken = regexp.MustCompile(`\((\d+(?:\.\d+)?)\s*%\)`)

// Model is the parsed, validated input shared by both simulators. Domains,
// Weights and the columns of Scores are co-indexed; Items and the rows of
// Scores are co-indexed. A Model is never mutated after Parse returns.
type Model struct {
	Domains []string     `json:"domains"`
	Weights WeightVector `json:"weights"`
	Items   []string     `json:"items"`
	Scores  *mat.Dense   `json:"-"`
}

// NumItems returns the number of scored items.
func (m *Model) NumItems() int { return len(m.Items) }

// NumDomains returns the number of domain columns.
func (m *Model) NumDomains() int { return len(m.Domains) }

// ItemScores returns a copy of one item's domain scores.
func (m *Model) ItemScores(i int) []float64 {
	return mat.Row(nil, i, m.Scores)
}

// DomainWeight extracts the raw percentage weight from a column header.
// ok is false when the header carries no weight token.
func DomainWeight(header string) (pct float64, ok bool) {
	match := weightToken.FindStringSubmatch(header)
	if match == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DomainName strips the weight token from a header: "Safety (20%)" -> "Safety".
func DomainName(header string) string {
	loc := weightToken.FindStringIndex(header)
	if loc == nil {
		return strings.TrimSpace(header)
	}
	return strings.TrimSpace(header[:loc[0]] + header[loc[1]:])
}

// Parse extracts the domain score matrix and normalized weight vector from
// t. Columns whose header carries no "(N%)" token are ignored. Item
// identifiers must be unique. Parse never returns a partial model.
func Parse(t *sheet.Table, idColumn string) (*Model, error) {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}
	idCol := t.ColumnIndex(idColumn)
	if idCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingIdentifierColumn, idColumn)
	}

	var (
		cols    []int
		domains []string
		raw     WeightVector
	)
	for i, h := range t.Headers {
		if i == idCol {
			continue
		}
		pct, ok := DomainWeight(h)
		if !ok {
			continue
		}
		cols = append(cols, i)
		domains = append(domains, h)
		raw = append(raw, pct/100)
	}
	if len(cols) == 0 {
		return nil, ErrNoDomainColumnsFound
	}

	n := len(t.Rows)
	values := make([]float64, n*len(cols))
	var bad []string
	for j, c := range cols {
		ok := true
		for i := 0; i < n; i++ {
			v, err := strconv.ParseFloat(t.Cell(i, c), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				ok = false
				continue
			}
			values[i*len(cols)+j] = v
		}
		if !ok {
			bad = append(bad, domains[j])
		}
	}
	if len(bad) > 0 {
		return nil, &NonNumericDomainValuesError{Columns: bad}
	}

	weights, err := raw.Normalize()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNoItems
	}
	items := t.Column(idCol)
	seen := make(map[string]int, n)
	for i, item := range items {
		if first, ok := seen[item]; ok {
			return nil, fmt.Errorf("%w: %q in rows %d and %d", ErrDuplicateItem, item, first+1, i+1)
		}
		seen[item] = i
	}

	return &Model{
		Domains: domains,
		Weights: weights,
		Items:   items,
		Scores:  mat.NewDense(n, len(cols), values),
	}, nil
}
