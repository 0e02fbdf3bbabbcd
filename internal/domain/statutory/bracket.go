package statutory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scheme identifies a government contribution scheme.
type Scheme string

const (
	SchemeSSS            Scheme = "sss"
	SchemePhilHealth     Scheme = "philhealth"
	SchemePagIBIG        Scheme = "pagibig"
	SchemeWithholdingTax Scheme = "withholding_tax"
)

// Schemes lists every supported scheme in deduction order.
var Schemes = []Scheme{SchemeSSS, SchemePhilHealth, SchemePagIBIG, SchemeWithholdingTax}

// Frequency controls how a monthly contribution is spread across cutoffs.
type Frequency string

const (
	FrequencyFull Frequency = "full"
	FrequencyHalf Frequency = "half"
)

// Bracket maps an inclusive compensation range [Min, Max] to a contribution
// tuple. A nil Max marks the open-ended top bracket.
type Bracket struct {
	Min           decimal.Decimal
	Max           *decimal.Decimal
	EmployeeShare decimal.Decimal
	EmployerShare decimal.Decimal
	Total         decimal.Decimal
	ReferenceBase decimal.Decimal
}

// Contribution is the result of a bracket lookup.
type Contribution struct {
	EmployeeShare decimal.Decimal `json:"employee_share"`
	EmployerShare decimal.Decimal `json:"employer_share"`
	Total         decimal.Decimal `json:"total"`
	ReferenceBase decimal.Decimal `json:"reference_base"`
}

// Table is an immutable, validated, ascending bracket table for one scheme.
type Table struct {
	scheme   Scheme
	name     string
	brackets []Bracket
}

// centavo is the granularity at which adjacent brackets must meet.
var centavo = decimal.New(1, -2)

// NewTable validates that brackets partition [0, ∞) without gaps or overlaps
// and returns the table. The brackets slice is copied.
func NewTable(scheme Scheme, name string, brackets []Bracket) (*Table, error) {
	if len(brackets) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTable)
	}

	if !brackets[0].Min.IsZero() {
		return nil, fmt.Errorf("%s: %w", name, ErrTableNotAnchored)
	}
	if brackets[len(brackets)-1].Max != nil {
		return nil, fmt.Errorf("%s: %w", name, ErrTableNotOpen)
	}

	for i := 0; i < len(brackets)-1; i++ {
		cur, next := brackets[i], brackets[i+1]
		if cur.Max == nil {
			return nil, fmt.Errorf("%s: bracket %d: only the last bracket may be open-ended: %w", name, i, ErrTableNotSorted)
		}
		if cur.Max.LessThan(cur.Min) {
			return nil, fmt.Errorf("%s: bracket %d: %w", name, i, ErrTableNotSorted)
		}
		step := next.Min.Sub(*cur.Max)
		if step.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%s: brackets %d and %d: %w", name, i, i+1, ErrTableOverlap)
		}
		if step.GreaterThan(centavo) {
			return nil, fmt.Errorf("%s: brackets %d and %d: %w", name, i, i+1, ErrTableGap)
		}
	}

	copied := make([]Bracket, len(brackets))
	copy(copied, brackets)
	return &Table{scheme: scheme, name: name, brackets: copied}, nil
}

// MustTable is NewTable for the built-in tables; a broken built-in table is a
// programmer error.
func MustTable(scheme Scheme, name string, brackets []Bracket) *Table {
	t, err := NewTable(scheme, name, brackets)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Scheme() Scheme { return t.scheme }
func (t *Table) Name() string   { return t.name }
func (t *Table) Len() int       { return len(t.brackets) }

// Ceiling returns the lower bound of the open-ended top bracket.
func (t *Table) Ceiling() decimal.Decimal {
	return t.brackets[len(t.brackets)-1].Min
}

// Lookup resolves the contribution tuple for a monthly compensation value.
// Negative values are clamped to zero. Values matching no bracket (possible
// only if the partition invariant were broken) fall back to the top bracket,
// which also makes every value at or above the table ceiling resolve like the
// ceiling itself.
func (t *Table) Lookup(monthlyCompensation decimal.Decimal) Contribution {
	value := monthlyCompensation
	if value.IsNegative() {
		value = decimal.Zero
	}

	for _, b := range t.brackets {
		if b.Max == nil {
			if value.GreaterThanOrEqual(b.Min) {
				return contributionOf(b)
			}
			continue
		}
		if value.GreaterThanOrEqual(b.Min) && value.LessThanOrEqual(*b.Max) {
			return contributionOf(b)
		}
	}

	// Fallback to the top bracket; load-bearing for values at the ceiling.
	return contributionOf(t.brackets[len(t.brackets)-1])
}

func contributionOf(b Bracket) Contribution {
	return Contribution{
		EmployeeShare: b.EmployeeShare,
		EmployerShare: b.EmployerShare,
		Total:         b.Total,
		ReferenceBase: b.ReferenceBase,
	}
}
