package statutory

import "github.com/shopspring/decimal"

// Built-in Philippine contribution tables. The SSS table carries the official
// 2025 schedule; the PhilHealth, Pag-IBIG, and withholding tables are
// step-quantized renditions of the published rate rules so that all four
// schemes go through the same bracket lookup. Any of them can be swapped for
// an updated table as long as NewTable accepts it.
var (
	SSSTable            = MustTable(SchemeSSS, "SSS 2025", buildSSSBrackets())
	PhilHealthTable     = MustTable(SchemePhilHealth, "PhilHealth 2025", buildPhilHealthBrackets())
	PagIBIGTable        = MustTable(SchemePagIBIG, "Pag-IBIG 2024", buildPagIBIGBrackets())
	WithholdingTaxTable = MustTable(SchemeWithholdingTax, "BIR monthly withholding", buildWithholdingBrackets())
)

// TableFor returns the built-in table for a scheme.
func TableFor(scheme Scheme) (*Table, error) {
	switch scheme {
	case SchemeSSS:
		return SSSTable, nil
	case SchemePhilHealth:
		return PhilHealthTable, nil
	case SchemePagIBIG:
		return PagIBIGTable, nil
	case SchemeWithholdingTax:
		return WithholdingTaxTable, nil
	default:
		return nil, ErrUnknownScheme
	}
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// maxBelow builds a bracket's upper edge one centavo below the next bracket's
// floor. The subtraction runs in decimal; summing the .99 edge in float64
// drifts off the centavo grid and breaks the partition invariant.
func maxBelow(nextMin float64) *decimal.Decimal {
	d := dec(nextMin).Sub(centavo)
	return &d
}

// buildSSSBrackets produces the 2025 SSS schedule: monthly salary credits from
// 5,000 to 35,000 in 500-peso steps, employee share 5% of the MSC, employer
// share 10% of the MSC plus the EC premium (10 below MSC 15,000, 30 at or
// above).
func buildSSSBrackets() []Bracket {
	var brackets []Bracket
	for msc := 5000.0; msc <= 35000.0; msc += 500.0 {
		min := msc - 250.0
		if msc == 5000.0 {
			min = 0
		}
		var max *decimal.Decimal
		if msc < 35000.0 {
			max = maxBelow(msc + 250)
		}

		ec := dec(10)
		if msc >= 15000.0 {
			ec = dec(30)
		}
		base := dec(msc)
		ee := base.Mul(dec(0.05))
		er := base.Mul(dec(0.10)).Add(ec)

		brackets = append(brackets, Bracket{
			Min:           dec(min),
			Max:           max,
			EmployeeShare: ee,
			EmployerShare: er,
			Total:         ee.Add(er),
			ReferenceBase: base,
		})
	}
	return brackets
}

// buildPhilHealthBrackets quantizes the 5% premium rule (income floor 10,000,
// ceiling 100,000, shared equally) into 1,000-peso bands keyed on the band
// floor.
func buildPhilHealthBrackets() []Bracket {
	philHealthRow := func(min float64, max *decimal.Decimal, base float64) Bracket {
		total := dec(base).Mul(dec(0.05))
		half := total.Div(dec(2))
		return Bracket{
			Min:           dec(min),
			Max:           max,
			EmployeeShare: half,
			EmployerShare: half,
			Total:         total,
			ReferenceBase: dec(base),
		}
	}

	brackets := []Bracket{philHealthRow(0, maxBelow(10000), 10000)}
	for base := 10000.0; base < 100000.0; base += 1000.0 {
		brackets = append(brackets, philHealthRow(base, maxBelow(base+1000), base))
	}
	brackets = append(brackets, philHealthRow(100000, nil, 100000))
	return brackets
}

// buildPagIBIGBrackets quantizes the Pag-IBIG rule (employee 1% at or below
// 1,500 monthly, otherwise 2%; employer 2%; fund salary ceiling 10,000) into
// 500-peso bands.
func buildPagIBIGBrackets() []Bracket {
	pagIBIGRow := func(min float64, max *decimal.Decimal, base, eeRate float64) Bracket {
		ee := dec(base).Mul(dec(eeRate))
		er := dec(base).Mul(dec(0.02))
		return Bracket{
			Min:           dec(min),
			Max:           max,
			EmployeeShare: ee,
			EmployerShare: er,
			Total:         ee.Add(er),
			ReferenceBase: dec(base),
		}
	}

	brackets := []Bracket{pagIBIGRow(0, maxBelow(1500), 1500, 0.01)}
	for base := 1500.0; base < 10000.0; base += 500.0 {
		brackets = append(brackets, pagIBIGRow(base, maxBelow(base+500), base, 0.02))
	}
	brackets = append(brackets, pagIBIGRow(10000, nil, 10000, 0.02))
	return brackets
}

// buildWithholdingBrackets quantizes the BIR monthly withholding schedule into
// 2,500-peso bands above the 20,833 exemption threshold, with the tax fixed at
// the band floor. Withholding is employee-only, so the employer share is zero.
func buildWithholdingBrackets() []Bracket {
	taxRow := func(min float64, max *decimal.Decimal) Bracket {
		tax := monthlyWithholdingAt(min).Round(2)
		return Bracket{
			Min:           dec(min),
			Max:           max,
			EmployeeShare: tax,
			EmployerShare: decimal.Zero,
			Total:         tax,
			ReferenceBase: dec(min),
		}
	}

	brackets := []Bracket{taxRow(0, maxBelow(20833))}
	for min := 20833.0; min < 170833.0; min += 2500.0 {
		brackets = append(brackets, taxRow(min, maxBelow(min+2500)))
	}
	brackets = append(brackets, taxRow(170833, nil))
	return brackets
}

// monthlyWithholdingAt applies the marginal BIR monthly schedule at a single
// compensation value.
func monthlyWithholdingAt(v float64) decimal.Decimal {
	value := dec(v)
	type band struct {
		lower decimal.Decimal
		base  decimal.Decimal
		rate  decimal.Decimal
	}
	bands := []band{
		{dec(666667), dec(183541.80), dec(0.35)},
		{dec(166667), dec(34166.67), dec(0.30)},
		{dec(66667), dec(9166.67), dec(0.25)},
		{dec(33333), dec(2500), dec(0.20)},
		{dec(20833), decimal.Zero, dec(0.15)},
	}
	for _, b := range bands {
		if value.GreaterThanOrEqual(b.lower) {
			return b.base.Add(value.Sub(b.lower).Mul(b.rate))
		}
	}
	return decimal.Zero
}
