package payroll

import "github.com/shopspring/decimal"

// Recompute derives the totals from basic salary and the component maps.
// It runs on every save, so stored gross/net can never drift from the
// components they were computed from.
func (p *PayrollRecord) Recompute() {
	p.TotalAllowances = sumComponents(p.AllowancesDetail)
	p.TotalDeductions = sumComponents(p.DeductionsDetail)
	p.GrossSalary = p.BasicSalary.Add(p.TotalAllowances)
	p.NetSalary = p.GrossSalary.Sub(p.TotalDeductions)
}

func sumComponents(components map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range components {
		total = total.Add(amount)
	}
	return total
}
