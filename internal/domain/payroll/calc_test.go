package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecompute(t *testing.T) {
	rec := PayrollRecord{
		BasicSalary: decimal.NewFromInt(50000),
		AllowancesDetail: map[string]decimal.Decimal{
			"Transport": decimal.NewFromInt(2000),
			"Housing":   decimal.NewFromInt(8000),
		},
		DeductionsDetail: map[string]decimal.Decimal{
			"PF":  decimal.NewFromInt(1800),
			"Tax": decimal.NewFromInt(4200),
		},
	}

	rec.Recompute()

	assert.True(t, rec.TotalAllowances.Equal(decimal.NewFromInt(10000)), "allowances: %s", rec.TotalAllowances)
	assert.True(t, rec.TotalDeductions.Equal(decimal.NewFromInt(6000)), "deductions: %s", rec.TotalDeductions)
	assert.True(t, rec.GrossSalary.Equal(decimal.NewFromInt(60000)), "gross: %s", rec.GrossSalary)
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(54000)), "net: %s", rec.NetSalary)
}

func TestRecomputeEmptyComponents(t *testing.T) {
	rec := PayrollRecord{BasicSalary: decimal.NewFromInt(30000)}

	rec.Recompute()

	assert.True(t, rec.TotalAllowances.IsZero())
	assert.True(t, rec.TotalDeductions.IsZero())
	assert.True(t, rec.GrossSalary.Equal(decimal.NewFromInt(30000)))
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(30000)))
}

func TestRecomputeOverwritesStaleTotals(t *testing.T) {
	rec := PayrollRecord{
		BasicSalary:     decimal.NewFromInt(10000),
		TotalAllowances: decimal.NewFromInt(999),
		NetSalary:       decimal.NewFromInt(999),
	}

	rec.Recompute()

	assert.True(t, rec.TotalAllowances.IsZero())
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(10000)))
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusDraft, StatusProcessed, true},
		{StatusProcessed, StatusPaid, true},
		{StatusDraft, StatusPaid, false},
		{StatusProcessed, StatusDraft, false},
		{StatusPaid, StatusProcessed, false},
		{StatusPaid, StatusPaid, false},
		{StatusDraft, StatusDraft, false},
		{StatusDraft, Status("bogus"), false},
	}
	for _, c := range cases {
		got := c.from.CanTransitionTo(c.to)
		if got != c.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
