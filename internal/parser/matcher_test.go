package parser

import (
	"testing"

	"finhealth/internal/model"
)

func TestMatcher_CaseAndWhitespaceInsensitive(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"TOTAL INCOME", "total   income", "Total_Income"} {
		grid := model.GridFromValues([][]any{
			{"ABC Traders (Pvt) Ltd"},
			{nil, label, nil, 125000.0},
		})
		m := NewMatcher(grid).Find([]string{"Total Income"})
		if !m.Found || m.Value != 125000 {
			t.Fatalf("label %q: got %+v", label, m)
		}
	}
}

func TestMatcher_SynonymPriorityBeatsRowOrder(t *testing.T) {
	t.Parallel()

	grid := model.GridFromValues([][]any{
		{"Income", 500.0},
		{"Cost of sales", 200.0},
		{"Total Income", 900.0},
	})
	m := NewMatcher(grid).Find([]string{"Total Income", "Income"})
	if m.Value != 900 || m.Label != "Total Income" || m.Row != 2 {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestMatcher_FirstRowWinsWithinSynonym(t *testing.T) {
	t.Parallel()

	grid := model.GridFromValues([][]any{
		{"Gross Profit", 100.0},
		{"Gross Profit (restated)", 300.0},
	})
	m := NewMatcher(grid).Find([]string{"Gross Profit"})
	if m.Value != 100 || m.Row != 0 {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestMatcher_RightmostNumeric(t *testing.T) {
	t.Parallel()

	grid := model.GridFromValues([][]any{
		{"Gross Profit", nil, 1000.0, 2000.0},
	})
	m := NewMatcher(grid).Find([]string{"Gross Profit"})
	if m.Value != 2000 || m.Column != 3 {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestMatcher_RightmostSkipsTrailingText(t *testing.T) {
	t.Parallel()

	grid := model.GridFromStrings([][]string{
		{"Finance Costs", "", "12,500", "Note 7", ""},
	})
	m := NewMatcher(grid).Find([]string{"Finance Costs"})
	if m.Value != 12500 || m.Column != 2 {
		t.Fatalf("unexpected match: %+v", m)
	}
}

func TestMatcher_RightmostSkipsPercentColumn(t *testing.T) {
	t.Parallel()

	grid := model.GridFromStrings([][]string{
		{"Gross Profit", "400000", "40%"},
	})
	m := NewMatcher(grid).Find([]string{"Gross Profit"})
	if m.Value != 400000 || m.Column != 1 {
		t.Fatalf("percent-of-revenue column should be skipped: %+v", m)
	}
}

func TestMatcher_NotFoundSentinel(t *testing.T) {
	t.Parallel()

	grid := model.GridFromValues([][]any{
		{"Revenue", 100.0},
	})
	m := NewMatcher(grid).Find([]string{"Gross Profit"})
	if m.Found || m.Value != 0 || m.Row != -1 || m.Column != -1 {
		t.Fatalf("expected not-found sentinel, got %+v", m)
	}
}

func TestMatcher_RowWithoutNumberFallsThroughToNextSynonym(t *testing.T) {
	t.Parallel()

	grid := model.GridFromValues([][]any{
		{"ADMINISTRATIVE EXPENSES"},
		{"Salaries", 40.0},
		{"Total Administration", 75.0},
	})
	m := NewMatcher(grid).Find([]string{"Administrative Expenses", "Administration"})
	if !m.Found || m.Value != 75 || m.Label != "Administration" {
		t.Fatalf("unexpected match: %+v", m)
	}

	only := NewMatcher(grid).Find([]string{"Administrative Expenses"})
	if only.Found || only.Value != 0 {
		t.Fatalf("header row without numbers should not be found: %+v", only)
	}
}

func TestMatcher_ExtractCarriesField(t *testing.T) {
	t.Parallel()

	grid := model.GridFromValues([][]any{
		{"Total Revenue", 10.0, 20.0},
	})
	v := NewMatcher(grid).Extract(LabelQuery{
		Field:  model.FieldTotalIncome,
		Labels: []string{"Total Income", "Total Revenue"},
	})
	if v.Field != model.FieldTotalIncome || v.Value != 20 || !v.Found || v.Label != "Total Revenue" {
		t.Fatalf("unexpected extracted value: %+v", v)
	}
}

func TestMatcher_Contains(t *testing.T) {
	t.Parallel()

	m := NewMatcher(model.GridFromValues([][]any{{"Selling & Distribution"}}))
	if !m.Contains([]string{"Distribution Costs", "Selling & Distribution"}) {
		t.Fatalf("expected label to be present")
	}
	if m.Contains([]string{"Interest"}) {
		t.Fatalf("unexpected label match")
	}
}
