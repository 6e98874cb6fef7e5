package parser

import (
	"testing"

	"finhealth/internal/model"
)

func TestNormalizeCell_WhitespaceAndCase(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  Total Income ": "total income",
		"TOTAL  INCOME":   "total income",
		"Gross\tProfit\n": "gross profit",
		"":                "",
	}
	for in, want := range cases {
		if got := NormalizeCell(in); got != want {
			t.Fatalf("NormalizeCell(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestBuildLabelPattern_GapTolerant(t *testing.T) {
	t.Parallel()

	re, err := BuildLabelPattern("Total Income")
	if err != nil {
		t.Fatalf("BuildLabelPattern: %v", err)
	}
	for _, cell := range []string{"TOTAL INCOME", "total   income", "Total_Income", "Total-Income", "Total Income for the year"} {
		if !re.MatchString(NormalizeCell(cell)) {
			t.Fatalf("pattern should match %q", cell)
		}
	}
	if re.MatchString(NormalizeCell("Income Total")) {
		t.Fatalf("pattern should keep word order")
	}
}

func TestBuildLabelPattern_QuotesMetaCharacters(t *testing.T) {
	t.Parallel()

	re, err := BuildLabelPattern("Selling & Distribution (Net)")
	if err != nil {
		t.Fatalf("BuildLabelPattern: %v", err)
	}
	if !re.MatchString(NormalizeCell("Selling &  Distribution (net)")) {
		t.Fatalf("expected literal parentheses to match")
	}

	if _, err := BuildLabelPattern("   "); err == nil {
		t.Fatalf("expected error for blank label")
	}
}

func TestCoerceNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cell model.Cell
		want float64
		ok   bool
	}{
		{model.NumberCell(1500), 1500, true},
		{model.TextCell("1,250,000"), 1250000, true},
		{model.TextCell("(4,500)"), -4500, true},
		{model.TextCell(" 7.5% "), 0, false},
		{model.TextCell("Gross Profit"), 0, false},
		{model.TextCell("NaN"), 0, false},
		{model.Cell{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := CoerceNumber(tt.cell)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("CoerceNumber(%+v)=(%v,%v), want (%v,%v)", tt.cell, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWithOverrides_KeepsDefaultsForEmptyLists(t *testing.T) {
	t.Parallel()

	queries := WithOverrides(DefaultQueries(), map[model.Field][]string{
		model.FieldGrossProfit:  {"GP"},
		model.FieldFinanceCosts: {},
	})
	for _, q := range queries {
		switch q.Field {
		case model.FieldGrossProfit:
			if len(q.Labels) != 1 || q.Labels[0] != "GP" {
				t.Fatalf("gross profit labels=%v", q.Labels)
			}
		case model.FieldFinanceCosts:
			if q.Labels[0] != "Total FINANCE AND OTHER" {
				t.Fatalf("finance labels should keep defaults, got %v", q.Labels)
			}
		}
	}
}
