package projection

import (
	"testing"

	"finbud/internal/core"
)

func TestCompoundInterestKnownValues(t *testing.T) {
	tests := []struct {
		name         string
		principal    int64
		contribution int64
		rate         float64
		years        int
		wantFinal    int64
	}{
		{
			// 10000 * 1.01^12 = 11268.2503
			name:      "twelve percent compounded monthly",
			principal: 1000000, rate: 12, years: 1,
			wantFinal: 1126825,
		},
		{
			name:         "contributions only at zero rate",
			contribution: 10000, rate: 0, years: 1,
			wantFinal: 120000,
		},
		{
			name:      "zero rate keeps principal flat",
			principal: 500000, rate: 0, years: 5,
			wantFinal: 500000,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			points := CompoundInterest(
				core.Money{Cents: tc.principal},
				core.Money{Cents: tc.contribution},
				tc.rate, tc.years)
			if len(points) != tc.years {
				t.Fatalf("got %d checkpoints, want %d", len(points), tc.years)
			}
			final := points[len(points)-1]
			if final.Year != tc.years {
				t.Errorf("final year = %d, want %d", final.Year, tc.years)
			}
			if final.Value.Cents != tc.wantFinal {
				t.Errorf("final value = %d, want %d", final.Value.Cents, tc.wantFinal)
			}
		})
	}
}

func TestCompoundInterestCheckpointsAreMonotonic(t *testing.T) {
	points := CompoundInterest(core.Money{Cents: 100000}, core.Money{Cents: 5000}, 5, 10)
	for i := 1; i < len(points); i++ {
		if points[i].Value.Cents <= points[i-1].Value.Cents {
			t.Fatalf("checkpoint %d (%d) not above checkpoint %d (%d)",
				i+1, points[i].Value.Cents, i, points[i-1].Value.Cents)
		}
	}
}

func TestCompoundInterestZeroHorizon(t *testing.T) {
	if points := CompoundInterest(core.Money{Cents: 100000}, core.Money{}, 5, 0); points != nil {
		t.Errorf("expected nil for zero years, got %v", points)
	}
}

func TestRetirementFutureValue(t *testing.T) {
	// 10000 * 1.07^10 = 19671.5136
	p := RetirementFutureValue(core.Money{Cents: 1000000}, core.Money{}, 7, 0, 10)
	if p.FutureValue.Cents != 1967151 {
		t.Errorf("future value = %d, want 1967151", p.FutureValue.Cents)
	}
	if p.RealValue.Cents != p.FutureValue.Cents {
		t.Errorf("zero inflation: real %d should equal nominal %d", p.RealValue.Cents, p.FutureValue.Cents)
	}
	if len(p.YearPoints) != 10 || p.YearPoints[9].Value.Cents != p.FutureValue.Cents {
		t.Errorf("year points inconsistent with future value: %+v", p.YearPoints)
	}
}

func TestRetirementRealValueDiscountsInflation(t *testing.T) {
	// Nominal growth exactly matched by inflation leaves today's value.
	p := RetirementFutureValue(core.Money{Cents: 1000000}, core.Money{}, 7, 7, 10)
	if p.RealValue.Cents != 1000000 {
		t.Errorf("real value = %d, want 1000000", p.RealValue.Cents)
	}
	if p.FutureValue.Cents <= 1000000 {
		t.Errorf("nominal value should still grow, got %d", p.FutureValue.Cents)
	}
}

func TestRetirementContributionsAccumulate(t *testing.T) {
	p := RetirementFutureValue(core.Money{}, core.Money{Cents: 100000}, 0, 0, 3)
	if p.FutureValue.Cents != 300000 {
		t.Errorf("future value = %d, want 300000", p.FutureValue.Cents)
	}
	want := []int64{100000, 200000, 300000}
	for i, pt := range p.YearPoints {
		if pt.Value.Cents != want[i] {
			t.Errorf("year %d = %d, want %d", i+1, pt.Value.Cents, want[i])
		}
	}
}

func TestRetirementZeroHorizonReturnsCurrentSavings(t *testing.T) {
	p := RetirementFutureValue(core.Money{Cents: 424200}, core.Money{Cents: 100}, 7, 2, 0)
	if p.FutureValue.Cents != 424200 || p.RealValue.Cents != 424200 {
		t.Errorf("zero horizon should return current savings, got %+v", p)
	}
}
