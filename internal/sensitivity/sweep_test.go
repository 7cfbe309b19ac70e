package sensitivity

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"lbo-model/internal/model"
	"lbo-model/internal/projection"
	"lbo-model/internal/returns"
)

func acmeAssumptions() model.Assumptions {
	return model.Assumptions{
		Company:   "Acme Corp",
		EntryYear: 2023,
		ExitYear:  2028,

		RevenueEntry:      500,
		EBITDAMarginEntry: 25,
		RevenueGrowth:     8,
		EBITDAMarginExit:  30,

		CapexPercent: 4,
		DSO:          45,
		DPO:          60,
		DSI:          30,

		PurchasePriceMultiple: 10,
		DebtPercentage:        60,
		InterestRate:          8,
		AmortizationYears:     5,
	}
}

func mustBase(t *testing.T) (*model.AssumptionSet, *projection.Result) {
	t.Helper()
	as, err := model.NewAssumptionSet(acmeAssumptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := projection.New().Run(as)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return as, res
}

func close6(got, want float64) bool {
	return math.Abs(got-want) <= 1e-6
}

func TestRun_DefaultGrids(t *testing.T) {
	as, base := mustBase(t)

	analysis, err := Run(context.Background(), as, base, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	axes := map[string][]Point{
		"exit_multiple":  analysis.ExitMultiple,
		"revenue_growth": analysis.RevenueGrowth,
		"exit_margin":    analysis.ExitMargin,
	}
	centers := map[string]float64{
		"exit_multiple":  10,
		"revenue_growth": 8,
		"exit_margin":    30,
	}
	for name, points := range axes {
		if len(points) != 5 {
			t.Fatalf("%s: expected 5 default points, got %d", name, len(points))
		}
		if points[2].Value != centers[name] {
			t.Errorf("%s: expected center %v, got %v", name, centers[name], points[2].Value)
		}
		for i := 1; i < len(points); i++ {
			if !close6(points[i].Value-points[i-1].Value, 1) {
				t.Errorf("%s: grid step %v -> %v is not unit", name, points[i-1].Value, points[i].Value)
			}
		}
	}
}

func TestRun_ExitMultipleAxis(t *testing.T) {
	as, base := mustBase(t)

	analysis, err := Run(context.Background(), as, base, Config{
		ExitMultiples:  []float64{8, 9, 10, 11, 12},
		RevenueGrowths: []float64{8},
		ExitMargins:    []float64{30},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The base-multiple point prices exit proceeds identically to the base
	// model, so its MOIC matches the solved deal.
	at10 := analysis.ExitMultiple[2]
	if !close6(at10.MOIC, base.Returns.MOIC) {
		t.Errorf("MOIC at base multiple: expected %v, got %v", base.Returns.MOIC, at10.MOIC)
	}

	// Exit repricing compounds over a single leg, so the implied rate is
	// MOIC - 1 in percent.
	wantIRR := (at10.MOIC - 1) * 100
	if math.Abs(at10.IRR-wantIRR) > 1e-3 {
		t.Errorf("IRR at base multiple: expected %v, got %v", wantIRR, at10.IRR)
	}

	for i := 1; i < len(analysis.ExitMultiple); i++ {
		prev, cur := analysis.ExitMultiple[i-1], analysis.ExitMultiple[i]
		if cur.IRR <= prev.IRR || cur.MOIC <= prev.MOIC {
			t.Errorf("richer exit should raise returns: %+v -> %+v", prev, cur)
		}
	}
}

func TestRun_GrowthAndMarginAxes(t *testing.T) {
	as, base := mustBase(t)

	analysis, err := Run(context.Background(), as, base, Config{
		ExitMultiples:  []float64{10},
		RevenueGrowths: []float64{6, 7, 8, 9, 10},
		ExitMargins:    []float64{28, 29, 30, 31, 32},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Perturbing an axis back to its base value is a full re-projection of
	// the unmodified deal, so base metrics come back exactly.
	growthAtBase := analysis.RevenueGrowth[2]
	if !close6(growthAtBase.IRR, base.Returns.IRR) || !close6(growthAtBase.MOIC, base.Returns.MOIC) {
		t.Errorf("growth axis at base: expected IRR %v MOIC %v, got IRR %v MOIC %v",
			base.Returns.IRR, base.Returns.MOIC, growthAtBase.IRR, growthAtBase.MOIC)
	}
	marginAtBase := analysis.ExitMargin[2]
	if !close6(marginAtBase.IRR, base.Returns.IRR) || !close6(marginAtBase.MOIC, base.Returns.MOIC) {
		t.Errorf("margin axis at base: expected IRR %v MOIC %v, got IRR %v MOIC %v",
			base.Returns.IRR, base.Returns.MOIC, marginAtBase.IRR, marginAtBase.MOIC)
	}

	for i := 1; i < len(analysis.RevenueGrowth); i++ {
		if analysis.RevenueGrowth[i].IRR <= analysis.RevenueGrowth[i-1].IRR {
			t.Errorf("faster growth should raise IRR: %+v -> %+v",
				analysis.RevenueGrowth[i-1], analysis.RevenueGrowth[i])
		}
	}
	for i := 1; i < len(analysis.ExitMargin); i++ {
		if analysis.ExitMargin[i].IRR <= analysis.ExitMargin[i-1].IRR {
			t.Errorf("richer exit margin should raise IRR: %+v -> %+v",
				analysis.ExitMargin[i-1], analysis.ExitMargin[i])
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	as, base := mustBase(t)

	first, err := Run(context.Background(), as, base, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Run(context.Background(), as, base, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("concurrent sweep should be order-independent and reproducible")
	}
}

func TestRun_NoRootPropagates(t *testing.T) {
	as, base := mustBase(t)

	_, err := Run(context.Background(), as, base, Config{
		ExitMultiples:  []float64{0},
		RevenueGrowths: []float64{8},
		ExitMargins:    []float64{30},
	})
	if !errors.Is(err, returns.ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot, got %v", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	as, base := mustBase(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, as, base, Config{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_NilBase(t *testing.T) {
	as, _ := mustBase(t)
	if _, err := Run(context.Background(), as, nil, Config{}); err == nil {
		t.Fatal("expected error for nil base result")
	}
	if _, err := Run(context.Background(), nil, nil, Config{}); err == nil {
		t.Fatal("expected error for nil assumption set")
	}
}
