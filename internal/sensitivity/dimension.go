package sensitivity

import (
	"fmt"

	"lbo-model/internal/model"
	"lbo-model/internal/projection"
	"lbo-model/internal/returns"
)

// Dimension is one assumption axis a sensitivity sweep can vary. Base reads
// the axis value from an assumption set in input units (the same units the
// grid values use), and Eval prices the deal at one grid value.
type Dimension interface {
	Name() string
	Base(as *model.AssumptionSet) float64
	Eval(as *model.AssumptionSet, base *projection.Result, value float64) (Point, error)
}

// Dimensions lists every supported axis, in display order.
func Dimensions() []Dimension {
	return []Dimension{
		ExitMultiple{},
		RevenueGrowth{},
		ExitMargin{},
	}
}

// ExitMultiple varies the multiple the sponsor sells at. Exit proceeds are
// repriced directly from the base projection; the holding-period statements
// do not depend on the exit multiple, so no re-projection is needed and the
// rate of return is solved on the entry and exit equity legs alone.
type ExitMultiple struct{}

func (ExitMultiple) Name() string { return "exit_multiple" }

func (ExitMultiple) Base(as *model.AssumptionSet) float64 { return as.PurchasePriceMultiple }

func (ExitMultiple) Eval(as *model.AssumptionSet, base *projection.Result, value float64) (Point, error) {
	exitEquity := base.ExitEBITDA()*value - base.ExitDebt()
	flows := []float64{-as.EquityAmount, exitEquity}
	irr, err := returns.IRR(flows)
	if err != nil {
		return Point{}, err
	}
	return Point{
		Value: value,
		IRR:   irr,
		MOIC:  exitEquity / as.EquityAmount,
	}, nil
}

// RevenueGrowth varies the annual revenue growth assumption, in percent.
type RevenueGrowth struct{}

func (RevenueGrowth) Name() string { return "revenue_growth" }

func (RevenueGrowth) Base(as *model.AssumptionSet) float64 { return as.Input.RevenueGrowth }

func (RevenueGrowth) Eval(as *model.AssumptionSet, _ *projection.Result, value float64) (Point, error) {
	in := as.Input
	in.RevenueGrowth = value
	return reproject(in, value)
}

// ExitMargin varies the EBITDA margin reached by the exit year, in percent.
type ExitMargin struct{}

func (ExitMargin) Name() string { return "exit_margin" }

func (ExitMargin) Base(as *model.AssumptionSet) float64 { return as.Input.EBITDAMarginExit }

func (ExitMargin) Eval(as *model.AssumptionSet, _ *projection.Result, value float64) (Point, error) {
	in := as.Input
	in.EBITDAMarginExit = value
	return reproject(in, value)
}

// reproject builds and runs a full model for a perturbed assumption set and
// extracts the return metrics for the grid point.
func reproject(in model.Assumptions, value float64) (Point, error) {
	as, err := model.NewAssumptionSet(in)
	if err != nil {
		return Point{}, fmt.Errorf("perturbed assumptions: %w", err)
	}
	res, err := projection.New().Run(as)
	if err != nil {
		return Point{}, err
	}
	return Point{
		Value: value,
		IRR:   res.Returns.IRR,
		MOIC:  res.Returns.MOIC,
	}, nil
}
