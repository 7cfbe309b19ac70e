package sensitivity

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"lbo-model/internal/model"
	"lbo-model/internal/projection"
)

// Point is one grid entry of a sweep: the axis value in input units and the
// return metrics the deal produces there.
type Point struct {
	Value float64
	IRR   float64
	MOIC  float64
}

// Config selects the grid for each axis. A nil slice means DefaultGrid
// around the deal's base value for that axis.
type Config struct {
	ExitMultiples  []float64
	RevenueGrowths []float64
	ExitMargins    []float64
}

// Analysis holds one sweep per axis, points ordered as configured.
type Analysis struct {
	ExitMultiple  []Point
	RevenueGrowth []Point
	ExitMargin    []Point
}

// DefaultGrid spans two units either side of base in unit steps.
func DefaultGrid(base float64) []float64 {
	grid := make([]float64, 0, 5)
	for i := -2; i <= 2; i++ {
		grid = append(grid, base+float64(i))
	}
	return grid
}

func (c Config) withDefaults(as *model.AssumptionSet) Config {
	dims := Dimensions()
	if c.ExitMultiples == nil {
		c.ExitMultiples = DefaultGrid(dims[0].Base(as))
	}
	if c.RevenueGrowths == nil {
		c.RevenueGrowths = DefaultGrid(dims[1].Base(as))
	}
	if c.ExitMargins == nil {
		c.ExitMargins = DefaultGrid(dims[2].Base(as))
	}
	return c
}

// Run evaluates every grid point of every axis against the base deal. Points
// are independent, so they run concurrently; the first failing point cancels
// the rest and its error is returned with the axis and value attached.
func Run(ctx context.Context, as *model.AssumptionSet, base *projection.Result, cfg Config) (*Analysis, error) {
	if as == nil || base == nil {
		return nil, fmt.Errorf("sensitivity requires a solved base model")
	}
	cfg = cfg.withDefaults(as)

	analysis := &Analysis{
		ExitMultiple:  make([]Point, len(cfg.ExitMultiples)),
		RevenueGrowth: make([]Point, len(cfg.RevenueGrowths)),
		ExitMargin:    make([]Point, len(cfg.ExitMargins)),
	}

	axes := []struct {
		dim  Dimension
		grid []float64
		dst  []Point
	}{
		{ExitMultiple{}, cfg.ExitMultiples, analysis.ExitMultiple},
		{RevenueGrowth{}, cfg.RevenueGrowths, analysis.RevenueGrowth},
		{ExitMargin{}, cfg.ExitMargins, analysis.ExitMargin},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, axis := range axes {
		for i, value := range axis.grid {
			dim, dst, i, value := axis.dim, axis.dst, i, value
			g.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				p, err := dim.Eval(as, base, value)
				if err != nil {
					return fmt.Errorf("sensitivity %s at %v: %w", dim.Name(), value, err)
				}
				dst[i] = p
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return analysis, nil
}
