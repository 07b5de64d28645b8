package scenario

import (
	"math"
	"math/rand"

	"github.com/negobench/negobench/core"
)

// Item is one catalog entry: a label, the true market value (hidden from
// both agents) and the variance bound on private estimates.
type Item struct {
	Name      string
	TrueValue float64
	Variance  float64
}

// Catalog is the fixed set of negotiable items. Variance is deliberately
// wide on some entries so that matches with no zone of agreement occur.
var Catalog = []Item{
	{Name: "used pickup truck", TrueValue: 38000, Variance: 0.1},
	{Name: "vintage Les Paul guitar", TrueValue: 6500, Variance: 0.3},
	{Name: "two-bedroom apartment lease buyout", TrueValue: 12000, Variance: 0.2},
	{Name: "28-foot sailboat", TrueValue: 54000, Variance: 0.25},
	{Name: "commercial espresso machine", TrueValue: 9000, Variance: 0.15},
	{Name: "carbon road bike", TrueValue: 4200, Variance: 0.2},
	{Name: "antique oak dining set", TrueValue: 2800, Variance: 0.5},
	{Name: "food truck with equipment", TrueValue: 85000, Variance: 0.3},
}

// Generator draws scenarios and private estimates from a single rand
// source, injectable for reproducible tests.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator over the given source.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeeded creates a generator with its own seeded source.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// Pick selects a catalog item uniformly at random.
func (g *Generator) Pick() core.Scenario {
	item := Catalog[g.rng.Intn(len(Catalog))]
	return core.Scenario{
		Item:      item.Name,
		TrueValue: item.TrueValue,
		Variance:  item.Variance,
	}
}

// Estimate derives one side's private estimate: the true value shifted by
// a uniform draw in [-variance, +variance], rounded to a whole price.
// Independent draws for the two sides may overlap favorably or leave no
// zone of agreement at all; both outcomes are intentional.
func (g *Generator) Estimate(s core.Scenario) float64 {
	u := (g.rng.Float64()*2 - 1) * s.Variance
	return math.Round(s.TrueValue * (1 + u))
}
