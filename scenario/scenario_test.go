package scenario

import (
	"testing"

	"github.com/negobench/negobench/core"
)

func TestEstimateStaysWithinVarianceBound(t *testing.T) {
	g := NewSeeded(1)
	scn := core.Scenario{Item: "used pickup truck", TrueValue: 38000, Variance: 0.1}

	for i := 0; i < 1000; i++ {
		est := g.Estimate(scn)
		if est < 34200 || est > 41800 {
			t.Fatalf("estimate %v outside [34200, 41800]", est)
		}
		if est != float64(int64(est)) {
			t.Fatalf("estimate %v is not rounded to a whole price", est)
		}
	}
}

func TestDealAtOwnEstimateScoresZero(t *testing.T) {
	g := NewSeeded(7)
	scn := core.Scenario{Item: "used pickup truck", TrueValue: 38000, Variance: 0.1}
	sellerEst := g.Estimate(scn)

	sellerScore, _ := core.Scores(true, sellerEst, sellerEst, g.Estimate(scn))
	if sellerScore != 0.0 {
		t.Errorf("deal at exactly the seller's estimate must score 0.0, got %v", sellerScore)
	}
}

func TestPickDrawsFromCatalog(t *testing.T) {
	g := NewSeeded(42)
	byName := make(map[string]Item, len(Catalog))
	for _, item := range Catalog {
		byName[item.Name] = item
	}

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		scn := g.Pick()
		item, ok := byName[scn.Item]
		if !ok {
			t.Fatalf("picked unknown item %q", scn.Item)
		}
		if scn.TrueValue != item.TrueValue || scn.Variance != item.Variance {
			t.Fatalf("scenario %q does not match its catalog entry", scn.Item)
		}
		seen[scn.Item] = true
	}
	if len(seen) < 2 {
		t.Error("uniform draws over 200 picks should hit more than one item")
	}
}
