package forest

import (
	"testing"
)

func TestScatterRocksDeterministicForSeed(t *testing.T) {
	gen := testGenerator()
	p := DefaultRockParams()

	a := ScatterRocks(gen, p)
	b := ScatterRocks(gen, p)

	if len(a.Rocks) != len(b.Rocks) {
		t.Fatalf("rock counts diverged: %d vs %d", len(a.Rocks), len(b.Rocks))
	}
	for i := range a.Rocks {
		if a.Rocks[i].Model != b.Rocks[i].Model {
			t.Fatalf("rock %d transform diverged", i)
		}
	}
}

func TestScatterRocksIndependentOfTreeSeed(t *testing.T) {
	gen := testGenerator()

	rocks := ScatterRocks(gen, DefaultRockParams())

	fp := DefaultParams()
	fp.Seed = 4242
	_ = Plan(gen, fp)

	again := ScatterRocks(gen, DefaultRockParams())
	if len(rocks.Rocks) != len(again.Rocks) {
		t.Fatalf("rock layout depends on unrelated state: %d vs %d", len(rocks.Rocks), len(again.Rocks))
	}
	for i := range rocks.Rocks {
		if rocks.Rocks[i].Model != again.Rocks[i].Model {
			t.Fatalf("rock %d transform diverged after a forest pass", i)
		}
	}
}

func TestScatterRocksStayOutOfTheSea(t *testing.T) {
	gen := testGenerator()
	res := ScatterRocks(gen, RockParams{Count: 2000, Seed: 5678})

	if len(res.Rocks) == 0 {
		t.Fatalf("expected rocks on the default island")
	}
	if len(res.Rocks) != len(res.Sites) {
		t.Fatalf("site bookkeeping diverged: %d vs %d", len(res.Rocks), len(res.Sites))
	}

	hp := gen.Params()
	seaLimit := hp.SeaLevel + 0.02*hp.HeightScale
	for i, site := range res.Sites {
		if y := float64(site.Y()); y <= seaLimit-1e-6 {
			t.Fatalf("rock %d below the sea margin: %f <= %f", i, y, seaLimit)
		}
	}
}

func TestScatterRocksRespectsCount(t *testing.T) {
	gen := testGenerator()

	res := ScatterRocks(gen, RockParams{Count: 50, Seed: 1})
	if len(res.Rocks) > 50 {
		t.Fatalf("scatter produced more rocks than requested: %d", len(res.Rocks))
	}

	empty := ScatterRocks(gen, RockParams{Count: 0, Seed: 1})
	if len(empty.Rocks) != 0 {
		t.Fatalf("zero count must produce no rocks, got %d", len(empty.Rocks))
	}
}
