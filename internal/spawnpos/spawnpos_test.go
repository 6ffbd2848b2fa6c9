package spawnpos

import (
	"math/rand"
	"testing"

	"github.com/vitadek/survival/internal/model"
)

// S6: only southern-half beach tiles adjacent to a sea tile are
// candidates, matching register_player's search.
func TestCandidateBeachTilesRequiresSouthernHalfAndSeaAdjacency(t *testing.T) {
	southernY := model.WorldHeight/2 + 5
	northernY := model.WorldHeight/2 - 5

	tiles := []model.WorldTile{
		{WorldX: 10, WorldY: southernY, TileType: model.TileBeach},     // adjacent to sea below, eligible
		{WorldX: 10, WorldY: southernY + 1, TileType: model.TileSea},
		{WorldX: 20, WorldY: southernY, TileType: model.TileBeach},     // no sea neighbor, ineligible
		{WorldX: 30, WorldY: northernY, TileType: model.TileBeach},     // northern half, ineligible
		{WorldX: 30, WorldY: northernY + 1, TileType: model.TileSea},
		{WorldX: 40, WorldY: southernY, TileType: model.TileGrass},     // wrong tile type
		{WorldX: 40, WorldY: southernY + 1, TileType: model.TileSea},
	}

	got := CandidateBeachTiles(tiles)
	if len(got) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(got))
	}
	if got[0].WorldX != 10 || got[0].WorldY != southernY {
		t.Errorf("candidate = %+v, want the (10,%d) tile", got[0], southernY)
	}
}

func TestCandidateBeachTilesEmptyWhenNoSeaAdjacentBeach(t *testing.T) {
	southernY := model.WorldHeight/2 + 5
	tiles := []model.WorldTile{
		{WorldX: 10, WorldY: southernY, TileType: model.TileBeach},
		{WorldX: 11, WorldY: southernY, TileType: model.TileGrass},
	}
	if got := CandidateBeachTiles(tiles); len(got) != 0 {
		t.Errorf("len(candidates) = %d, want 0", len(got))
	}
}

// Pick rejects a crowded tile and falls through to an uncrowded one.
func TestPickRejectsCrowdedTileAndFindsClearOne(t *testing.T) {
	crowded := model.WorldTile{WorldX: 0, WorldY: 0, TileType: model.TileBeach}
	clear := model.WorldTile{WorldX: 10, WorldY: 0, TileType: model.TileBeach}
	beaches := []model.WorldTile{crowded, clear}

	crowdedX, crowdedY := pixelCenter(crowded)
	clearX, clearY := pixelCenter(clear)
	nearby := func(x, y float64) []Occupant {
		if x == crowdedX && y == crowdedY {
			return []Occupant{{X: x, Y: y}}
		}
		return nil
	}

	// With 50 rejection attempts and a 50/50 tile draw, the odds of
	// never sampling the clear tile are astronomically small; Pick
	// should settle on it well before exhausting its attempts.
	rng := rand.New(rand.NewSource(1))
	x, y, forced := Pick(beaches, nearby, rng)
	if forced {
		t.Fatal("Pick should not need to force a spawn when a clear tile exists")
	}
	if x != clearX || y != clearY {
		t.Errorf("Pick = (%v,%v), want the clear tile's center (%v,%v)", x, y, clearX, clearY)
	}
}

func TestPickForcesSpawnWhenEveryCandidateIsCrowded(t *testing.T) {
	tile := model.WorldTile{WorldX: 0, WorldY: 0, TileType: model.TileBeach}
	beaches := []model.WorldTile{tile}
	tx, ty := pixelCenter(tile)
	nearby := func(x, y float64) []Occupant {
		return []Occupant{{X: tx, Y: ty}}
	}

	rng := rand.New(rand.NewSource(2))
	x, y, forced := Pick(beaches, nearby, rng)
	if !forced {
		t.Error("Pick should force a spawn once every attempt is rejected")
	}
	if x != tx || y != ty {
		t.Errorf("forced spawn = (%v,%v), want the sole candidate's center (%v,%v)", x, y, tx, ty)
	}
}

func TestPickReturnsOriginWhenNoBeachesExist(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x, y, forced := Pick(nil, func(x, y float64) []Occupant { return nil }, rng)
	if !forced {
		t.Error("Pick with no candidates should report forced")
	}
	if x != 0 || y != 0 {
		t.Errorf("Pick with no candidates = (%v,%v), want (0,0)", x, y)
	}
}
