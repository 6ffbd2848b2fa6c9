package resource

import (
	"math/rand"

	"github.com/vitadek/survival/internal/model"
)

// maxPlacementAttemptsPerNode bounds the rejection-sampling retry loop so
// a dense, mostly-occupied map can't spin forever without ever reaching
// its density target.
const maxPlacementAttemptsPerNode = 50

// landTiles filters tiles eligible for a kind's spawning: every tile
// when the kind allows open water/beach placement (none currently do),
// or every tile except Sea/Beach otherwise (§4.5: "must skip Sea/Beach
// tiles for plants").
func landTiles(tiles []model.WorldTile, c Constants) []model.WorldTile {
	if !c.SkipSeaAndBeach {
		return tiles
	}
	out := make([]model.WorldTile, 0, len(tiles))
	for _, t := range tiles {
		if t.TileType == model.TileSea || t.TileType == model.TileBeach {
			continue
		}
		out = append(out, t)
	}
	return out
}

func distSq(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return dx*dx + dy*dy
}

// PlacePositions rejection-samples positions for kind's resource nodes at
// world-init, enforcing the per-kind minimum distances to same-kind,
// tree, and stone nodes (§4.5's closing paragraph). It returns pixel
// centers only; the caller inserts rows via Repo.Insert, since the
// chunk_index computation belongs to the world-generation package that
// owns the chunk layout.
func PlacePositions(kind model.ResourceKind, tiles []model.WorldTile, treePositions, stonePositions [][2]float64, rng *rand.Rand) [][2]float64 {
	c, ok := Table[kind]
	if !ok {
		return nil
	}
	candidates := landTiles(tiles, c)
	if len(candidates) == 0 {
		return nil
	}
	target := int(float64(len(candidates)) * c.DensityPercent)
	if target < 1 {
		target = 1
	}

	var placed [][2]float64
	for len(placed) < target {
		placedOne := false
		for attempt := 0; attempt < maxPlacementAttemptsPerNode; attempt++ {
			tile := candidates[rng.Intn(len(candidates))]
			x := float64(tile.WorldX)*model.TileSizePx + model.TileSizePx/2
			y := float64(tile.WorldY)*model.TileSizePx + model.TileSizePx/2

			if tooClose(x, y, placed, c.MinSameKindDistanceSq) {
				continue
			}
			if tooClose(x, y, treePositions, c.MinTreeDistanceSq) {
				continue
			}
			if tooClose(x, y, stonePositions, c.MinStoneDistanceSq) {
				continue
			}
			placed = append(placed, [2]float64{x, y})
			placedOne = true
			break
		}
		if !placedOne {
			break // map saturated at this density for this kind; stop rather than loop forever
		}
	}
	return placed
}

func tooClose(x, y float64, positions [][2]float64, minDistSq float64) bool {
	if minDistSq <= 0 {
		return false
	}
	for _, p := range positions {
		if distSq(x, y, p[0], p[1]) < minDistSq {
			return true
		}
	}
	return false
}
