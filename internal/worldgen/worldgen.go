// Package worldgen deterministically generates the terrain grid §3
// requires as a foundation for resource placement and spawn search. The
// concrete terrain algorithm is out of scope for the distilled spec
// (§4.5 only requires it to run "after terrain generation" and to
// produce Sea/Beach/land tiles); this package supplies a contract-
// satisfying implementation grounded in the teacher's
// pkg/game/mechanics.go GetEfficiency: a blake3 hash of (seed, tile
// coordinates) normalized into a value, here used to pick a TileType
// instead of a resource efficiency.
package worldgen

import (
	"encoding/binary"
	"fmt"

	"github.com/vitadek/survival/internal/model"
	"lukechampine.com/blake3"
)

const chunkSizeTiles = 16

// tileValue derives a deterministic float in [0, 1) for one world tile,
// the same hash-then-normalize shape as GetEfficiency.
func tileValue(seed string, worldX, worldY int) float64 {
	sum := blake3.Sum256([]byte(fmt.Sprintf("%s|%d|%d", seed, worldX, worldY)))
	v := binary.BigEndian.Uint32(sum[:4])
	return float64(v) / float64(^uint32(0))
}

// classify picks a TileType for (worldX, worldY). The southernmost rows
// of the map are sea, the band above them is beach (so spawnpos always
// has sea-adjacent beach to search), and everything else is grass or
// dirt based on the hashed value, with an occasional dirt road.
func classify(v float64, worldY int) model.TileType {
	seaRows := model.WorldHeight / 20
	beachRows := seaRows + model.WorldHeight/40
	switch {
	case worldY >= model.WorldHeight-seaRows:
		return model.TileSea
	case worldY >= model.WorldHeight-beachRows:
		return model.TileBeach
	case v < 0.03:
		return model.TileDirtRoad
	case v < 0.35:
		return model.TileDirt
	default:
		return model.TileGrass
	}
}

// Generate produces the full WorldWidth x WorldHeight tile grid for
// seed. Rows are assigned to chunks of chunkSizeTiles x chunkSizeTiles
// for the chunk_index-style spatial grouping used elsewhere (§3).
func Generate(seed string) []model.WorldTile {
	tiles := make([]model.WorldTile, 0, model.WorldWidth*model.WorldHeight)
	for y := 0; y < model.WorldHeight; y++ {
		for x := 0; x < model.WorldWidth; x++ {
			v := tileValue(seed, x, y)
			t := classify(v, y)
			variant := uint8(v * 4)
			tiles = append(tiles, model.WorldTile{
				ChunkX:   x / chunkSizeTiles,
				ChunkY:   y / chunkSizeTiles,
				WorldX:   x,
				WorldY:   y,
				TileType: t,
				Variant:  variant,
			})
		}
	}
	return tiles
}

// ChunkIndex folds a tile's chunk coordinates into the single integer
// resource_node.chunk_index column uses for spatial filtering.
func ChunkIndex(t model.WorldTile) int64 {
	return chunkIndex(t.WorldX/chunkSizeTiles, t.WorldY/chunkSizeTiles)
}

func chunkIndex(chunkX, chunkY int) int64 {
	return int64(chunkY)*int64((model.WorldWidth/chunkSizeTiles)+1) + int64(chunkX)
}

// ChunkIndexForPixel computes the same folded chunk index from a pixel
// position rather than a WorldTile row, used when seeding resource nodes
// whose position was rejection-sampled rather than read off a tile.
func ChunkIndexForPixel(x, y float64) int64 {
	worldX := int(x / model.TileSizePx)
	worldY := int(y / model.TileSizePx)
	return chunkIndex(worldX/chunkSizeTiles, worldY/chunkSizeTiles)
}
