package resource

import (
	"database/sql"
	"math/rand"

	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/worldgen"
)

// SeedNodes places every resource kind once at world-init time the way
// internal/items.SeedItems and internal/structure.SeedRepairCosts seed
// their own tables idempotently: Tree and Stone are placed first since
// every other kind's minimum-distance rule is measured against them.
func SeedNodes(tx *sql.Tx, tiles []model.WorldTile, rng *rand.Rand) error {
	var count int
	if err := tx.QueryRow(`SELECT count(*) FROM resource_node`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := Repo{Tx: tx}

	treePositions := PlacePositions(model.ResourceTree, tiles, nil, nil, rng)
	if err := insertAll(repo, model.ResourceTree, treePositions); err != nil {
		return err
	}
	stonePositions := PlacePositions(model.ResourceStone, tiles, treePositions, nil, rng)
	if err := insertAll(repo, model.ResourceStone, stonePositions); err != nil {
		return err
	}

	for _, kind := range []model.ResourceKind{
		model.ResourceCorn, model.ResourceMushroom, model.ResourceHemp, model.ResourcePotato, model.ResourcePumpkin,
	} {
		positions := PlacePositions(kind, tiles, treePositions, stonePositions, rng)
		if err := insertAll(repo, kind, positions); err != nil {
			return err
		}
	}
	return nil
}

func insertAll(repo Repo, kind model.ResourceKind, positions [][2]float64) error {
	c := Table[kind]
	for _, pos := range positions {
		n := model.ResourceNode{
			Kind:       kind,
			PosX:       pos[0],
			PosY:       pos[1],
			ChunkIndex: worldgen.ChunkIndexForPixel(pos[0], pos[1]),
			Health:     c.MaxHealth,
			MaxHealth:  c.MaxHealth,
		}
		if _, err := repo.Insert(n); err != nil {
			return err
		}
	}
	return nil
}
