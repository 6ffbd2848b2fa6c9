package worldgen

import (
	"database/sql"

	"github.com/vitadek/survival/internal/model"
)

// SeedWorld generates and inserts the terrain grid once, idempotent
// across restarts like internal/items.SeedItems.
func SeedWorld(tx *sql.Tx, seed string) error {
	var count int
	if err := tx.QueryRow(`SELECT count(*) FROM world_tile`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	stmt, err := tx.Prepare(`INSERT INTO world_tile (chunk_x, chunk_y, world_x, world_y, tile_type, variant) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range Generate(seed) {
		if _, err := stmt.Exec(t.ChunkX, t.ChunkY, t.WorldX, t.WorldY, t.TileType, t.Variant); err != nil {
			return err
		}
	}
	return nil
}

func LoadAll(tx *sql.Tx) ([]model.WorldTile, error) {
	rows, err := tx.Query(`SELECT id, chunk_x, chunk_y, world_x, world_y, tile_type, variant FROM world_tile`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.WorldTile
	for rows.Next() {
		var t model.WorldTile
		if err := rows.Scan(&t.ID, &t.ChunkX, &t.ChunkY, &t.WorldX, &t.WorldY, &t.TileType, &t.Variant); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
