package spatial

import (
	"database/sql"
	"strconv"

	"github.com/vitadek/survival/internal/model"
)

// shelterAABBHalfWidth/HalfHeight/CenterYOffset mirror the constants the
// original names SHELTER_AABB_HALF_WIDTH/HEIGHT/CENTER_Y_OFFSET; no
// per-shelter override exists so they are fixed here rather than seeded.
const (
	shelterAABBHalfWidth       = 96.0
	shelterAABBHalfHeight      = 64.0
	shelterCenterYOffsetFromPos = 32.0
)

// PopulateFromWorld rebuilds the grid from the live tables, grounded in
// spatial_grid.rs's populate_from_world: living players, resource nodes
// with remaining health or single-hit plants, non-destroyed structures
// (shelters via AABB, everything else point-indexed), and dropped items.
func PopulateFromWorld(tx *sql.Tx) (*Grid, error) {
	g := New()

	playerRows, err := tx.Query(`SELECT identity, position_x, position_y FROM player WHERE is_dead = 0`)
	if err != nil {
		return nil, err
	}
	for playerRows.Next() {
		var identity string
		var x, y float64
		if err := playerRows.Scan(&identity, &x, &y); err != nil {
			playerRows.Close()
			return nil, err
		}
		g.Insert(Entity{Kind: EntityPlayer, ID: identity, X: x, Y: y})
	}
	playerRows.Close()

	resourceRows, err := tx.Query(`SELECT id, kind, pos_x, pos_y, max_health, health, respawn_at FROM resource_node`)
	if err != nil {
		return nil, err
	}
	for resourceRows.Next() {
		var id int64
		var kind model.ResourceKind
		var x, y, maxHealth, health float64
		var respawnAt sql.NullTime
		if err := resourceRows.Scan(&id, &kind, &x, &y, &maxHealth, &health, &respawnAt); err != nil {
			resourceRows.Close()
			return nil, err
		}
		if respawnAt.Valid {
			continue // respawning, not currently harvestable/collidable
		}
		if maxHealth > 0 && health <= 0 {
			continue
		}
		entityKind := EntityPlant
		switch kind {
		case model.ResourceTree:
			entityKind = EntityTree
		case model.ResourceStone:
			entityKind = EntityStone
		}
		g.Insert(Entity{Kind: entityKind, ID: strconv.FormatInt(id, 10), X: x, Y: y})
	}
	resourceRows.Close()

	structureRows, err := tx.Query(`SELECT id, kind, pos_x, pos_y FROM structure WHERE is_destroyed = 0`)
	if err != nil {
		return nil, err
	}
	for structureRows.Next() {
		var id int64
		var kind model.StructureKind
		var x, y float64
		if err := structureRows.Scan(&id, &kind, &x, &y); err != nil {
			structureRows.Close()
			return nil, err
		}
		idStr := strconv.FormatInt(id, 10)
		switch kind {
		case model.StructureShelter:
			g.InsertAABB(Entity{Kind: EntityShelter, ID: idStr, X: x, Y: y - shelterCenterYOffsetFromPos}, shelterAABBHalfWidth, shelterAABBHalfHeight)
		case model.StructureCampfire:
			g.Insert(Entity{Kind: EntityCampfire, ID: idStr, X: x, Y: y})
		case model.StructureStorageBox:
			g.Insert(Entity{Kind: EntityStorageBox, ID: idStr, X: x, Y: y})
		default:
			g.Insert(Entity{Kind: EntityKind(kind), ID: idStr, X: x, Y: y})
		}
	}
	structureRows.Close()

	droppedRows, err := tx.Query(`SELECT id, pos_x, pos_y FROM dropped_item`)
	if err != nil {
		return nil, err
	}
	for droppedRows.Next() {
		var id string
		var x, y float64
		if err := droppedRows.Scan(&id, &x, &y); err != nil {
			droppedRows.Close()
			return nil, err
		}
		g.Insert(Entity{Kind: EntityDroppedItem, ID: id, X: x, Y: y})
	}
	droppedRows.Close()

	return g, nil
}
