package wire

import (
	"database/sql"

	"github.com/vitadek/survival/internal/model"
)

// LoadSnapshot queries every table named in Snapshot within [minX,maxX] x
// [minY,maxY], the viewport-filtered read §10.2 describes for GET
// /world/snapshot. Dead players and destroyed structures are still
// included — a disconnect/death animation needs the final row, and the
// client is expected to interpret is_dead/is_destroyed itself.
func LoadSnapshot(db *sql.DB, v model.ClientViewport) (Snapshot, error) {
	var snap Snapshot

	playerRows, err := db.Query(`SELECT identity, username, position_x, position_y, direction, last_update,
			health, stamina, thirst, hunger, warmth, is_sprinting, is_crouching, is_dead,
			death_timestamp, last_hit_time, is_online, is_torch_lit, is_on_water, is_knocked_out, jump_start_ms
		FROM player WHERE position_x BETWEEN ? AND ? AND position_y BETWEEN ? AND ?`,
		v.MinX, v.MaxX, v.MinY, v.MaxY)
	if err != nil {
		return Snapshot{}, err
	}
	for playerRows.Next() {
		var p model.Player
		if err := playerRows.Scan(&p.Identity, &p.Username, &p.PositionX, &p.PositionY, &p.Direction, &p.LastUpdate,
			&p.Health, &p.Stamina, &p.Thirst, &p.Hunger, &p.Warmth, &p.IsSprinting, &p.IsCrouching, &p.IsDead,
			&p.DeathTimestamp, &p.LastHitTime, &p.IsOnline, &p.IsTorchLit, &p.IsOnWater, &p.IsKnockedOut, &p.JumpStartMs); err != nil {
			playerRows.Close()
			return Snapshot{}, err
		}
		snap.Players = append(snap.Players, p)
	}
	playerRows.Close()
	if err := playerRows.Err(); err != nil {
		return Snapshot{}, err
	}

	structureRows, err := db.Query(`SELECT id, kind, pos_x, pos_y, placed_by, health, max_health, is_destroyed, last_hit_time, last_damaged_by
		FROM structure WHERE pos_x BETWEEN ? AND ? AND pos_y BETWEEN ? AND ?`, v.MinX, v.MaxX, v.MinY, v.MaxY)
	if err != nil {
		return Snapshot{}, err
	}
	for structureRows.Next() {
		var s model.Structure
		if err := structureRows.Scan(&s.ID, &s.Kind, &s.PosX, &s.PosY, &s.PlacedBy, &s.Health, &s.MaxHealth, &s.IsDestroyed, &s.LastHitTime, &s.LastDamagedBy); err != nil {
			structureRows.Close()
			return Snapshot{}, err
		}
		snap.Structures = append(snap.Structures, s)
	}
	structureRows.Close()
	if err := structureRows.Err(); err != nil {
		return Snapshot{}, err
	}

	resourceRows, err := db.Query(`SELECT id, kind, pos_x, pos_y, chunk_index, health, max_health, respawn_at
		FROM resource_node WHERE pos_x BETWEEN ? AND ? AND pos_y BETWEEN ? AND ?`, v.MinX, v.MaxX, v.MinY, v.MaxY)
	if err != nil {
		return Snapshot{}, err
	}
	for resourceRows.Next() {
		var n model.ResourceNode
		if err := resourceRows.Scan(&n.ID, &n.Kind, &n.PosX, &n.PosY, &n.ChunkIndex, &n.Health, &n.MaxHealth, &n.RespawnAt); err != nil {
			resourceRows.Close()
			return Snapshot{}, err
		}
		snap.ResourceNodes = append(snap.ResourceNodes, n)
	}
	resourceRows.Close()
	if err := resourceRows.Err(); err != nil {
		return Snapshot{}, err
	}

	droppedRows, err := db.Query(`SELECT id, instance_id, pos_x, pos_y, dropped_at
		FROM dropped_item WHERE pos_x BETWEEN ? AND ? AND pos_y BETWEEN ? AND ?`, v.MinX, v.MaxX, v.MinY, v.MaxY)
	if err != nil {
		return Snapshot{}, err
	}
	for droppedRows.Next() {
		var d model.DroppedItem
		if err := droppedRows.Scan(&d.ID, &d.InstanceID, &d.PosX, &d.PosY, &d.DroppedAt); err != nil {
			droppedRows.Close()
			return Snapshot{}, err
		}
		snap.DroppedItems = append(snap.DroppedItems, d)
	}
	droppedRows.Close()
	return snap, droppedRows.Err()
}
