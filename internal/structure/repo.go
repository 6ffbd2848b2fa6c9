// Package structure implements damage and repair (§4.6) shared by every
// damageable placeable (Campfire, WoodenStorageBox, Shelter,
// SleepingBag), grounded in original_source/server/src/structures.rs and
// the teacher's db.go query style.
package structure

import (
	"database/sql"
	"errors"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/model"
)

type Repo struct {
	Tx *sql.Tx
}

func (r Repo) Get(id int64) (model.Structure, error) {
	var s model.Structure
	err := r.Tx.QueryRow(`SELECT id, kind, pos_x, pos_y, placed_by, health, max_health, is_destroyed, last_hit_time, last_damaged_by
		FROM structure WHERE id = ?`, id).Scan(
		&s.ID, &s.Kind, &s.PosX, &s.PosY, &s.PlacedBy, &s.Health, &s.MaxHealth, &s.IsDestroyed, &s.LastHitTime, &s.LastDamagedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Structure{}, gameerr.New(gameerr.NotFound, "structure %d", id)
	}
	return s, err
}

func (r Repo) Insert(s model.Structure) (int64, error) {
	res, err := r.Tx.Exec(`INSERT INTO structure (kind, pos_x, pos_y, placed_by, health, max_health, is_destroyed, last_damaged_by)
		VALUES (?, ?, ?, ?, ?, ?, 0, '')`, s.Kind, s.PosX, s.PosY, s.PlacedBy, s.Health, s.MaxHealth)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r Repo) update(s model.Structure) error {
	_, err := r.Tx.Exec(`UPDATE structure SET health = ?, is_destroyed = ?, last_hit_time = ?, last_damaged_by = ? WHERE id = ?`,
		s.Health, s.IsDestroyed, s.LastHitTime, s.LastDamagedBy, s.ID)
	return err
}

func (r Repo) Delete(id int64) error {
	_, err := r.Tx.Exec(`DELETE FROM structure WHERE id = ?`, id)
	return err
}

func (r Repo) RepairCostFor(kind model.StructureKind) (map[string]float64, error) {
	rows, err := r.Tx.Query(`SELECT item_def_name, amount_per_full_repair FROM repair_cost WHERE structure_kind = ?`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]float64{}
	for rows.Next() {
		var name string
		var amount float64
		if err := rows.Scan(&name, &amount); err != nil {
			return nil, err
		}
		out[name] = amount
	}
	return out, rows.Err()
}

// SeedRepairCosts inserts the static per-kind repair cost table (§4.6
// step 4) if empty: Campfire 25 Wood + 10 Stone to fully repair its 100
// max health, StorageBox 100 Wood over 750 max health, Shelter 3200 Wood
// over 100000 max health.
func SeedRepairCosts(tx *sql.Tx) error {
	var count int
	if err := tx.QueryRow(`SELECT count(*) FROM repair_cost`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	rows := []struct {
		kind   model.StructureKind
		item   string
		amount float64
	}{
		{model.StructureCampfire, "Wood", 25},
		{model.StructureCampfire, "Stone", 10},
		{model.StructureStorageBox, "Wood", 100},
		{model.StructureShelter, "Wood", 3200},
	}
	for _, r := range rows {
		if _, err := tx.Exec(`INSERT INTO repair_cost (structure_kind, item_def_name, amount_per_full_repair) VALUES (?, ?, ?)`,
			r.kind, r.item, r.amount); err != nil {
			return err
		}
	}
	return nil
}

// RepairAmount returns the flat health restored per repair call (§4.6
// step 3): Campfire 25 (4 hits to full), StorageBox 75 (10 hits),
// Shelter 5000 (20 hits).
func RepairAmount(kind model.StructureKind) float64 {
	switch kind {
	case model.StructureCampfire:
		return 25
	case model.StructureStorageBox:
		return 75
	case model.StructureShelter:
		return 5000
	default:
		return 0
	}
}
