package container

import (
	"database/sql"
	"errors"
	"time"

	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
)

// CampfireStore is the raw-SQL accessor for the campfire_state extension
// row, one per Structure of kind Campfire.
type CampfireStore struct {
	Tx *sql.Tx
}

func (s CampfireStore) Get(structureID int64) (model.CampfireState, error) {
	var c model.CampfireState
	err := s.Tx.QueryRow(`SELECT structure_id, fuel_instance_0, fuel_instance_1, fuel_instance_2, fuel_instance_3, fuel_instance_4, is_burning, next_fuel_consume_at
		FROM campfire_state WHERE structure_id = ?`, structureID).Scan(
		&c.StructureID, &c.FuelInstance[0], &c.FuelInstance[1], &c.FuelInstance[2], &c.FuelInstance[3], &c.FuelInstance[4],
		&c.IsBurning, &c.NextFuelConsumeAt)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.Tx.Exec(`INSERT INTO campfire_state (structure_id) VALUES (?)`, structureID); err != nil {
			return model.CampfireState{}, err
		}
		return model.CampfireState{StructureID: structureID}, nil
	}
	return c, err
}

func (s CampfireStore) setBurning(structureID int64, burning bool) error {
	_, err := s.Tx.Exec(`UPDATE campfire_state SET is_burning = ? WHERE structure_id = ?`, burning, structureID)
	return err
}

// ReevaluateBurning re-derives is_burning from the presence of any fuel
// instance after a fuel slot is filled or vacated (duty a). A campfire
// with at least one occupied fuel slot burns; an empty one does not.
// Nothing in the server consumes fuel over time; a slot empties only when
// its item leaves it.
func ReevaluateBurning(store CampfireStore, repo items.Repo, structureID int64) error {
	state, err := store.Get(structureID)
	if err != nil {
		return err
	}
	burning := false
	for _, inst := range state.FuelInstance {
		if inst != 0 {
			burning = true
			break
		}
	}
	if burning == state.IsBurning {
		return nil
	}
	return store.setBurning(structureID, burning)
}

func fuelColumn(slot int) string {
	return [CampfireFuelColumns]string{
		"fuel_instance_0", "fuel_instance_1", "fuel_instance_2", "fuel_instance_3", "fuel_instance_4",
	}[slot]
}

const CampfireFuelColumns = model.CampfireFuelSlots

// SetFuelSlot writes instanceID (or 0 to clear) into one of the five
// fixed fuel columns.
func (s CampfireStore) SetFuelSlot(structureID int64, slot int, instanceID int64) error {
	_, err := s.Tx.Exec(`UPDATE campfire_state SET `+fuelColumn(slot)+` = ? WHERE structure_id = ?`, instanceID, structureID)
	return err
}

// AddFuel places instanceID into a campfire's fuel slot and turns the fire
// on. It uses Place for the generic merge/swap protocol (stacking two
// partial wood stacks in the same slot) then updates the fixed-column
// mirror and re-evaluates is_burning (duty a).
func AddFuel(repo items.Repo, store CampfireStore, actor string, instanceID, structureID int64, slot int, now time.Time) error {
	if _, err := store.Get(structureID); err != nil {
		return err
	}
	target := model.ContainerLoc(model.ContainerCampfire, structureID, slot)
	if err := Place(repo, actor, instanceID, target, now, Hooks{}); err != nil {
		return err
	}
	occupant, _, err := repo.FindAtLocation(target)
	if err != nil {
		return err
	}
	if err := store.SetFuelSlot(structureID, slot, occupant.InstanceID); err != nil {
		return err
	}
	return ReevaluateBurning(store, repo, structureID)
}

// RemoveFuel moves a campfire's fuel slot contents to the player's
// inventory, or to the ground at the campfire's own position if the
// inventory is full, and re-evaluates is_burning.
func RemoveFuel(repo items.Repo, store CampfireStore, identity string, structureID int64, slot int, now time.Time) error {
	source := model.ContainerLoc(model.ContainerCampfire, structureID, slot)
	occupant, occupied, err := repo.FindAtLocation(source)
	if err != nil {
		return err
	}
	if !occupied {
		return nil
	}
	invSlot, err := repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerInventoryLoc(identity, s) }, items.InventoryCapacity)
	if err != nil {
		return err
	}
	if invSlot >= 0 {
		if err := Place(repo, identity, occupant.InstanceID, model.PlayerInventoryLoc(identity, invSlot), now, Hooks{}); err != nil {
			return err
		}
	} else {
		var x, y float64
		if err := store.Tx.QueryRow(`SELECT pos_x, pos_y FROM structure WHERE id = ?`, structureID).Scan(&x, &y); err != nil {
			return err
		}
		if err := Drop(repo, occupant.InstanceID, x, y, now, Hooks{}); err != nil {
			return err
		}
	}
	if err := store.SetFuelSlot(structureID, slot, 0); err != nil {
		return err
	}
	return ReevaluateBurning(store, repo, structureID)
}
