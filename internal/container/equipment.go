package container

import (
	"database/sql"
	"errors"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
)

// EquipmentStore is the raw-SQL accessor for the one active_equipment row
// per identity, grounded in db.go's upsert-on-first-use pattern.
type EquipmentStore struct {
	Tx *sql.Tx
}

func (s EquipmentStore) Get(identity string) (model.ActiveEquipment, error) {
	var e model.ActiveEquipment
	var lastSwing sql.NullTime
	err := s.Tx.QueryRow(`SELECT identity, main_hand_item, head_item, chest_item, legs_item, feet_item, hands_item, back_item, last_swing_at
		FROM active_equipment WHERE identity = ?`, identity).Scan(
		&e.Identity, &e.MainHandItem, &e.HeadItem, &e.ChestItem, &e.LegsItem, &e.FeetItem, &e.HandsItem, &e.BackItem, &lastSwing)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.Tx.Exec(`INSERT INTO active_equipment (identity) VALUES (?)`, identity); err != nil {
			return model.ActiveEquipment{}, err
		}
		return model.ActiveEquipment{Identity: identity}, nil
	}
	e.LastSwingAt = lastSwing.Time
	return e, err
}

func (s EquipmentStore) setColumn(identity, column string, instanceID int64) error {
	_, err := s.Tx.Exec(`UPDATE active_equipment SET `+column+` = ? WHERE identity = ?`, instanceID, identity)
	return err
}

// ClearSwingTimer resets last_swing_at, duty (b): unequipping a weapon
// clears its swing cooldown rather than letting a re-equip inherit it.
func (s EquipmentStore) ClearSwingTimer(identity string) error {
	_, err := s.Tx.Exec(`UPDATE active_equipment SET last_swing_at = NULL WHERE identity = ?`, identity)
	return err
}

func columnForSlot(slot model.EquipSlot) string {
	switch slot {
	case model.EquipHead:
		return "head_item"
	case model.EquipChest:
		return "chest_item"
	case model.EquipLegs:
		return "legs_item"
	case model.EquipFeet:
		return "feet_item"
	case model.EquipHands:
		return "hands_item"
	case model.EquipBack:
		return "back_item"
	default:
		return "main_hand_item"
	}
}

// Equip moves instanceID into identity's equipment slot matching its item
// definition's EquipSlot. Any item already occupying that slot is displaced
// to the first empty inventory slot (duty c); if inventory is full the
// equip is rejected rather than destroying the displaced item.
func Equip(repo items.Repo, eq EquipmentStore, identity string, instanceID int64) error {
	item, err := repo.GetInstance(instanceID)
	if err != nil {
		return err
	}
	def, err := repo.GetItemDef(item.ItemDefID)
	if err != nil {
		return err
	}
	if def.EquipSlot == "" {
		return gameerr.New(gameerr.InvalidSlot, "%q is not equippable", def.Name)
	}

	current, err := eq.Get(identity)
	if err != nil {
		return err
	}
	prior := item.Location

	if existing := current.InstanceForSlot(def.EquipSlot); existing != 0 && existing != instanceID {
		slot, err := repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerInventoryLoc(identity, s) }, items.InventoryCapacity)
		if err != nil {
			return err
		}
		if slot < 0 {
			return gameerr.New(gameerr.InventoryFull, "cannot unequip current %s: inventory full", def.EquipSlot)
		}
		if err := repo.UpdateLocation(existing, model.PlayerInventoryLoc(identity, slot), identity); err != nil {
			return err
		}
		if def.Category != model.CategoryArmor {
			if err := eq.ClearSwingTimer(identity); err != nil {
				return err
			}
		}
	}

	if err := repo.UpdateLocation(instanceID, model.EquipmentLoc(identity, def.EquipSlot), identity); err != nil {
		return err
	}
	if err := eq.setColumn(identity, columnForSlot(def.EquipSlot), instanceID); err != nil {
		return err
	}

	if prior.Kind == model.LocationContainer && prior.ContainerKind == model.ContainerCampfire {
		return ReevaluateBurning(CampfireStore{Tx: eq.Tx}, repo, prior.ContainerID)
	}
	return nil
}

// Unequip moves instanceID from its equipment slot to the first empty
// inventory slot and clears the swing timer for weapons (duty b).
func Unequip(repo items.Repo, eq EquipmentStore, identity string, instanceID int64) error {
	item, err := repo.GetInstance(instanceID)
	if err != nil {
		return err
	}
	def, err := repo.GetItemDef(item.ItemDefID)
	if err != nil {
		return err
	}
	if item.Location.Kind != model.LocationEquipment {
		return gameerr.New(gameerr.InvalidSlot, "instance %d is not equipped", instanceID)
	}
	slot, err := repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerInventoryLoc(identity, s) }, items.InventoryCapacity)
	if err != nil {
		return err
	}
	if slot < 0 {
		return gameerr.New(gameerr.InventoryFull, "inventory full, cannot unequip")
	}
	if err := repo.UpdateLocation(instanceID, model.PlayerInventoryLoc(identity, slot), identity); err != nil {
		return err
	}
	if err := eq.setColumn(identity, columnForSlot(def.EquipSlot), 0); err != nil {
		return err
	}
	if def.Category != model.CategoryArmor {
		return eq.ClearSwingTimer(identity)
	}
	return nil
}
