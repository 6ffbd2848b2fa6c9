package items

import (
	"sort"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/model"
)

const (
	HotbarCapacity    = 6
	InventoryCapacity = 24
)

// Add implements the gather path of §4.4: stack onto hotbar, then
// inventory, of the same definition, then place any remainder in the
// first empty hotbar slot, then the first empty inventory slot. Returns
// InventoryFull if quantity remains unplaced; non-stackable items place
// exactly one regardless of qty, leaving the remainder to the caller.
func Add(repo Repo, owner string, defID int64, qty int) error {
	def, err := repo.GetItemDef(defID)
	if err != nil {
		return err
	}

	if !def.IsStackable {
		return addSingle(repo, owner, def)
	}

	remaining := qty

	// 1. Stack onto existing hotbar rows, left to right.
	remaining, err = stackOnto(repo, owner, def, model.LocationPlayerHotbar, remaining)
	if err != nil {
		return err
	}
	if remaining == 0 {
		return nil
	}

	// 2. Stack onto existing inventory rows.
	remaining, err = stackOnto(repo, owner, def, model.LocationPlayerInventory, remaining)
	if err != nil {
		return err
	}
	if remaining == 0 {
		return nil
	}

	// 3. Place remainder in new stacks, hotbar first then inventory.
	for remaining > 0 {
		slot, err := repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerHotbarLoc(owner, s) }, HotbarCapacity)
		if err != nil {
			return err
		}
		loc := model.LocationKind("")
		if slot >= 0 {
			loc = model.LocationPlayerHotbar
		} else {
			slot, err = repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerInventoryLoc(owner, s) }, InventoryCapacity)
			if err != nil {
				return err
			}
			if slot < 0 {
				return gameerr.New(gameerr.InventoryFull, "no room for %d more %s", remaining, def.Name)
			}
			loc = model.LocationPlayerInventory
		}

		placeQty := remaining
		if placeQty > def.StackSize {
			placeQty = def.StackSize
		}
		var target model.ItemLocation
		if loc == model.LocationPlayerHotbar {
			target = model.PlayerHotbarLoc(owner, slot)
		} else {
			target = model.PlayerInventoryLoc(owner, slot)
		}
		if _, err := repo.Insert(model.InventoryItem{
			ItemDefID:     def.ID,
			Quantity:      placeQty,
			OwnerIdentity: owner,
			Location:      target,
		}); err != nil {
			return err
		}
		remaining -= placeQty
	}
	return nil
}

// stackOnto pours remaining units onto existing rows of def owned by
// owner within the given location kind, left-to-right by slot.
func stackOnto(repo Repo, owner string, def model.ItemDefinition, kind model.LocationKind, remaining int) (int, error) {
	rows, err := repo.ListByOwnerAndDef(owner, def.ID, kind)
	if err != nil {
		return remaining, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Location.Slot < rows[j].Location.Slot })
	for _, row := range rows {
		if remaining == 0 {
			break
		}
		space := def.StackSize - row.Quantity
		if space <= 0 {
			continue
		}
		transfer := remaining
		if transfer > space {
			transfer = space
		}
		if err := repo.UpdateQuantity(row.InstanceID, row.Quantity+transfer); err != nil {
			return remaining, err
		}
		remaining -= transfer
	}
	return remaining, nil
}

func addSingle(repo Repo, owner string, def model.ItemDefinition) error {
	slot, err := repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerHotbarLoc(owner, s) }, HotbarCapacity)
	if err != nil {
		return err
	}
	if slot >= 0 {
		_, err := repo.Insert(model.InventoryItem{ItemDefID: def.ID, Quantity: 1, OwnerIdentity: owner, Location: model.PlayerHotbarLoc(owner, slot)})
		return err
	}
	slot, err = repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerInventoryLoc(owner, s) }, InventoryCapacity)
	if err != nil {
		return err
	}
	if slot < 0 {
		return gameerr.New(gameerr.InventoryFull, "no room for %s", def.Name)
	}
	_, err = repo.Insert(model.InventoryItem{ItemDefID: def.ID, Quantity: 1, OwnerIdentity: owner, Location: model.PlayerInventoryLoc(owner, slot)})
	return err
}
