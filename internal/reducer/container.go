package reducer

import (
	"github.com/vitadek/survival/internal/container"
	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
)

func AddFuelToCampfire(ctx *Context, instanceID, structureID int64, slot int) error {
	if slot < 0 || slot >= model.CampfireFuelSlots {
		return gameerr.New(gameerr.InvalidSlot, "campfire fuel slot %d out of range", slot)
	}
	repo := items.Repo{Tx: ctx.Tx}
	store := container.CampfireStore{Tx: ctx.Tx}
	return container.AddFuel(repo, store, ctx.Sender, instanceID, structureID, slot, ctx.Now)
}

func RemoveFuelFromCampfire(ctx *Context, structureID int64, slot int) error {
	if slot < 0 || slot >= model.CampfireFuelSlots {
		return gameerr.New(gameerr.InvalidSlot, "campfire fuel slot %d out of range", slot)
	}
	repo := items.Repo{Tx: ctx.Tx}
	store := container.CampfireStore{Tx: ctx.Tx}
	return container.RemoveFuel(repo, store, ctx.Sender, structureID, slot, ctx.Now)
}

// SplitStackFromCampfire implements §6's split_stack_from_campfire: it
// splits qty off instanceID and places the new stack into the given
// campfire fuel slot; the source keeps the rest where it is.
func SplitStackFromCampfire(ctx *Context, instanceID int64, qty int, structureID int64, slot int) (int64, error) {
	return SplitAndMove(ctx, instanceID, qty, model.LocationContainer, model.ContainerCampfire, structureID, slot)
}

// AutoAddWoodToCampfire implements auto_add_wood_to_campfire(structure)
// (§6): finds the actor's largest Wood stack and feeds it into the first
// empty fuel slot. A campfire with no empty slot returns Occupied, even
// when one of its slots holds a partial Wood stack.
func AutoAddWoodToCampfire(ctx *Context, structureID int64) error {
	repo := items.Repo{Tx: ctx.Tx}
	wood, err := repo.GetItemDefByName("Wood")
	if err != nil {
		return err
	}
	rows, err := repo.ListByOwnerAndDef(ctx.Sender, wood.ID, model.LocationPlayerInventory, model.LocationPlayerHotbar)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return gameerr.New(gameerr.NotFound, "no wood to add")
	}
	// Largest stack first: ListByOwnerAndDef orders quantity ASC, so take
	// the last row.
	source := rows[len(rows)-1]

	store := container.CampfireStore{Tx: ctx.Tx}
	state, err := store.Get(structureID)
	if err != nil {
		return err
	}
	slot := -1
	for i, inst := range state.FuelInstance {
		if inst == 0 {
			slot = i
			break
		}
	}
	if slot < 0 {
		return gameerr.New(gameerr.Occupied, "campfire has no empty fuel slot")
	}
	return container.AddFuel(repo, store, ctx.Sender, source.InstanceID, structureID, slot, ctx.Now)
}

func AddItemToStorageBox(ctx *Context, instanceID, structureID int64, slot int) error {
	if slot < 0 || slot >= model.StorageBoxSlots {
		return gameerr.New(gameerr.InvalidSlot, "storage box slot %d out of range", slot)
	}
	repo := items.Repo{Tx: ctx.Tx}
	target := model.ContainerLoc(model.ContainerStorageBox, structureID, slot)
	return container.Place(repo, ctx.Sender, instanceID, target, ctx.Now, container.Hooks{})
}

func RemoveItemFromStorageBox(ctx *Context, instanceID int64) error {
	repo := items.Repo{Tx: ctx.Tx}
	slot, err := repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerInventoryLoc(ctx.Sender, s) }, items.InventoryCapacity)
	if err != nil {
		return err
	}
	if slot < 0 {
		return gameerr.New(gameerr.InventoryFull, "inventory full")
	}
	return container.Place(repo, ctx.Sender, instanceID, model.PlayerInventoryLoc(ctx.Sender, slot), ctx.Now, container.Hooks{})
}

func SplitAndMoveToStorageBox(ctx *Context, instanceID int64, qty int, structureID int64, slot int) (int64, error) {
	if slot < 0 || slot >= model.StorageBoxSlots {
		return 0, gameerr.New(gameerr.InvalidSlot, "storage box slot %d out of range", slot)
	}
	return SplitAndMove(ctx, instanceID, qty, model.LocationContainer, model.ContainerStorageBox, structureID, slot)
}

// TakeFromCorpse implements §6's corpse looting reducer: a corpse has no
// fixed capacity, so any occupied slot can be drawn directly into the
// looter's inventory.
func TakeFromCorpse(ctx *Context, instanceID int64) error {
	repo := items.Repo{Tx: ctx.Tx}
	slot, err := repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerInventoryLoc(ctx.Sender, s) }, items.InventoryCapacity)
	if err != nil {
		return err
	}
	if slot < 0 {
		return gameerr.New(gameerr.InventoryFull, "inventory full")
	}
	return container.Place(repo, ctx.Sender, instanceID, model.PlayerInventoryLoc(ctx.Sender, slot), ctx.Now, container.Hooks{})
}
