package reducer

import (
	"github.com/vitadek/survival/internal/container"
	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
)

func MoveItemToInventory(ctx *Context, instanceID int64, slot int) error {
	if slot < 0 || slot >= items.InventoryCapacity {
		return gameerr.New(gameerr.InvalidSlot, "inventory slot %d out of range", slot)
	}
	repo := items.Repo{Tx: ctx.Tx}
	return container.Place(repo, ctx.Sender, instanceID, model.PlayerInventoryLoc(ctx.Sender, slot), ctx.Now, container.Hooks{})
}

func MoveItemToHotbar(ctx *Context, instanceID int64, slot int) error {
	if slot < 0 || slot >= items.HotbarCapacity {
		return gameerr.New(gameerr.InvalidSlot, "hotbar slot %d out of range", slot)
	}
	repo := items.Repo{Tx: ctx.Tx}
	return container.Place(repo, ctx.Sender, instanceID, model.PlayerHotbarLoc(ctx.Sender, slot), ctx.Now, container.Hooks{})
}

func MoveToFirstAvailableHotbarSlot(ctx *Context, instanceID int64) error {
	repo := items.Repo{Tx: ctx.Tx}
	slot, err := repo.FirstEmptySlot(func(s int) model.ItemLocation { return model.PlayerHotbarLoc(ctx.Sender, s) }, items.HotbarCapacity)
	if err != nil {
		return err
	}
	if slot < 0 {
		return gameerr.New(gameerr.Occupied, "hotbar is full")
	}
	return container.Place(repo, ctx.Sender, instanceID, model.PlayerHotbarLoc(ctx.Sender, slot), ctx.Now, container.Hooks{})
}

// SplitStack implements split_stack(instance, qty, kind, slot) (§6): the
// resulting unlocated row is immediately placed at the given slot in the
// same reducer call, since a split with nowhere to go is not useful.
func SplitStack(ctx *Context, instanceID int64, qty int, kind model.LocationKind, slot int) (int64, error) {
	repo := items.Repo{Tx: ctx.Tx}
	source, err := repo.GetInstance(instanceID)
	if err != nil {
		return 0, err
	}
	def, err := repo.GetItemDef(source.ItemDefID)
	if err != nil {
		return 0, err
	}
	sourceRemaining, newQty, err := items.Split(def, source, qty)
	if err != nil {
		return 0, err
	}
	if err := repo.UpdateQuantity(instanceID, sourceRemaining); err != nil {
		return 0, err
	}

	var target model.ItemLocation
	switch kind {
	case model.LocationPlayerInventory:
		target = model.PlayerInventoryLoc(ctx.Sender, slot)
	case model.LocationPlayerHotbar:
		target = model.PlayerHotbarLoc(ctx.Sender, slot)
	default:
		return 0, gameerr.New(gameerr.InvalidSlot, "split_stack only targets inventory/hotbar, got %s", kind)
	}

	newID, err := repo.Insert(model.InventoryItem{ItemDefID: def.ID, Quantity: newQty, OwnerIdentity: ctx.Sender})
	if err != nil {
		return 0, err
	}
	if err := container.Place(repo, ctx.Sender, newID, target, ctx.Now, container.Hooks{}); err != nil {
		// Orphan-deletion rule (§4.2/§9 Design Notes): a freshly split
		// stack that cannot be placed must not linger unlocated.
		repo.Delete(newID)
		return 0, err
	}
	return newID, nil
}

// SplitAndMove implements split_and_move(instance, qty, kind, slot,
// optional container_id) (§6). kind is a LocationKind so the same
// reducer can target a player's own inventory/hotbar (S2) as well as a
// container (campfire/storage box/corpse); containerKind/containerID are
// only consulted when kind is LocationContainer.
func SplitAndMove(ctx *Context, instanceID int64, qty int, kind model.LocationKind, containerKind model.ContainerKind, containerID int64, slot int) (int64, error) {
	repo := items.Repo{Tx: ctx.Tx}
	source, err := repo.GetInstance(instanceID)
	if err != nil {
		return 0, err
	}
	def, err := repo.GetItemDef(source.ItemDefID)
	if err != nil {
		return 0, err
	}
	sourceRemaining, newQty, err := items.Split(def, source, qty)
	if err != nil {
		return 0, err
	}
	if err := repo.UpdateQuantity(instanceID, sourceRemaining); err != nil {
		return 0, err
	}

	newID, err := repo.Insert(model.InventoryItem{ItemDefID: def.ID, Quantity: newQty})
	if err != nil {
		return 0, err
	}

	var target model.ItemLocation
	switch kind {
	case model.LocationPlayerInventory:
		target = model.PlayerInventoryLoc(ctx.Sender, slot)
	case model.LocationPlayerHotbar:
		target = model.PlayerHotbarLoc(ctx.Sender, slot)
	case model.LocationContainer:
		target = model.ContainerLoc(containerKind, containerID, slot)
	default:
		repo.Delete(newID)
		return 0, gameerr.New(gameerr.InvalidSlot, "split_and_move target kind %s not supported", kind)
	}
	if err := container.Place(repo, ctx.Sender, newID, target, ctx.Now, container.Hooks{}); err != nil {
		repo.Delete(newID)
		return 0, err
	}
	return newID, nil
}

// DropItem implements drop_item(instance, qty) (§6): a full-stack drop
// relocates the instance; a partial drop splits first. Either way the
// result lands at the dropping player's current position.
func DropItem(ctx *Context, instanceID int64, qty int) error {
	repo := items.Repo{Tx: ctx.Tx}
	source, err := repo.GetInstance(instanceID)
	if err != nil {
		return err
	}

	var posX, posY float64
	if err := ctx.Tx.QueryRow(`SELECT position_x, position_y FROM player WHERE identity = ?`, ctx.Sender).Scan(&posX, &posY); err != nil {
		return err
	}

	if qty >= source.Quantity {
		return container.Drop(repo, instanceID, posX, posY, ctx.Now, container.Hooks{})
	}

	def, err := repo.GetItemDef(source.ItemDefID)
	if err != nil {
		return err
	}
	sourceRemaining, newQty, err := items.Split(def, source, qty)
	if err != nil {
		return err
	}
	if err := repo.UpdateQuantity(instanceID, sourceRemaining); err != nil {
		return err
	}
	newID, err := repo.Insert(model.InventoryItem{ItemDefID: def.ID, Quantity: newQty})
	if err != nil {
		return err
	}
	return container.Drop(repo, newID, posX, posY, ctx.Now, container.Hooks{})
}
