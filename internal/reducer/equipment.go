package reducer

import (
	"github.com/vitadek/survival/internal/container"
	"github.com/vitadek/survival/internal/items"
)

// EquipArmorFromDrag and EquipArmorFromInventory both implement §6's
// equip reducers; the drag/inventory distinction is a client-UI concern
// the relational core does not need to tell apart.
func EquipArmorFromDrag(ctx *Context, instanceID int64) error {
	repo := items.Repo{Tx: ctx.Tx}
	eq := container.EquipmentStore{Tx: ctx.Tx}
	return container.Equip(repo, eq, ctx.Sender, instanceID)
}

func EquipArmorFromInventory(ctx *Context, instanceID int64) error {
	repo := items.Repo{Tx: ctx.Tx}
	eq := container.EquipmentStore{Tx: ctx.Tx}
	return container.Equip(repo, eq, ctx.Sender, instanceID)
}

func UnequipItem(ctx *Context, instanceID int64) error {
	repo := items.Repo{Tx: ctx.Tx}
	eq := container.EquipmentStore{Tx: ctx.Tx}
	return container.Unequip(repo, eq, ctx.Sender, instanceID)
}
