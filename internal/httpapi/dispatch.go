package httpapi

import (
	"encoding/json"

	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/reducer"
)

// reducerFunc unmarshals a request body and invokes one reducer.Func
// under the open transaction reducer.Run manages. Each entry in the
// dispatch table below is responsible for its own argument shape.
type reducerFunc func(ctx *reducer.Context, body []byte) (interface{}, error)

func decode(body []byte, v interface{}) error {
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

// dispatch maps reducer names to their HTTP body shapes. The names
// match the reducer names a client POSTs to /reducer/{name}.
var dispatch = map[string]reducerFunc{
	"connect": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		return nil, reducer.Connect(ctx)
	},
	"disconnect": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		return nil, reducer.Disconnect(ctx)
	},
	"register_player": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ Username string }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return reducer.RegisterPlayer(ctx, req.Username)
	},
	"update_viewport": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ MinX, MinY, MaxX, MaxY float64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.UpdateViewport(ctx, req.MinX, req.MinY, req.MaxX, req.MaxY)
	},
	"update_player_position": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			X, Y      float64
			Direction string
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.UpdatePlayerPosition(ctx, req.X, req.Y, req.Direction)
	},
	"set_sprinting": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ Sprinting bool }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.SetSprinting(ctx, req.Sprinting)
	},
	"toggle_crouch": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		return nil, reducer.ToggleCrouch(ctx)
	},
	"jump": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		return nil, reducer.Jump(ctx)
	},
	"dodge_roll": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		return nil, reducer.DodgeRoll(ctx)
	},
	"toggle_torch": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		return nil, reducer.ToggleTorch(ctx)
	},
	"respawn_randomly": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		return nil, reducer.RespawnRandomly(ctx)
	},
	"respawn_at_sleeping_bag": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ StructureID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.RespawnAtSleepingBag(ctx, req.StructureID)
	},
	"move_item_to_inventory": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			InstanceID int64
			Slot       int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.MoveItemToInventory(ctx, req.InstanceID, req.Slot)
	},
	"move_item_to_hotbar": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			InstanceID int64
			Slot       int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.MoveItemToHotbar(ctx, req.InstanceID, req.Slot)
	},
	"move_to_first_available_hotbar_slot": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ InstanceID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.MoveToFirstAvailableHotbarSlot(ctx, req.InstanceID)
	},
	"split_stack": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			InstanceID int64
			Qty        int
			Kind       model.LocationKind
			Slot       int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return reducer.SplitStack(ctx, req.InstanceID, req.Qty, req.Kind, req.Slot)
	},
	"split_and_move": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			InstanceID    int64
			Qty           int
			Kind          model.LocationKind
			ContainerKind model.ContainerKind
			ContainerID   int64
			Slot          int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return reducer.SplitAndMove(ctx, req.InstanceID, req.Qty, req.Kind, req.ContainerKind, req.ContainerID, req.Slot)
	},
	"drop_item": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			InstanceID int64
			Qty        int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.DropItem(ctx, req.InstanceID, req.Qty)
	},
	"equip_armor_from_drag": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ InstanceID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.EquipArmorFromDrag(ctx, req.InstanceID)
	},
	"equip_armor_from_inventory": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ InstanceID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.EquipArmorFromInventory(ctx, req.InstanceID)
	},
	"unequip_item": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ InstanceID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.UnequipItem(ctx, req.InstanceID)
	},
	"add_fuel_to_campfire": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			InstanceID  int64
			StructureID int64
			Slot        int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.AddFuelToCampfire(ctx, req.InstanceID, req.StructureID, req.Slot)
	},
	"remove_fuel_from_campfire": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			StructureID int64
			Slot        int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.RemoveFuelFromCampfire(ctx, req.StructureID, req.Slot)
	},
	"split_stack_from_campfire": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			InstanceID  int64
			Qty         int
			StructureID int64
			Slot        int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return reducer.SplitStackFromCampfire(ctx, req.InstanceID, req.Qty, req.StructureID, req.Slot)
	},
	"auto_add_wood_to_campfire": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ StructureID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.AutoAddWoodToCampfire(ctx, req.StructureID)
	},
	"add_item_to_storage_box": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			InstanceID  int64
			StructureID int64
			Slot        int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.AddItemToStorageBox(ctx, req.InstanceID, req.StructureID, req.Slot)
	},
	"remove_item_from_storage_box": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ InstanceID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.RemoveItemFromStorageBox(ctx, req.InstanceID)
	},
	"split_and_move_to_storage_box": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct {
			InstanceID  int64
			Qty         int
			StructureID int64
			Slot        int
		}
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return reducer.SplitAndMoveToStorageBox(ctx, req.InstanceID, req.Qty, req.StructureID, req.Slot)
	},
	"take_from_corpse": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ InstanceID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.TakeFromCorpse(ctx, req.InstanceID)
	},
	"interact_with_corn": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ NodeID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.InteractWithCorn(ctx, req.NodeID)
	},
	"interact_with_mushroom": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ NodeID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.InteractWithMushroom(ctx, req.NodeID)
	},
	"interact_with_hemp": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ NodeID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.InteractWithHemp(ctx, req.NodeID)
	},
	"interact_with_potato": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ NodeID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.InteractWithPotato(ctx, req.NodeID)
	},
	"interact_with_pumpkin": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ NodeID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.InteractWithPumpkin(ctx, req.NodeID)
	},
	"place_campfire": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ X, Y float64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return reducer.PlaceCampfire(ctx, req.X, req.Y)
	},
	"place_shelter": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ X, Y float64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return reducer.PlaceShelter(ctx, req.X, req.Y)
	},
	"attack": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		return nil, reducer.Attack(ctx)
	},
	"kill_self": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		return nil, reducer.KillSelf(ctx)
	},
	"crush_bone_item": func(ctx *reducer.Context, body []byte) (interface{}, error) {
		var req struct{ InstanceID int64 }
		if err := decode(body, &req); err != nil {
			return nil, err
		}
		return nil, reducer.CrushBoneItem(ctx, req.InstanceID)
	},
}
