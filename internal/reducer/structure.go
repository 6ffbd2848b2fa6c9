package reducer

import (
	"math"

	"github.com/vitadek/survival/internal/container"
	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/player"
	"github.com/vitadek/survival/internal/spatial"
	"github.com/vitadek/survival/internal/structure"
)

// placementClearanceSq is the squared minimum distance a new structure
// must keep from any existing player, structure, or resource node,
// mirroring the resource-placement "min same-kind distance" pattern
// (§4.5) applied to player-built placeables in the absence of a
// surviving placement.rs in original_source.
const placementClearanceSq = 48.0 * 48.0

// placementRangeSq bounds how far from the placing player's own position
// a structure may land, reusing §4.5's player-resource interaction range.
const placementRangeSq = model.PlayerResourceInteractionDistanceSq

func clearToPlace(g *spatial.Grid, x, y float64) error {
	for _, e := range g.EntitiesInRange(x, y) {
		dx, dy := x-e.X, y-e.Y
		if dx*dx+dy*dy < placementClearanceSq {
			return gameerr.New(gameerr.Occupied, "position too close to an existing entity")
		}
	}
	return nil
}

// payBuildCost consumes kind's full repair_cost amounts from actor's
// inventory/hotbar: that table's "amount to fully repair from zero" is
// exactly a from-scratch build cost, so it is reused rather than
// duplicated into a second cost table (Open Question decision, DESIGN.md).
func payBuildCost(repo structure.Repo, itemsRepo items.Repo, actor string, kind model.StructureKind) error {
	costs, err := repo.RepairCostFor(kind)
	if err != nil {
		return err
	}
	type consumption struct {
		def model.ItemDefinition
		qty int
	}
	var plan []consumption
	for name, amount := range costs {
		def, err := itemsRepo.GetItemDefByName(name)
		if err != nil {
			return err
		}
		need := int(math.Ceil(amount))
		rows, err := itemsRepo.ListByOwnerAndDef(actor, def.ID, model.LocationPlayerInventory, model.LocationPlayerHotbar)
		if err != nil {
			return err
		}
		have := 0
		for _, r := range rows {
			have += r.Quantity
		}
		if have < need {
			return gameerr.New(gameerr.InsufficientResources, "need %d %s, have %d", need, def.Name, have)
		}
		plan = append(plan, consumption{def: def, qty: need})
	}
	for _, c := range plan {
		rows, err := itemsRepo.ListByOwnerAndDef(actor, c.def.ID, model.LocationPlayerInventory, model.LocationPlayerHotbar)
		if err != nil {
			return err
		}
		remaining := c.qty
		for _, row := range rows {
			if remaining == 0 {
				break
			}
			take := remaining
			if take > row.Quantity {
				take = row.Quantity
			}
			if take == row.Quantity {
				if err := itemsRepo.Delete(row.InstanceID); err != nil {
					return err
				}
			} else if err := itemsRepo.UpdateQuantity(row.InstanceID, row.Quantity-take); err != nil {
				return err
			}
			remaining -= take
		}
	}
	return nil
}

func placeStructure(ctx *Context, kind model.StructureKind, maxHealth, x, y float64) (model.Structure, error) {
	players := player.Repo{Tx: ctx.Tx}
	p, err := players.Get(ctx.Sender)
	if err != nil {
		return model.Structure{}, err
	}
	dx, dy := p.PositionX-x, p.PositionY-y
	if dx*dx+dy*dy > placementRangeSq {
		return model.Structure{}, gameerr.New(gameerr.TooFar, "placement position too far from player")
	}

	grid, err := spatial.PopulateFromWorld(ctx.Tx)
	if err != nil {
		return model.Structure{}, err
	}
	if err := clearToPlace(grid, x, y); err != nil {
		return model.Structure{}, err
	}

	repo := structure.Repo{Tx: ctx.Tx}
	itemsRepo := items.Repo{Tx: ctx.Tx}
	if err := payBuildCost(repo, itemsRepo, ctx.Sender, kind); err != nil {
		return model.Structure{}, err
	}

	id, err := repo.Insert(model.Structure{Kind: kind, PosX: x, PosY: y, PlacedBy: ctx.Sender, Health: maxHealth, MaxHealth: maxHealth})
	if err != nil {
		return model.Structure{}, err
	}
	if kind == model.StructureCampfire {
		store := container.CampfireStore{Tx: ctx.Tx}
		if _, err := store.Get(id); err != nil {
			return model.Structure{}, err
		}
	}
	return repo.Get(id)
}

func PlaceCampfire(ctx *Context, x, y float64) (model.Structure, error) {
	return placeStructure(ctx, model.StructureCampfire, model.CampfireMaxHealth, x, y)
}

func PlaceShelter(ctx *Context, x, y float64) (model.Structure, error) {
	return placeStructure(ctx, model.StructureShelter, model.ShelterMaxHealth, x, y)
}
