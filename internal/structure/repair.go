package structure

import (
	"math"
	"time"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
)

// Repair implements §4.6's repair(structure, actor) reducer: refuse if
// destroyed, gate behind the PvP cooldown unless the actor is the owner
// self-repairing, compute and consume proportional resource cost, then
// restore health.
func Repair(repo Repo, itemsRepo items.Repo, s model.Structure, actor string, now time.Time) (model.Structure, error) {
	if s.IsDestroyed {
		return model.Structure{}, gameerr.New(gameerr.Destroyed, "structure %d is destroyed", s.ID)
	}

	if s.LastHitTime != nil && s.LastDamagedBy != "" {
		if actor != s.PlacedBy {
			return model.Structure{}, gameerr.New(gameerr.Cooldown, "only the owner may repair structure %d", s.ID)
		}
		if s.LastDamagedBy != s.PlacedBy {
			elapsed := now.Sub(*s.LastHitTime)
			if elapsed < model.RepairCooldownSecs*time.Second {
				return model.Structure{}, gameerr.New(gameerr.Cooldown, "structure %d is in PvP repair cooldown for %s more",
					s.ID, (model.RepairCooldownSecs*time.Second - elapsed).Round(time.Second))
			}
		}
	}

	repairAmount := RepairAmount(s.Kind)
	if repairAmount == 0 {
		return model.Structure{}, gameerr.New(gameerr.Internal, "no repair amount configured for %s", s.Kind)
	}

	costs, err := repo.RepairCostFor(s.Kind)
	if err != nil {
		return model.Structure{}, err
	}
	fraction := repairAmount / s.MaxHealth

	type consumption struct {
		def model.ItemDefinition
		qty int
	}
	var plan []consumption
	for itemName, amountPerFullRepair := range costs {
		def, err := itemsRepo.GetItemDefByName(itemName)
		if err != nil {
			return model.Structure{}, err
		}
		need := int(math.Ceil(amountPerFullRepair * fraction))
		if need <= 0 {
			continue
		}
		if err := verifyAndPlanConsumption(itemsRepo, actor, def, need); err != nil {
			return model.Structure{}, err
		}
		plan = append(plan, consumption{def: def, qty: need})
	}

	for _, c := range plan {
		if err := consume(itemsRepo, actor, c.def, c.qty); err != nil {
			return model.Structure{}, err
		}
	}

	s.Health += repairAmount
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	s.LastHitTime = &now
	s.LastDamagedBy = actor
	if err := repo.update(s); err != nil {
		return model.Structure{}, err
	}
	return s, nil
}

func verifyAndPlanConsumption(repo items.Repo, owner string, def model.ItemDefinition, need int) error {
	rows, err := repo.ListByOwnerAndDef(owner, def.ID, model.LocationPlayerInventory, model.LocationPlayerHotbar)
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
	return nil
}

// consume drains need units of def from owner's inventory/hotbar rows,
// smallest stack first (§4.6 step 5: "draining smallest-first is
// acceptable").
func consume(repo items.Repo, owner string, def model.ItemDefinition, need int) error {
	rows, err := repo.ListByOwnerAndDef(owner, def.ID, model.LocationPlayerInventory, model.LocationPlayerHotbar)
	if err != nil {
		return err
	}
	remaining := need
	for _, row := range rows {
		if remaining == 0 {
			break
		}
		take := remaining
		if take > row.Quantity {
			take = row.Quantity
		}
		if take == row.Quantity {
			if err := repo.Delete(row.InstanceID); err != nil {
				return err
			}
		} else {
			if err := repo.UpdateQuantity(row.InstanceID, row.Quantity-take); err != nil {
				return err
			}
		}
		remaining -= take
	}
	return nil
}
