// Package container implements the single placement protocol shared by
// every slotted location (§4.3): player inventory/hotbar, equipment,
// campfire fuel, storage box, and corpse. Ground is handled separately
// (Drop, below) since it is unbounded and never merges/swaps.
package container

import (
	"time"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/identity"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
)

// PlayerBound reports whether a location is owned by a specific player,
// i.e. ownership should be reassigned to the acting identity on a
// successful placement there (Design Notes: "Ownership reassignment").
func PlayerBound(kind model.LocationKind) bool {
	return kind == model.LocationPlayerInventory || kind == model.LocationPlayerHotbar || kind == model.LocationEquipment
}

// Hooks lets each container kind (campfire, equipment, ...) react to a
// slot being vacated or filled without the generic Place logic knowing
// their specifics. All hooks are optional.
type Hooks struct {
	// OnVacated fires after a location's prior occupant has been removed
	// or moved away, for the adapter to re-derive its own invariants
	// (campfire is_burning, equipment swing timer).
	OnVacated func(repo items.Repo, loc model.ItemLocation) error
}

// Place resolves the generic merge/swap/place protocol of §4.3 for
// source (currently at repo.GetInstance(sourceID).Location) moving into
// target. actor is the identity performing the move, used to reassign
// ownership when the destination is player-bound. now timestamps any
// dropped_item row the swap branch has to mint for a displaced occupant.
func Place(repo items.Repo, actor string, sourceID int64, target model.ItemLocation, now time.Time, hooks Hooks) error {
	source, err := repo.GetInstance(sourceID)
	if err != nil {
		return err
	}
	prior := source.Location

	occupant, occupied, err := repo.FindAtLocation(target)
	if err != nil {
		return err
	}

	switch {
	case !occupied:
		if err := moveInto(repo, actor, source, target); err != nil {
			return err
		}
	case occupant.InstanceID == source.InstanceID:
		// Already there; normalize location only (no-op move onto self).
		return nil
	default:
		def, err := repo.GetItemDef(source.ItemDefID)
		if err != nil {
			return err
		}
		result, mergeErr := items.Merge(def, source, occupant)
		if mergeErr == nil {
			if err := repo.UpdateQuantity(occupant.InstanceID, result.TargetNewQty); err != nil {
				return err
			}
			if result.DeleteSource {
				if err := repo.Delete(source.InstanceID); err != nil {
					return err
				}
			} else {
				if err := repo.UpdateQuantity(source.InstanceID, result.SourceRemaining); err != nil {
					return err
				}
				// Source keeps its prior slot (Open Question decision,
				// SPEC_FULL §9): a partial merge never relocates a
				// still-occupied source.
				return nil
			}
		} else {
			// Not mergeable: swap, unless source has no prior slot to
			// receive the displaced occupant.
			if prior.Unlocated() {
				return gameerr.New(gameerr.Occupied, "target occupied and source has no prior slot to swap into")
			}
			if err := displaceInto(repo, actor, occupant, prior, now); err != nil {
				return err
			}
			if err := moveInto(repo, actor, source, target); err != nil {
				return err
			}
		}
	}

	return clearVacated(repo, prior, hooks)
}

func moveInto(repo items.Repo, actor string, item model.InventoryItem, target model.ItemLocation) error {
	owner := ""
	if actor != "" && PlayerBound(target.Kind) {
		owner = actor
	}
	return repo.UpdateLocation(item.InstanceID, target, owner)
}

// displaceInto moves item (an occupant being bumped out of target by a
// swap) onto dest. When dest is a Ground location this mints a fresh
// dropped_item row the same way Drop does, rather than reusing whatever
// DroppedID dest was carrying: dest is itself the source's stale prior
// location, and clearVacated is about to delete that row out from under
// whoever is left pointing at it.
func displaceInto(repo items.Repo, actor string, item model.InventoryItem, dest model.ItemLocation, now time.Time) error {
	if dest.Kind == model.LocationGround {
		droppedID := identity.DroppedItemID(item.InstanceID, dest.PosX, dest.PosY, now)
		if err := repo.InsertDroppedRow(droppedID, item.InstanceID, dest.PosX, dest.PosY, now); err != nil {
			return err
		}
		dest.DroppedID = droppedID
	}
	return moveInto(repo, actor, item, dest)
}

func clearVacated(repo items.Repo, prior model.ItemLocation, hooks Hooks) error {
	if prior.Kind == model.LocationGround {
		if err := repo.DeleteDroppedRow(prior.DroppedID); err != nil {
			return err
		}
	}
	if prior.Unlocated() || hooks.OnVacated == nil {
		return nil
	}
	return hooks.OnVacated(repo, prior)
}

// Drop relocates source to a Ground location at (x, y) and stamps a
// content-addressed dropped_item row (duty e): the one location kind the
// generic Place protocol does not handle, since the spatial index and
// §10.2 snapshot both key ground items by a stable string id rather than
// the instance's numeric row id.
func Drop(repo items.Repo, sourceID int64, x, y float64, now time.Time, hooks Hooks) error {
	source, err := repo.GetInstance(sourceID)
	if err != nil {
		return err
	}
	prior := source.Location
	droppedID := identity.DroppedItemID(sourceID, x, y, now)
	if err := repo.InsertDroppedRow(droppedID, sourceID, x, y, now); err != nil {
		return err
	}
	loc := model.GroundLoc(x, y)
	loc.DroppedID = droppedID
	if err := repo.UpdateLocation(source.InstanceID, loc, ""); err != nil {
		return err
	}
	return clearVacated(repo, prior, hooks)
}
