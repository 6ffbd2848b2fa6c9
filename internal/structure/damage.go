package structure

import (
	"time"

	"github.com/vitadek/survival/internal/container"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
)

// Damage applies dmg to a structure (§4.6): clamp health, stamp
// last_hit_time/last_damaged_by, and on death drain contained items to
// ground and mark destroyed.
func Damage(repo Repo, store container.CampfireStore, itemsRepo items.Repo, s model.Structure, dmg float64, attacker string, now time.Time) (model.Structure, error) {
	s.Health -= dmg
	if s.Health < 0 {
		s.Health = 0
	}
	s.LastHitTime = &now
	s.LastDamagedBy = attacker

	if s.Health == 0 && !s.IsDestroyed {
		s.IsDestroyed = true
		if err := drainContents(repo, store, itemsRepo, s, now); err != nil {
			return model.Structure{}, err
		}
	}

	if err := repo.update(s); err != nil {
		return model.Structure{}, err
	}
	return s, nil
}

// drainContents relocates a destroyed structure's held items to the
// ground at its position (§4.6: "campfire fuel and storage box contents
// are relocated to ground"). Shelter/SleepingBag carry no item rows of
// their own here; their "was-inside" effects are out of scope for the
// relational core (no occupancy table in §3).
func drainContents(repo Repo, store container.CampfireStore, itemsRepo items.Repo, s model.Structure, now time.Time) error {
	var kind model.ContainerKind
	var slots int
	switch s.Kind {
	case model.StructureCampfire:
		kind = model.ContainerCampfire
		slots = model.CampfireFuelSlots
	case model.StructureStorageBox:
		kind = model.ContainerStorageBox
		slots = model.StorageBoxSlots
	default:
		return nil
	}

	for slot := 0; slot < slots; slot++ {
		loc := model.ContainerLoc(kind, s.ID, slot)
		occupant, occupied, err := itemsRepo.FindAtLocation(loc)
		if err != nil {
			return err
		}
		if !occupied {
			continue
		}
		if err := container.Drop(itemsRepo, occupant.InstanceID, s.PosX, s.PosY, now, container.Hooks{}); err != nil {
			return err
		}
	}
	if kind == model.ContainerCampfire {
		for slot := 0; slot < model.CampfireFuelSlots; slot++ {
			if err := store.SetFuelSlot(s.ID, slot, 0); err != nil {
				return err
			}
		}
	}
	return nil
}
