package resource

import (
	"database/sql"
	"math/rand"
	"time"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/player"
)

// Interact implements the direct single-hit harvest path (§4.5 steps 1-2,
// then Harvest) used by the five plant reducers (`interact_with_corn`,
// `_mushroom`, `_hemp`, `_potato`, `_pumpkin`). Trees and stones are
// harvested through combat damage instead; once their health reaches
// zero the combat package calls Harvest directly.
func Interact(repo Repo, itemsRepo items.Repo, players player.Repo, identity string, nodeID int64, now time.Time, rng *rand.Rand) error {
	node, err := repo.Get(nodeID)
	if err != nil {
		return err
	}
	if !node.Available() {
		return gameerr.New(gameerr.AlreadyHarvested, "resource %d is respawning", nodeID)
	}

	p, err := players.Get(identity)
	if err != nil {
		return err
	}
	dx, dy := p.PositionX-node.PosX, p.PositionY-node.PosY
	if dx*dx+dy*dy > model.PlayerResourceInteractionDistanceSq {
		return gameerr.New(gameerr.TooFar, "too far from resource %d", nodeID)
	}

	return Harvest(repo, itemsRepo, identity, node, now, rng)
}

// Harvest rolls the primary (and possibly secondary) yield for node,
// deposits it in identity's inventory, and schedules respawn (§4.5 steps
// 3-6). Aborts with no state change if the primary add fails for lack of
// inventory room; a full secondary yield only logs and is dropped.
func Harvest(repo Repo, itemsRepo items.Repo, identity string, node model.ResourceNode, now time.Time, rng *rand.Rand) error {
	c, ok := Table[node.Kind]
	if !ok {
		return gameerr.New(gameerr.Internal, "no resource constants for kind %s", node.Kind)
	}

	primaryDef, err := itemsRepo.GetItemDefByName(c.PrimaryDef)
	if err != nil {
		return err
	}
	primaryQty := randRange(rng, c.PrimaryMin, c.PrimaryMax)
	if err := items.Add(itemsRepo, identity, primaryDef.ID, primaryQty); err != nil {
		// Step 4: do not schedule respawn if the primary add fails.
		return err
	}

	if c.SecondaryDef != "" && rng.Float64() < c.SecondaryChance {
		secondaryDef, err := itemsRepo.GetItemDefByName(c.SecondaryDef)
		if err == nil {
			secondaryQty := randRange(rng, c.SecondaryMin, c.SecondaryMax)
			// Step 5: a full inventory on the secondary yield never aborts
			// the harvest that already committed the primary yield.
			_ = items.Add(itemsRepo, identity, secondaryDef.ID, secondaryQty)
		}
	}

	respawnSecs := c.MinRespawnSecs
	if c.MaxRespawnSecs > c.MinRespawnSecs {
		respawnSecs += rng.Intn(c.MaxRespawnSecs - c.MinRespawnSecs)
	}
	respawnAt := now.Add(time.Duration(respawnSecs) * time.Second)
	return repo.SetRespawnAt(node.ID, sql.NullTime{Time: respawnAt, Valid: true})
}

func randRange(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// Tick sweeps every node of kind whose respawn_at has elapsed, clearing
// it and restoring full health for trees/stones (§4.5 closing
// paragraph).
func Tick(repo Repo, kind model.ResourceKind, now time.Time) error {
	due, err := repo.DueForRespawn(kind, now)
	if err != nil {
		return err
	}
	for _, n := range due {
		if n.MaxHealth > 0 {
			if err := repo.RestoreHealth(n.ID, n.MaxHealth); err != nil {
				return err
			}
			continue
		}
		if err := repo.SetRespawnAt(n.ID, sql.NullTime{}); err != nil {
			return err
		}
	}
	return nil
}
