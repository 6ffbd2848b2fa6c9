// Package combat resolves melee attacks (§4.8): a range check, a
// per-player swing rate limit, a 3x3-cell target search narrowed by type
// priority and distance, and per-target-kind damage/yield dispatch.
// Animals are named in the type priority order but no animal table
// exists in this schema (none was present in the distilled spec or in
// original_source/), so that tier never matches — not a dropped
// feature, just structurally empty.
package combat

import (
	"database/sql"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/vitadek/survival/internal/container"
	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/player"
	"github.com/vitadek/survival/internal/resource"
	"github.com/vitadek/survival/internal/spatial"
	"github.com/vitadek/survival/internal/structure"
)

// Target is the resolved entity an attack will affect.
type Target struct {
	Kind spatial.EntityKind
	ID   string
}

// priority ranks entity kinds for target selection: players first, then
// the vacant animal tier, then resources, then structures (§4.8).
func priority(k spatial.EntityKind) int {
	switch k {
	case spatial.EntityPlayer:
		return 0
	case spatial.EntityTree, spatial.EntityStone, spatial.EntityPlant:
		return 2
	case spatial.EntityCampfire, spatial.EntityStorageBox, spatial.EntityShelter:
		return 3
	default:
		return 99
	}
}

// Resolve picks the single best target within 3x3 cells of (x, y),
// excluding excludeID (the attacker themselves), by priority then by
// squared distance.
func Resolve(g *spatial.Grid, x, y float64, excludeID string) (Target, bool) {
	var best Target
	bestPriority := 100
	bestDistSq := 0.0
	found := false

	for _, e := range g.EntitiesInRange(x, y) {
		if e.Kind == spatial.EntityPlayer && e.ID == excludeID {
			continue
		}
		if e.Kind == spatial.EntityDroppedItem || e.Kind == spatial.EntityPlayerCorpse {
			continue // not attackable targets
		}
		p := priority(e.Kind)
		if p == 99 {
			continue
		}
		dx, dy := e.X-x, e.Y-y
		distSq := dx*dx + dy*dy
		if distSq > model.AttackRangeSq {
			continue
		}
		if !found || p < bestPriority || (p == bestPriority && distSq < bestDistSq) {
			best = Target{Kind: e.Kind, ID: e.ID}
			bestPriority = p
			bestDistSq = distSq
			found = true
		}
	}
	return best, found
}

// Attack implements the full swing: rate-limit, resolve a target, then
// dispatch damage or, if the attacker's main-hand item is a repair tool
// and the target is a structure, a repair instead of damage (§4.6's
// closing paragraph).
func Attack(tx *sql.Tx, g *spatial.Grid, attacker string, now time.Time, rng *rand.Rand) error {
	if err := checkSwingCooldown(tx, attacker, now); err != nil {
		return err
	}

	players := player.Repo{Tx: tx}
	p, err := players.Get(attacker)
	if err != nil {
		return err
	}

	target, found := Resolve(g, p.PositionX, p.PositionY, attacker)
	if !found {
		return gameerr.New(gameerr.NotFound, "no target in range")
	}

	itemsRepo := items.Repo{Tx: tx}
	eq := container.EquipmentStore{Tx: tx}
	mainHand, hasWeapon, err := resolveMainHand(itemsRepo, eq, attacker)
	if err != nil {
		return err
	}
	damage := model.DefaultUnarmedDamage
	isRepairTool := false
	if hasWeapon {
		damage = mainHand.Damage
		isRepairTool = mainHand.IsRepairTool
	}

	if err := stampAttackTimestamp(tx, attacker, now); err != nil {
		return err
	}

	switch target.Kind {
	case spatial.EntityPlayer:
		_, err := players.ApplyDamage(target.ID, damage, now)
		return err

	case spatial.EntityTree, spatial.EntityStone:
		return attackResource(tx, itemsRepo, target.ID, attacker, damage, now, rng)

	case spatial.EntityCampfire, spatial.EntityStorageBox, spatial.EntityShelter:
		return attackStructure(tx, itemsRepo, target.ID, attacker, damage, isRepairTool, now)

	default:
		return gameerr.New(gameerr.Internal, "unhandled target kind %s", target.Kind)
	}
}

func resolveMainHand(repo items.Repo, eq container.EquipmentStore, identity string) (model.ItemDefinition, bool, error) {
	e, err := eq.Get(identity)
	if err != nil {
		return model.ItemDefinition{}, false, err
	}
	if e.MainHandItem == 0 {
		return model.ItemDefinition{}, false, nil
	}
	item, err := repo.GetInstance(e.MainHandItem)
	if err != nil {
		return model.ItemDefinition{}, false, err
	}
	def, err := repo.GetItemDef(item.ItemDefID)
	if err != nil {
		return model.ItemDefinition{}, false, err
	}
	return def, true, nil
}

func checkSwingCooldown(tx *sql.Tx, identity string, now time.Time) error {
	var last time.Time
	err := tx.QueryRow(`SELECT last_attack_timestamp FROM player_last_attack_timestamp WHERE player_identity = ?`, identity).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if now.Sub(last) < time.Duration(model.SwingCooldownSecs*float64(time.Second)) {
		return gameerr.New(gameerr.Cooldown, "attack on cooldown")
	}
	return nil
}

func stampAttackTimestamp(tx *sql.Tx, identity string, now time.Time) error {
	_, err := tx.Exec(`INSERT INTO player_last_attack_timestamp (player_identity, last_attack_timestamp) VALUES (?, ?)
		ON CONFLICT(player_identity) DO UPDATE SET last_attack_timestamp = excluded.last_attack_timestamp`, identity, now)
	return err
}

func attackResource(tx *sql.Tx, itemsRepo items.Repo, idStr, attacker string, damage float64, now time.Time, rng *rand.Rand) error {
	id, err := parseID(idStr)
	if err != nil {
		return err
	}
	repo := resource.Repo{Tx: tx}
	node, err := repo.ApplyDamage(id, damage)
	if err != nil {
		return err
	}
	if node.Health <= 0 {
		return resource.Harvest(repo, itemsRepo, attacker, node, now, rng)
	}
	return nil
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func attackStructure(tx *sql.Tx, itemsRepo items.Repo, idStr, attacker string, damage float64, isRepairTool bool, now time.Time) error {
	id, err := parseID(idStr)
	if err != nil {
		return err
	}
	repo := structure.Repo{Tx: tx}
	s, err := repo.Get(id)
	if err != nil {
		return err
	}
	if isRepairTool {
		_, err := structure.Repair(repo, itemsRepo, s, attacker, now)
		return err
	}
	store := container.CampfireStore{Tx: tx}
	_, err = structure.Damage(repo, store, itemsRepo, s, damage, attacker, now)
	return err
}
