package reducer

import (
	"database/sql"
	"errors"
	"time"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/player"
)

// KillSelf implements the `/kill` admin/util reducer (§6): instantly
// kills the caller's own player, gated by a 300s per-identity cooldown so
// it cannot be used to dodge an active attack repeatedly.
func KillSelf(ctx *Context) error {
	var last time.Time
	err := ctx.Tx.QueryRow(`SELECT last_kill_command_at FROM player_kill_command_cooldown WHERE player_identity = ?`, ctx.Sender).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if err == nil && ctx.Now.Sub(last) < model.KillCommandCooldownSecs*time.Second {
		return gameerr.New(gameerr.Cooldown, "/kill is on cooldown for %s more",
			(model.KillCommandCooldownSecs*time.Second - ctx.Now.Sub(last)).Round(time.Second))
	}

	players := player.Repo{Tx: ctx.Tx}
	p, err := players.Get(ctx.Sender)
	if err != nil {
		return err
	}
	if _, err := players.ApplyDamage(ctx.Sender, p.Health, ctx.Now); err != nil {
		return err
	}

	_, err = ctx.Tx.Exec(`INSERT INTO player_kill_command_cooldown (player_identity, last_kill_command_at) VALUES (?, ?)
		ON CONFLICT(player_identity) DO UPDATE SET last_kill_command_at = excluded.last_kill_command_at`, ctx.Sender, ctx.Now)
	return err
}

// CrushBoneItem implements crush_bone_item(instance) (§6): destroys a
// Bone item instance and yields Bone Fragments in its place, the
// original's only documented use for the "bone" item category beyond
// crafting material storage.
func CrushBoneItem(ctx *Context, instanceID int64) error {
	repo := items.Repo{Tx: ctx.Tx}
	item, err := repo.GetInstance(instanceID)
	if err != nil {
		return err
	}
	def, err := repo.GetItemDef(item.ItemDefID)
	if err != nil {
		return err
	}
	if def.Name != "Bone" {
		return gameerr.New(gameerr.InvalidSlot, "instance %d is not Bone", instanceID)
	}
	if item.OwnerIdentity != ctx.Sender {
		return gameerr.New(gameerr.NotOwned, "instance %d is not owned by %s", instanceID, ctx.Sender)
	}

	fragments, err := repo.GetItemDefByName("Bone Fragments")
	if err != nil {
		return err
	}
	qty := item.Quantity * 3
	if err := repo.Delete(instanceID); err != nil {
		return err
	}
	return items.Add(repo, ctx.Sender, fragments.ID, qty)
}
