// Package crafting implements only the scheduling mechanism §10.6 and
// the Non-goals carve-out ask for: one row per in-progress craft and a
// sweep that finishes due ones. What a recipe actually produces is
// recipe data, explicitly out of scope, so Finish is a caller-supplied
// hook rather than a baked-in recipe table.
package crafting

import (
	"database/sql"
	"time"

	"github.com/vitadek/survival/internal/model"
)

type Repo struct {
	Tx *sql.Tx
}

// Enqueue schedules a craft to finish after duration, mirroring
// resource.Harvest's "schedule respawn_at" pattern applied to a
// player-initiated queue instead of a world-owned node.
func (r Repo) Enqueue(playerIdentity string, recipeID int64, now time.Time, duration time.Duration) (int64, error) {
	res, err := r.Tx.Exec(`INSERT INTO crafting_queue_item (player_identity, recipe_id, finish_at) VALUES (?, ?, ?)`,
		playerIdentity, recipeID, now.Add(duration))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r Repo) Cancel(queueID int64) error {
	_, err := r.Tx.Exec(`DELETE FROM crafting_queue_item WHERE queue_id = ?`, queueID)
	return err
}

func (r Repo) ListForPlayer(playerIdentity string) ([]model.CraftingQueueItem, error) {
	rows, err := r.Tx.Query(`SELECT queue_id, player_identity, recipe_id, finish_at
		FROM crafting_queue_item WHERE player_identity = ? ORDER BY finish_at ASC`, playerIdentity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.CraftingQueueItem
	for rows.Next() {
		var c model.CraftingQueueItem
		if err := rows.Scan(&c.QueueID, &c.PlayerIdentity, &c.RecipeID, &c.FinishAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r Repo) DueForFinish(now time.Time) ([]model.CraftingQueueItem, error) {
	rows, err := r.Tx.Query(`SELECT queue_id, player_identity, recipe_id, finish_at
		FROM crafting_queue_item WHERE finish_at <= ?`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.CraftingQueueItem
	for rows.Next() {
		var c model.CraftingQueueItem
		if err := rows.Scan(&c.QueueID, &c.PlayerIdentity, &c.RecipeID, &c.FinishAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FinishHook is called once per due queue item before its row is
// deleted; it is the recipe-data boundary the owning application plugs
// its own "recipe_id -> item_def_id, qty" lookup into.
type FinishHook func(tx *sql.Tx, item model.CraftingQueueItem) error

// Tick sweeps every due queue item, invokes hook, then removes the row
// regardless of the hook's outcome — a recipe the hook can no longer
// resolve (e.g. a removed recipe) should not wedge the queue forever.
func Tick(tx *sql.Tx, now time.Time, hook FinishHook) error {
	repo := Repo{Tx: tx}
	due, err := repo.DueForFinish(now)
	if err != nil {
		return err
	}
	for _, item := range due {
		if hook != nil {
			_ = hook(tx, item)
		}
		if err := repo.Cancel(item.QueueID); err != nil {
			return err
		}
	}
	return nil
}
