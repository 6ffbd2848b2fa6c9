package resource

import (
	"database/sql"
	"errors"
	"time"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/model"
)

type Repo struct {
	Tx *sql.Tx
}

func (r Repo) Get(id int64) (model.ResourceNode, error) {
	var n model.ResourceNode
	err := r.Tx.QueryRow(`SELECT id, kind, pos_x, pos_y, chunk_index, health, max_health, respawn_at
		FROM resource_node WHERE id = ?`, id).Scan(
		&n.ID, &n.Kind, &n.PosX, &n.PosY, &n.ChunkIndex, &n.Health, &n.MaxHealth, &n.RespawnAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ResourceNode{}, gameerr.New(gameerr.NotFound, "resource node %d", id)
	}
	return n, err
}

func (r Repo) Insert(n model.ResourceNode) (int64, error) {
	res, err := r.Tx.Exec(`INSERT INTO resource_node (kind, pos_x, pos_y, chunk_index, health, max_health, respawn_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, n.Kind, n.PosX, n.PosY, n.ChunkIndex, n.Health, n.MaxHealth, n.RespawnAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r Repo) SetRespawnAt(id int64, respawnAt sql.NullTime) error {
	_, err := r.Tx.Exec(`UPDATE resource_node SET respawn_at = ? WHERE id = ?`, respawnAt, id)
	return err
}

func (r Repo) RestoreHealth(id int64, health float64) error {
	_, err := r.Tx.Exec(`UPDATE resource_node SET health = ?, respawn_at = NULL WHERE id = ?`, health, id)
	return err
}

func (r Repo) ApplyDamage(id int64, dmg float64) (model.ResourceNode, error) {
	n, err := r.Get(id)
	if err != nil {
		return model.ResourceNode{}, err
	}
	n.Health -= dmg
	if n.Health < 0 {
		n.Health = 0
	}
	_, err = r.Tx.Exec(`UPDATE resource_node SET health = ? WHERE id = ?`, n.Health, id)
	return n, err
}

// DueForRespawn returns every node of kind whose respawn_at has elapsed,
// for the scheduled sweep of §4.5's closing paragraph.
func (r Repo) DueForRespawn(kind model.ResourceKind, now time.Time) ([]model.ResourceNode, error) {
	rows, err := r.Tx.Query(`SELECT id, kind, pos_x, pos_y, chunk_index, health, max_health, respawn_at
		FROM resource_node WHERE kind = ? AND respawn_at IS NOT NULL AND respawn_at <= ?`, kind, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ResourceNode
	for rows.Next() {
		var n model.ResourceNode
		if err := rows.Scan(&n.ID, &n.Kind, &n.PosX, &n.PosY, &n.ChunkIndex, &n.Health, &n.MaxHealth, &n.RespawnAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r Repo) ListByKind(kind model.ResourceKind) ([]model.ResourceNode, error) {
	rows, err := r.Tx.Query(`SELECT id, kind, pos_x, pos_y, chunk_index, health, max_health, respawn_at
		FROM resource_node WHERE kind = ?`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ResourceNode
	for rows.Next() {
		var n model.ResourceNode
		if err := rows.Scan(&n.ID, &n.Kind, &n.PosX, &n.PosY, &n.ChunkIndex, &n.Health, &n.MaxHealth, &n.RespawnAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
