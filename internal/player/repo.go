// Package player is the raw-SQL accessor for the player table, grounded
// in the teacher's db.go query style. Movement/lifecycle reducers
// (register, viewport, position, sprint/crouch, respawn) live in
// internal/reducer and call through this Repo.
package player

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

func (r Repo) Get(identity string) (model.Player, error) {
	var p model.Player
	err := r.Tx.QueryRow(`SELECT identity, username, position_x, position_y, direction, last_update,
			health, stamina, thirst, hunger, warmth, is_sprinting, is_crouching, is_dead,
			death_timestamp, last_hit_time, is_online, is_torch_lit, is_on_water, is_knocked_out, jump_start_ms
		FROM player WHERE identity = ?`, identity).Scan(
		&p.Identity, &p.Username, &p.PositionX, &p.PositionY, &p.Direction, &p.LastUpdate,
		&p.Health, &p.Stamina, &p.Thirst, &p.Hunger, &p.Warmth, &p.IsSprinting, &p.IsCrouching, &p.IsDead,
		&p.DeathTimestamp, &p.LastHitTime, &p.IsOnline, &p.IsTorchLit, &p.IsOnWater, &p.IsKnockedOut, &p.JumpStartMs)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Player{}, gameerr.New(gameerr.NotFound, "player %s", identity)
	}
	return p, err
}

func (r Repo) Exists(identity string) (bool, error) {
	var n int
	err := r.Tx.QueryRow(`SELECT count(*) FROM player WHERE identity = ?`, identity).Scan(&n)
	return n > 0, err
}

func (r Repo) Register(identity, username string, x, y float64, now time.Time) error {
	_, err := r.Tx.Exec(`INSERT INTO player (identity, username, position_x, position_y, last_update, is_online)
		VALUES (?, ?, ?, ?, ?, 1)`, identity, username, x, y, now)
	return err
}

func (r Repo) UpdatePosition(identity string, x, y float64, direction string, now time.Time) error {
	_, err := r.Tx.Exec(`UPDATE player SET position_x = ?, position_y = ?, direction = ?, last_update = ? WHERE identity = ?`,
		x, y, direction, now, identity)
	return err
}

func (r Repo) SetSprinting(identity string, sprinting bool) error {
	_, err := r.Tx.Exec(`UPDATE player SET is_sprinting = ? WHERE identity = ?`, sprinting, identity)
	return err
}

func (r Repo) SetCrouching(identity string, crouching bool) error {
	_, err := r.Tx.Exec(`UPDATE player SET is_crouching = ? WHERE identity = ?`, crouching, identity)
	return err
}

func (r Repo) SetOnline(identity string, online bool) error {
	_, err := r.Tx.Exec(`UPDATE player SET is_online = ? WHERE identity = ?`, online, identity)
	return err
}

func (r Repo) SetTorchLit(identity string, lit bool) error {
	_, err := r.Tx.Exec(`UPDATE player SET is_torch_lit = ? WHERE identity = ?`, lit, identity)
	return err
}

func (r Repo) ApplyDamage(identity string, dmg float64, now time.Time) (model.Player, error) {
	p, err := r.Get(identity)
	if err != nil {
		return model.Player{}, err
	}
	p.Health -= dmg
	if p.Health < 0 {
		p.Health = 0
	}
	p.LastHitTime = &now
	dead := p.Health <= 0
	if dead {
		p.IsDead = true
		p.DeathTimestamp = &now
	}
	_, err = r.Tx.Exec(`UPDATE player SET health = ?, last_hit_time = ?, is_dead = ?, death_timestamp = ? WHERE identity = ?`,
		p.Health, p.LastHitTime, p.IsDead, p.DeathTimestamp, identity)
	return p, err
}

// Respawn clears death state and relocates the player, used by both
// respawn_randomly and respawn_at_sleeping_bag (§6).
func (r Repo) Respawn(identity string, x, y float64, now time.Time) error {
	_, err := r.Tx.Exec(`UPDATE player SET position_x = ?, position_y = ?, health = 100, is_dead = 0, death_timestamp = NULL, last_update = ?
		WHERE identity = ?`, x, y, now, identity)
	return err
}

func (r Repo) ListOnline() ([]model.Player, error) {
	rows, err := r.Tx.Query(`SELECT identity, username, position_x, position_y, direction, last_update,
			health, stamina, thirst, hunger, warmth, is_sprinting, is_crouching, is_dead,
			death_timestamp, last_hit_time, is_online, is_torch_lit, is_on_water, is_knocked_out, jump_start_ms
		FROM player WHERE is_online = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Player
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.Identity, &p.Username, &p.PositionX, &p.PositionY, &p.Direction, &p.LastUpdate,
			&p.Health, &p.Stamina, &p.Thirst, &p.Hunger, &p.Warmth, &p.IsSprinting, &p.IsCrouching, &p.IsDead,
			&p.DeathTimestamp, &p.LastHitTime, &p.IsOnline, &p.IsTorchLit, &p.IsOnWater, &p.IsKnockedOut, &p.JumpStartMs); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
