package player

import (
	"database/sql"
	"time"

	"github.com/vitadek/survival/internal/model"
)

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Decay implements the player-stat decay sweep (§10.6): every online,
// living player loses thirst/hunger/warmth over time and regenerates (or
// drains) stamina depending on whether they are sprinting, then takes
// starvation damage whenever thirst or hunger has run out. It opens its
// own transaction since a scheduled sweep has no caller-provided one,
// the same shape as resource.Repo's respawn sweep and the teacher's
// tickWorld.
func Decay(db *sql.DB, interval time.Duration, now time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := decayTx(tx, interval, now); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func decayTx(tx *sql.Tx, interval time.Duration, now time.Time) error {
	repo := Repo{Tx: tx}
	players, err := repo.ListOnline()
	if err != nil {
		return err
	}
	elapsed := interval.Seconds()

	for _, p := range players {
		if p.IsDead {
			continue
		}

		p.Thirst = clamp(p.Thirst-model.ThirstDrainPerSecond*elapsed, 0, model.ThirstMax)
		p.Hunger = clamp(p.Hunger-model.HungerDrainPerSecond*elapsed, 0, model.HungerMax)

		warm, err := repo.nearBurningCampfire(p.PositionX, p.PositionY)
		if err != nil {
			return err
		}
		if warm {
			p.Warmth = clamp(p.Warmth+model.WarmthRegenPerSecond*elapsed, 0, model.WarmthMax)
		} else {
			p.Warmth = clamp(p.Warmth-model.WarmthDrainPerSecond*elapsed, 0, model.WarmthMax)
		}

		if p.IsSprinting {
			p.Stamina = clamp(p.Stamina-model.StaminaDrainPerSecond*elapsed, 0, model.StaminaMax)
		} else {
			p.Stamina = clamp(p.Stamina+model.StaminaRegenPerSecond*elapsed, 0, model.StaminaMax)
		}

		if err := repo.updateVitals(p.Identity, p); err != nil {
			return err
		}

		if p.Thirst == 0 || p.Hunger == 0 {
			if _, err := repo.ApplyDamage(p.Identity, model.StarvationDamagePerSecond*elapsed, now); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r Repo) updateVitals(identity string, p model.Player) error {
	_, err := r.Tx.Exec(`UPDATE player SET stamina = ?, thirst = ?, hunger = ?, warmth = ? WHERE identity = ?`,
		p.Stamina, p.Thirst, p.Hunger, p.Warmth, identity)
	return err
}

// nearBurningCampfire reports whether any lit campfire structure lies
// within warmth range of (x, y), the condition under which warmth
// regenerates instead of draining.
func (r Repo) nearBurningCampfire(x, y float64) (bool, error) {
	var count int
	err := r.Tx.QueryRow(`SELECT count(*) FROM structure s
		JOIN campfire_state c ON c.structure_id = s.id
		WHERE c.is_burning = 1 AND s.is_destroyed = 0
			AND (s.pos_x - ?) * (s.pos_x - ?) + (s.pos_y - ?) * (s.pos_y - ?) <= ?`,
		x, x, y, y, model.WarmthRadiusSq).Scan(&count)
	return count > 0, err
}
