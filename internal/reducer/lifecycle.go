package reducer

import (
	"database/sql"
	"errors"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/player"
	"github.com/vitadek/survival/internal/spatial"
	"github.com/vitadek/survival/internal/spawnpos"
	"github.com/vitadek/survival/internal/worldgen"
)

// RegisterPlayer implements register_player(username) (§6): first
// registration picks a spawn via spawnpos; later calls re-register and
// bring an existing identity back online at its last position.
func RegisterPlayer(ctx *Context, username string) (model.Player, error) {
	players := player.Repo{Tx: ctx.Tx}

	exists, err := players.Exists(ctx.Sender)
	if err != nil {
		return model.Player{}, err
	}
	if exists {
		if err := players.SetOnline(ctx.Sender, true); err != nil {
			return model.Player{}, err
		}
		return players.Get(ctx.Sender)
	}

	tiles, err := worldgen.LoadAll(ctx.Tx)
	if err != nil {
		return model.Player{}, err
	}
	beaches := spawnpos.CandidateBeachTiles(tiles)

	grid, err := spatial.PopulateFromWorld(ctx.Tx)
	if err != nil {
		return model.Player{}, err
	}
	x, y, _ := spawnpos.Pick(beaches, nearbyOccupants(grid), ctx.Rng)

	if err := players.Register(ctx.Sender, username, x, y, ctx.Now); err != nil {
		return model.Player{}, err
	}
	return players.Get(ctx.Sender)
}

func UpdateViewport(ctx *Context, minX, minY, maxX, maxY float64) error {
	_, err := ctx.Tx.Exec(`INSERT INTO client_viewport (identity, min_x, min_y, max_x, max_y, last_update)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET min_x = excluded.min_x, min_y = excluded.min_y,
			max_x = excluded.max_x, max_y = excluded.max_y, last_update = excluded.last_update`,
		ctx.Sender, minX, minY, maxX, maxY, ctx.Now)
	return err
}

func UpdatePlayerPosition(ctx *Context, x, y float64, direction string) error {
	return player.Repo{Tx: ctx.Tx}.UpdatePosition(ctx.Sender, x, y, direction, ctx.Now)
}

func SetSprinting(ctx *Context, sprinting bool) error {
	return player.Repo{Tx: ctx.Tx}.SetSprinting(ctx.Sender, sprinting)
}

func ToggleCrouch(ctx *Context) error {
	players := player.Repo{Tx: ctx.Tx}
	p, err := players.Get(ctx.Sender)
	if err != nil {
		return err
	}
	return players.SetCrouching(ctx.Sender, !p.IsCrouching)
}

// Jump and DodgeRoll stamp a short-lived state timestamp; the rest of
// their physics (peak height, i-frames) belongs to a client-side
// prediction layer out of this server's relational scope.
func Jump(ctx *Context) error {
	_, err := ctx.Tx.Exec(`UPDATE player SET jump_start_ms = ? WHERE identity = ?`, ctx.Now.UnixMilli(), ctx.Sender)
	return err
}

func DodgeRoll(ctx *Context) error {
	p, err := (player.Repo{Tx: ctx.Tx}).Get(ctx.Sender)
	if err != nil {
		return err
	}
	if p.IsKnockedOut || p.IsDead {
		return gameerr.New(gameerr.Internal, "cannot dodge roll while down")
	}
	return nil
}

func ToggleTorch(ctx *Context) error {
	players := player.Repo{Tx: ctx.Tx}
	p, err := players.Get(ctx.Sender)
	if err != nil {
		return err
	}
	return players.SetTorchLit(ctx.Sender, !p.IsTorchLit)
}

// RespawnRandomly implements respawn_randomly() (§6): same spawn search
// as initial registration.
func RespawnRandomly(ctx *Context) error {
	players := player.Repo{Tx: ctx.Tx}
	p, err := players.Get(ctx.Sender)
	if err != nil {
		return err
	}
	if !p.IsDead {
		return gameerr.New(gameerr.Internal, "player is not dead")
	}

	tiles, err := worldgen.LoadAll(ctx.Tx)
	if err != nil {
		return err
	}
	beaches := spawnpos.CandidateBeachTiles(tiles)
	grid, err := spatial.PopulateFromWorld(ctx.Tx)
	if err != nil {
		return err
	}
	x, y, _ := spawnpos.Pick(beaches, nearbyOccupants(grid), ctx.Rng)
	return players.Respawn(ctx.Sender, x, y, ctx.Now)
}

// RespawnAtSleepingBag implements respawn_at_sleeping_bag(id) (§6): the
// bag's structure row supplies the position instead of a fresh search.
func RespawnAtSleepingBag(ctx *Context, structureID int64) error {
	var x, y float64
	var kind model.StructureKind
	err := ctx.Tx.QueryRow(`SELECT kind, pos_x, pos_y FROM structure WHERE id = ? AND is_destroyed = 0`, structureID).Scan(&kind, &x, &y)
	if err != nil {
		return gameerr.New(gameerr.NotFound, "sleeping bag %d not found or destroyed", structureID)
	}
	if kind != model.StructureSleepingBag {
		return gameerr.New(gameerr.InvalidSlot, "structure %d is not a sleeping bag", structureID)
	}
	return player.Repo{Tx: ctx.Tx}.Respawn(ctx.Sender, x, y, ctx.Now)
}

// Connect implements the client_connected lifecycle reducer: it records
// the sender's connection id in active_connection (insert or refresh)
// and in the in-memory mirror, then brings an already-registered player
// back online. A player who has never registered simply has no row yet;
// is_online is set for the first time during RegisterPlayer instead.
func Connect(ctx *Context) error {
	if ctx.ConnectionID == "" {
		return gameerr.New(gameerr.Internal, "missing connection id on connect")
	}
	_, err := ctx.Tx.Exec(`INSERT INTO active_connection (identity, connection_id, timestamp)
		VALUES (?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET connection_id = excluded.connection_id, timestamp = excluded.timestamp`,
		ctx.Sender, ctx.ConnectionID, ctx.Now)
	if err != nil {
		return err
	}
	activeConnections.set(ctx.Sender, ctx.ConnectionID)

	players := player.Repo{Tx: ctx.Tx}
	exists, err := players.Exists(ctx.Sender)
	if err != nil {
		return err
	}
	if exists {
		if err := players.SetOnline(ctx.Sender, true); err != nil {
			return err
		}
	}
	return nil
}

// Disconnect implements the client_disconnected lifecycle reducer. It
// only tears down state if the disconnecting connection id still matches
// the one on record; a player who reconnected before the old
// disconnect's delivery keeps their new connection and online status
// (the same reconnect race identity_disconnected guards against).
func Disconnect(ctx *Context) error {
	if ctx.ConnectionID == "" {
		return nil
	}

	var current string
	err := ctx.Tx.QueryRow(`SELECT connection_id FROM active_connection WHERE identity = ?`, ctx.Sender).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if current != ctx.ConnectionID {
		return nil
	}

	if _, err := ctx.Tx.Exec(`DELETE FROM active_connection WHERE identity = ?`, ctx.Sender); err != nil {
		return err
	}
	activeConnections.clearIfMatches(ctx.Sender, ctx.ConnectionID)

	players := player.Repo{Tx: ctx.Tx}
	exists, err := players.Exists(ctx.Sender)
	if err != nil {
		return err
	}
	if exists {
		if err := players.SetOnline(ctx.Sender, false); err != nil {
			return err
		}
	}
	return nil
}

// nearbyOccupants adapts a spatial.Grid's neighborhood query to the
// callback spawnpos.Pick expects, restricted to the kinds §4.9 names as
// spawn obstacles: living players, living trees/stones, campfires,
// storage boxes.
func nearbyOccupants(g *spatial.Grid) func(x, y float64) []spawnpos.Occupant {
	return func(x, y float64) []spawnpos.Occupant {
		var out []spawnpos.Occupant
		for _, e := range g.EntitiesInRange(x, y) {
			switch e.Kind {
			case spatial.EntityPlayer, spatial.EntityTree, spatial.EntityStone, spatial.EntityCampfire, spatial.EntityStorageBox:
				out = append(out, spawnpos.Occupant{X: e.X, Y: e.Y})
			}
		}
		return out
	}
}
