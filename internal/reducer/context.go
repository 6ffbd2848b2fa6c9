// Package reducer wires the "open transaction, call the reducer
// function, commit or rollback" contract of §5's implementation mapping
// to real *sql.Tx and HTTP handlers. ReducerContext carries the sender
// identity, connection id, timestamp and RNG every reducer is specified
// to receive.
package reducer

import (
	"database/sql"
	"math/rand"
	"time"
)

// Context is passed to every reducer function, mirroring the spec's
// "(ctx) carrying sender identity, connection_id, timestamp, and an RNG"
// (§3's opening paragraph).
type Context struct {
	Sender       string
	ConnectionID string
	Now          time.Time
	Rng          *rand.Rand
	Tx           *sql.Tx
}

// Func is one reducer: it reads/writes through ctx.Tx and returns an
// error to abort (and roll back) or nil to commit.
type Func func(ctx *Context) (interface{}, error)

// Run opens a transaction, builds a Context, calls fn, and commits on
// success or rolls back on error — the "atomic commit or nothing"
// contract of §5's implementation mapping, without an application-level
// lock manager.
func Run(db *sql.DB, sender, connectionID string, now time.Time, rng *rand.Rand, fn Func) (interface{}, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	ctx := &Context{Sender: sender, ConnectionID: connectionID, Now: now, Rng: rng, Tx: tx}

	result, err := fn(ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}
