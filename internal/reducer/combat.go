package reducer

import (
	"github.com/vitadek/survival/internal/combat"
	"github.com/vitadek/survival/internal/spatial"
)

// Attack implements the attack reducer referenced by §4.8: populate the
// spatial grid fresh for this invocation, then resolve and dispatch one
// swing from the sender.
func Attack(ctx *Context) error {
	grid, err := spatial.PopulateFromWorld(ctx.Tx)
	if err != nil {
		return err
	}
	return combat.Attack(ctx.Tx, grid, ctx.Sender, ctx.Now, ctx.Rng)
}
