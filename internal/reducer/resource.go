package reducer

import (
	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/player"
	"github.com/vitadek/survival/internal/resource"
)

// interactWithKind implements the five plant reducers (§6) sharing one
// body, verifying nodeID is actually the expected kind before harvesting.
func interactWithKind(ctx *Context, nodeID int64, want model.ResourceKind) error {
	repo := resource.Repo{Tx: ctx.Tx}
	node, err := repo.Get(nodeID)
	if err != nil {
		return err
	}
	if node.Kind != want {
		return gameerr.New(gameerr.InvalidSlot, "resource %d is not a %s", nodeID, want)
	}
	itemsRepo := items.Repo{Tx: ctx.Tx}
	players := player.Repo{Tx: ctx.Tx}
	return resource.Interact(repo, itemsRepo, players, ctx.Sender, nodeID, ctx.Now, ctx.Rng)
}

func InteractWithCorn(ctx *Context, nodeID int64) error {
	return interactWithKind(ctx, nodeID, model.ResourceCorn)
}

func InteractWithMushroom(ctx *Context, nodeID int64) error {
	return interactWithKind(ctx, nodeID, model.ResourceMushroom)
}

func InteractWithHemp(ctx *Context, nodeID int64) error {
	return interactWithKind(ctx, nodeID, model.ResourceHemp)
}

func InteractWithPotato(ctx *Context, nodeID int64) error {
	return interactWithKind(ctx, nodeID, model.ResourcePotato)
}

func InteractWithPumpkin(ctx *Context, nodeID int64) error {
	return interactWithKind(ctx, nodeID, model.ResourcePumpkin)
}
