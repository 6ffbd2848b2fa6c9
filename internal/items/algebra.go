// Package items implements the stacking algebra (SPEC_FULL §4.2), the
// item-definition catalog, and the add-to-inventory gather path (§4.4).
// Grounded in original_source/server/src/items.rs's calculate_merge_result
// and split_stack_helper, rewritten as pure functions over model values
// instead of direct table mutation so the reducer layer owns persistence.
package items

import (
	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/model"
)

// MergeResult is the outcome of attempting to pour source's quantity into
// target, per §4.2.
type MergeResult struct {
	Transfer         int
	SourceRemaining  int
	TargetNewQty     int
	DeleteSource     bool
}

// Merge computes how much of source can be poured into target given def.
// It never mutates its arguments; the caller applies the result.
func Merge(def model.ItemDefinition, source, target model.InventoryItem) (MergeResult, error) {
	if !def.IsStackable {
		return MergeResult{}, gameerr.New(gameerr.NotStackable, "item %q is not stackable", def.Name)
	}
	if source.ItemDefID != target.ItemDefID {
		return MergeResult{}, gameerr.New(gameerr.CannotMerge, "item definitions differ")
	}
	space := def.StackSize - target.Quantity
	if space <= 0 {
		return MergeResult{}, gameerr.New(gameerr.Occupied, "target stack is full")
	}
	transfer := source.Quantity
	if transfer > space {
		transfer = space
	}
	remaining := source.Quantity - transfer
	return MergeResult{
		Transfer:        transfer,
		SourceRemaining: remaining,
		TargetNewQty:    target.Quantity + transfer,
		DeleteSource:    remaining == 0,
	}, nil
}

// Split computes the two resulting quantities of splitting q units off
// source. The new row is returned unlocated (§4.2); the caller is
// responsible for giving it a home.
func Split(def model.ItemDefinition, source model.InventoryItem, q int) (sourceRemaining, newQty int, err error) {
	if !def.IsStackable {
		return 0, 0, gameerr.New(gameerr.NotStackable, "item %q is not stackable", def.Name)
	}
	if q <= 0 || q >= source.Quantity {
		return 0, 0, gameerr.New(gameerr.CannotMerge, "split amount %d out of range for quantity %d", q, source.Quantity)
	}
	return source.Quantity - q, q, nil
}
