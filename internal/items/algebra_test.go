package items

import (
	"testing"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/model"
)

func woodDef() model.ItemDefinition {
	return model.ItemDefinition{ID: 1, Name: "Wood", IsStackable: true, StackSize: 100}
}

// P5: merge(a, b) either fully absorbs the source or leaves the target
// full with the source retaining the excess.
func TestMergeFullyAbsorbsWhenSpaceSuffices(t *testing.T) {
	def := woodDef()
	source := model.InventoryItem{InstanceID: 1, ItemDefID: def.ID, Quantity: 20}
	target := model.InventoryItem{InstanceID: 2, ItemDefID: def.ID, Quantity: 50}

	result, err := Merge(def, source, target)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !result.DeleteSource {
		t.Errorf("DeleteSource = false, want true when source fits entirely")
	}
	if result.TargetNewQty != 70 {
		t.Errorf("TargetNewQty = %d, want 70", result.TargetNewQty)
	}
	if result.SourceRemaining != 0 {
		t.Errorf("SourceRemaining = %d, want 0", result.SourceRemaining)
	}
}

func TestMergeLeavesExcessWhenTargetFillsUp(t *testing.T) {
	def := woodDef()
	source := model.InventoryItem{InstanceID: 1, ItemDefID: def.ID, Quantity: 60}
	target := model.InventoryItem{InstanceID: 2, ItemDefID: def.ID, Quantity: 70}

	result, err := Merge(def, source, target)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if result.DeleteSource {
		t.Errorf("DeleteSource = true, want false when source has excess")
	}
	if result.TargetNewQty != def.StackSize {
		t.Errorf("TargetNewQty = %d, want stack_size %d", result.TargetNewQty, def.StackSize)
	}
	if result.SourceRemaining != 30 {
		t.Errorf("SourceRemaining = %d, want 30", result.SourceRemaining)
	}
	if result.Transfer+result.SourceRemaining != source.Quantity {
		t.Errorf("transfer %d + remaining %d != original source quantity %d", result.Transfer, result.SourceRemaining, source.Quantity)
	}
}

func TestMergeRejectsDifferentDefinitions(t *testing.T) {
	def := woodDef()
	source := model.InventoryItem{InstanceID: 1, ItemDefID: 1, Quantity: 10}
	target := model.InventoryItem{InstanceID: 2, ItemDefID: 2, Quantity: 10}
	if _, err := Merge(def, source, target); gameerr.KindOf(err) != gameerr.CannotMerge {
		t.Errorf("KindOf(err) = %v, want CannotMerge", gameerr.KindOf(err))
	}
}

func TestMergeRejectsFullTarget(t *testing.T) {
	def := woodDef()
	source := model.InventoryItem{InstanceID: 1, ItemDefID: def.ID, Quantity: 10}
	target := model.InventoryItem{InstanceID: 2, ItemDefID: def.ID, Quantity: def.StackSize}
	if _, err := Merge(def, source, target); gameerr.KindOf(err) != gameerr.Occupied {
		t.Errorf("KindOf(err) = %v, want Occupied", gameerr.KindOf(err))
	}
}

func TestMergeRejectsNonStackable(t *testing.T) {
	def := model.ItemDefinition{ID: 1, Name: "Stone Hatchet", IsStackable: false, StackSize: 1}
	source := model.InventoryItem{InstanceID: 1, ItemDefID: def.ID, Quantity: 1}
	target := model.InventoryItem{InstanceID: 2, ItemDefID: def.ID, Quantity: 1}
	if _, err := Merge(def, source, target); gameerr.KindOf(err) != gameerr.NotStackable {
		t.Errorf("KindOf(err) = %v, want NotStackable", gameerr.KindOf(err))
	}
}

// P6: split followed immediately by summing the two resulting
// quantities restores the original total.
func TestSplitRoundTripPreservesTotal(t *testing.T) {
	def := woodDef()
	source := model.InventoryItem{InstanceID: 1, ItemDefID: def.ID, Quantity: 50}

	sourceRemaining, newQty, err := Split(def, source, 30)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if sourceRemaining+newQty != source.Quantity {
		t.Errorf("sourceRemaining %d + newQty %d != original %d", sourceRemaining, newQty, source.Quantity)
	}
	if newQty != 30 {
		t.Errorf("newQty = %d, want 30", newQty)
	}
	if sourceRemaining != 20 {
		t.Errorf("sourceRemaining = %d, want 20", sourceRemaining)
	}
}

func TestSplitRejectsOutOfRangeAmounts(t *testing.T) {
	def := woodDef()
	source := model.InventoryItem{InstanceID: 1, ItemDefID: def.ID, Quantity: 50}

	if _, _, err := Split(def, source, 0); err == nil {
		t.Error("Split(0) should fail: nothing to split off")
	}
	if _, _, err := Split(def, source, 50); err == nil {
		t.Error("Split(quantity) should fail: would leave source empty")
	}
	if _, _, err := Split(def, source, 51); err == nil {
		t.Error("Split(quantity+1) should fail: exceeds source quantity")
	}
}

func TestSplitRejectsNonStackable(t *testing.T) {
	def := model.ItemDefinition{ID: 1, Name: "Stone Hatchet", IsStackable: false, StackSize: 1}
	source := model.InventoryItem{InstanceID: 1, ItemDefID: def.ID, Quantity: 1}
	if _, _, err := Split(def, source, 1); gameerr.KindOf(err) != gameerr.NotStackable {
		t.Errorf("KindOf(err) = %v, want NotStackable", gameerr.KindOf(err))
	}
}
