package reducer

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/player"
	"github.com/vitadek/survival/internal/store"
)

func openReducerDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := items.SeedItems(tx); err != nil {
		t.Fatalf("SeedItems: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return db
}

func newCtx(tx *sql.Tx, sender, connectionID string, now time.Time) *Context {
	return &Context{Sender: sender, ConnectionID: connectionID, Now: now, Rng: rand.New(rand.NewSource(1)), Tx: tx}
}

// P9: disconnecting the same connection twice is a no-op the second
// time, not an error or a double teardown.
func TestDisconnectIsIdempotent(t *testing.T) {
	db := openReducerDB(t)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	if err := (player.Repo{Tx: tx}).Register("alice", "alice", 0, 0, time.Unix(0, 0)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	ctx := newCtx(tx, "alice", "conn-1", time.Unix(100, 0))
	if err := Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !activeConnections.IsOnline("alice") {
		t.Fatal("alice should be tracked online after Connect")
	}

	if err := Disconnect(ctx); err != nil {
		t.Fatalf("first Disconnect: %v", err)
	}
	if activeConnections.IsOnline("alice") {
		t.Error("alice should no longer be tracked online after Disconnect")
	}
	p, err := (player.Repo{Tx: tx}).Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.IsOnline {
		t.Error("is_online should be false after Disconnect")
	}

	if err := Disconnect(ctx); err != nil {
		t.Fatalf("second Disconnect should be a no-op, not an error: %v", err)
	}
}

// S5: a client that reconnects under a new connection id before the old
// disconnect is delivered must not have its fresh session torn down by
// the stale disconnect.
func TestFastReconnectSurvivesStaleDisconnect(t *testing.T) {
	db := openReducerDB(t)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	if err := (player.Repo{Tx: tx}).Register("bob", "bob", 0, 0, time.Unix(0, 0)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	oldCtx := newCtx(tx, "bob", "conn-old", time.Unix(100, 0))
	if err := Connect(oldCtx); err != nil {
		t.Fatalf("Connect(old): %v", err)
	}

	newCtxConn := newCtx(tx, "bob", "conn-new", time.Unix(101, 0))
	if err := Connect(newCtxConn); err != nil {
		t.Fatalf("Connect(new): %v", err)
	}

	// The stale disconnect for conn-old arrives after the reconnect.
	staleDisconnect := newCtx(tx, "bob", "conn-old", time.Unix(102, 0))
	if err := Disconnect(staleDisconnect); err != nil {
		t.Fatalf("Disconnect(stale): %v", err)
	}

	if !activeConnections.IsOnline("bob") {
		t.Error("bob should still be tracked online: the stale disconnect must not have torn down the new connection")
	}
	if ConnectionMismatch("bob", "conn-new") {
		t.Error("conn-new should still be bob's current connection after the stale disconnect is dropped")
	}
	p, err := (player.Repo{Tx: tx}).Get("bob")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !p.IsOnline {
		t.Error("bob should still be online after the stale disconnect is dropped")
	}
}

// S8 at the reducer layer: once connected, a call carrying a different
// connection id than the one on record is a mismatch.
func TestConnectionMismatchDetectsStaleConnectionID(t *testing.T) {
	db := openReducerDB(t)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	if err := (player.Repo{Tx: tx}).Register("carol", "carol", 0, 0, time.Unix(0, 0)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	ctx := newCtx(tx, "carol", "conn-a", time.Unix(0, 0))
	if err := Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if ConnectionMismatch("carol", "conn-a") {
		t.Error("the connection id on record should never mismatch itself")
	}
	if !ConnectionMismatch("carol", "conn-b") {
		t.Error("a different connection id for a tracked identity should mismatch")
	}
	if ConnectionMismatch("dave", "conn-anything") {
		t.Error("an identity never connected should never mismatch (nothing to compare against)")
	}
}

// S2: splitting a stack and moving the new piece into the hotbar
// conserves the total quantity across both resulting rows.
func TestSplitAndMoveConservesQuantityIntoHotbar(t *testing.T) {
	db := openReducerDB(t)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	repo := items.Repo{Tx: tx}
	wood, err := repo.GetItemDefByName("Wood")
	if err != nil {
		t.Fatalf("GetItemDefByName: %v", err)
	}
	sourceID, err := repo.Insert(model.InventoryItem{ItemDefID: wood.ID, Quantity: 40, OwnerIdentity: "erin", Location: model.PlayerInventoryLoc("erin", 0)})
	if err != nil {
		t.Fatalf("Insert(source): %v", err)
	}

	ctx := newCtx(tx, "erin", "conn-1", time.Unix(0, 0))
	newID, err := SplitAndMove(ctx, sourceID, 15, model.LocationPlayerHotbar, "", 0, 3)
	if err != nil {
		t.Fatalf("SplitAndMove: %v", err)
	}

	source, err := repo.GetInstance(sourceID)
	if err != nil {
		t.Fatalf("GetInstance(source): %v", err)
	}
	moved, err := repo.GetInstance(newID)
	if err != nil {
		t.Fatalf("GetInstance(moved): %v", err)
	}
	if source.Quantity+moved.Quantity != 40 {
		t.Errorf("source %d + moved %d != original 40", source.Quantity, moved.Quantity)
	}
	if moved.Location.Kind != model.LocationPlayerHotbar || moved.Location.Slot != 3 {
		t.Errorf("moved location = %+v, want hotbar slot 3", moved.Location)
	}
}

// S3: equipping a new item into an occupied slot swaps the prior
// occupant into inventory rather than dropping it.
func TestEquipSwapDisplacesPriorItemToInventory(t *testing.T) {
	db := openReducerDB(t)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	repo := items.Repo{Tx: tx}
	leather, err := repo.GetItemDefByName("Leather Chest")
	if err != nil {
		t.Fatalf("GetItemDefByName(Leather Chest): %v", err)
	}
	cloth, err := repo.GetItemDefByName("Cloth Chest")
	if err != nil {
		t.Fatalf("GetItemDefByName(Cloth Chest): %v", err)
	}

	firstID, err := repo.Insert(model.InventoryItem{ItemDefID: leather.ID, Quantity: 1, OwnerIdentity: "frank", Location: model.PlayerInventoryLoc("frank", 0)})
	if err != nil {
		t.Fatalf("Insert(leather): %v", err)
	}
	secondID, err := repo.Insert(model.InventoryItem{ItemDefID: cloth.ID, Quantity: 1, OwnerIdentity: "frank", Location: model.PlayerInventoryLoc("frank", 1)})
	if err != nil {
		t.Fatalf("Insert(cloth): %v", err)
	}

	ctx := newCtx(tx, "frank", "conn-1", time.Unix(0, 0))
	if err := EquipArmorFromInventory(ctx, firstID); err != nil {
		t.Fatalf("Equip(leather): %v", err)
	}
	if err := EquipArmorFromInventory(ctx, secondID); err != nil {
		t.Fatalf("Equip(cloth): %v", err)
	}

	leatherItem, err := repo.GetInstance(firstID)
	if err != nil {
		t.Fatalf("GetInstance(leather): %v", err)
	}
	clothItem, err := repo.GetInstance(secondID)
	if err != nil {
		t.Fatalf("GetInstance(cloth): %v", err)
	}
	if clothItem.Location.Kind != model.LocationEquipment {
		t.Errorf("cloth location kind = %s, want Equipment", clothItem.Location.Kind)
	}
	if leatherItem.Location.Kind != model.LocationPlayerInventory {
		t.Errorf("leather location kind = %s, want PlayerInventory (displaced by the swap)", leatherItem.Location.Kind)
	}
}
