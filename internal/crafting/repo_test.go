package crafting

import (
	"database/sql"
	"testing"
	"time"

	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/store"
)

func TestEnqueueAndListForPlayer(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	repo := Repo{Tx: tx}
	now := time.Now()
	id, err := repo.Enqueue("alice", 7, now, 30*time.Second)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected nonzero queue id")
	}

	items, err := repo.ListForPlayer("alice")
	if err != nil {
		t.Fatalf("ListForPlayer: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].RecipeID != 7 {
		t.Errorf("RecipeID = %d, want 7", items[0].RecipeID)
	}
	if !items[0].FinishAt.After(now) {
		t.Errorf("FinishAt = %v, want after %v", items[0].FinishAt, now)
	}
}

func TestCancelRemovesQueueItem(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	repo := Repo{Tx: tx}
	id, err := repo.Enqueue("bob", 1, time.Now(), time.Minute)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := repo.Cancel(id); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	items, err := repo.ListForPlayer("bob")
	if err != nil {
		t.Fatalf("ListForPlayer: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0 after cancel", len(items))
	}
}

func TestDueForFinishOnlyReturnsExpired(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	repo := Repo{Tx: tx}
	now := time.Now()
	if _, err := repo.Enqueue("carol", 1, now.Add(-time.Hour), 30*time.Second); err != nil {
		t.Fatalf("Enqueue expired: %v", err)
	}
	if _, err := repo.Enqueue("carol", 2, now, time.Hour); err != nil {
		t.Fatalf("Enqueue not-yet-due: %v", err)
	}

	due, err := repo.DueForFinish(now)
	if err != nil {
		t.Fatalf("DueForFinish: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("len(due) = %d, want 1", len(due))
	}
	if due[0].RecipeID != 1 {
		t.Errorf("RecipeID = %d, want 1", due[0].RecipeID)
	}
}

func TestTickInvokesHookAndClearsRow(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	repo := Repo{Tx: tx}
	now := time.Now()
	if _, err := repo.Enqueue("dave", 42, now.Add(-time.Second), 0); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	var finished []model.CraftingQueueItem
	hook := func(hookTx *sql.Tx, item model.CraftingQueueItem) error {
		finished = append(finished, item)
		return nil
	}
	if err := Tick(tx, now, hook); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if len(finished) != 1 || finished[0].RecipeID != 42 {
		t.Fatalf("hook invocations = %+v, want one item with RecipeID 42", finished)
	}

	items, err := repo.ListForPlayer("dave")
	if err != nil {
		t.Fatalf("ListForPlayer: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0 after Tick finishes it", len(items))
	}
}

func TestTickWithNilHookStillClearsRow(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	repo := Repo{Tx: tx}
	now := time.Now()
	if _, err := repo.Enqueue("eve", 1, now.Add(-time.Second), 0); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := Tick(tx, now, nil); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	items, err := repo.ListForPlayer("eve")
	if err != nil {
		t.Fatalf("ListForPlayer: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}
