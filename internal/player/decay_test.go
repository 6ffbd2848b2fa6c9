package player

import (
	"database/sql"
	"testing"
	"time"

	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/store"
)

func registerTestPlayer(t *testing.T, db *sql.DB, identity string, x, y float64) {
	t.Helper()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	repo := Repo{Tx: tx}
	if err := repo.Register(identity, identity+"-name", x, y, time.Now()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestDecayDrainsThirstHungerWarmth(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	registerTestPlayer(t, db, "alice", 0, 0)

	if err := Decay(db, 60*time.Second, time.Now()); err != nil {
		t.Fatalf("Decay: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()
	p, err := (Repo{Tx: tx}).Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	wantThirst := model.ThirstMax - model.ThirstDrainPerSecond*60
	wantHunger := model.HungerMax - model.HungerDrainPerSecond*60
	wantWarmth := model.WarmthMax - model.WarmthDrainPerSecond*60
	if p.Thirst != wantThirst {
		t.Errorf("thirst = %v, want %v", p.Thirst, wantThirst)
	}
	if p.Hunger != wantHunger {
		t.Errorf("hunger = %v, want %v", p.Hunger, wantHunger)
	}
	if p.Warmth != wantWarmth {
		t.Errorf("warmth = %v, want %v", p.Warmth, wantWarmth)
	}
	if p.Stamina != model.StaminaMax {
		t.Errorf("stamina = %v, want unchanged at max %v", p.Stamina, model.StaminaMax)
	}
}

func TestDecaySprintingDrainsStamina(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	registerTestPlayer(t, db, "bob", 0, 0)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := (Repo{Tx: tx}).SetSprinting("bob", true); err != nil {
		t.Fatalf("SetSprinting: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := Decay(db, 2*time.Second, time.Now()); err != nil {
		t.Fatalf("Decay: %v", err)
	}

	tx, err = db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()
	p, err := (Repo{Tx: tx}).Get("bob")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := model.StaminaMax - model.StaminaDrainPerSecond*2
	if p.Stamina != want {
		t.Errorf("stamina = %v, want %v", p.Stamina, want)
	}
}

func TestDecayWarmthRegensNearBurningCampfire(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	registerTestPlayer(t, db, "carol", 100, 100)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	res, err := tx.Exec(`INSERT INTO structure (kind, pos_x, pos_y, placed_by, health, max_health) VALUES ('campfire', 110, 100, 'carol', 100, 100)`)
	if err != nil {
		t.Fatalf("insert structure: %v", err)
	}
	structureID, _ := res.LastInsertId()
	if _, err := tx.Exec(`INSERT INTO campfire_state (structure_id, is_burning) VALUES (?, 1)`, structureID); err != nil {
		t.Fatalf("insert campfire_state: %v", err)
	}
	if _, err := tx.Exec(`UPDATE player SET warmth = 10 WHERE identity = 'carol'`); err != nil {
		t.Fatalf("lower warmth: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := Decay(db, 10*time.Second, time.Now()); err != nil {
		t.Fatalf("Decay: %v", err)
	}

	tx, err = db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()
	p, err := (Repo{Tx: tx}).Get("carol")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := 10 + model.WarmthRegenPerSecond*10
	if p.Warmth != want {
		t.Errorf("warmth = %v, want %v (regen expected near lit campfire)", p.Warmth, want)
	}
}

func TestDecayAppliesStarvationDamageAtZeroHunger(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	registerTestPlayer(t, db, "dave", 0, 0)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.Exec(`UPDATE player SET hunger = 0 WHERE identity = 'dave'`); err != nil {
		t.Fatalf("zero hunger: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := Decay(db, 5*time.Second, time.Now()); err != nil {
		t.Fatalf("Decay: %v", err)
	}

	tx, err = db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()
	p, err := (Repo{Tx: tx}).Get("dave")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := 100 - model.StarvationDamagePerSecond*5
	if p.Health != want {
		t.Errorf("health = %v, want %v", p.Health, want)
	}
}

func TestDecaySkipsDeadPlayers(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()

	registerTestPlayer(t, db, "eve", 0, 0)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.Exec(`UPDATE player SET is_dead = 1, thirst = 50 WHERE identity = 'eve'`); err != nil {
		t.Fatalf("mark dead: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := Decay(db, 100*time.Second, time.Now()); err != nil {
		t.Fatalf("Decay: %v", err)
	}

	tx, err = db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()
	p, err := (Repo{Tx: tx}).Get("eve")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Thirst != 50 {
		t.Errorf("thirst = %v, want unchanged at 50 for a dead player", p.Thirst)
	}
}
