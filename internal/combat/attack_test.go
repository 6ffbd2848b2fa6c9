package combat

import (
	"database/sql"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/vitadek/survival/internal/container"
	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/items"
	"github.com/vitadek/survival/internal/model"
	"github.com/vitadek/survival/internal/player"
	"github.com/vitadek/survival/internal/resource"
	"github.com/vitadek/survival/internal/spatial"
	"github.com/vitadek/survival/internal/store"
	"github.com/vitadek/survival/internal/structure"
)

func openCombatDB(t *testing.T) *sql.DB {
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
	if err := structure.SeedRepairCosts(tx); err != nil {
		t.Fatalf("SeedRepairCosts: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return db
}

func insertPlayer(t *testing.T, tx *sql.Tx, identity string, x, y float64) {
	t.Helper()
	if err := (player.Repo{Tx: tx}).Register(identity, identity, x, y, time.Unix(0, 0)); err != nil {
		t.Fatalf("Register(%s): %v", identity, err)
	}
}

// equipWeapon inserts defName into identity's hotbar slot 0, owned by
// identity, and makes it the main-hand item by writing
// active_equipment.main_hand_item directly.
func equipWeapon(t *testing.T, tx *sql.Tx, identity, defName string) {
	t.Helper()
	repo := items.Repo{Tx: tx}
	def, err := repo.GetItemDefByName(defName)
	if err != nil {
		t.Fatalf("GetItemDefByName(%s): %v", defName, err)
	}
	instanceID, err := repo.Insert(model.InventoryItem{ItemDefID: def.ID, Quantity: 1, OwnerIdentity: identity, Location: model.PlayerHotbarLoc(identity, 0)})
	if err != nil {
		t.Fatalf("Insert(%s): %v", defName, err)
	}
	eq := container.EquipmentStore{Tx: tx}
	// Tools have no EquipSlot (they live in the hotbar, not a wearable
	// slot), and Equip only sets active_equipment.main_hand_item for
	// items carrying an EquipSlot. Stone Hatchet/Pickaxe/Repair Hammer
	// have none, so set the column directly, matching how resolveMainHand
	// reads it back.
	if _, err := eq.Get(identity); err != nil {
		t.Fatalf("eq.Get: %v", err)
	}
	if _, err := tx.Exec(`UPDATE active_equipment SET main_hand_item = ? WHERE identity = ?`, instanceID, identity); err != nil {
		t.Fatalf("set main_hand_item: %v", err)
	}
}

// TestResolvePrefersPlayerOverCloserResource exercises the priority tier
// in §4.8: a player at greater distance outranks a resource node nearer
// to the attacker.
func TestResolvePrefersPlayerOverCloserResource(t *testing.T) {
	g := spatial.New()
	g.Insert(spatial.Entity{Kind: spatial.EntityTree, ID: "1", X: 10, Y: 0})
	g.Insert(spatial.Entity{Kind: spatial.EntityPlayer, ID: "bob", X: 50, Y: 0})

	target, found := Resolve(g, 0, 0, "alice")
	if !found {
		t.Fatal("expected a target")
	}
	if target.Kind != spatial.EntityPlayer || target.ID != "bob" {
		t.Errorf("target = %+v, want player bob", target)
	}
}

func TestResolveExcludesAttackerSelf(t *testing.T) {
	g := spatial.New()
	g.Insert(spatial.Entity{Kind: spatial.EntityPlayer, ID: "alice", X: 5, Y: 5})

	if _, found := Resolve(g, 0, 0, "alice"); found {
		t.Error("Resolve should not return the attacker's own player entity")
	}
}

func TestResolveSkipsDroppedItemsAndCorpses(t *testing.T) {
	g := spatial.New()
	g.Insert(spatial.Entity{Kind: spatial.EntityDroppedItem, ID: "d1", X: 1, Y: 1})
	g.Insert(spatial.Entity{Kind: spatial.EntityPlayerCorpse, ID: "c1", X: 1, Y: 1})

	if _, found := Resolve(g, 0, 0, "alice"); found {
		t.Error("dropped items and corpses are not attackable targets")
	}
}

func TestResolveRejectsOutOfRangeTargets(t *testing.T) {
	g := spatial.New()
	far := 1000.0
	g.Insert(spatial.Entity{Kind: spatial.EntityTree, ID: "1", X: far, Y: far})

	if _, found := Resolve(g, 0, 0, "alice"); found {
		t.Error("a target outside AttackRangeSq should not resolve")
	}
}

// Attacking twice within SwingCooldownSecs rejects the second swing.
func TestAttackEnforcesSwingCooldown(t *testing.T) {
	db := openCombatDB(t)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	insertPlayer(t, tx, "alice", 0, 0)
	insertPlayer(t, tx, "bob", 10, 0)

	g := spatial.New()
	g.Insert(spatial.Entity{Kind: spatial.EntityPlayer, ID: "bob", X: 10, Y: 0})

	rng := rand.New(rand.NewSource(1))
	t0 := time.Unix(1000, 0)
	if err := Attack(tx, g, "alice", t0, rng); err != nil {
		t.Fatalf("first Attack: %v", err)
	}
	if err := Attack(tx, g, "alice", t0.Add(100*time.Millisecond), rng); gameerr.KindOf(err) != gameerr.Cooldown {
		t.Fatalf("KindOf(err) = %v, want Cooldown", gameerr.KindOf(err))
	}

	bob, err := (player.Repo{Tx: tx}).Get("bob")
	if err != nil {
		t.Fatalf("Get(bob): %v", err)
	}
	if bob.Health != 100-model.DefaultUnarmedDamage {
		t.Errorf("bob health = %v, want %v", bob.Health, 100-model.DefaultUnarmedDamage)
	}
}

// Harvesting a tree down to zero health triggers Harvest inline, adding
// wood to the attacker's inventory and scheduling respawn.
func TestAttackFellsTreeAndHarvestsOnDeath(t *testing.T) {
	db := openCombatDB(t)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	insertPlayer(t, tx, "alice", 0, 0)
	equipWeapon(t, tx, "alice", "Stone Hatchet")

	nodeID, err := (resource.Repo{Tx: tx}).Insert(model.ResourceNode{Kind: model.ResourceTree, PosX: 10, PosY: 0, Health: 10, MaxHealth: 100})
	if err != nil {
		t.Fatalf("Insert(tree): %v", err)
	}

	g := spatial.New()
	g.Insert(spatial.Entity{Kind: spatial.EntityTree, ID: strconv.FormatInt(nodeID, 10), X: 10, Y: 0})

	rng := rand.New(rand.NewSource(7))
	if err := Attack(tx, g, "alice", time.Unix(2000, 0), rng); err != nil {
		t.Fatalf("Attack: %v", err)
	}

	node, err := (resource.Repo{Tx: tx}).Get(nodeID)
	if err != nil {
		t.Fatalf("Get(node): %v", err)
	}
	if node.Health != 0 {
		t.Errorf("tree health = %v, want 0", node.Health)
	}
	if node.RespawnAt == nil {
		t.Error("tree should have a respawn scheduled after being felled")
	}

	wood, err := (items.Repo{Tx: tx}).GetItemDefByName("Wood")
	if err != nil {
		t.Fatalf("GetItemDefByName(Wood): %v", err)
	}
	rows, err := (items.Repo{Tx: tx}).ListByOwnerAndDef("alice", wood.ID, model.LocationPlayerInventory, model.LocationPlayerHotbar)
	if err != nil {
		t.Fatalf("ListByOwnerAndDef: %v", err)
	}
	if len(rows) == 0 {
		t.Error("felling the tree should have deposited wood in alice's inventory")
	}
}

// §4.6's closing paragraph: a repair tool in the main hand repairs a
// targeted structure instead of damaging it.
func TestAttackWithRepairToolRepairsStructureInstead(t *testing.T) {
	db := openCombatDB(t)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	insertPlayer(t, tx, "alice", 0, 0)
	equipWeapon(t, tx, "alice", "Repair Hammer")

	structRepo := structure.Repo{Tx: tx}
	boxID, err := structRepo.Insert(model.Structure{Kind: model.StructureStorageBox, PosX: 10, PosY: 0, PlacedBy: "alice", Health: 400, MaxHealth: 750})
	if err != nil {
		t.Fatalf("Insert(structure): %v", err)
	}

	itemsRepo := items.Repo{Tx: tx}
	wood, err := itemsRepo.GetItemDefByName("Wood")
	if err != nil {
		t.Fatalf("GetItemDefByName(Wood): %v", err)
	}
	if _, err := itemsRepo.Insert(model.InventoryItem{ItemDefID: wood.ID, Quantity: 50, OwnerIdentity: "alice", Location: model.PlayerInventoryLoc("alice", 0)}); err != nil {
		t.Fatalf("Insert(wood): %v", err)
	}

	g := spatial.New()
	g.Insert(spatial.Entity{Kind: spatial.EntityStorageBox, ID: strconv.FormatInt(boxID, 10), X: 10, Y: 0})

	rng := rand.New(rand.NewSource(3))
	if err := Attack(tx, g, "alice", time.Unix(3000, 0), rng); err != nil {
		t.Fatalf("Attack: %v", err)
	}

	s, err := structRepo.Get(boxID)
	if err != nil {
		t.Fatalf("Get(structure): %v", err)
	}
	if s.Health <= 400 {
		t.Errorf("structure health = %v, want > 400 (repaired, not damaged)", s.Health)
	}
}
