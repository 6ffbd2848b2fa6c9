package items

import "database/sql"

// seedDef is one row of the static catalog seeded once at startup,
// grounded in original_source/server/src/items.rs's seed_items.
type seedDef struct {
	name         string
	category     string
	isStackable  bool
	stackSize    int
	equipSlot    string
	damage       float64
	isRepairTool bool
}

var catalog = []seedDef{
	{name: "Wood", category: "Material", isStackable: true, stackSize: 100},
	{name: "Stone", category: "Material", isStackable: true, stackSize: 100},
	{name: "Plant Fiber", category: "Material", isStackable: true, stackSize: 100},
	{name: "Corn", category: "Material", isStackable: true, stackSize: 50},
	{name: "Mushroom", category: "Material", isStackable: true, stackSize: 50},
	{name: "Hemp Fiber", category: "Material", isStackable: true, stackSize: 100},
	{name: "Potato", category: "Material", isStackable: true, stackSize: 50},
	{name: "Pumpkin", category: "Material", isStackable: true, stackSize: 20},
	{name: "Rope", category: "Material", isStackable: true, stackSize: 100},
	{name: "Stone Hatchet", category: "Tool", isStackable: false, stackSize: 1, damage: 15},
	{name: "Stone Pickaxe", category: "Tool", isStackable: false, stackSize: 1, damage: 12},
	{name: "Repair Hammer", category: "Tool", isStackable: false, stackSize: 1, isRepairTool: true},
	{name: "Leather Chest", category: "Armor", isStackable: false, stackSize: 1, equipSlot: "Chest"},
	{name: "Cloth Chest", category: "Armor", isStackable: false, stackSize: 1, equipSlot: "Chest"},
	{name: "Leather Head", category: "Armor", isStackable: false, stackSize: 1, equipSlot: "Head"},
	{name: "Cooked Mushroom", category: "Consumable", isStackable: true, stackSize: 20},
}

// SeedItems inserts the static catalog if it is empty, idempotent across
// restarts exactly like the teacher's "lazy generation" inserts in db.go.
func SeedItems(tx *sql.Tx) error {
	var count int
	if err := tx.QueryRow(`SELECT count(*) FROM item_definition`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, d := range catalog {
		if _, err := tx.Exec(`INSERT INTO item_definition
			(name, category, is_stackable, stack_size, equip_slot, damage, is_repair_tool)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.name, d.category, d.isStackable, d.stackSize, d.equipSlot, d.damage, d.isRepairTool); err != nil {
			return err
		}
	}
	return nil
}
