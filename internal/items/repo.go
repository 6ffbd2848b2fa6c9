package items

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vitadek/survival/internal/gameerr"
	"github.com/vitadek/survival/internal/model"
)

// Repo is the raw-SQL data access layer for item definitions and
// instances, grounded in the teacher's db.Exec/db.QueryRow style (db.go)
// and in items.rs's get_player_item / find_item_in_*_slot helpers.
type Repo struct {
	Tx *sql.Tx
}

func (r Repo) GetItemDef(id int64) (model.ItemDefinition, error) {
	var d model.ItemDefinition
	err := r.Tx.QueryRow(`SELECT id, name, category, is_stackable, stack_size, equip_slot, damage, icon_key, is_repair_tool
		FROM item_definition WHERE id = ?`, id).Scan(
		&d.ID, &d.Name, &d.Category, &d.IsStackable, &d.StackSize, &d.EquipSlot, &d.Damage, &d.IconKey, &d.IsRepairTool)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ItemDefinition{}, gameerr.New(gameerr.NotFound, "item definition %d", id)
	}
	return d, err
}

func (r Repo) GetItemDefByName(name string) (model.ItemDefinition, error) {
	var d model.ItemDefinition
	err := r.Tx.QueryRow(`SELECT id, name, category, is_stackable, stack_size, equip_slot, damage, icon_key, is_repair_tool
		FROM item_definition WHERE name = ?`, name).Scan(
		&d.ID, &d.Name, &d.Category, &d.IsStackable, &d.StackSize, &d.EquipSlot, &d.Damage, &d.IconKey, &d.IsRepairTool)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ItemDefinition{}, gameerr.New(gameerr.NotFound, "item definition %q", name)
	}
	return d, err
}

func (r Repo) GetInstance(id int64) (model.InventoryItem, error) {
	row := r.Tx.QueryRow(`SELECT instance_id, item_def_id, quantity, owner_identity,
			loc_kind, loc_owner, loc_slot, loc_equip_slot, loc_container_kind, loc_container_id, loc_pos_x, loc_pos_y, loc_dropped_id
		FROM inventory_item WHERE instance_id = ?`, id)
	item, err := scanInstance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.InventoryItem{}, gameerr.New(gameerr.NotFound, "item instance %d", id)
	}
	return item, err
}

func scanInstance(row *sql.Row) (model.InventoryItem, error) {
	var it model.InventoryItem
	var loc model.ItemLocation
	err := row.Scan(&it.InstanceID, &it.ItemDefID, &it.Quantity, &it.OwnerIdentity,
		&loc.Kind, &loc.Owner, &loc.Slot, &loc.EquipSlot, &loc.ContainerKind, &loc.ContainerID, &loc.PosX, &loc.PosY, &loc.DroppedID)
	it.Location = loc
	return it, err
}

// FindAtLocation returns the occupant of loc, or (zero, nil) if empty.
// Ground never has a unique occupant so callers must not pass it here.
func (r Repo) FindAtLocation(loc model.ItemLocation) (model.InventoryItem, bool, error) {
	if loc.Kind == model.LocationGround || loc.Kind == "" {
		return model.InventoryItem{}, false, fmt.Errorf("items: FindAtLocation called with %s location", loc.Kind)
	}
	row := r.Tx.QueryRow(`SELECT instance_id, item_def_id, quantity, owner_identity,
			loc_kind, loc_owner, loc_slot, loc_equip_slot, loc_container_kind, loc_container_id, loc_pos_x, loc_pos_y, loc_dropped_id
		FROM inventory_item
		WHERE loc_kind = ? AND loc_owner = ? AND loc_slot = ? AND loc_equip_slot = ? AND loc_container_kind = ? AND loc_container_id = ?`,
		loc.Kind, loc.Owner, loc.Slot, loc.EquipSlot, loc.ContainerKind, loc.ContainerID)
	item, err := scanInstance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.InventoryItem{}, false, nil
	}
	if err != nil {
		return model.InventoryItem{}, false, err
	}
	return item, true, nil
}

func (r Repo) Insert(it model.InventoryItem) (int64, error) {
	loc := it.Location
	res, err := r.Tx.Exec(`INSERT INTO inventory_item
		(item_def_id, quantity, owner_identity, loc_kind, loc_owner, loc_slot, loc_equip_slot, loc_container_kind, loc_container_id, loc_pos_x, loc_pos_y, loc_dropped_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ItemDefID, it.Quantity, it.OwnerIdentity,
		loc.Kind, loc.Owner, loc.Slot, loc.EquipSlot, loc.ContainerKind, loc.ContainerID, loc.PosX, loc.PosY, loc.DroppedID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r Repo) UpdateQuantity(instanceID int64, qty int) error {
	_, err := r.Tx.Exec(`UPDATE inventory_item SET quantity = ? WHERE instance_id = ?`, qty, instanceID)
	return err
}

// UpdateLocation moves instanceID to loc and, when ownerIdentity is
// non-empty, reassigns ownership in the same write (Design Notes:
// "Ownership reassignment").
func (r Repo) UpdateLocation(instanceID int64, loc model.ItemLocation, ownerIdentity string) error {
	_, err := r.Tx.Exec(`UPDATE inventory_item SET
			loc_kind = ?, loc_owner = ?, loc_slot = ?, loc_equip_slot = ?, loc_container_kind = ?, loc_container_id = ?, loc_pos_x = ?, loc_pos_y = ?, loc_dropped_id = ?,
			owner_identity = CASE WHEN ? != '' THEN ? ELSE owner_identity END
		WHERE instance_id = ?`,
		loc.Kind, loc.Owner, loc.Slot, loc.EquipSlot, loc.ContainerKind, loc.ContainerID, loc.PosX, loc.PosY, loc.DroppedID,
		ownerIdentity, ownerIdentity, instanceID)
	return err
}

func (r Repo) Delete(instanceID int64) error {
	_, err := r.Tx.Exec(`DELETE FROM inventory_item WHERE instance_id = ?`, instanceID)
	return err
}

// ListByOwnerAndDef returns every row of defID owned by owner, ordered by
// quantity ascending, then slot — the order "drain smallest-first"
// resource consumption (§4.6 step 5) relies on. The gather-path stacking
// scan (§4.4) re-sorts the rows by slot.
func (r Repo) ListByOwnerAndDef(owner string, defID int64, kinds ...model.LocationKind) ([]model.InventoryItem, error) {
	query := `SELECT instance_id, item_def_id, quantity, owner_identity,
			loc_kind, loc_owner, loc_slot, loc_equip_slot, loc_container_kind, loc_container_id, loc_pos_x, loc_pos_y, loc_dropped_id
		FROM inventory_item WHERE owner_identity = ? AND item_def_id = ?`
	args := []interface{}{owner, defID}
	if len(kinds) > 0 {
		query += ` AND loc_kind IN (`
		for i, k := range kinds {
			if i > 0 {
				query += ","
			}
			query += "?"
			args = append(args, k)
		}
		query += ")"
	}
	query += ` ORDER BY quantity ASC, loc_slot ASC`

	rows, err := r.Tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.InventoryItem
	for rows.Next() {
		var it model.InventoryItem
		var loc model.ItemLocation
		if err := rows.Scan(&it.InstanceID, &it.ItemDefID, &it.Quantity, &it.OwnerIdentity,
			&loc.Kind, &loc.Owner, &loc.Slot, &loc.EquipSlot, &loc.ContainerKind, &loc.ContainerID, &loc.PosX, &loc.PosY, &loc.DroppedID); err != nil {
			return nil, err
		}
		it.Location = loc
		out = append(out, it)
	}
	return out, rows.Err()
}

// InsertDroppedRow and DeleteDroppedRow maintain the dropped_item table
// that mirrors every inventory_item currently at a Ground location: the
// spatial grid and the §10.2 snapshot both key ground items by this
// stable string id rather than the instance's numeric row id.
func (r Repo) InsertDroppedRow(id string, instanceID int64, x, y float64, droppedAt time.Time) error {
	_, err := r.Tx.Exec(`INSERT INTO dropped_item (id, instance_id, pos_x, pos_y, dropped_at) VALUES (?, ?, ?, ?, ?)`,
		id, instanceID, x, y, droppedAt)
	return err
}

func (r Repo) DeleteDroppedRow(id string) error {
	if id == "" {
		return nil
	}
	_, err := r.Tx.Exec(`DELETE FROM dropped_item WHERE id = ?`, id)
	return err
}

// FirstEmptySlot scans capacity slots of kind for owner/container and
// returns the first index with no occupant, or -1 if full.
func (r Repo) FirstEmptySlot(loc func(slot int) model.ItemLocation, capacity int) (int, error) {
	for slot := 0; slot < capacity; slot++ {
		_, occupied, err := r.FindAtLocation(loc(slot))
		if err != nil {
			return -1, err
		}
		if !occupied {
			return slot, nil
		}
	}
	return -1, nil
}
