package store

// schema is applied with CREATE TABLE IF NOT EXISTS on every open, the
// same idempotent-migration approach as the teacher's createSchema.
const schema = `
CREATE TABLE IF NOT EXISTS item_definition (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL,
	category TEXT NOT NULL,
	is_stackable BOOLEAN NOT NULL DEFAULT 0,
	stack_size INTEGER NOT NULL DEFAULT 1,
	equip_slot TEXT NOT NULL DEFAULT '',
	damage REAL NOT NULL DEFAULT 0,
	icon_key TEXT NOT NULL DEFAULT '',
	is_repair_tool BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS inventory_item (
	instance_id INTEGER PRIMARY KEY AUTOINCREMENT,
	item_def_id INTEGER NOT NULL,
	quantity INTEGER NOT NULL,
	owner_identity TEXT NOT NULL DEFAULT '',
	loc_kind TEXT NOT NULL,
	loc_owner TEXT NOT NULL DEFAULT '',
	loc_slot INTEGER NOT NULL DEFAULT -1,
	loc_equip_slot TEXT NOT NULL DEFAULT '',
	loc_container_kind TEXT NOT NULL DEFAULT '',
	loc_container_id INTEGER NOT NULL DEFAULT 0,
	loc_pos_x REAL NOT NULL DEFAULT 0,
	loc_pos_y REAL NOT NULL DEFAULT 0,
	loc_dropped_id TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_item_slot
	ON inventory_item(loc_kind, loc_owner, loc_slot, loc_equip_slot, loc_container_kind, loc_container_id)
	WHERE loc_kind != 'Ground';

CREATE TABLE IF NOT EXISTS dropped_item (
	id TEXT PRIMARY KEY,
	instance_id INTEGER NOT NULL,
	pos_x REAL NOT NULL,
	pos_y REAL NOT NULL,
	dropped_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS player (
	identity TEXT PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	position_x REAL NOT NULL,
	position_y REAL NOT NULL,
	direction TEXT NOT NULL DEFAULT 'down',
	last_update DATETIME NOT NULL,
	health REAL NOT NULL DEFAULT 100,
	stamina REAL NOT NULL DEFAULT 100,
	thirst REAL NOT NULL DEFAULT 250,
	hunger REAL NOT NULL DEFAULT 250,
	warmth REAL NOT NULL DEFAULT 100,
	is_sprinting BOOLEAN NOT NULL DEFAULT 0,
	is_crouching BOOLEAN NOT NULL DEFAULT 0,
	is_dead BOOLEAN NOT NULL DEFAULT 0,
	death_timestamp DATETIME,
	last_hit_time DATETIME,
	is_online BOOLEAN NOT NULL DEFAULT 0,
	is_torch_lit BOOLEAN NOT NULL DEFAULT 0,
	is_on_water BOOLEAN NOT NULL DEFAULT 0,
	is_knocked_out BOOLEAN NOT NULL DEFAULT 0,
	jump_start_ms INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_player_pos ON player(position_x, position_y);

CREATE TABLE IF NOT EXISTS active_equipment (
	identity TEXT PRIMARY KEY,
	main_hand_item INTEGER NOT NULL DEFAULT 0,
	head_item INTEGER NOT NULL DEFAULT 0,
	chest_item INTEGER NOT NULL DEFAULT 0,
	legs_item INTEGER NOT NULL DEFAULT 0,
	feet_item INTEGER NOT NULL DEFAULT 0,
	hands_item INTEGER NOT NULL DEFAULT 0,
	back_item INTEGER NOT NULL DEFAULT 0,
	last_swing_at DATETIME
);

CREATE TABLE IF NOT EXISTS structure (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	pos_x REAL NOT NULL,
	pos_y REAL NOT NULL,
	placed_by TEXT NOT NULL,
	health REAL NOT NULL,
	max_health REAL NOT NULL,
	is_destroyed BOOLEAN NOT NULL DEFAULT 0,
	last_hit_time DATETIME,
	last_damaged_by TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_structure_pos ON structure(pos_x, pos_y);

CREATE TABLE IF NOT EXISTS campfire_state (
	structure_id INTEGER PRIMARY KEY,
	fuel_instance_0 INTEGER NOT NULL DEFAULT 0,
	fuel_instance_1 INTEGER NOT NULL DEFAULT 0,
	fuel_instance_2 INTEGER NOT NULL DEFAULT 0,
	fuel_instance_3 INTEGER NOT NULL DEFAULT 0,
	fuel_instance_4 INTEGER NOT NULL DEFAULT 0,
	is_burning BOOLEAN NOT NULL DEFAULT 0,
	next_fuel_consume_at DATETIME
);

CREATE TABLE IF NOT EXISTS resource_node (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	pos_x REAL NOT NULL,
	pos_y REAL NOT NULL,
	chunk_index INTEGER NOT NULL,
	health REAL NOT NULL DEFAULT 0,
	max_health REAL NOT NULL DEFAULT 0,
	respawn_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_resource_node_chunk ON resource_node(chunk_index);
CREATE INDEX IF NOT EXISTS idx_resource_node_kind ON resource_node(kind);

CREATE TABLE IF NOT EXISTS world_tile (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	chunk_x INTEGER NOT NULL,
	chunk_y INTEGER NOT NULL,
	world_x INTEGER NOT NULL,
	world_y INTEGER NOT NULL,
	tile_type TEXT NOT NULL,
	variant INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_world_tile_chunk ON world_tile(chunk_x, chunk_y);
CREATE INDEX IF NOT EXISTS idx_world_tile_world ON world_tile(world_x, world_y);

CREATE TABLE IF NOT EXISTS active_connection (
	identity TEXT PRIMARY KEY,
	connection_id TEXT NOT NULL,
	timestamp DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS client_viewport (
	identity TEXT PRIMARY KEY,
	min_x REAL NOT NULL,
	min_y REAL NOT NULL,
	max_x REAL NOT NULL,
	max_y REAL NOT NULL,
	last_update DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS crafting_queue_item (
	queue_id INTEGER PRIMARY KEY AUTOINCREMENT,
	player_identity TEXT NOT NULL,
	recipe_id INTEGER NOT NULL,
	finish_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS repair_cost (
	structure_kind TEXT NOT NULL,
	item_def_name TEXT NOT NULL,
	amount_per_full_repair REAL NOT NULL,
	PRIMARY KEY (structure_kind, item_def_name)
);

CREATE TABLE IF NOT EXISTS player_kill_command_cooldown (
	player_identity TEXT PRIMARY KEY,
	last_kill_command_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS player_last_attack_timestamp (
	player_identity TEXT PRIMARY KEY,
	last_attack_timestamp DATETIME NOT NULL
);
`
