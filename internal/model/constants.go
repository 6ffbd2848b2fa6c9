package model

// World and entity constants, part of the external contract (§6). Grouped
// as one const block the way the teacher's globals.go keeps its
// configuration constants together.
const (
	TileSizePx   = 48
	WorldWidth   = 500
	WorldHeight  = 500

	PlayerRadius        = 32.0
	CrouchRadiusFactor  = 0.5
	SprintSpeedFactor   = 1.6
	WaterSpeedPenalty   = 0.5

	RepairCooldownSecs = 300

	PlayerResourceInteractionDistanceSq = 80.0 * 80.0

	CampfireMaxHealth   = 100.0
	StorageBoxMaxHealth = 750.0
	ShelterMaxHealth    = 100000.0

	KillCommandCooldownSecs = 300

	// AttackRangeSq is the squared reach of a melee swing, measured from
	// the attacker's position to the target's.
	AttackRangeSq = 90.0 * 90.0
	// SwingCooldownSecs rate-limits successive attacks per player (§4.8).
	SwingCooldownSecs = 0.5

	DefaultUnarmedDamage = 5.0

	// StorageBoxSlots bounds a WoodenStorageBox's slot range; unlike the
	// campfire's five fixed fuel columns, a storage box's slots are plain
	// inventory_item rows keyed by loc_slot, so this is a validation bound
	// rather than a physical schema constraint.
	StorageBoxSlots = 24

	// Stat decay/regen rates for the player-stat decay sweep (§10.6). The
	// rust campfire/player stat module that owned these numbers did not
	// survive into original_source, so the rates themselves are an Open
	// Question decision (DESIGN.md): drain thirst/hunger from full to
	// empty over a half hour of play, drain warmth over the same span
	// unless within range of a lit campfire, and starve health away
	// whenever thirst or hunger is fully depleted.
	ThirstMax             = 250.0
	HungerMax             = 250.0
	WarmthMax             = 100.0
	StaminaMax            = 100.0
	ThirstDrainPerSecond  = ThirstMax / 1800.0
	HungerDrainPerSecond  = HungerMax / 1800.0
	WarmthDrainPerSecond  = WarmthMax / 1800.0
	WarmthRegenPerSecond  = 5.0
	WarmthRadiusSq        = 200.0 * 200.0
	StaminaDrainPerSecond = 20.0
	StaminaRegenPerSecond = 10.0
	StarvationDamagePerSecond = 1.0
)
