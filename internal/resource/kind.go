// Package resource implements the harvestable node lifecycle of §4.5:
// one state machine (Available/Respawning) shared by all seven kinds,
// parameterized by a per-kind constant table instead of one module per
// resource. Grounded in original_source/server/src/corn.rs, generalized
// the way spec.md's Design Notes ask tagged unions to replace sprawl.
package resource

import "github.com/vitadek/survival/internal/model"

// Constants is the per-kind parameter row named in §4.5's closing
// paragraph. SecondaryDef is empty when the kind has no secondary yield.
type Constants struct {
	DensityPercent        float64
	MinSameKindDistanceSq float64
	MinTreeDistanceSq     float64
	MinStoneDistanceSq    float64
	MinRespawnSecs        int
	MaxRespawnSecs        int
	PrimaryDef            string
	PrimaryMin            int
	PrimaryMax            int
	SecondaryDef          string
	SecondaryMin          int
	SecondaryMax          int
	SecondaryChance       float64
	MaxHealth             float64 // 0 for single-hit plants (corn/mushroom/hemp/potato/pumpkin)
	SkipSeaAndBeach       bool
}

// Table holds the seeded-at-worldgen constants for every resource kind,
// grounded in corn.rs's CORN_* constants (density 0.0008, min distances
// 40²/20²/25², respawn 900–1500s, yield 1–2 Corn + 90% chance 2–4 Plant
// Fiber) generalized to the other six kinds per the Design Notes guidance.
var Table = map[model.ResourceKind]Constants{
	model.ResourceCorn: {
		DensityPercent: 0.0008, MinSameKindDistanceSq: 40 * 40, MinTreeDistanceSq: 20 * 20, MinStoneDistanceSq: 25 * 25,
		MinRespawnSecs: 900, MaxRespawnSecs: 1500,
		PrimaryDef: "Corn", PrimaryMin: 1, PrimaryMax: 2,
		SecondaryDef: "Plant Fiber", SecondaryMin: 2, SecondaryMax: 4, SecondaryChance: 0.90,
		SkipSeaAndBeach: true,
	},
	model.ResourceMushroom: {
		DensityPercent: 0.0010, MinSameKindDistanceSq: 30 * 30, MinTreeDistanceSq: 15 * 15, MinStoneDistanceSq: 15 * 15,
		MinRespawnSecs: 600, MaxRespawnSecs: 1200,
		PrimaryDef: "Mushroom", PrimaryMin: 1, PrimaryMax: 2,
		SkipSeaAndBeach: true,
	},
	model.ResourceHemp: {
		DensityPercent: 0.0009, MinSameKindDistanceSq: 35 * 35, MinTreeDistanceSq: 18 * 18, MinStoneDistanceSq: 18 * 18,
		MinRespawnSecs: 900, MaxRespawnSecs: 1500,
		PrimaryDef: "Hemp Fiber", PrimaryMin: 1, PrimaryMax: 3,
		SkipSeaAndBeach: true,
	},
	model.ResourcePotato: {
		DensityPercent: 0.0007, MinSameKindDistanceSq: 40 * 40, MinTreeDistanceSq: 20 * 20, MinStoneDistanceSq: 25 * 25,
		MinRespawnSecs: 900, MaxRespawnSecs: 1500,
		PrimaryDef: "Potato", PrimaryMin: 1, PrimaryMax: 2,
		SkipSeaAndBeach: true,
	},
	model.ResourcePumpkin: {
		DensityPercent: 0.0005, MinSameKindDistanceSq: 45 * 45, MinTreeDistanceSq: 22 * 22, MinStoneDistanceSq: 28 * 28,
		MinRespawnSecs: 1200, MaxRespawnSecs: 1800,
		PrimaryDef: "Pumpkin", PrimaryMin: 1, PrimaryMax: 1,
		SkipSeaAndBeach: true,
	},
	model.ResourceTree: {
		DensityPercent: 0.02, MinSameKindDistanceSq: 20 * 20, MinTreeDistanceSq: 20 * 20, MinStoneDistanceSq: 10 * 10,
		MinRespawnSecs: 1800, MaxRespawnSecs: 3000,
		PrimaryDef: "Wood", PrimaryMin: 1, PrimaryMax: 3,
		MaxHealth: 100, SkipSeaAndBeach: true,
	},
	model.ResourceStone: {
		DensityPercent: 0.015, MinSameKindDistanceSq: 25 * 25, MinTreeDistanceSq: 10 * 10, MinStoneDistanceSq: 25 * 25,
		MinRespawnSecs: 1800, MaxRespawnSecs: 3000,
		PrimaryDef: "Stone", PrimaryMin: 1, PrimaryMax: 3,
		MaxHealth: 150, SkipSeaAndBeach: true,
	},
}
