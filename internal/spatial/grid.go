// Package spatial implements the uniform grid index of §4.7, ported
// directly from original_source/server/src/spatial_grid.rs: cell size
// 4x player radius, point-indexed entities except AABB-shaped shelters
// which are inserted into every overlapping cell, and a 3x3-neighborhood
// range query. The grid is rebuilt per reducer invocation rather than
// incrementally maintained, since reducers are short and already
// read-consistent (§4.7).
package spatial

import "github.com/vitadek/survival/internal/model"

const CellSize = model.PlayerRadius * 4

// EntityKind tags what an Entity in the grid refers to.
type EntityKind string

const (
	EntityPlayer       EntityKind = "Player"
	EntityTree         EntityKind = "Tree"
	EntityStone        EntityKind = "Stone"
	EntityCampfire     EntityKind = "Campfire"
	EntityStorageBox   EntityKind = "StorageBox"
	EntityPlant        EntityKind = "Plant" // Mushroom/Corn/Hemp/Potato/Pumpkin
	EntityDroppedItem  EntityKind = "DroppedItem"
	EntityShelter      EntityKind = "Shelter"
	EntityPlayerCorpse EntityKind = "PlayerCorpse"
)

// Entity is one indexed occupant: Kind plus an opaque ID (a string so it
// can carry either an int64 row id or a player identity).
type Entity struct {
	Kind EntityKind
	ID   string
	X, Y float64
}

// Grid is the rebuilt-per-query uniform index. Width/height are computed
// from the world's pixel dimensions the same way grid_width/grid_height
// do in the original.
type Grid struct {
	cells  map[int64][]Entity
	width  int
	height int
}

func New() *Grid {
	width := int((float64(model.WorldWidth)*model.TileSizePx)/CellSize) + 1
	height := int((float64(model.WorldHeight)*model.TileSizePx)/CellSize) + 1
	return &Grid{cells: make(map[int64][]Entity), width: width, height: height}
}

func (g *Grid) cellIndex(cellX, cellY int) (int64, bool) {
	if cellX < 0 || cellY < 0 || cellX >= g.width || cellY >= g.height {
		return 0, false
	}
	return int64(cellY)*int64(g.width) + int64(cellX), true
}

func (g *Grid) cellCoords(x, y float64) (int, int) {
	return int(x / CellSize), int(y / CellSize)
}

// Insert point-indexes e at (e.X, e.Y). Out-of-bounds positions are
// silently dropped, matching get_cell_index's None case.
func (g *Grid) Insert(e Entity) {
	cx, cy := g.cellCoords(e.X, e.Y)
	if idx, ok := g.cellIndex(cx, cy); ok {
		g.cells[idx] = append(g.cells[idx], e)
	}
}

// InsertAABB indexes e into every cell its axis-aligned bounding box
// overlaps, used for shelters (§4.7: "AABB-shaped and larger than a
// cell").
func (g *Grid) InsertAABB(e Entity, halfWidth, halfHeight float64) {
	left, right := e.X-halfWidth, e.X+halfWidth
	top, bottom := e.Y-halfHeight, e.Y+halfHeight

	startX, startY := g.cellCoords(left, top)
	endX, endY := g.cellCoords(right, bottom)
	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}
	if endX >= g.width {
		endX = g.width - 1
	}
	if endY >= g.height {
		endY = g.height - 1
	}
	for cy := startY; cy <= endY; cy++ {
		for cx := startX; cx <= endX; cx++ {
			if idx, ok := g.cellIndex(cx, cy); ok {
				g.cells[idx] = append(g.cells[idx], e)
			}
		}
	}
}

// EntitiesAt returns the occupants of the single cell containing (x, y).
func (g *Grid) EntitiesAt(x, y float64) []Entity {
	cx, cy := g.cellCoords(x, y)
	idx, ok := g.cellIndex(cx, cy)
	if !ok {
		return nil
	}
	return g.cells[idx]
}

// EntitiesInRange returns the occupants of the 3x3 neighborhood centered
// on the cell containing (x, y) — sufficient because every collision
// radius in play is <= CellSize (§4.7).
func (g *Grid) EntitiesInRange(x, y float64) []Entity {
	cx, cy := g.cellCoords(x, y)
	var out []Entity
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			idx, ok := g.cellIndex(cx+dx, cy+dy)
			if !ok {
				continue
			}
			out = append(out, g.cells[idx]...)
		}
	}
	return out
}
