package wire

import (
	"encoding/json"

	"github.com/vitadek/survival/internal/model"
)

// Snapshot is the JSON body served by GET /world/snapshot (§10.2):
// every row within a client's viewport, grouped by table.
type Snapshot struct {
	Players       []model.Player       `json:"players"`
	Structures    []model.Structure    `json:"structures"`
	ResourceNodes []model.ResourceNode `json:"resourceNodes"`
	DroppedItems  []model.DroppedItem  `json:"droppedItems"`
}

// InViewport reports whether (x, y) falls within the client's subscribed
// bounding box. LoadSnapshot does not call it: it filters each table in
// SQL with the same inclusive bounds.
func InViewport(v model.ClientViewport, x, y float64) bool {
	return x >= v.MinX && x <= v.MaxX && y >= v.MinY && y <= v.MaxY
}

// EncodeSnapshot marshals snap to JSON, then, when lz4 is true,
// LZ4-compresses the body — the x-ownworld-lz4 Accept-Encoding path of
// §10.2.
func EncodeSnapshot(snap Snapshot, lz4 bool) ([]byte, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	if !lz4 {
		return body, nil
	}
	return CompressLZ4(body)
}

// DecodeSnapshot reverses EncodeSnapshot; only the package's tests call it.
func DecodeSnapshot(body []byte, lz4 bool) (Snapshot, error) {
	var snap Snapshot
	if lz4 {
		raw, err := DecompressLZ4(body)
		if err != nil {
			return Snapshot{}, err
		}
		body = raw
	}
	err := json.Unmarshal(body, &snap)
	return snap, err
}
