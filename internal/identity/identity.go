// Package identity derives the content-addressed IDs used for ground
// items and placed structures, and wraps connection-id generation.
// Grounded in the teacher's utils.go hashBLAKE3 and db.go's per-row UUID
// stamping for federated entities.
package identity

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"lukechampine.com/blake3"
)

// DroppedItemID derives a stable, content-addressed id for a ground item
// from its instance id, position and drop time, so two drops of the same
// instance never collide even if retried. Mirrors hashBLAKE3 in utils.go.
func DroppedItemID(instanceID int64, x, y float64, droppedAt time.Time) string {
	buf := make([]byte, 0, 32)
	buf = binary.BigEndian.AppendUint64(buf, uint64(instanceID))
	buf = appendFloat(buf, x)
	buf = appendFloat(buf, y)
	buf = binary.BigEndian.AppendUint64(buf, uint64(droppedAt.UnixNano()))
	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:16])
}

// StructureID derives a stable id for a newly placed structure from its
// placer, kind and position. Nothing in the server calls it; structure
// rows are keyed by the database's AUTOINCREMENT id.
func StructureID(placedBy, kind string, x, y float64) string {
	data := fmt.Sprintf("%s|%s|%f|%f", placedBy, kind, x, y)
	sum := blake3.Sum256([]byte(data))
	return hex.EncodeToString(sum[:16])
}

func appendFloat(buf []byte, f float64) []byte {
	bits := make([]byte, 8)
	binary.BigEndian.PutUint64(bits, floatBits(f))
	return append(buf, bits...)
}

func floatBits(f float64) uint64 {
	return uint64(int64(f * 1e6))
}

// NewConnectionID mints a connection identifier for a freshly accepted
// client session, grounded in the teacher's session/connection UUID use.
func NewConnectionID() string {
	return uuid.NewString()
}
