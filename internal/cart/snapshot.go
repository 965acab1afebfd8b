package cart

import (
	"fmt"
)

// Snapshot is the plain-data form of a cart, suitable for any storage
// layer. Signatures are not persisted; they are recomputed on restore.
type Snapshot struct {
	Lines []Line `json:"lines"`
}

// Snapshot projects the cart to plain data.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{Lines: c.Lines()}
}

// Restore rebuilds a cart from a snapshot, re-checking the quantity
// invariant so a tampered or stale snapshot cannot smuggle in a
// zero-quantity line.
func Restore(snapshot Snapshot) (*Cart, error) {
	restored := New()
	for _, line := range snapshot.Lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("cart snapshot: line %q has quantity %d", line.ProductID, line.Quantity)
		}
		line.signature = ComputeSignature(line.ProductID, line.Selections)
		for _, existing := range restored.lines {
			if existing.signature == line.signature {
				return nil, fmt.Errorf("cart snapshot: duplicate configuration for product %q", line.ProductID)
			}
		}
		restored.lines = append(restored.lines, line)
	}
	return restored, nil
}
