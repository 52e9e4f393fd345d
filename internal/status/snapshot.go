// internal/status/snapshot.go
package status

// Snapshot is a point-in-time copy of the whole registry.
// It contains no logic and carries no reference back to the registry.
type Snapshot struct {
	Banks [NumClasses][NumBanks]uint16
	Last  [NumClasses]ID
}

// Any reports whether class c had any bit raised at capture time.
func (s Snapshot) Any(c Class) bool {
	if !c.Valid() {
		return false
	}
	for _, w := range s.Banks[c] {
		if w != 0 {
			return true
		}
	}
	return false
}

// IsSet reports whether id was raised in class c at capture time.
func (s Snapshot) IsSet(c Class, id ID) bool {
	if !c.Valid() || !id.Valid() {
		return false
	}
	return s.Banks[c][id.Bank()]&uint16(id.mask()) != 0
}
