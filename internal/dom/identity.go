package dom

import "github.com/google/uuid"

// IDGenerator produces page-unique element identifiers.
// Implemented by UUIDGenerator (production) and testutil.SequenceGenerator (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates time-sortable UUIDv7 identifiers.
//
// UUIDs make collisions across the whole page (and across fragments rewritten
// separately and stitched together later) practically impossible, which label
// association by id relies on.
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// NewID returns a new hyphenated UUIDv7, e.g. "0190d1c4-7b1e-7cc2-9a57-3f0d4c9b2e11".
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDGenerator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
