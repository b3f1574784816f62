// Package identifier provides the 128-bit random identifiers that tag which
// steady-clock source produced a time point. Tagging readings with their
// source keeps time points from different sources from ever comparing equal
// by accident, even when the numeric seconds happen to match.
package identifier

import "github.com/google/uuid"

// Identifier is an RFC 4122 UUID in big-endian byte order. The zero value
// is the nil UUID and is treated as invalid everywhere.
type Identifier [16]byte

// Generate returns a fresh version 4 (random) identifier. The version and
// variant bits are set per RFC 4122.
func Generate() Identifier {
	return Identifier(uuid.New())
}

// Valid reports whether id is a real identifier rather than the nil UUID.
func (id Identifier) Valid() bool {
	return id != Identifier{}
}

// String returns the canonical textual form of the identifier.
func (id Identifier) String() string {
	return uuid.UUID(id).String()
}
