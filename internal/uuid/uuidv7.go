// Package uuid generates time-ordered request identifiers.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 string: a 48-bit millisecond timestamp followed by
// random bits, so IDs sort by creation time in logs.
func New() string {
	var b [16]byte

	binary.BigEndian.PutUint64(b[0:8], uint64(time.Now().UnixMilli())<<16)

	if _, err := rand.Read(b[6:]); err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}

	b[6] = (b[6] & 0x0f) | 0x70 // version 7
	b[8] = (b[8] & 0x3f) | 0x80 // RFC 4122 variant

	return googleuuid.UUID(b).String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
