package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// NewID returns a fresh random identifier suitable as a primary key,
// formatted as a version-4 UUID.
func NewID() string {
	return uuid.NewString()
}

// RandToken returns a random 8-byte token in base62, used for visitor
// identification of anonymous sessions.
func RandToken() string {
	buf := make([]byte, 8)
	_, err := rand.Read(buf)
	if err != nil {
		panic(err)
	}
	var i big.Int
	return i.SetBytes(buf).Text(62)
}
