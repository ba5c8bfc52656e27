// Package random generates short human-safe tokens, used for development
// product codes.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"sync"
	"time"
)

// No lookalike pairs (0/O, 1/I/l): codes end up on labels and in URLs.
const charset = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

var (
	mu  sync.Mutex
	rng = mrand.New(mrand.NewSource(seed()))
)

func seed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// String returns a random token of the given length.
func String(length int) string {
	mu.Lock()
	defer mu.Unlock()

	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rng.Intn(len(charset))]
	}
	return string(b)
}
