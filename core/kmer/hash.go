// core/kmer/hash.go
package kmer

import (
	"encoding/binary"
	"math/bits"
)

// Hasher maps a k-mer window to a 32-bit value. Implementations must be pure.
type Hasher func(window []byte) uint32

const (
	seed32 = 0x9e3779b9
	rotate = 5
)

func mix(h, w uint32) uint32 {
	return (bits.RotateLeft32(h, rotate) ^ w) * seed32
}

// Hash32 is an Fx-style hash: fast, deterministic, not collision resistant.
// The window length is mixed in first, then 4-byte little-endian words,
// then a 2-byte and a 1-byte tail.
func Hash32(window []byte) uint32 {
	h := mix(0, uint32(len(window)))
	b := window
	for len(b) >= 4 {
		h = mix(h, binary.LittleEndian.Uint32(b))
		b = b[4:]
	}
	if len(b) >= 2 {
		h = mix(h, uint32(binary.LittleEndian.Uint16(b)))
		b = b[2:]
	}
	if len(b) > 0 {
		h = mix(h, uint32(b[0]))
	}
	return h
}
