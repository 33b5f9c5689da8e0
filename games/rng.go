package games

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// RNG is the uniform randomness source injected into the deck manager and the
// engines. Tests substitute a deterministic implementation.
type RNG interface {
	// Intn returns a uniform integer in [0, n). n must be positive.
	Intn(n int) int
}

// HashSource derives an unbounded number stream from a blake2b chain over the
// round's seed pair, so a revealed server seed lets a player replay every draw.
type HashSource struct {
	postfix string
	counter uint64
}

func NewHashSource(clientSeed string, serverSeed string, timestamp uint64) *HashSource {
	return &HashSource{
		postfix: fmt.Sprintf("%d%s%s", timestamp, clientSeed, serverSeed),
	}
}

func (s *HashSource) Next() uint64 {
	hash := blake2b.Sum256([]byte(fmt.Sprintf("%d", s.counter) + s.postfix))
	s.counter++

	return uint64(hash[0])<<56 | uint64(hash[1])<<48 | uint64(hash[2])<<40 | uint64(hash[3])<<32 |
		uint64(hash[4])<<24 | uint64(hash[5])<<16 | uint64(hash[6])<<8 | uint64(hash[7])
}

func (s *HashSource) Intn(n int) int {
	if n <= 0 {
		panic("games: Intn bound must be positive")
	}
	return int(s.Next() % uint64(n))
}
