package services

import (
	"crypto/rand"
	"encoding/binary"
)

// DrawSource supplies the 64-bit values winner draws are made from. The
// engine reduces a draw modulo the participant count, which carries a bias
// proportional to 2^64 mod count; the source is an interface so the
// reduction strategy can be revisited without touching the engine.
type DrawSource interface {
	Uint64() (uint64, error)
}

type cryptoDrawSource struct{}

// NewCryptoDrawSource returns a DrawSource backed by crypto/rand.
func NewCryptoDrawSource() DrawSource {
	return cryptoDrawSource{}
}

func (cryptoDrawSource) Uint64() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
