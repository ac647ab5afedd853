package rotor

import (
	"crypto/rand"
	"errors"
	"io"
)

// NumRotors is the fixed size of a secret's rotor set.
const NumRotors = 5

var ErrNegativePrefix = errors.New("rotor: prefix length must be non-negative")

// Secret is the complete keyed material shared out-of-band between the
// encoding and decoding parties: an ordered set of exactly five rotors, the
// length of the noise prefix prepended to every stream, and the index of
// the currently active rotor.
//
// A Secret tracks mutable rotation state and is not safe for concurrent
// use; every independent logical stream needs its own copy.
type Secret struct {
	name      string
	prefixLen int
	rotors    [NumRotors]*Rotor
	index     int
}

// NewSecret creates a secret with five freshly keyed rotors.
func NewSecret(name string, prefixLength int) (*Secret, error) {
	return newSecret(name, prefixLength, rand.Reader)
}

func newSecret(name string, prefixLength int, src io.Reader) (*Secret, error) {
	if prefixLength < 0 {
		return nil, ErrNegativePrefix
	}
	s := &Secret{name: name, prefixLen: prefixLength}
	for i := range s.rotors {
		r, err := newRotor(src)
		if err != nil {
			return nil, err
		}
		s.rotors[i] = r
	}
	return s, nil
}

// Name returns the secret's label.
func (s *Secret) Name() string { return s.name }

// PrefixLength returns the number of noise bytes prepended to every stream.
func (s *Secret) PrefixLength() int { return s.prefixLen }

// Reset establishes the canonical baseline before a transformation run:
// the first rotor becomes active and every rotor's offset returns to zero.
func (s *Secret) Reset() {
	s.index = 0
	for _, r := range s.rotors {
		r.Reset()
	}
}

// Rotate advances the active rotor to the next one, wrapping after the last.
func (s *Secret) Rotate() {
	s.index = (s.index + 1) % NumRotors
}

// SetIndex makes rotor sel mod 5 the active one. The argument is typically
// a raw selector byte drawn by the encoder.
func (s *Secret) SetIndex(sel byte) {
	s.index = int(sel) % NumRotors
}

// RandomIndex draws one uniformly random selector byte. The raw value goes
// out on the wire as-is; callers reduce it with SetIndex.
func (s *Secret) RandomIndex() (byte, error) {
	var buf [1]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Current returns the active rotor.
func (s *Secret) Current() *Rotor {
	return s.rotors[s.index]
}

// Chain returns all five rotors reordered to start at the active one,
// wrapping cyclically. Cascade encoding threads each byte through the
// chain in this order.
func (s *Secret) Chain() [NumRotors]*Rotor {
	var chain [NumRotors]*Rotor
	for i := range chain {
		chain[i] = s.rotors[(s.index+i)%NumRotors]
	}
	return chain
}

// Copy returns a deep clone with every rotor's offset and the active index
// reset to zero. A copy is a fresh deterministic starting state built from
// identical key material; the source's transient rotation state does not
// carry over.
func (s *Secret) Copy() *Secret {
	c := &Secret{name: s.name, prefixLen: s.prefixLen}
	for i, r := range s.rotors {
		c.rotors[i] = r.Copy()
		c.rotors[i].Reset()
	}
	return c
}

// Wipe zeroes all rotor tables. The secret is unusable afterwards.
func (s *Secret) Wipe() {
	for _, r := range s.rotors {
		r.Wipe()
	}
	s.index = 0
}
