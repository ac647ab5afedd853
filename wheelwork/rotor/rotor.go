package rotor

import (
	"crypto/rand"
	"io"
)

const (
	// TableSize is the number of entries in a rotor substitution table.
	TableSize = 256

	// shufflePasses is the number of full transposition passes applied
	// when keying a fresh rotor table.
	shufflePasses = 4
)

// Rotor is a keyed byte substitution table with a rotating offset.
// The encode table is a permutation of the 256 byte values and the decode
// table is its exact inverse, so decode[encode[b]] == b holds for every b
// regardless of how the tables were keyed.
type Rotor struct {
	encode   [TableSize]byte
	decode   [TableSize]byte
	offset   byte
	distance byte
	noisey   bool
}

// NewRotor keys a fresh rotor from the system entropy source.
// The table starts as the identity permutation and is shuffled through
// several passes of uniformly random pairwise transpositions; the rotation
// distance and the noisey flag are independent random draws.
func NewRotor() (*Rotor, error) {
	return newRotor(rand.Reader)
}

func newRotor(src io.Reader) (*Rotor, error) {
	r := &Rotor{}
	for i := range r.encode {
		r.encode[i] = byte(i)
	}
	var swaps [TableSize]byte
	for pass := 0; pass < shufflePasses; pass++ {
		if _, err := io.ReadFull(src, swaps[:]); err != nil {
			return nil, err
		}
		for i, j := range swaps {
			r.encode[i], r.encode[j] = r.encode[j], r.encode[i]
		}
	}
	r.rebuildDecode()

	var tail [2]byte
	if _, err := io.ReadFull(src, tail[:]); err != nil {
		return nil, err
	}
	r.distance = tail[0]
	r.noisey = tail[1]&1 == 1
	return r, nil
}

// rebuildDecode derives the inverse table from the encode table.
func (r *Rotor) rebuildDecode() {
	for i, v := range r.encode {
		r.decode[v] = byte(i)
	}
}

// Encode substitutes one byte through the table at the current offset.
func (r *Rotor) Encode(b byte) byte {
	return r.encode[b] + r.offset
}

// Decode inverts Encode at the current offset.
func (r *Rotor) Decode(c byte) byte {
	return r.decode[c-r.offset]
}

// Rotate advances the offset by the rotor's fixed distance, wrapping at 256.
func (r *Rotor) Rotate() {
	r.offset += r.distance
}

// Reset returns the offset to its initial position.
func (r *Rotor) Reset() {
	r.offset = 0
}

// Noisey reports whether this rotor interleaves noise bytes when active.
func (r *Rotor) Noisey() bool {
	return r.noisey
}

// Noise draws one uniformly random filler byte. The draw is independent of
// the tables; noise is emitted into the stream and discarded on decode,
// never substituted back.
func (r *Rotor) Noise() (byte, error) {
	var buf [1]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Copy returns a deep clone of the rotor. The current offset is preserved,
// since callers may clone mid-stream.
func (r *Rotor) Copy() *Rotor {
	c := *r
	return &c
}

// Wipe zeroes the substitution tables. The rotor is unusable afterwards.
func (r *Rotor) Wipe() {
	for i := range r.encode {
		r.encode[i] = 0
		r.decode[i] = 0
	}
	r.offset = 0
	r.distance = 0
	r.noisey = false
}
