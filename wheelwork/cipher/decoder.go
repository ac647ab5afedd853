package cipher

import (
	"errors"

	"github.com/tbickford/wheelwork/wheelwork/rotor"
)

var (
	// ErrTruncated reports a stream too short to hold the noise prefix
	// and the selector byte.
	ErrTruncated = errors.New("cipher: stream shorter than prefix and selector")

	// ErrNoiseTail reports a stream that ended immediately after a
	// discarded noise byte, leaving no data byte to pair it with.
	ErrNoiseTail = errors.New("cipher: stream ended on noise byte")
)

// Decoder inverts Encoder's framing. It owns a private copy of its secret;
// the copy's key material must match the encoding side's, but its rotation
// state evolves independently.
//
// Decoding with mismatched key material is not detected: the output is
// deterministic garbage, not an error. A Decoder is not safe for
// concurrent use.
type Decoder struct {
	secret *rotor.Secret
	mode   Mode
}

// NewDecoder builds a decoder over a private deep copy of s.
func NewDecoder(s *rotor.Secret, mode Mode) *Decoder {
	return &Decoder{secret: s.Copy(), mode: mode}
}

// Mode returns the decoder's transformation strategy.
func (d *Decoder) Mode() Mode { return d.mode }

// Decode recovers the bytes encoded into stream. The mode must match the
// one the stream was produced with.
func (d *Decoder) Decode(stream []byte) ([]byte, error) {
	s := d.secret

	s.Reset()
	if len(stream) < s.PrefixLength()+1 {
		return nil, ErrTruncated
	}
	s.SetIndex(stream[s.PrefixLength()])

	out := make([]byte, 0, len(stream)-s.PrefixLength()-1)
	pos := s.PrefixLength() + 1
	for pos < len(stream) {
		if s.Current().Noisey() {
			pos++ // discard the interleaved noise byte
			if pos >= len(stream) {
				return nil, ErrNoiseTail
			}
		}
		c := stream[pos]
		pos++

		switch d.mode {
		case Cascade:
			chain := s.Chain()
			for i := rotor.NumRotors - 1; i >= 0; i-- {
				c = chain[i].Decode(c)
			}
			chain[0].Rotate()
		default:
			r := s.Current()
			c = r.Decode(c)
			r.Rotate()
		}
		out = append(out, c)
		s.Rotate()
	}
	return out, nil
}

// Release wipes the decoder's private key material.
func (d *Decoder) Release() {
	d.secret.Wipe()
}
