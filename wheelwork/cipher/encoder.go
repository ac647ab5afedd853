package cipher

import "github.com/tbickford/wheelwork/wheelwork/rotor"

// Encoder transforms raw bytes into an obfuscated stream. It owns a private
// copy of its secret and mutates that copy's rotation state on every call,
// so each call continues the instance's own schedule from a clean reset.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	secret *rotor.Secret
	mode   Mode
}

// NewEncoder builds an encoder over a private deep copy of s.
func NewEncoder(s *rotor.Secret, mode Mode) *Encoder {
	return &Encoder{secret: s.Copy(), mode: mode}
}

// Mode returns the encoder's transformation strategy.
func (e *Encoder) Mode() Mode { return e.mode }

// Encode obfuscates plain. The output begins with the secret's noise
// prefix, then the raw selector byte that names the starting rotor, then
// one transformed byte per input byte, each optionally preceded by a noise
// byte when the rotor active at that position is noisey.
func (e *Encoder) Encode(plain []byte) ([]byte, error) {
	s := e.secret

	// Worst case: every data byte is paired with a noise byte.
	out := make([]byte, 0, s.PrefixLength()+1+2*len(plain))

	s.Reset()
	for i := 0; i < s.PrefixLength(); i++ {
		n, err := s.Current().Noise()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	s.Reset()
	sel, err := s.RandomIndex()
	if err != nil {
		return nil, err
	}
	// The selector goes out raw; the receiver reduces it mod 5.
	out = append(out, sel)
	s.SetIndex(sel)

	for _, b := range plain {
		var err error
		switch e.mode {
		case Cascade:
			out, err = e.cascadeByte(out, b)
		default:
			out, err = e.shallowByte(out, b)
		}
		if err != nil {
			return nil, err
		}
		s.Rotate()
	}
	return out, nil
}

func (e *Encoder) shallowByte(out []byte, b byte) ([]byte, error) {
	r := e.secret.Current()
	if r.Noisey() {
		n, err := r.Noise()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	out = append(out, r.Encode(b))
	r.Rotate()
	return out, nil
}

func (e *Encoder) cascadeByte(out []byte, b byte) ([]byte, error) {
	chain := e.secret.Chain()
	if chain[0].Noisey() {
		n, err := chain[0].Noise()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	v := b
	for _, r := range chain {
		v = r.Encode(v)
	}
	out = append(out, v)
	chain[0].Rotate()
	return out, nil
}

// Release wipes the encoder's private key material.
func (e *Encoder) Release() {
	e.secret.Wipe()
}
