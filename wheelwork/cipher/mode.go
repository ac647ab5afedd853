package cipher

// Mode selects the transformation strategy. Both parties must agree on the
// mode out-of-band; the stream itself does not carry it.
type Mode uint8

const (
	// Shallow substitutes each byte through the single active rotor.
	Shallow Mode = 1
	// Cascade threads each byte through all five rotors, active-first.
	// Recommended: a single table difference diffuses through every
	// subsequent output byte.
	Cascade Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Shallow:
		return "SHALLOW"
	case Cascade:
		return "CASCADE"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether m names a known transformation strategy.
func (m Mode) Valid() bool {
	return m == Shallow || m == Cascade
}
