package wheelwork

import (
	"github.com/tbickford/wheelwork/wheelwork/cipher"
	"github.com/tbickford/wheelwork/wheelwork/rotor"
)

// Engine pairs an encoder and a decoder built from the same secret.
// Each side holds its own deep copy of the key material, so encoding and
// decoding on one engine never disturb each other's rotation schedules.
//
// An Engine serves one logical stream; it is not safe for concurrent use.
type Engine struct {
	enc *cipher.Encoder
	dec *cipher.Decoder
}

// New builds an engine from s. The secret is deep-copied twice, once per
// side; the caller's s is left untouched and may be reused or wiped.
func New(s *rotor.Secret, mode cipher.Mode) *Engine {
	return &Engine{
		enc: cipher.NewEncoder(s, mode),
		dec: cipher.NewDecoder(s, mode),
	}
}

// Encode obfuscates plain through the engine's encoder.
func (e *Engine) Encode(plain []byte) ([]byte, error) {
	return e.enc.Encode(plain)
}

// Decode recovers bytes from a stream produced with matching key material
// and mode.
func (e *Engine) Decode(stream []byte) ([]byte, error) {
	return e.dec.Decode(stream)
}

// Release wipes both private key copies. The engine is unusable afterwards.
func (e *Engine) Release() {
	e.enc.Release()
	e.dec.Release()
}
