package rotor

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

// derivationInfo binds derived rotor material to this scheme so the same
// passphrase used elsewhere yields unrelated keys.
const derivationInfo = "wheelwork/secret/v1"

// DeriveSecret builds a secret deterministically from a shared passphrase.
// Both parties derive bit-identical rotor material without ever exchanging
// the tables themselves: HKDF-SHA256 stretches the passphrase into a stream
// key and a ChaCha20 keystream drives the table shuffle, distance, and
// noise-flag draws.
func DeriveSecret(name string, prefixLength int, passphrase []byte) (*Secret, error) {
	hk := hkdf.New(sha256.New, passphrase, nil, []byte(derivationInfo))
	key := make([]byte, chacha20.KeySize)
	if _, err := io.ReadFull(hk, key); err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20.NonceSize)
	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	return newSecret(name, prefixLength, &keystreamReader{stream: stream})
}

// keystreamReader exposes a ChaCha20 keystream as an io.Reader by
// encrypting zeroes in place.
type keystreamReader struct {
	stream *chacha20.Cipher
}

func (k *keystreamReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	k.stream.XORKeyStream(p, p)
	return len(p), nil
}
