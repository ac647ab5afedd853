// Package keyfile persists secrets for the out-of-band exchange between
// the encoding and decoding parties. The container compresses the textual
// secret record with LZ4 and can optionally be armored with Reed-Solomon
// parity so a partially corrupted key file is still recoverable.
//
// Armor protects the key material at rest; it adds nothing to the cipher
// stream itself.
package keyfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/tbickford/wheelwork/wheelwork/rotor"
)

var fileMagic = [4]byte{'W', 'K', 'F', '1'}

var (
	ErrBadKeyfile = errors.New("keyfile: not a wheelwork key file")
)

// Write serializes s into a compressed container on w.
func Write(w io.Writer, s *rotor.Secret) error {
	rec, err := s.Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(fileMagic[:]); err != nil {
		return err
	}
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(rec); err != nil {
		return err
	}
	return zw.Close()
}

// Read parses a container written by Write and reconstructs the secret.
func Read(r io.Reader) (*rotor.Secret, error) {
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, err
	}
	if m != fileMagic {
		return nil, ErrBadKeyfile
	}
	zr := lz4.NewReader(r)
	var rec bytes.Buffer
	if _, err := io.Copy(&rec, zr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadKeyfile, err)
	}
	return rotor.UnmarshalSecret(rec.Bytes())
}

// Bytes serializes s into an in-memory container.
func Bytes(s *rotor.Secret) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reconstructs a secret from an in-memory container.
func Parse(data []byte) (*rotor.Secret, error) {
	return Read(bytes.NewReader(data))
}
