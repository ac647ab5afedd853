// Package envelope wraps an obfuscated stream in a small self-describing
// frame. The raw cipher stream carries no mode discriminator; the envelope
// carries it in-band so the receiving side does not need out-of-band
// agreement on shallow versus cascade.
//
// Format:
//
//	2 bytes: magic "wk"
//	1 byte:  envelope version
//	1 byte:  mode
//	4 bytes: payload length (big endian)
//	N bytes: payload (the obfuscated stream)
package envelope

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/tbickford/wheelwork/wheelwork/cipher"
)

const (
	// Version is the current envelope format version.
	Version = 1

	// MaxPayload limits a single envelope payload.
	MaxPayload = 1 << 20 // 1 MiB

	headerSize = 8
)

var magic = [2]byte{'w', 'k'}

var (
	ErrBadMagic       = errors.New("envelope: bad magic")
	ErrUnknownVersion = errors.New("envelope: unknown version")
	ErrUnknownMode    = errors.New("envelope: unknown mode")
	ErrTooLarge       = errors.New("envelope: payload too large")
)

// WriteFrame writes one framed payload to w.
func WriteFrame(w io.Writer, mode cipher.Mode, payload []byte) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}
	if len(payload) > MaxPayload {
		return ErrTooLarge
	}

	bw := bufio.NewWriter(w)
	var hdr [headerSize]byte
	hdr[0] = magic[0]
	hdr[1] = magic[1]
	hdr[2] = Version
	hdr[3] = byte(mode)
	binary.BigEndian.PutUint32(hdr[4:], uint32(len(payload)))
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := bw.Write(payload); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFrame reads one framed payload from r.
func ReadFrame(r io.Reader) (cipher.Mode, []byte, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, err
	}
	if hdr[0] != magic[0] || hdr[1] != magic[1] {
		return 0, nil, ErrBadMagic
	}
	if hdr[2] != Version {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnknownVersion, hdr[2])
	}
	mode := cipher.Mode(hdr[3])
	if !mode.Valid() {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnknownMode, hdr[3])
	}
	payloadLen := binary.BigEndian.Uint32(hdr[4:])
	if payloadLen > MaxPayload {
		return 0, nil, fmt.Errorf("%w: %d", ErrTooLarge, payloadLen)
	}
	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return 0, nil, err
		}
	}
	return mode, payload, nil
}

// Seal frames payload into a byte slice.
func Seal(mode cipher.Mode, payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(headerSize + len(payload))
	if err := WriteFrame(&buf, mode, payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Open unwraps a framed byte slice.
func Open(data []byte) (cipher.Mode, []byte, error) {
	return ReadFrame(bytes.NewReader(data))
}
