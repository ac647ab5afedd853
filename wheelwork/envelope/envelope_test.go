package envelope

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/tbickford/wheelwork/wheelwork/cipher"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("obfuscated bytes")
	if err := WriteFrame(&buf, cipher.Cascade, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	mode, out, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if mode != cipher.Cascade {
		t.Fatalf("mode = %v, want CASCADE", mode)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestSealOpen(t *testing.T) {
	data, err := Seal(cipher.Shallow, []byte("x"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	mode, payload, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if mode != cipher.Shallow || !bytes.Equal(payload, []byte("x")) {
		t.Fatalf("unexpected open result: %v %q", mode, payload)
	}

	// Empty payloads are legal; an encoded empty message still has a
	// prefix and selector, but the envelope itself does not care.
	data, err = Seal(cipher.Cascade, nil)
	if err != nil {
		t.Fatalf("Seal empty: %v", err)
	}
	if _, payload, err = Open(data); err != nil || len(payload) != 0 {
		t.Fatalf("Open empty: %q %v", payload, err)
	}
}

func TestFrameRejections(t *testing.T) {
	good, err := Seal(cipher.Shallow, []byte("payload"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	cases := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"bad magic", func(b []byte) []byte { b[0] = 'x'; return b }, ErrBadMagic},
		{"unknown version", func(b []byte) []byte { b[2] = 9; return b }, ErrUnknownVersion},
		{"unknown mode", func(b []byte) []byte { b[3] = 0; return b }, ErrUnknownMode},
		{"oversized length", func(b []byte) []byte {
			b[4], b[5], b[6], b[7] = 0xFF, 0xFF, 0xFF, 0xFF
			return b
		}, ErrTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := tc.mutate(append([]byte(nil), good...))
			if _, _, err := Open(data); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	if err := WriteFrame(io.Discard, cipher.Mode(7), nil); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("WriteFrame accepted unknown mode: %v", err)
	}
	if err := WriteFrame(io.Discard, cipher.Shallow, make([]byte, MaxPayload+1)); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("WriteFrame accepted oversized payload: %v", err)
	}
}

func TestFrameShortStream(t *testing.T) {
	good, err := Seal(cipher.Cascade, []byte("cut me short"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, _, err := Open(good[:5]); err == nil {
		t.Fatalf("expected error on truncated header")
	}
	if _, _, err := Open(good[:len(good)-3]); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF on truncated payload, got %v", err)
	}
}
