package quic

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/tbickford/wheelwork/wheelwork/cipher"
	"github.com/tbickford/wheelwork/wheelwork/rotor"
)

func TestObfuscatedEcho(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	secret, err := rotor.DeriveSecret("link", 4, []byte("transport test material"))
	if err != nil {
		t.Fatalf("DeriveSecret: %v", err)
	}

	ln, err := Listen("[::1]:0", secret, cipher.Cascade)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	addr := ln.AddrString()
	if addr == "" {
		t.Fatalf("expected listener addr")
	}

	errCh := make(chan error, 1)
	go func() {
		conn, err := ln.Accept(ctx)
		if err != nil {
			errCh <- err
			return
		}
		defer conn.Close()
		for {
			msg, err := conn.Recv()
			if err != nil {
				errCh <- nil // client closed the stream
				return
			}
			if err := conn.Send(msg); err != nil {
				errCh <- err
				return
			}
		}
	}()

	conn, err := Dial(ctx, addr, secret, cipher.Cascade)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	for i, msg := range [][]byte{
		[]byte("first message"),
		[]byte(""),
		bytes.Repeat([]byte{0xA5}, 2048),
	} {
		if err := conn.Send(msg); err != nil {
			t.Fatalf("Send %d: %v", i, err)
		}
		echo, err := conn.Recv()
		if err != nil {
			t.Fatalf("Recv %d: %v", i, err)
		}
		if !bytes.Equal(echo, msg) {
			t.Fatalf("echo %d mismatch: got %d bytes, want %d", i, len(echo), len(msg))
		}
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("server: %v", err)
		}
	case <-ctx.Done():
		t.Fatalf("server did not finish: %v", ctx.Err())
	}
}
