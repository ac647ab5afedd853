// Package quic carries wheelwork-obfuscated messages over QUIC. It is a
// collaborator outside the engine core: every message is encoded through a
// per-connection engine, wrapped in an envelope frame, and written to a
// single bidirectional stream. QUIC's own TLS layer provides transport
// encryption; the rotor obfuscation rides inside it.
package quic

import (
	"context"
	"errors"
	"net"
	"sync"

	q "github.com/quic-go/quic-go"

	"github.com/tbickford/wheelwork/wheelwork"
	"github.com/tbickford/wheelwork/wheelwork/cipher"
	"github.com/tbickford/wheelwork/wheelwork/envelope"
	"github.com/tbickford/wheelwork/wheelwork/rotor"
)

var ErrModeMismatch = errors.New("quic: frame mode does not match connection mode")

// Listener accepts obfuscated connections keyed by a shared secret.
type Listener struct {
	inner  *q.Listener
	secret *rotor.Secret
	mode   cipher.Mode
}

// Listen starts a listener on addr. Peers must dial with a secret built
// from the same key material and the same mode.
func Listen(addr string, s *rotor.Secret, mode cipher.Mode) (*Listener, error) {
	tlsConf, err := NewServerTLSConfig()
	if err != nil {
		return nil, err
	}
	ln, err := q.ListenAddr(addr, tlsConf, &q.Config{})
	if err != nil {
		return nil, err
	}
	return &Listener{inner: ln, secret: s.Copy(), mode: mode}, nil
}

func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	conn, err := l.inner.Accept(ctx)
	if err != nil {
		return nil, err
	}
	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		return nil, err
	}
	return newConn(conn, stream, l.secret, l.mode), nil
}

func (l *Listener) Addr() net.Addr { return l.inner.Addr() }

func (l *Listener) AddrString() string {
	if l.inner == nil {
		return ""
	}
	return l.inner.Addr().String()
}

func (l *Listener) Close() error { return l.inner.Close() }

// Dial connects to addr and opens the message stream.
func Dial(ctx context.Context, addr string, s *rotor.Secret, mode cipher.Mode) (*Conn, error) {
	tlsConf, err := NewClientTLSConfig()
	if err != nil {
		return nil, err
	}
	conn, err := q.DialAddr(ctx, addr, tlsConf, &q.Config{})
	if err != nil {
		return nil, err
	}
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		return nil, err
	}
	return newConn(conn, stream, s, mode), nil
}

// Conn is one obfuscated message connection. Each Conn owns its own
// engine, so rotation schedules never leak between connections.
type Conn struct {
	conn   q.Connection
	stream q.Stream
	engine *wheelwork.Engine
	mode   cipher.Mode

	sendMu sync.Mutex
	recvMu sync.Mutex
}

func newConn(conn q.Connection, stream q.Stream, s *rotor.Secret, mode cipher.Mode) *Conn {
	return &Conn{
		conn:   conn,
		stream: stream,
		engine: wheelwork.New(s, mode),
		mode:   mode,
	}
}

// Send obfuscates msg and writes it as one envelope frame.
func (c *Conn) Send(msg []byte) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	stream, err := c.engine.Encode(msg)
	if err != nil {
		return err
	}
	return envelope.WriteFrame(c.stream, c.mode, stream)
}

// Recv reads one envelope frame and recovers the message.
func (c *Conn) Recv() ([]byte, error) {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()

	mode, payload, err := envelope.ReadFrame(c.stream)
	if err != nil {
		return nil, err
	}
	if mode != c.mode {
		return nil, ErrModeMismatch
	}
	return c.engine.Decode(payload)
}

// Close releases the engine's key material and tears down the connection.
func (c *Conn) Close() error {
	c.engine.Release()
	if err := c.stream.Close(); err != nil {
		_ = c.conn.CloseWithError(0, "")
		return err
	}
	return c.conn.CloseWithError(0, "")
}
