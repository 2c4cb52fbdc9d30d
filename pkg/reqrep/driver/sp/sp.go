// Package sp binds nanomsg scalability-protocol sockets (mangos) as a reqrep
// driver. It is pure Go and serves the inproc, ipc, tcp, tls+tcp, ws and wss
// transports.
package sp

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pair"
	"go.nanomsg.org/mangos/v3/protocol/rep"
	"go.nanomsg.org/mangos/v3/protocol/req"

	// Register all transports with mangos.
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"
)

// Name is the registry name of this driver.
const Name = "sp"

func init() { driver.Register(Driver{}) }

// Driver implements driver.Driver on top of mangos.
type Driver struct{}

var _ driver.Driver = Driver{}

func (Driver) Name() string { return Name }

func (Driver) Version() string { return "mangos/v3" }

func (Driver) Schemes() []string {
	return []string{"inproc", "ipc", "tcp", "tls+tcp", "ws", "wss"}
}

func (Driver) Supports(m driver.Mode) bool {
	switch m {
	case driver.ModePair, driver.ModeRequest, driver.ModeReply:
		return true
	default:
		return false
	}
}

func newSocket(m driver.Mode) (mangos.Socket, error) {
	switch m {
	case driver.ModePair:
		return pair.NewSocket()
	case driver.ModeRequest:
		return req.NewSocket()
	case driver.ModeReply:
		return rep.NewSocket()
	default:
		return nil, errors.Wrapf(driver.ErrModeNotSupported, "sp: %s", m)
	}
}

func (d Driver) Dial(ctx context.Context, addr string, m driver.Mode, opts driver.Options) (driver.Socket, error) {
	return d.open(ctx, m, opts, func(s mangos.Socket) error { return s.Dial(addr) })
}

func (d Driver) Listen(ctx context.Context, addr string, m driver.Mode, opts driver.Options) (driver.Socket, error) {
	return d.open(ctx, m, opts, func(s mangos.Socket) error { return s.Listen(addr) })
}

// open creates the socket and runs attach (Dial or Listen) in a goroutine so a
// done ctx can abandon it; the socket is closed on every failure path.
func (Driver) open(ctx context.Context, m driver.Mode, opts driver.Options, attach func(mangos.Socket) error) (driver.Socket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sock, err := newSocket(m)
	if err != nil {
		return nil, errors.Wrap(err, "sp: new socket")
	}
	// Requests are never resent: with a zero retry time a pending request
	// fails when its pipe drops instead of moving to the next pipe.
	if m == driver.ModeRequest {
		if err := sock.SetOption(mangos.OptionRetryTime, time.Duration(0)); err != nil {
			_ = sock.Close()
			return nil, errors.Wrap(err, "sp: disable request retry")
		}
	}
	if opts.DialAsync {
		if err := sock.SetOption(mangos.OptionDialAsynch, true); err != nil {
			_ = sock.Close()
			return nil, errors.Wrap(err, "sp: set dial async")
		}
	}

	done := make(chan error, 1)
	go func() { done <- attach(sock) }()
	select {
	case err := <-done:
		if err != nil {
			_ = sock.Close()
			return nil, errors.Wrap(err, "sp: attach")
		}
	case <-ctx.Done():
		_ = sock.Close()
		return nil, ctx.Err()
	}
	return &socket{sock: sock}, nil
}

type socket struct {
	sock mangos.Socket

	once     sync.Once
	closeErr error
}

// abort closes the socket. mangos cannot interrupt a blocked Send or Recv in
// place, so closing is how a done ctx unblocks them.
func (s *socket) abort() {
	s.once.Do(func() { s.closeErr = s.sock.Close() })
}

func (s *socket) Send(ctx context.Context, v driver.View) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, s.abort)
	// Send copies v into a fresh mangos message before queueing it.
	err := s.sock.Send(v.Bytes())
	if !stop() {
		return ctx.Err()
	}
	if err != nil {
		return errors.Wrap(err, "sp: send")
	}
	return nil
}

func (s *socket) Recv(ctx context.Context) (driver.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stop := context.AfterFunc(ctx, s.abort)
	m, err := s.sock.RecvMsg()
	if !stop() {
		if m != nil {
			m.Free()
		}
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, errors.Wrap(err, "sp: recv")
	}
	return message{m: m}, nil
}

func (s *socket) Close() error {
	s.abort()
	if s.closeErr != nil && !errors.Is(s.closeErr, mangos.ErrClosed) {
		return errors.Wrap(s.closeErr, "sp: close")
	}
	return nil
}

type message struct {
	m *mangos.Message
}

func (m message) Bytes() []byte { return m.m.Body }

func (m message) Free() { m.m.Free() }
