//go:build cgo && zmq

package zmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	zmq4 "github.com/pebbe/zmq4"
	"github.com/pkg/errors"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"
)

const defaultPollInterval = 100 * time.Millisecond

func init() { driver.Register(Driver{}) }

// Driver implements driver.Driver on top of libzmq.
type Driver struct{}

var _ driver.Driver = Driver{}

func (Driver) Name() string { return Name }

func (Driver) Version() string {
	major, minor, patch := zmq4.Version()
	return fmt.Sprintf("libzmq %d.%d.%d", major, minor, patch)
}

func (Driver) Schemes() []string { return schemes }

func (Driver) Supports(m driver.Mode) bool {
	_, ok := socketType(m)
	return ok
}

func socketType(m driver.Mode) (zmq4.Type, bool) {
	switch m {
	case driver.ModePair:
		return zmq4.PAIR, true
	case driver.ModeRequest:
		return zmq4.REQ, true
	case driver.ModeReply:
		return zmq4.REP, true
	case driver.ModeDealer:
		return zmq4.DEALER, true
	case driver.ModeRouter:
		return zmq4.ROUTER, true
	default:
		return 0, false
	}
}

func (d Driver) Dial(ctx context.Context, addr string, m driver.Mode, opts driver.Options) (driver.Socket, error) {
	return open(ctx, m, opts, func(s *zmq4.Socket) error { return s.Connect(addr) })
}

func (d Driver) Listen(ctx context.Context, addr string, m driver.Mode, opts driver.Options) (driver.Socket, error) {
	return open(ctx, m, opts, func(s *zmq4.Socket) error { return s.Bind(addr) })
}

func open(ctx context.Context, m driver.Mode, opts driver.Options, attach func(*zmq4.Socket) error) (driver.Socket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	typ, ok := socketType(m)
	if !ok {
		return nil, errors.Wrapf(driver.ErrModeNotSupported, "zmq: %s", m)
	}

	zctx, err := zmq4.NewContext()
	if err != nil {
		return nil, errors.Wrap(err, "zmq: init context")
	}
	sock, err := zctx.NewSocket(typ)
	if err != nil {
		_ = zctx.Term()
		return nil, errors.Wrap(err, "zmq: new socket")
	}
	s := &socket{zctx: zctx, sock: sock, poll: opts.PollInterval}
	if s.poll <= 0 {
		s.poll = defaultPollInterval
	}

	if err := sock.SetLinger(opts.Linger); err != nil {
		_ = s.Close()
		return nil, errors.Wrap(err, "zmq: set linger")
	}
	if err := attach(sock); err != nil {
		_ = s.Close()
		return nil, errors.Wrap(err, "zmq: attach")
	}
	return s, nil
}

type socket struct {
	zctx *zmq4.Context
	sock *zmq4.Socket
	poll time.Duration

	once     sync.Once
	closeErr error
}

// wait polls for events in s.poll slices until they fire or ctx is done.
func (s *socket) wait(ctx context.Context, events zmq4.State) error {
	poller := zmq4.NewPoller()
	poller.Add(s.sock, events)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		polled, err := poller.Poll(s.poll)
		if err != nil {
			return errors.Wrap(err, "zmq: poll")
		}
		if len(polled) > 0 {
			return nil
		}
	}
}

func (s *socket) Send(ctx context.Context, v driver.View) error {
	if err := s.wait(ctx, zmq4.POLLOUT); err != nil {
		return err
	}
	// SendBytes copies v into a zmq message before returning.
	if _, err := s.sock.SendBytes(v.Bytes(), 0); err != nil {
		return errors.Wrap(err, "zmq: send")
	}
	return nil
}

func (s *socket) Recv(ctx context.Context) (driver.Message, error) {
	if err := s.wait(ctx, zmq4.POLLIN); err != nil {
		return nil, err
	}
	b, err := s.sock.RecvBytes(0)
	if err != nil {
		return nil, errors.Wrap(err, "zmq: recv")
	}
	return driver.Owned(b), nil
}

// Close closes the socket, then terminates its context. Both are attempted;
// the first failure is reported.
func (s *socket) Close() error {
	s.once.Do(func() {
		errClose := s.sock.Close()
		errTerm := s.zctx.Term()
		switch {
		case errClose != nil:
			s.closeErr = errors.Wrap(errClose, "zmq: close socket")
		case errTerm != nil:
			s.closeErr = errors.Wrap(errTerm, "zmq: terminate context")
		}
	})
	return s.closeErr
}
