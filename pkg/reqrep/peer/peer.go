package peer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"
	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/logging"

	_ "github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver/sp"
)

var ErrUnknownDriver = errors.New("peer: unknown driver")

// Handler computes the reply to one request. The request slice is owned by
// the handler. A returned error is logged and answered with an empty reply so
// the requester is not left waiting.
type Handler func(ctx context.Context, request []byte) ([]byte, error)

// Echo replies with the request unchanged.
func Echo(_ context.Context, request []byte) ([]byte, error) { return request, nil }

type Option func(*options)

type options struct {
	driver       string
	mode         driver.Mode
	handler      Handler
	logger       logging.Logger
	pollInterval time.Duration
}

func WithDriver(name string) Option {
	return func(o *options) { o.driver = name }
}

// WithMode selects driver.ModeReply (default) or driver.ModePair.
func WithMode(m driver.Mode) Option {
	return func(o *options) { o.mode = m }
}

func WithHandler(h Handler) Option {
	return func(o *options) {
		if h != nil {
			o.handler = h
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// Responder serves requests on one bound socket until closed.
type Responder struct {
	addr    string
	sock    driver.Socket
	handler Handler
	log     logging.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	served atomic.Int64

	mu  sync.Mutex
	err error
}

// Listen binds address and starts serving. Serving stops when ctx is done or
// Close is called.
func Listen(ctx context.Context, address string, opts ...Option) (*Responder, error) {
	o := options{
		driver:       "sp",
		mode:         driver.ModeReply,
		handler:      Echo,
		logger:       logging.Nop(),
		pollInterval: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&o)
	}

	drv, ok := driver.Lookup(o.driver)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, o.driver)
	}
	if (o.mode != driver.ModeReply && o.mode != driver.ModePair) || !drv.Supports(o.mode) {
		return nil, fmt.Errorf("%w: peer cannot serve %s on driver %s", driver.ErrModeNotSupported, o.mode, drv.Name())
	}
	addr, err := driver.CheckAddress(drv, address)
	if err != nil {
		return nil, err
	}
	sock, err := drv.Listen(ctx, addr.String(), o.mode, driver.Options{PollInterval: o.pollInterval})
	if err != nil {
		return nil, fmt.Errorf("peer: listen %s: %w", addr, err)
	}

	sctx, cancel := context.WithCancel(ctx)
	r := &Responder{
		addr:    addr.String(),
		sock:    sock,
		handler: o.handler,
		log:     o.logger.With("address", addr.String(), "driver", drv.Name()),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go r.serve(sctx)
	r.log.Debug(ctx, "peer: listening")
	return r, nil
}

func (r *Responder) serve(ctx context.Context) {
	defer close(r.done)
	for {
		msg, err := r.sock.Recv(ctx)
		if err != nil {
			if ctx.Err() == nil {
				r.setErr(err)
				r.log.Error(ctx, "peer: receive failed", "error", err)
			}
			return
		}
		request := make([]byte, len(msg.Bytes()))
		copy(request, msg.Bytes())
		msg.Free()

		reply, err := r.handler(ctx, request)
		if err != nil {
			r.log.Warn(ctx, "peer: handler failed", "error", err, "request_bytes", len(request))
			reply = nil
		}
		if err := r.sock.Send(ctx, driver.Borrow(reply)); err != nil {
			if ctx.Err() != nil {
				return
			}
			r.log.Warn(ctx, "peer: send reply failed", "error", err)
			continue
		}
		r.served.Add(1)
	}
}

func (r *Responder) setErr(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

// Addr returns the bound address.
func (r *Responder) Addr() string { return r.addr }

// Served reports how many replies were sent.
func (r *Responder) Served() int64 { return r.served.Load() }

// Err returns the error that stopped serving, if serving stopped on its own.
func (r *Responder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done is closed once the serving goroutine has exited.
func (r *Responder) Done() <-chan struct{} { return r.done }

// Close stops serving and releases the socket. It waits for an in-flight
// handler to return. Close is idempotent.
func (r *Responder) Close() error {
	var err error
	r.once.Do(func() {
		r.cancel()
		<-r.done
		err = r.sock.Close()
	})
	return err
}
