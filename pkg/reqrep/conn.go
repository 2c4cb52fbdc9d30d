package reqrep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"
	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/logging"
)

// Conn is one connection: a driver socket of a fixed mode attached to one
// address. Exchange must not be called concurrently on the same Conn; Close
// may be called from any goroutine.
type Conn struct {
	addr string
	drv  driver.Driver
	opts options
	log  logging.Logger

	mu     sync.Mutex
	sock   driver.Socket // nil after an interrupted exchange until redialed
	closed bool
}

// Dial validates the options and address, then connects a socket. A Conn that
// becomes unreachable without Close is closed by a finalizer.
func Dial(ctx context.Context, address string, opts ...Option) (*Conn, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	drv, ok := driver.Lookup(o.driver)
	if !ok {
		return nil, validationErr("open", fmt.Errorf("%w: %q (registered: %v)", ErrUnknownDriver, o.driver, driver.Drivers()))
	}
	if !o.mode.Valid() || !drv.Supports(o.mode) {
		return nil, validationErr("open", fmt.Errorf("%w: %s on driver %s", ErrModeNotSupported, o.mode, drv.Name()))
	}
	addr, err := driver.CheckAddress(drv, address)
	if err != nil {
		return nil, connectionErr("open", err)
	}

	c := &Conn{
		addr: addr.String(),
		drv:  drv,
		opts: o,
		log:  o.logger.With("driver", drv.Name(), "address", addr.String(), "mode", o.mode.String()),
	}
	sock, err := c.dial(ctx)
	if err != nil {
		return nil, connectionErr("open", err)
	}
	c.sock = sock
	c.log.Info(ctx, "reqrep: connection opened")

	runtime.SetFinalizer(c, func(c *Conn) { _ = c.Close() })
	return c, nil
}

func (c *Conn) dial(ctx context.Context) (driver.Socket, error) {
	if c.opts.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.dialTimeout)
		defer cancel()
	}
	return c.drv.Dial(ctx, c.addr, c.opts.mode, c.opts.driverOptions())
}

// Exchange sends request and blocks until exactly one reply arrives. The reply
// is a new slice sized to the inbound message and owned by the caller.
//
// When ctx is done before the reply arrives the socket is torn down and the
// call fails with a transport error wrapping ctx.Err(); the next Exchange
// reconnects.
func (c *Conn) Exchange(ctx context.Context, request []byte) ([]byte, error) {
	if c == nil {
		return nil, connectionErr("exchange", ErrInvalidHandle)
	}
	call := &Call{
		Driver:  c.drv.Name(),
		Address: c.addr,
		Mode:    c.opts.mode,
		Request: request,
	}
	return chain(c.roundTrip, c.opts.interceptors)(ctx, call)
}

func (c *Conn) roundTrip(ctx context.Context, call *Call) ([]byte, error) {
	sock, err := c.socket(ctx)
	if err != nil {
		return nil, err
	}
	if !c.opts.mode.CanExchange() {
		return nil, validationErr("exchange", fmt.Errorf("%w: %s sockets cannot start an exchange", ErrModeNotSupported, c.opts.mode))
	}
	if c.opts.exchangeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.exchangeTimeout)
		defer cancel()
	}

	if err := sock.Send(ctx, driver.Borrow(call.Request)); err != nil {
		return nil, c.fail(ctx, sock, "send", err)
	}
	msg, err := sock.Recv(ctx)
	if err != nil {
		return nil, c.fail(ctx, sock, "recv", err)
	}
	defer msg.Free()

	body := msg.Bytes()
	reply := make([]byte, len(body))
	copy(reply, body)
	return reply, nil
}

// socket returns the live socket, redialing if an earlier exchange tore it
// down.
func (c *Conn) socket(ctx context.Context) (driver.Socket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, connectionErr("exchange", ErrClosed)
	}
	if c.sock != nil {
		return c.sock, nil
	}
	sock, err := c.dial(ctx)
	if err != nil {
		return nil, connectionErr("exchange", err)
	}
	c.sock = sock
	c.log.Debug(ctx, "reqrep: connection re-established")
	return sock, nil
}

func (c *Conn) fail(ctx context.Context, sock driver.Socket, stage string, err error) error {
	if ctx.Err() == nil {
		return transportErr("exchange", err)
	}
	c.mu.Lock()
	if c.sock == sock {
		c.sock = nil
	}
	c.mu.Unlock()
	if cerr := sock.Close(); cerr != nil {
		c.log.Warn(ctx, "reqrep: closing interrupted socket", "error", cerr)
	}
	c.log.Debug(ctx, "reqrep: exchange interrupted, socket torn down", "stage", stage)
	return transportErr("exchange", fmt.Errorf("%s interrupted: %w", stage, ctx.Err()))
}

// Close releases the socket. Closing an already closed Conn is a no-op. The
// Conn is unusable after Close even when an error is returned.
func (c *Conn) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	sock := c.sock
	c.sock = nil
	c.mu.Unlock()

	runtime.SetFinalizer(c, nil)
	if sock == nil {
		return nil
	}
	if err := sock.Close(); err != nil {
		return connectionErr("close", err)
	}
	c.log.Info(context.Background(), "reqrep: connection closed")
	return nil
}

func (c *Conn) Address() string { return c.addr }

func (c *Conn) Mode() Mode { return c.opts.mode }

// Driver returns the name of the driver serving c.
func (c *Conn) Driver() string { return c.drv.Name() }
