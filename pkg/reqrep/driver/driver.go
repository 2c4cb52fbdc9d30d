package driver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	// ErrNotBuilt reports that a driver's native library was not linked into
	// the current binary.
	ErrNotBuilt = errors.New("reqrep/driver: native driver not built")

	// ErrBadAddress reports an endpoint that is empty, lacks a scheme, or uses
	// a scheme the driver cannot serve.
	ErrBadAddress = errors.New("reqrep/driver: malformed address")

	// ErrModeNotSupported reports a socket mode the driver or operation cannot
	// handle.
	ErrModeNotSupported = errors.New("reqrep/driver: mode not supported")
)

// Options carries the per-socket knobs a driver may honour. Drivers ignore
// fields that have no meaning for their library.
type Options struct {
	// PollInterval bounds how long a blocking receive waits between checks of
	// the caller's context. Only drivers that cannot be interrupted in place
	// use it.
	PollInterval time.Duration

	// Linger is how long pending outbound messages are kept after Close.
	Linger time.Duration

	// DialAsync lets Dial return before the peer is reachable.
	DialAsync bool
}

// Socket is one endpoint of an established channel.
//
// Concurrency: a Socket is used by one goroutine at a time. The only call that
// may race with a pending Send or Recv is the driver's own ctx-triggered abort.
//
// Cancellation: Send and Recv return ctx.Err() once ctx is done. A socket whose
// operation was interrupted this way is unusable and must be closed.
type Socket interface {
	// Send hands v to the transport and returns once the transport accepted
	// it. The driver must not retain v after Send returns.
	Send(ctx context.Context, v View) error

	// Recv blocks for exactly one inbound message.
	Recv(ctx context.Context) (Message, error)

	// Close releases the socket and any library context behind it. Close is
	// idempotent.
	Close() error
}

// Driver binds one messaging library.
type Driver interface {
	Name() string
	Version() string
	Schemes() []string
	Supports(m Mode) bool

	// Dial creates a socket of the given mode and connects it to addr.
	Dial(ctx context.Context, addr string, m Mode, opts Options) (Socket, error)

	// Listen creates a socket of the given mode and binds it to addr.
	Listen(ctx context.Context, addr string, m Mode, opts Options) (Socket, error)
}

var (
	regMu   sync.RWMutex
	drivers = map[string]Driver{}
)

// Register makes d available by name. It panics if d is nil or a driver with
// the same name is already registered.
func Register(d Driver) {
	if d == nil {
		panic("reqrep/driver: Register driver is nil")
	}
	regMu.Lock()
	defer regMu.Unlock()
	name := d.Name()
	if _, dup := drivers[name]; dup {
		panic("reqrep/driver: Register called twice for driver " + name)
	}
	drivers[name] = d
}

func Lookup(name string) (Driver, bool) {
	regMu.RLock()
	d, ok := drivers[name]
	regMu.RUnlock()
	return d, ok
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	regMu.RLock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	regMu.RUnlock()
	sort.Strings(names)
	return names
}

// CheckAddress parses addr and verifies d can serve its scheme.
func CheckAddress(d Driver, addr string) (Address, error) {
	a, err := ParseAddress(addr)
	if err != nil {
		return Address{}, err
	}
	for _, s := range d.Schemes() {
		if s == a.Scheme {
			return a, nil
		}
	}
	return Address{}, fmt.Errorf("%w: scheme %q not served by driver %s", ErrBadAddress, a.Scheme, d.Name())
}
