package reqrep

import (
	"context"
	"fmt"

	"github.com/hsiuhsiu/reqrep-go/internal/handles"
)

// Handle is an opaque reference to an open connection. It carries no memory
// address and stays meaningful only inside this process.
type Handle uint64

// NullHandle is never issued by Open.
const NullHandle Handle = Handle(handles.Null)

var conns = handles.New[*Conn]()

// Open dials address and returns a handle to the new connection. On failure
// no handle is produced and NullHandle is returned.
func Open(ctx context.Context, address string, opts ...Option) (Handle, error) {
	c, err := Dial(ctx, address, opts...)
	if err != nil {
		return NullHandle, err
	}
	return Handle(conns.Put(c)), nil
}

// Exchange performs one request/reply exchange on the connection behind h.
// A null, unknown or closed handle yields a connection error.
func Exchange(ctx context.Context, h Handle, request []byte) ([]byte, error) {
	c, ok := conns.Get(handles.Handle(h))
	if !ok {
		return nil, connectionErr("exchange", fmt.Errorf("%w: %d", ErrInvalidHandle, h))
	}
	return c.Exchange(ctx, request)
}

// Close releases the connection behind h and invalidates the handle. Closing
// NullHandle or a handle that is unknown or already closed does nothing.
func Close(h Handle) error {
	c, ok := conns.Take(handles.Handle(h))
	if !ok {
		return nil
	}
	return c.Close()
}
