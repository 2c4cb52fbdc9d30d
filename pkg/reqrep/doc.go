// Package reqrep binds a messaging library's request/reply sockets behind a
// small synchronous API.
//
// A connection is opened against an address of the form scheme://endpoint,
// used for any number of exchanges, then closed:
//
//	h, err := reqrep.Open(ctx, "tcp://127.0.0.1:5555")
//	if err != nil {
//		return err
//	}
//	defer reqrep.Close(h)
//
//	reply, err := reqrep.Exchange(ctx, h, []byte("ping"))
//
// Each Exchange sends one request and blocks until exactly one reply arrives.
// The request is handed to the transport without copying; the reply is always
// a fresh slice owned by the caller. Callers that prefer values over handles
// can use Dial and the methods on Conn directly.
//
// # Drivers
//
// The transport is provided by a driver. The default, "sp", is pure Go and
// speaks the nanomsg scalability protocols. The "zmq" driver links libzmq and is
// only available when built with cgo and the zmq build tag; otherwise opening
// it fails with ErrNotBuilt.
//
// # Errors
//
// Every failure is an *Error whose class can be tested with errors.Is against
// ErrValidation, ErrConnection or ErrTransport. Transport failures carry the
// messaging library's own error text.
//
// # Cancellation
//
// Exchange honours its context. If the context ends while waiting, the socket
// is discarded and the next Exchange reconnects transparently.
package reqrep
