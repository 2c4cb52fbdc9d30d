// Package zmq binds libzmq (through github.com/pebbe/zmq4) as a reqrep driver.
//
// Every socket owns its own libzmq context, mirroring the context/socket pair
// of the classic C bindings: Close closes the socket and terminates the
// context. A consequence is that inproc:// endpoints only connect sockets that
// share a context, so use ipc:// or tcp:// between separately opened sockets.
//
// libzmq cannot interrupt a blocking receive from another thread. Recv polls
// the socket in PollInterval slices and checks the caller's context between
// slices.
//
// The driver is compiled only with cgo and the zmq build tag:
//
//	go build -tags zmq ./...
//
// Without them the package registers a stub whose Dial and Listen return
// driver.ErrNotBuilt.
package zmq

// Name is the registry name of this driver.
const Name = "zmq"

var schemes = []string{"inproc", "ipc", "tcp", "pgm", "epgm", "ws", "wss"}
