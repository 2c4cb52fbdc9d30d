//go:build cgo && zmq

package zmq

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"
)

func ipcAddr(t *testing.T) string {
	t.Helper()
	return "ipc://" + filepath.Join(t.TempDir(), "reqrep.sock")
}

func TestRequestReply(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	addr := ipcAddr(t)
	opts := driver.Options{PollInterval: 10 * time.Millisecond}

	server, err := Driver{}.Listen(ctx, addr, driver.ModeReply, opts)
	require.NoError(t, err)
	defer server.Close()

	client, err := Driver{}.Dial(ctx, addr, driver.ModeRequest, opts)
	require.NoError(t, err)
	defer client.Close()

	go func() {
		msg, err := server.Recv(ctx)
		if err != nil {
			t.Errorf("server recv: %v", err)
			return
		}
		defer msg.Free()
		if err := server.Send(ctx, driver.Borrow(msg.Bytes())); err != nil {
			t.Errorf("server send: %v", err)
		}
	}()

	require.NoError(t, client.Send(ctx, driver.Borrow([]byte{1, 2, 3})))
	msg, err := client.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, msg.Bytes())
	msg.Free()
}

func TestRecvHonoursContext(t *testing.T) {
	addr := ipcAddr(t)
	opts := driver.Options{PollInterval: 10 * time.Millisecond}

	server, err := Driver{}.Listen(context.Background(), addr, driver.ModeReply, opts)
	require.NoError(t, err)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = server.Recv(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMalformedEndpoint(t *testing.T) {
	_, err := Driver{}.Dial(context.Background(), "tcp://", driver.ModeRequest, driver.Options{})
	require.Error(t, err)
}

func TestCloseTwice(t *testing.T) {
	s, err := Driver{}.Dial(context.Background(), "tcp://127.0.0.1:1", driver.ModeRequest, driver.Options{})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestVersion(t *testing.T) {
	assert.Contains(t, Driver{}.Version(), "libzmq")
}
