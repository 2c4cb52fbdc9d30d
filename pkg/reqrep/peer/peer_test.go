package peer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver"
	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/driver/sp"
)

var addrSeq atomic.Int64

func inprocAddr(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("inproc://peer-%s-%d", t.Name(), addrSeq.Add(1))
}

func exchange(ctx context.Context, t *testing.T, addr string, m driver.Mode, req []byte) []byte {
	t.Helper()
	s, err := sp.Driver{}.Dial(ctx, addr, m, driver.Options{})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Send(ctx, driver.Borrow(req)))
	msg, err := s.Recv(ctx)
	require.NoError(t, err)
	defer msg.Free()
	return append([]byte{}, msg.Bytes()...)
}

func TestEcho(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := Listen(ctx, inprocAddr(t))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []byte{1, 2, 3}, exchange(ctx, t, r.Addr(), driver.ModeRequest, []byte{1, 2, 3}))
	assert.Empty(t, exchange(ctx, t, r.Addr(), driver.ModeRequest, nil))
	require.Eventually(t, func() bool { return r.Served() == 2 }, time.Second, 5*time.Millisecond)
}

func TestCustomHandler(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	upper := func(_ context.Context, req []byte) ([]byte, error) {
		out := make([]byte, len(req))
		for i, b := range req {
			if b >= 'a' && b <= 'z' {
				b -= 'a' - 'A'
			}
			out[i] = b
		}
		return out, nil
	}
	r, err := Listen(ctx, inprocAddr(t), WithHandler(upper))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "HELLO", string(exchange(ctx, t, r.Addr(), driver.ModeRequest, []byte("hello"))))
}

func TestHandlerErrorRepliesEmpty(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	failing := func(context.Context, []byte) ([]byte, error) { return []byte("ignored"), errors.New("boom") }
	r, err := Listen(ctx, inprocAddr(t), WithHandler(failing))
	require.NoError(t, err)
	defer r.Close()

	assert.Empty(t, exchange(ctx, t, r.Addr(), driver.ModeRequest, []byte("x")))
	assert.NoError(t, r.Err())
}

func TestPairMode(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, err := Listen(ctx, inprocAddr(t), WithMode(driver.ModePair))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []byte("pair"), exchange(ctx, t, r.Addr(), driver.ModePair, []byte("pair")))
}

func TestListenRejects(t *testing.T) {
	ctx := context.Background()

	_, err := Listen(ctx, inprocAddr(t), WithMode(driver.ModeRequest))
	assert.ErrorIs(t, err, driver.ErrModeNotSupported)

	_, err = Listen(ctx, inprocAddr(t), WithDriver("nope"))
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = Listen(ctx, "not-an-address")
	assert.ErrorIs(t, err, driver.ErrBadAddress)

	_, err = Listen(ctx, "pgm://eth0;239.0.0.1:5555")
	assert.ErrorIs(t, err, driver.ErrBadAddress)
}

func TestContextStopsServing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	r, err := Listen(ctx, inprocAddr(t))
	require.NoError(t, err)
	cancel()

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("responder did not stop after cancel")
	}
	assert.NoError(t, r.Err())
	assert.NoError(t, r.Close())
}

func TestCloseIdempotent(t *testing.T) {
	r, err := Listen(context.Background(), inprocAddr(t))
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	_, open := <-r.Done()
	assert.False(t, open)
}

func TestBlockingHandlerReleasedByClose(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entered := make(chan struct{})
	block := func(hctx context.Context, _ []byte) ([]byte, error) {
		close(entered)
		<-hctx.Done()
		return nil, hctx.Err()
	}
	r, err := Listen(ctx, inprocAddr(t), WithHandler(block))
	require.NoError(t, err)

	s, err := sp.Driver{}.Dial(ctx, r.Addr(), driver.ModeRequest, driver.Options{})
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Send(ctx, driver.Borrow([]byte("wait"))))

	<-entered
	require.NoError(t, r.Close())
}
