package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep"
	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/peer"
)

func TestInterceptorCountsExchanges(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	r, err := peer.Listen(ctx, "inproc://metrics-ok")
	require.NoError(t, err)
	defer r.Close()

	conn, err := reqrep.Dial(ctx, "inproc://metrics-ok", reqrep.WithInterceptors(c.Interceptor()))
	require.NoError(t, err)
	defer conn.Close()

	for _, req := range [][]byte{[]byte("abc"), []byte("de")} {
		_, err := conn.Exchange(ctx, req)
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.exchanges.WithLabelValues("sp", "request", StatusOK)))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.requestBytes.WithLabelValues("sp")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.replyBytes.WithLabelValues("sp")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))
}

func TestInterceptorLabelsFailures(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	r, err := peer.Listen(ctx, "inproc://metrics-closed")
	require.NoError(t, err)
	defer r.Close()

	conn, err := reqrep.Dial(ctx, "inproc://metrics-closed", reqrep.WithInterceptors(c.Interceptor()))
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	_, err = conn.Exchange(ctx, []byte("x"))
	require.ErrorIs(t, err, reqrep.ErrConnection)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.exchanges.WithLabelValues("sp", "request", "connection")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.replyBytes.WithLabelValues("sp")))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusOK, status(nil))
	assert.Equal(t, "transport", status(&reqrep.Error{Kind: reqrep.KindTransport, Op: "exchange", Err: errors.New("x")}))
	assert.Equal(t, "error", status(errors.New("plain")))
}

func TestNewDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}
