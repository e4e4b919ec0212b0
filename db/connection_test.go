package db

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kayceeDev/altschooltestingBE/core"
	"github.com/kayceeDev/altschooltestingBE/services"
)

var _ services.ReadinessChecker = (*Connection)(nil)

// unreachableURI points at a closed port; mongo.Connect does not dial, so only pings would fail
const unreachableURI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"

// newSwitchableConnection returns a connection whose pings succeed only while reachable is set
func newSwitchableConnection(t *testing.T) (*Connection, *atomic.Bool) {
	t.Helper()
	reachable := &atomic.Bool{}
	conn := NewConnection(unreachableURI, "")
	conn.ping = func(ctx context.Context, client *mongo.Client) error {
		if reachable.Load() {
			return nil
		}
		return errors.New("server selection error: server selection timeout")
	}
	t.Cleanup(func() {
		_ = conn.Close(context.Background())
	})
	return conn, reachable
}

func TestConnection_RecoversAfterFailedFirstPing(t *testing.T) {
	conn, reachable := newSwitchableConnection(t)
	ctx := context.Background()

	err := conn.Connect(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping MongoDB")
	assert.False(t, conn.IsReady())

	_, err = conn.Database()
	require.NoError(t, err, "the client is kept for later pings")

	assert.False(t, conn.CheckReady(ctx))

	reachable.Store(true)
	assert.True(t, conn.CheckReady(ctx))
	assert.True(t, conn.IsReady())

	reachable.Store(false)
	assert.False(t, conn.CheckReady(ctx), "readiness follows the latest ping")
}

func TestConnection_MonitorMarksReady(t *testing.T) {
	conn, reachable := newSwitchableConnection(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.Error(t, conn.Connect(ctx))

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.Monitor(ctx, 10*time.Millisecond)
	}()

	reachable.Store(true)
	assert.Eventually(t, conn.IsReady, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}

func TestConnection_CheckReadyWithoutClient(t *testing.T) {
	conn := NewConnection("", "")
	assert.False(t, conn.CheckReady(context.Background()))
}

func TestConnection_ConnectAfterClose(t *testing.T) {
	conn, reachable := newSwitchableConnection(t)
	reachable.Store(true)
	ctx := context.Background()

	require.NoError(t, conn.Close(ctx))

	err := conn.Connect(ctx)
	assert.ErrorIs(t, err, core.ErrClosed)
	assert.False(t, conn.IsReady())

	_, err = conn.Database()
	assert.ErrorIs(t, err, core.ErrNotConnected)
}

func TestConnection_CloseDuringConnect(t *testing.T) {
	conn := NewConnection(unreachableURI, "")
	ctx := context.Background()
	conn.ping = func(ctx context.Context, client *mongo.Client) error {
		// shutdown arrives while the first ping is in flight
		require.NoError(t, conn.Close(ctx))
		return nil
	}

	assert.ErrorIs(t, conn.Connect(ctx), core.ErrClosed)
	assert.False(t, conn.IsReady(), "a closed connection never becomes ready")

	_, err := conn.Database()
	assert.ErrorIs(t, err, core.ErrNotConnected)
	assert.False(t, conn.CheckReady(ctx))
}
