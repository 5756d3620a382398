package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestReply(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	require.NoError(t, d.Register("echo", func(_ context.Context, env Envelope) (any, error) {
		return fmt.Sprintf("echo: %v", env.Payload), nil
	}))

	result, err := d.Request(context.Background(), Envelope{To: "echo", Op: "say", Payload: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", result)
}

func TestRequestHandlerErrorPropagates(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	boom := errors.New("classifier offline")
	require.NoError(t, d.Register("emotion", func(context.Context, Envelope) (any, error) {
		return nil, boom
	}))

	_, err := d.Request(context.Background(), Envelope{To: "emotion", Op: "classify"})
	assert.ErrorIs(t, err, boom)
}

func TestSendDeliversAsync(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	received := make(chan Envelope, 1)
	require.NoError(t, d.Register("memory", func(_ context.Context, env Envelope) (any, error) {
		received <- env
		return nil, nil
	}))

	require.NoError(t, d.Send(Envelope{From: AddrCoordinator, To: "memory", Op: "store", Payload: 42}))

	select {
	case env := <-received:
		assert.Equal(t, "store", env.Op)
		assert.Equal(t, 42, env.Payload)
		assert.NotEmpty(t, env.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("envelope never reached the worker")
	}
}

func TestSendUnknownAddress(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	err := d.Send(Envelope{To: "nobody", Op: "ping"})
	assert.ErrorContains(t, err, `no worker registered at "nobody"`)
}

func TestRegisterDuplicateAddress(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	h := func(context.Context, Envelope) (any, error) { return nil, nil }
	require.NoError(t, d.Register("curator", h))
	assert.ErrorContains(t, d.Register("curator", h), "already registered")
}

func TestRequestTimeoutDropsLateReply(t *testing.T) {
	d := NewDispatcherWithTimeout(50 * time.Millisecond)
	defer d.Close()

	done := make(chan struct{})
	require.NoError(t, d.Register("slow", func(context.Context, Envelope) (any, error) {
		defer close(done)
		time.Sleep(200 * time.Millisecond)
		return "too late", nil
	}))

	_, err := d.Request(context.Background(), Envelope{To: "slow", Op: "work"})
	require.ErrorContains(t, err, "timed out")
	assert.Zero(t, d.pendingCount(), "timed out request must not leak its future")

	<-done
	assert.Eventually(t, func() bool { return d.DroppedReplies() == 1 },
		time.Second, 10*time.Millisecond, "the late reply should be counted and dropped")
}

func TestRequestHonorsContextCancel(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	require.NoError(t, d.Register("slow", func(ctx context.Context, _ Envelope) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := d.Request(ctx, Envelope{To: "slow", Op: "work"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, d.pendingCount())
}

func TestCloseFailsParkedRequests(t *testing.T) {
	d := NewDispatcher()

	require.NoError(t, d.Register("stuck", func(ctx context.Context, _ Envelope) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))

	errCh := make(chan error, 1)
	go func() {
		_, err := d.Request(context.Background(), Envelope{To: "stuck", Op: "work"})
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	d.Close()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("parked request never failed after Close")
	}

	assert.ErrorIs(t, d.Send(Envelope{To: "stuck"}), ErrClosed)
	assert.ErrorIs(t, d.Register("more", func(context.Context, Envelope) (any, error) { return nil, nil }), ErrClosed)
}

func TestFullInboxRejectsSend(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	started := make(chan struct{}, 1)
	gate := make(chan struct{})
	require.NoError(t, d.Register("slow", func(context.Context, Envelope) (any, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-gate
		return nil, nil
	}))

	require.NoError(t, d.Send(Envelope{To: "slow", Op: "work"}))
	<-started

	for i := 0; i < inboxSize; i++ {
		require.NoError(t, d.Send(Envelope{To: "slow", Op: "work"}))
	}
	assert.ErrorContains(t, d.Send(Envelope{To: "slow", Op: "work"}), "full")

	close(gate)
}

func TestConcurrentRequestsStayCorrelated(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	require.NoError(t, d.Register("echo", func(_ context.Context, env Envelope) (any, error) {
		return env.Payload, nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			result, err := d.Request(context.Background(), Envelope{To: "echo", Op: "say", Payload: n})
			assert.NoError(t, err)
			assert.Equal(t, n, result)
		}(i)
	}
	wg.Wait()

	assert.Zero(t, d.pendingCount())
	assert.Zero(t, d.DroppedReplies())
}
