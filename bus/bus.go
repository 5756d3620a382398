// Package bus is the in-process message fabric the workers talk over.
// Every worker owns one buffered inbox drained by its own goroutine;
// request/reply pairs are matched by correlation ID.
package bus

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRequestTimeout bounds how long Request waits for a reply.
	DefaultRequestTimeout = 10 * time.Second

	// inboxSize is the per-worker envelope buffer.
	inboxSize = 64

	// OpReply marks dispatcher-generated reply envelopes.
	OpReply = "reply"
)

// Well-known worker addresses.
const (
	AddrCoordinator Address = "coordinator"
	AddrEmotion     Address = "emotion"
	AddrCurator     Address = "curator"
	AddrWeather     Address = "weather"
	AddrMemory      Address = "memory"
)

// ErrClosed is returned once the dispatcher has shut down.
var ErrClosed = errors.New("dispatcher is closed")

// Address names a registered worker.
type Address string

// Envelope is one message on the bus. CorrelationID is set on requests
// that expect a reply and echoed back on the reply.
type Envelope struct {
	ID            string
	CorrelationID string
	From          Address
	To            Address
	Op            string
	Payload       any
}

// Handler processes one envelope. The returned value becomes the reply
// payload when the envelope carries a correlation ID.
type Handler func(ctx context.Context, env Envelope) (any, error)

type response struct {
	value any
	err   error
}

// Dispatcher routes envelopes between workers and completes request
// futures when replies come back.
type Dispatcher struct {
	mu      sync.RWMutex
	workers map[Address]chan Envelope

	pendingMu sync.Mutex
	pending   map[string]chan response

	timeout        time.Duration
	droppedReplies atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

func NewDispatcher() *Dispatcher {
	return NewDispatcherWithTimeout(DefaultRequestTimeout)
}

func NewDispatcherWithTimeout(timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		workers: make(map[Address]chan Envelope),
		pending: make(map[string]chan response),
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register attaches a handler to an address and starts its inbox
// goroutine. One handler per address.
func (d *Dispatcher) Register(addr Address, h Handler) error {
	if d.closed.Load() {
		return ErrClosed
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.workers[addr]; ok {
		return fmt.Errorf("worker %q already registered", addr)
	}

	inbox := make(chan Envelope, inboxSize)
	d.workers[addr] = inbox
	d.wg.Add(1)
	go d.serve(addr, inbox, h)
	return nil
}

// Send enqueues an envelope without waiting for a result. A full inbox is
// the sender's problem: the envelope is rejected, never queued elsewhere.
func (d *Dispatcher) Send(env Envelope) error {
	if d.closed.Load() {
		return ErrClosed
	}
	if env.ID == "" {
		env.ID = uuid.NewString()
	}

	d.mu.RLock()
	inbox, ok := d.workers[env.To]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no worker registered at %q", env.To)
	}

	select {
	case inbox <- env:
		return nil
	default:
		return fmt.Errorf("inbox for %q is full", env.To)
	}
}

// Request sends an envelope and waits for its reply. The envelope gets a
// fresh correlation ID; on timeout or context cancellation the parked
// future is removed first, so a late reply finds nothing to complete.
func (d *Dispatcher) Request(ctx context.Context, env Envelope) (any, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	env.CorrelationID = uuid.NewString()

	future := make(chan response, 1)
	d.pendingMu.Lock()
	d.pending[env.CorrelationID] = future
	d.pendingMu.Unlock()

	if err := d.Send(env); err != nil {
		d.forget(env.CorrelationID)
		return nil, err
	}

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case resp := <-future:
		return resp.value, resp.err
	case <-ctx.Done():
		d.forget(env.CorrelationID)
		return nil, ctx.Err()
	case <-timer.C:
		d.forget(env.CorrelationID)
		return nil, fmt.Errorf("request to %q timed out after %s", env.To, d.timeout)
	}
}

// Close stops all inbox goroutines and fails every parked request with
// ErrClosed. Safe to call more than once.
func (d *Dispatcher) Close() {
	if !d.closed.CompareAndSwap(false, true) {
		return
	}
	d.cancel()
	d.wg.Wait()

	d.pendingMu.Lock()
	for id, future := range d.pending {
		delete(d.pending, id)
		future <- response{err: ErrClosed}
	}
	d.pendingMu.Unlock()
}

// DroppedReplies counts replies that arrived with no waiting request.
func (d *Dispatcher) DroppedReplies() uint64 {
	return d.droppedReplies.Load()
}

func (d *Dispatcher) serve(addr Address, inbox chan Envelope, h Handler) {
	defer d.wg.Done()
	for {
		select {
		case <-d.ctx.Done():
			return
		case env := <-inbox:
			result, err := h(d.ctx, env)
			if env.CorrelationID == "" {
				if err != nil {
					log.Printf("⚠️  Worker %s failed on %s: %v", addr, env.Op, err)
				}
				continue
			}
			d.deliver(Envelope{
				ID:            uuid.NewString(),
				CorrelationID: env.CorrelationID,
				From:          addr,
				To:            env.From,
				Op:            OpReply,
				Payload:       result,
			}, err)
		}
	}
}

// deliver completes the future parked for a reply's correlation ID. The
// entry is removed on first delivery, so duplicates and expired replies
// are counted and dropped, never delivered twice. Replies racing a
// shutdown stay parked for the Close sweep.
func (d *Dispatcher) deliver(reply Envelope, handlerErr error) {
	if d.closed.Load() {
		return
	}
	d.pendingMu.Lock()
	future, ok := d.pending[reply.CorrelationID]
	if ok {
		delete(d.pending, reply.CorrelationID)
	}
	d.pendingMu.Unlock()

	if !ok {
		d.droppedReplies.Add(1)
		log.Printf("⚠️  Dropping reply from %s with no waiting request (correlation %s)", reply.From, reply.CorrelationID)
		return
	}
	future <- response{value: reply.Payload, err: handlerErr}
}

func (d *Dispatcher) forget(correlationID string) {
	d.pendingMu.Lock()
	delete(d.pending, correlationID)
	d.pendingMu.Unlock()
}

func (d *Dispatcher) pendingCount() int {
	d.pendingMu.Lock()
	defer d.pendingMu.Unlock()
	return len(d.pending)
}
