package messaging

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// HandlerFunc serves one action
type HandlerFunc func(ctx context.Context, req Request) Response

// Future is a pending response. It is resolved exactly once.
type Future struct {
	done chan struct{}
	once sync.Once
	resp Response
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(resp Response) {
	f.once.Do(func() {
		f.resp = resp
		close(f.done)
	})
}

// Done is closed once the response is available
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the response is available or ctx ends
func (f *Future) Wait(ctx context.Context) (Response, error) {
	select {
	case <-f.done:
		return f.resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Dispatcher routes requests to action handlers. Every request runs on its
// own goroutine; requests are not serialized against each other.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	inflight sync.WaitGroup
	log      logrus.FieldLogger
}

// NewDispatcher creates a dispatcher with no handlers
func NewDispatcher(log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		log:      log.WithField("component", "dispatcher"),
	}
}

// Handle registers h for action, replacing any previous handler
func (d *Dispatcher) Handle(action string, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[action] = h
}

// Dispatch starts serving req and returns its pending response. The
// response carries the request id.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) *Future {
	f := newFuture()

	d.mu.RLock()
	h, ok := d.handlers[req.Action]
	d.mu.RUnlock()

	if !ok {
		d.log.WithField("action", req.Action).Warn("Unknown action")
		resp := ErrorResponse(fmt.Sprintf("unknown action %q", req.Action))
		resp.ID = req.ID
		f.resolve(resp)
		return f
	}

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.WithField("action", req.Action).Errorf("Handler panic: %v", r)
				resp := ErrorResponse("internal error")
				resp.ID = req.ID
				f.resolve(resp)
			}
		}()

		resp := h(ctx, req)
		resp.ID = req.ID
		f.resolve(resp)
	}()
	return f
}

// Call dispatches req and waits for its response
func (d *Dispatcher) Call(ctx context.Context, req Request) (Response, error) {
	return d.Dispatch(ctx, req).Wait(ctx)
}

// Wait blocks until every dispatched handler has returned
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}
