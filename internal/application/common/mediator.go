package common

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Request is a command or query sent through the Mediator
type Request interface{}

// Response is whatever a handler returns for its request
type Response interface{}

type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware runs around every handler. It must call next to continue the
// chain.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// Mediator routes each request to the single handler registered for its
// concrete type.
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
	Use(middleware Middleware)
}

var errNilRequest = errors.New("request cannot be nil")

type mediator struct {
	routes map[reflect.Type]RequestHandler
	chain  []Middleware
}

func NewMediator() Mediator {
	return &mediator{routes: map[reflect.Type]RequestHandler{}}
}

func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	switch {
	case requestType == nil:
		return errors.New("request type cannot be nil")
	case handler == nil:
		return fmt.Errorf("nil handler for %s", requestType)
	}
	if _, taken := m.routes[requestType]; taken {
		return fmt.Errorf("handler already registered for type %s", requestType)
	}
	m.routes[requestType] = handler
	return nil
}

// Use appends a middleware. Middlewares run in registration order, the first
// one outermost.
func (m *mediator) Use(middleware Middleware) {
	if middleware == nil {
		return
	}
	m.chain = append(m.chain, middleware)
}

func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, errNilRequest
	}
	handler, ok := m.routes[reflect.TypeOf(request)]
	if !ok {
		return nil, fmt.Errorf("no handler registered for type %T", request)
	}
	return m.wrap(handler.Handle)(ctx, request)
}

// wrap folds the middleware chain around the final handler
func (m *mediator) wrap(final HandlerFunc) HandlerFunc {
	next := final
	for i := len(m.chain) - 1; i >= 0; i-- {
		mw, inner := m.chain[i], next
		next = func(ctx context.Context, request Request) (Response, error) {
			return mw(ctx, request, inner)
		}
	}
	return next
}

// RegisterHandler registers handler for request type T
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	return m.Register(reflect.TypeOf((*T)(nil)).Elem(), handler)
}

// LoggingMiddleware logs each request at debug level and its failure, if any,
// at error level.
func LoggingMiddleware(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
	logger := LoggerFromContext(ctx)
	name := fmt.Sprintf("%T", request)
	started := time.Now()

	logger.Log(LevelDebug, "Handling request", map[string]interface{}{"request": name})

	response, err := next(ctx, request)
	elapsed := time.Since(started).Milliseconds()
	if err != nil {
		logger.Log(LevelError, "Request failed", map[string]interface{}{
			"request":     name,
			"error":       err.Error(),
			"duration_ms": elapsed,
		})
		return nil, err
	}

	logger.Log(LevelDebug, "Request handled", map[string]interface{}{
		"request":     name,
		"duration_ms": elapsed,
	})
	return response, nil
}
