package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
)

type pingQuery struct{ Value string }

type pingHandler struct{}

func (h *pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	q := request.(*pingQuery)
	if q.Value == "" {
		return nil, errors.New("empty ping")
	}
	return "pong:" + q.Value, nil
}

type recordingLogger struct {
	entries []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.entries = append(l.entries, level+" "+message)
}

func TestMediator_DispatchesToRegisteredHandler(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, &pingHandler{}))

	resp, err := m.Send(context.Background(), &pingQuery{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, &pingHandler{}))

	assert.Error(t, common.RegisterHandler[*pingQuery](m, &pingHandler{}))
	_, err := m.Send(context.Background(), &struct{}{})
	assert.Error(t, err)
	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, &pingHandler{}))
	var order []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		m.Use(func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
			order = append(order, name)
			return next(ctx, request)
		})
	}

	_, err := m.Send(context.Background(), &pingQuery{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLoggingMiddleware_LogsFailures(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, &pingHandler{}))
	m.Use(common.LoggingMiddleware)
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	_, err := m.Send(ctx, &pingQuery{})

	assert.Error(t, err)
	assert.Equal(t, []string{"DEBUG Handling request", "ERROR Request failed"}, logger.entries)
}
