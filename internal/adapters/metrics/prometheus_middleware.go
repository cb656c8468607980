package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
)

// PrometheusMiddleware creates a middleware that records request execution
// duration and outcome. Request names drop their package prefix, so
// "*randomiser.RandomiseCommand" is recorded as "RandomiseCommand".
func PrometheusMiddleware(collector *RequestMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		requestName := extractRequestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordRequestExecution(requestName, time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

func extractRequestName(request common.Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if idx := strings.LastIndex(fullName, "."); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}
