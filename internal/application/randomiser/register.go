package randomiser

import (
	"fmt"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// NewMediator wires every randomiser handler into a mediator with request
// logging. Extra middlewares run inside the logging middleware in the given order.
func NewMediator(
	source DataSource,
	repo result.ArtifactRepository,
	metrics PassMetrics,
	clock shared.Clock,
	middlewares ...common.Middleware,
) (common.Mediator, error) {
	m := common.NewMediator()
	m.Use(common.LoggingMiddleware)
	for _, mw := range middlewares {
		m.Use(mw)
	}

	if err := common.RegisterHandler[*RandomiseCommand](m, NewRandomiseHandler(source, repo, metrics, clock)); err != nil {
		return nil, fmt.Errorf("failed to register randomise handler: %w", err)
	}
	if err := common.RegisterHandler[*RestoreCommand](m, NewRestoreHandler(m, repo)); err != nil {
		return nil, fmt.Errorf("failed to register restore handler: %w", err)
	}
	if err := common.RegisterHandler[*DecodeArtifactQuery](m, NewDecodeArtifactHandler()); err != nil {
		return nil, fmt.Errorf("failed to register decode handler: %w", err)
	}
	return m, nil
}
