package helpers

import (
	"context"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/spawn"
)

// StaticSource serves fixed game data to the randomiser
type StaticSource struct {
	Catalogue *catalogue.Catalogue
	Databoxes []databox.Databox
	Regions   spawn.Regions
}

// LoadCatalogue returns the fixed catalogue; a nil catalogue is a load error
func (s *StaticSource) LoadCatalogue(ctx context.Context) (*catalogue.Catalogue, error) {
	if s.Catalogue == nil {
		return nil, shared.NewDataLoadError("catalogue", "catalogue is empty", nil)
	}
	return s.Catalogue, nil
}

func (s *StaticSource) LoadDataboxes(ctx context.Context) ([]databox.Databox, error) {
	return s.Databoxes, nil
}

func (s *StaticSource) LoadRegions(ctx context.Context) (spawn.Regions, error) {
	return s.Regions, nil
}
