package csvdata

import (
	"context"

	"github.com/andrescamacho/recipe-randomiser/internal/adapters/regions"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/spawn"
)

// FileSource serves game data from the catalogue CSV, the wreck CSV and the
// alternate start YAML
type FileSource struct {
	catalogue   *CatalogueReader
	wrecks      *WreckReader
	regionsPath string
}

// NewFileSource creates a data source over the three data files
func NewFileSource(cataloguePath, wrecksPath, regionsPath string, taxonomy *catalogue.Taxonomy, nodeBounds []int) *FileSource {
	return &FileSource{
		catalogue:   NewCatalogueReader(cataloguePath, taxonomy, nodeBounds),
		wrecks:      NewWreckReader(wrecksPath),
		regionsPath: regionsPath,
	}
}

func (s *FileSource) LoadCatalogue(ctx context.Context) (*catalogue.Catalogue, error) {
	cat, _, err := s.catalogue.Read(ctx)
	return cat, err
}

func (s *FileSource) LoadDataboxes(ctx context.Context) ([]databox.Databox, error) {
	boxes, _, err := s.wrecks.Read(ctx)
	return boxes, err
}

func (s *FileSource) LoadRegions(ctx context.Context) (spawn.Regions, error) {
	return regions.Load(ctx, s.regionsPath)
}
