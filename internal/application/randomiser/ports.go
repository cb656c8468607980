package randomiser

import (
	"context"

	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/spawn"
)

// DataSource loads the static game data a pass runs on
type DataSource interface {
	// LoadCatalogue returns the item catalogue. Unreadable or empty data is a
	// *shared.DataLoadError.
	LoadCatalogue(ctx context.Context) (*catalogue.Catalogue, error)

	// LoadDataboxes returns the vanilla databox placements
	LoadDataboxes(ctx context.Context) ([]databox.Databox, error)

	// LoadRegions returns the spawn regions per biome
	LoadRegions(ctx context.Context) (spawn.Regions, error)
}

// PassMetrics records statistics about randomisation passes
type PassMetrics interface {
	ItemEntered(item *catalogue.Item)
	RecordPass(report *progression.Report)
}
