package randomiser

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/spawn"
)

// GameData is everything a pass needs from the data files
type GameData struct {
	Catalogue *catalogue.Catalogue
	Databoxes []databox.Databox
	Regions   spawn.Regions
}

// LoadGameData loads the catalogue and the spawn regions concurrently, plus the
// databoxes when withDataboxes is set, and waits for all of them. The first
// failure cancels the others.
func LoadGameData(ctx context.Context, source DataSource, withDataboxes bool) (*GameData, error) {
	g, gctx := errgroup.WithContext(ctx)
	data := &GameData{}

	g.Go(func() error {
		cat, err := source.LoadCatalogue(gctx)
		if err != nil {
			return fmt.Errorf("failed to load catalogue: %w", err)
		}
		data.Catalogue = cat
		return nil
	})
	if withDataboxes {
		g.Go(func() error {
			boxes, err := source.LoadDataboxes(gctx)
			if err != nil {
				return fmt.Errorf("failed to load databoxes: %w", err)
			}
			data.Databoxes = boxes
			return nil
		})
	}
	g.Go(func() error {
		regions, err := source.LoadRegions(gctx)
		if err != nil {
			return fmt.Errorf("failed to load spawn regions: %w", err)
		}
		data.Regions = regions
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
