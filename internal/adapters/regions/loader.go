package regions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/spawn"
)

// file is the on-disk layout of the alternate start file
type file struct {
	Biomes map[string][]spawn.Region `yaml:"biomes"`
}

// Load reads the spawn regions at path. An empty path means no regions, which
// makes every non-vanilla spawn choice fall back to the origin.
func Load(ctx context.Context, path string) (spawn.Regions, error) {
	if path == "" {
		return spawn.Regions{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, shared.NewDataLoadError("spawn regions", "cannot open "+path, err)
	}

	regions, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelDebug, "Spawn regions loaded", map[string]interface{}{
		"biomes": len(regions.Biomes()),
	})
	return regions, nil
}

// Parse decodes alternate start YAML. Unknown keys are rejected so that a
// misspelt bound does not silently become 0.
func Parse(raw []byte) (spawn.Regions, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, shared.NewDataLoadError("spawn regions", "invalid YAML", err)
	}

	regions := make(spawn.Regions, len(f.Biomes))
	seen := make(map[string]string, len(f.Biomes))
	for name, boxes := range f.Biomes {
		key := strings.ToLower(name)
		if other, dup := seen[key]; dup {
			return nil, shared.NewDataLoadError("spawn regions", fmt.Sprintf("biomes %q and %q differ only by case", other, name), nil)
		}
		seen[key] = name

		for i, box := range boxes {
			if box.MinX > box.MaxX || box.MinZ > box.MaxZ {
				return nil, shared.NewDataLoadError("spawn regions", fmt.Sprintf("box %d of %s has inverted bounds: %s", i, name, box), nil)
			}
		}
		regions[spawn.Biome(name)] = boxes
	}
	return regions, nil
}
