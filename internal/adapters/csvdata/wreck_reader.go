package csvdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

const wreckColumns = 6

// Tools a databox location may require
const (
	ToolLaserCutter      catalogue.ItemID = "LaserCutter"
	ToolPropulsionCannon catalogue.ItemID = "PropulsionCannon"
)

// WreckReader parses the databox placement CSV
type WreckReader struct {
	path string
}

func NewWreckReader(path string) *WreckReader {
	return &WreckReader{path: path}
}

// Read loads the databoxes from disk. An empty path means no databoxes.
func (r *WreckReader) Read(ctx context.Context) ([]databox.Databox, []error, error) {
	if r.path == "" {
		return nil, nil, nil
	}
	f, err := openSource("wrecks", r.path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return r.Parse(ctx, f)
}

// Parse reads databox rows. Rows without coordinates describe fragments and
// are skipped silently.
func (r *WreckReader) Parse(ctx context.Context, in io.Reader) ([]databox.Databox, []error, error) {
	var boxes []databox.Databox

	warnings, err := readRows(ctx, "wrecks", in, wreckColumns, func(fields []string) error {
		box, ok, err := parseDatabox(fields)
		if err != nil {
			return err
		}
		if ok {
			boxes = append(boxes, box)
		}
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelDebug, "Databoxes loaded", map[string]interface{}{
		"databoxes": len(boxes),
	})
	return boxes, warnings, nil
}

func parseDatabox(fields []string) (databox.Databox, bool, error) {
	id := strings.TrimSpace(fields[0])
	if id == "" {
		return databox.Databox{}, false, errors.New("item id is empty")
	}
	if strings.TrimSpace(fields[1]) == "" {
		return databox.Databox{}, false, nil
	}

	coords, err := parseCoordinates(fields[1])
	if err != nil {
		return databox.Databox{}, false, err
	}

	box := databox.Databox{
		Item:        catalogue.ItemID(id),
		Coordinates: coords,
		Region:      strings.TrimSpace(fields[2]),
	}
	if box.Region == "" {
		box.Region = "None"
	}

	laser, err := flag("laser cutter", fields[4])
	if err != nil {
		return databox.Databox{}, false, err
	}
	propulsion, err := flag("propulsion cannon", fields[5])
	if err != nil {
		return databox.Databox{}, false, err
	}
	if laser {
		box.Tools = append(box.Tools, ToolLaserCutter)
	}
	if propulsion {
		box.Tools = append(box.Tools, ToolPropulsionCannon)
	}

	return box, true, nil
}

// parseCoordinates reads "x;y;z"
func parseCoordinates(cell string) (shared.Vector, error) {
	parts := strings.Split(cell, ";")
	if len(parts) != 3 {
		return shared.Vector{}, fmt.Errorf("coordinates %q are invalid", cell)
	}
	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return shared.Vector{}, fmt.Errorf("coordinates %q are invalid", cell)
		}
		xyz[i] = v
	}
	return shared.NewVector(xyz[0], xyz[1], xyz[2]), nil
}
