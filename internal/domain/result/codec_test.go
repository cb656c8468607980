package result_test

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

func buildResult(t *testing.T) *result.Result {
	t.Helper()

	r := result.New(-1234, "Random")
	knife := &catalogue.Item{
		ID:       "Knife",
		Category: catalogue.CategoryTools,
		Node:     1,
		Recipe: catalogue.Recipe{
			Ingredients: []catalogue.Ingredient{{Item: "Quartz", Amount: 1}, {Item: "Titanium", Amount: 1}},
			CraftAmount: 1,
		},
	}
	heatBlade := &catalogue.Item{
		ID:            "HeatBlade",
		Category:      catalogue.CategoryTools,
		Node:          2,
		Prerequisites: []catalogue.ItemID{"Knife"},
		Recipe: catalogue.Recipe{
			Ingredients: []catalogue.Ingredient{{Item: "Knife", Amount: 1}, {Item: "Battery", Amount: 2}},
			CraftAmount: 1,
			LinkedItems: []catalogue.ItemID{"Scrap"},
		},
	}
	require.NoError(t, r.Put(result.NewRandomizedRecipe(heatBlade)))
	require.NoError(t, r.Put(result.NewRandomizedRecipe(knife)))
	require.NoError(t, r.SetDataboxes([]databox.Databox{
		{Item: "Seaglide", Coordinates: shared.NewVector(1.5, -20, 300.25), Region: "Grassy"},
		{Item: "LaserCutter", Coordinates: shared.NewVector(-4, -5, 6), Tools: []catalogue.ItemID{"PropulsionCannon"}},
	}))
	start := shared.NewVector(120, 0, -340)
	require.NoError(t, r.SetStartPoint(&start))
	r.Freeze()
	return r
}

func TestCodec_RoundTrip(t *testing.T) {
	// Arrange
	original := buildResult(t)

	// Act
	artifact, err := result.Encode(original)
	require.NoError(t, err)
	decoded, err := result.Decode(artifact)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, result.CurrentVersion, decoded.Version)
	assert.Equal(t, original.Seed, decoded.Seed)
	assert.Equal(t, original.SpawnChoice, decoded.SpawnChoice)
	assert.Equal(t, original.Recipes(), decoded.Recipes())
	assert.Equal(t, original.Databoxes(), decoded.Databoxes())
	require.NotNil(t, decoded.StartPoint())
	assert.Equal(t, *original.StartPoint(), *decoded.StartPoint())
	assert.True(t, decoded.Frozen())
}

func TestCodec_EncodingIsDeterministic(t *testing.T) {
	first, err := result.Encode(buildResult(t))
	require.NoError(t, err)
	second, err := result.Encode(buildResult(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	decoded, err := result.Decode(first)
	require.NoError(t, err)
	again, err := result.Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestCodec_VanillaStartRoundTrips(t *testing.T) {
	r := result.New(7, "Vanilla")
	r.Freeze()

	artifact, err := result.Encode(r)
	require.NoError(t, err)
	decoded, err := result.Decode(artifact)

	require.NoError(t, err)
	assert.Nil(t, decoded.StartPoint())
	assert.Equal(t, 0, decoded.Len())
}

func TestDecode_VersionMismatch(t *testing.T) {
	// Arrange: a version 1 artifact followed by garbage that must never be parsed
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)
	b = append(b, 0xff, 0xff, 0xff)
	artifact := base64.StdEncoding.EncodeToString(b)

	// Act
	decoded, err := result.Decode(artifact)

	// Assert
	assert.Nil(t, decoded)
	var mismatch *result.VersionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 1, mismatch.Actual)
}

func TestDecode_CorruptInput(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
	}{
		{name: "not base64", artifact: "%%%not-base64%%%"},
		{name: "empty", artifact: ""},
		{name: "missing version", artifact: base64.StdEncoding.EncodeToString(protowire.AppendString(protowire.AppendTag(nil, 3, protowire.BytesType), "Random"))},
		{name: "truncated", artifact: base64.StdEncoding.EncodeToString([]byte{0x08})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := result.Decode(tt.artifact)

			assert.Nil(t, decoded)
			var codecErr *result.EncodeDecodeError
			assert.True(t, errors.As(err, &codecErr), "got %v", err)
		})
	}
}

func TestResult_RecipeIsRecordedOnce(t *testing.T) {
	r := result.New(1, "Vanilla")
	item := &catalogue.Item{ID: "Knife", Category: catalogue.CategoryTools}

	require.NoError(t, r.Put(result.NewRandomizedRecipe(item)))
	assert.Error(t, r.Put(result.NewRandomizedRecipe(item)))
}

func TestResult_FrozenRejectsMutation(t *testing.T) {
	r := result.New(1, "Vanilla")
	r.Freeze()

	err := r.Put(result.NewRandomizedRecipe(&catalogue.Item{ID: "Knife"}))

	assert.ErrorIs(t, err, result.ErrFrozen)
	assert.ErrorIs(t, r.SetStartPoint(nil), result.ErrFrozen)
	assert.ErrorIs(t, r.Remove("Knife"), result.ErrFrozen)
}
