package result

import (
	"encoding/base64"
	"errors"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/databox"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/shared"
)

// CurrentVersion is the artifact format written by this engine. Artifacts of
// any other version are rejected on load.
const CurrentVersion = 2

// Artifact field numbers. Field 1 is always the version.
const (
	fieldVersion     protowire.Number = 1
	fieldSeed        protowire.Number = 2
	fieldSpawnChoice protowire.Number = 3
	fieldStartPoint  protowire.Number = 4
	fieldRecipe      protowire.Number = 5
	fieldDatabox     protowire.Number = 6
)

// Nested message field numbers
const (
	recipeItem         protowire.Number = 1
	recipeIngredient   protowire.Number = 2
	recipeCategory     protowire.Number = 3
	recipeNode         protowire.Number = 4
	recipePrerequisite protowire.Number = 5
	recipeCraftAmount  protowire.Number = 6
	recipeLinkedItem   protowire.Number = 7
	ingredientItem     protowire.Number = 1
	ingredientAmount   protowire.Number = 2
	databoxItem        protowire.Number = 1
	databoxCoordinates protowire.Number = 2
	databoxRegion      protowire.Number = 3
	databoxTool        protowire.Number = 4
	vectorX            protowire.Number = 1
	vectorY            protowire.Number = 2
	vectorZ            protowire.Number = 3
)

// Encode serialises a result into the opaque artifact string: protobuf wire
// format wrapped in standard base64. Recipes are written sorted by item id so
// the same result always yields the same bytes.
func Encode(r *Result) (string, error) {
	if r == nil {
		return "", &EncodeDecodeError{Op: "encode", Err: errors.New("nil result")}
	}

	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Version))
	b = protowire.AppendTag(b, fieldSeed, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(r.Seed))
	if r.SpawnChoice != "" {
		b = protowire.AppendTag(b, fieldSpawnChoice, protowire.BytesType)
		b = protowire.AppendString(b, r.SpawnChoice)
	}
	if r.startPoint != nil {
		b = protowire.AppendTag(b, fieldStartPoint, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeVector(*r.startPoint))
	}
	for _, recipe := range r.Recipes() {
		b = protowire.AppendTag(b, fieldRecipe, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeRecipe(recipe))
	}
	for _, box := range r.databoxes {
		b = protowire.AppendTag(b, fieldDatabox, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeDatabox(box))
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// Decode parses an artifact string. The version field is checked before any
// other field is read. The returned result is frozen.
func Decode(artifact string) (*Result, error) {
	raw, err := base64.StdEncoding.DecodeString(artifact)
	if err != nil {
		return nil, &EncodeDecodeError{Op: "decode", Err: err}
	}

	version, rest, err := readVersion(raw)
	if err != nil {
		return nil, err
	}
	if version != CurrentVersion {
		return nil, &VersionMismatchError{Expected: CurrentVersion, Actual: version}
	}

	fields, err := readFields(rest)
	if err != nil {
		return nil, err
	}

	r := &Result{
		Version: version,
		recipes: make(map[catalogue.ItemID]RandomizedRecipe),
	}
	for _, f := range fields {
		switch f.num {
		case fieldSeed:
			r.Seed = protowire.DecodeZigZag(f.varint)
		case fieldSpawnChoice:
			r.SpawnChoice = string(f.bytes)
		case fieldStartPoint:
			v, err := decodeVector(f.bytes)
			if err != nil {
				return nil, err
			}
			r.startPoint = &v
		case fieldRecipe:
			recipe, err := decodeRecipe(f.bytes)
			if err != nil {
				return nil, err
			}
			if _, dup := r.recipes[recipe.Item]; dup {
				return nil, decodeErr("duplicate recipe for %s", recipe.Item)
			}
			r.recipes[recipe.Item] = recipe
		case fieldDatabox:
			box, err := decodeDatabox(f.bytes)
			if err != nil {
				return nil, err
			}
			r.databoxes = append(r.databoxes, box)
		}
	}

	r.Freeze()
	return r, nil
}

func readVersion(b []byte) (int, []byte, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return 0, nil, &EncodeDecodeError{Op: "decode", Err: protowire.ParseError(n)}
	}
	if num != fieldVersion || typ != protowire.VarintType {
		return 0, nil, decodeErr("artifact does not start with a version field")
	}
	b = b[n:]
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, nil, &EncodeDecodeError{Op: "decode", Err: protowire.ParseError(n)}
	}
	if v > math.MaxInt32 {
		return 0, nil, decodeErr("version %d out of range", v)
	}
	return int(v), b[n:], nil
}

type field struct {
	num    protowire.Number
	varint uint64
	bytes  []byte
}

// readFields splits a message into its fields. Fields of unexpected wire types
// are skipped.
func readFields(b []byte) ([]field, error) {
	var fields []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, &EncodeDecodeError{Op: "decode", Err: protowire.ParseError(n)}
		}
		b = b[n:]

		f := field{num: num}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			f.varint, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			f.num = 0
		}
		if n < 0 {
			return nil, &EncodeDecodeError{Op: "decode", Err: protowire.ParseError(n)}
		}
		b = b[n:]
		if f.num != 0 {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

func encodeRecipe(r RandomizedRecipe) []byte {
	var b []byte
	b = protowire.AppendTag(b, recipeItem, protowire.BytesType)
	b = protowire.AppendString(b, string(r.Item))
	for _, ing := range r.Ingredients {
		var ib []byte
		ib = protowire.AppendTag(ib, ingredientItem, protowire.BytesType)
		ib = protowire.AppendString(ib, string(ing.Item))
		ib = protowire.AppendTag(ib, ingredientAmount, protowire.VarintType)
		ib = protowire.AppendVarint(ib, protowire.EncodeZigZag(int64(ing.Amount)))
		b = protowire.AppendTag(b, recipeIngredient, protowire.BytesType)
		b = protowire.AppendBytes(b, ib)
	}
	b = protowire.AppendTag(b, recipeCategory, protowire.BytesType)
	b = protowire.AppendString(b, string(r.Category))
	b = protowire.AppendTag(b, recipeNode, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(r.Node)))
	for _, p := range r.Prerequisites {
		b = protowire.AppendTag(b, recipePrerequisite, protowire.BytesType)
		b = protowire.AppendString(b, string(p))
	}
	b = protowire.AppendTag(b, recipeCraftAmount, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(r.CraftAmount)))
	for _, l := range r.LinkedItems {
		b = protowire.AppendTag(b, recipeLinkedItem, protowire.BytesType)
		b = protowire.AppendString(b, string(l))
	}
	return b
}

func decodeRecipe(b []byte) (RandomizedRecipe, error) {
	var r RandomizedRecipe
	fields, err := readFields(b)
	if err != nil {
		return r, err
	}
	for _, f := range fields {
		switch f.num {
		case recipeItem:
			r.Item = catalogue.ItemID(f.bytes)
		case recipeIngredient:
			ing, err := decodeIngredient(f.bytes)
			if err != nil {
				return r, err
			}
			r.Ingredients = append(r.Ingredients, ing)
		case recipeCategory:
			r.Category = catalogue.Category(f.bytes)
		case recipeNode:
			r.Node = catalogue.Node(protowire.DecodeZigZag(f.varint))
		case recipePrerequisite:
			r.Prerequisites = append(r.Prerequisites, catalogue.ItemID(f.bytes))
		case recipeCraftAmount:
			r.CraftAmount = int(protowire.DecodeZigZag(f.varint))
		case recipeLinkedItem:
			r.LinkedItems = append(r.LinkedItems, catalogue.ItemID(f.bytes))
		}
	}
	if r.Item == "" {
		return r, decodeErr("recipe without item id")
	}
	return r, nil
}

func decodeIngredient(b []byte) (catalogue.Ingredient, error) {
	var ing catalogue.Ingredient
	fields, err := readFields(b)
	if err != nil {
		return ing, err
	}
	for _, f := range fields {
		switch f.num {
		case ingredientItem:
			ing.Item = catalogue.ItemID(f.bytes)
		case ingredientAmount:
			ing.Amount = int(protowire.DecodeZigZag(f.varint))
		}
	}
	if ing.Item == "" {
		return ing, decodeErr("ingredient without item id")
	}
	return ing, nil
}

func encodeDatabox(d databox.Databox) []byte {
	var b []byte
	b = protowire.AppendTag(b, databoxItem, protowire.BytesType)
	b = protowire.AppendString(b, string(d.Item))
	b = protowire.AppendTag(b, databoxCoordinates, protowire.BytesType)
	b = protowire.AppendBytes(b, encodeVector(d.Coordinates))
	if d.Region != "" {
		b = protowire.AppendTag(b, databoxRegion, protowire.BytesType)
		b = protowire.AppendString(b, d.Region)
	}
	for _, t := range d.Tools {
		b = protowire.AppendTag(b, databoxTool, protowire.BytesType)
		b = protowire.AppendString(b, string(t))
	}
	return b
}

func decodeDatabox(b []byte) (databox.Databox, error) {
	var d databox.Databox
	fields, err := readFields(b)
	if err != nil {
		return d, err
	}
	for _, f := range fields {
		switch f.num {
		case databoxItem:
			d.Item = catalogue.ItemID(f.bytes)
		case databoxCoordinates:
			v, err := decodeVector(f.bytes)
			if err != nil {
				return d, err
			}
			d.Coordinates = v
		case databoxRegion:
			d.Region = string(f.bytes)
		case databoxTool:
			d.Tools = append(d.Tools, catalogue.ItemID(f.bytes))
		}
	}
	if d.Item == "" {
		return d, decodeErr("databox without item id")
	}
	return d, nil
}

func encodeVector(v shared.Vector) []byte {
	var b []byte
	b = protowire.AppendTag(b, vectorX, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(v.X))
	b = protowire.AppendTag(b, vectorY, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(v.Y))
	b = protowire.AppendTag(b, vectorZ, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(v.Z))
	return b
}

func decodeVector(b []byte) (shared.Vector, error) {
	var v shared.Vector
	fields, err := readFields(b)
	if err != nil {
		return v, err
	}
	for _, f := range fields {
		switch f.num {
		case vectorX:
			v.X = math.Float64frombits(f.varint)
		case vectorY:
			v.Y = math.Float64frombits(f.varint)
		case vectorZ:
			v.Z = math.Float64frombits(f.varint)
		}
	}
	return v, nil
}
