package randomiser

import (
	"context"
	"fmt"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
)

// DecodeArtifactQuery decodes an artifact string without touching any stored state
type DecodeArtifactQuery struct {
	Encoded string
}

// DecodeArtifactResponse holds the decoded, read-only result
type DecodeArtifactResponse struct {
	Result *result.Result
}

// DecodeArtifactHandler executes DecodeArtifactQuery
type DecodeArtifactHandler struct{}

// NewDecodeArtifactHandler creates a new decode handler
func NewDecodeArtifactHandler() *DecodeArtifactHandler {
	return &DecodeArtifactHandler{}
}

// Handle executes the query
func (h *DecodeArtifactHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*DecodeArtifactQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	res, err := result.Decode(query.Encoded)
	if err != nil {
		return nil, err
	}
	return &DecodeArtifactResponse{Result: res}, nil
}
