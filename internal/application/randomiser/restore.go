package randomiser

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/result"
)

// ErrNoArtifact is the fallback reason when no stored artifact exists.
var ErrNoArtifact = errors.New("no stored artifact")

// RestoreCommand restores a stored result instead of randomising again.
// ArtifactID selects the artifact; empty means the latest one. When the
// artifact is missing, corrupt or from another version, Randomise runs instead.
type RestoreCommand struct {
	ArtifactID string
	Randomise  RandomiseCommand
}

// RestoreResponse tells whether the stored result was restored or a fresh pass ran
type RestoreResponse struct {
	Result         *result.Result
	Encoded        string
	ArtifactID     string
	Restored       bool
	FallbackReason error
	Report         *progression.Report
}

// RestoreHandler executes RestoreCommand
type RestoreHandler struct {
	mediator common.Mediator
	repo     result.ArtifactRepository
}

// NewRestoreHandler creates a new restore handler
func NewRestoreHandler(mediator common.Mediator, repo result.ArtifactRepository) *RestoreHandler {
	return &RestoreHandler{mediator: mediator, repo: repo}
}

// Handle executes the restore command
func (h *RestoreHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RestoreCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	logger := common.LoggerFromContext(ctx)

	artifact, err := h.load(ctx, cmd.ArtifactID)
	if err != nil {
		return nil, err
	}

	reason := ErrNoArtifact
	if artifact != nil {
		res, decodeErr := result.Decode(artifact.Encoded)
		if decodeErr == nil {
			logger.Log(common.LevelInfo, "Restored stored result", map[string]interface{}{
				"artifact_id": artifact.ID,
				"seed":        res.Seed,
			})
			return &RestoreResponse{
				Result:     res,
				Encoded:    artifact.Encoded,
				ArtifactID: artifact.ID,
				Restored:   true,
			}, nil
		}

		var mismatch *result.VersionMismatchError
		var corrupt *result.EncodeDecodeError
		if !errors.As(decodeErr, &mismatch) && !errors.As(decodeErr, &corrupt) {
			return nil, decodeErr
		}
		reason = decodeErr
	}

	logger.Log(common.LevelWarning, "Stored result unusable, running a fresh pass", map[string]interface{}{
		"reason": reason.Error(),
	})

	resp, err := h.mediator.Send(ctx, &cmd.Randomise)
	if err != nil {
		return nil, err
	}
	fresh, ok := resp.(*RandomiseResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}

	return &RestoreResponse{
		Result:         fresh.Result,
		Encoded:        fresh.Encoded,
		ArtifactID:     fresh.ArtifactID,
		FallbackReason: reason,
		Report:         fresh.Report,
	}, nil
}

func (h *RestoreHandler) load(ctx context.Context, id string) (*result.Artifact, error) {
	if h.repo == nil {
		return nil, nil
	}
	if id == "" {
		artifact, err := h.repo.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load latest artifact: %w", err)
		}
		return artifact, nil
	}
	artifact, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", id, err)
	}
	return artifact, nil
}
