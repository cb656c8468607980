package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-randomiser/internal/application/common"
	"github.com/andrescamacho/recipe-randomiser/internal/application/progression"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/catalogue"
	"github.com/andrescamacho/recipe-randomiser/internal/domain/logic"
)

type fakeRequest struct{}

func dumpMetrics(t *testing.T, c *Collector) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "randomiser.prom")
	require.NoError(t, c.WriteToTextfile(path))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(body)
}

func TestPassMetrics_RecordPass(t *testing.T) {
	// Arrange
	c, err := NewCollector("")
	require.NoError(t, err)
	report := &progression.Report{
		Admitted:      12,
		Substitutions: 3,
		Warnings: []error{
			&logic.NoCandidateFound{Item: "Knife", Slot: 0, Ingredient: "Silicone"},
			errors.New("unrelated"),
		},
		Unintegrated: []progression.UnintegratedItem{
			{Item: "Rocket", Reason: progression.ReasonNeverAdmitted},
			{Item: "Lubricant", Reason: progression.ReasonCycle},
		},
		Checkpoints: []progression.CheckpointReport{{Name: "shallow", Iterations: 4}},
	}

	// Act
	c.Pass.ItemEntered(&catalogue.Item{ID: "Titanium", Category: catalogue.CategoryRawMaterials})
	c.Pass.ItemEntered(&catalogue.Item{ID: "Quartz", Category: catalogue.CategoryRawMaterials})
	c.Pass.RecordPass(report)

	// Assert
	out := dumpMetrics(t, c)
	assert.Contains(t, out, "randomiser_pass_runs_total 1")
	assert.Contains(t, out, `randomiser_pass_items_admitted_total{category="RawMaterials"} 2`)
	assert.Contains(t, out, "randomiser_pass_substitutions_total 3")
	assert.Contains(t, out, "randomiser_pass_no_candidate_total 1")
	assert.Contains(t, out, `randomiser_pass_unintegrated_total{reason="cycle"} 1`)
	assert.Contains(t, out, `randomiser_pass_unintegrated_total{reason="never_admitted"} 1`)
	assert.Contains(t, out, "randomiser_pass_reachable_items 12")
	assert.Contains(t, out, `randomiser_pass_checkpoint_rounds{checkpoint="shallow"} 4`)
}

func TestPassMetrics_NilReportIsIgnored(t *testing.T) {
	// Arrange
	c, err := NewCollector("test")
	require.NoError(t, err)

	// Act
	c.Pass.RecordPass(nil)

	// Assert
	assert.Contains(t, dumpMetrics(t, c), "test_pass_runs_total 0")
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	// Arrange
	c, err := NewCollector("")
	require.NoError(t, err)
	mw := PrometheusMiddleware(c.Requests)
	failing := func(ctx context.Context, request common.Request) (common.Response, error) {
		return nil, errors.New("boom")
	}
	succeeding := func(ctx context.Context, request common.Request) (common.Response, error) {
		return "ok", nil
	}

	// Act
	_, failErr := mw(context.Background(), &fakeRequest{}, failing)
	resp, okErr := mw(context.Background(), &fakeRequest{}, succeeding)

	// Assert
	assert.Error(t, failErr)
	assert.NoError(t, okErr)
	assert.Equal(t, "ok", resp)
	out := dumpMetrics(t, c)
	assert.Contains(t, out, `randomiser_requests_total{request="fakeRequest",status="error"} 1`)
	assert.Contains(t, out, `randomiser_requests_total{request="fakeRequest",status="success"} 1`)
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	// Arrange
	mw := PrometheusMiddleware(nil)
	called := false

	// Act
	_, err := mw(context.Background(), &fakeRequest{}, func(ctx context.Context, request common.Request) (common.Response, error) {
		called = true
		return nil, nil
	})

	// Assert
	assert.NoError(t, err)
	assert.True(t, called)
}
