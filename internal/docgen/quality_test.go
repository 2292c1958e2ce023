package docgen

import (
	"testing"
	"time"

	"assay/internal/api"

	"github.com/stretchr/testify/assert"
)

func successfulResult(operationID string) api.TestResult {
	return api.TestResult{
		ID:          "r-" + operationID,
		OperationID: operationID,
		Outcome:     api.ExecutionOutcome{Success: true, DurationMs: 12},
		Timestamp:   time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC),
	}
}

func TestAssessQuality_EmptyCatalog(t *testing.T) {
	report := assessQuality(nil, nil)

	assert.Zero(t, report.OverallScore)
	assert.Equal(t,
		[]string{"catalog is empty, run discovery before generating documentation"},
		report.Recommendations)
}

func TestAssessQuality_WeightedScore(t *testing.T) {
	// 4 operations: 3 described, 2 with signatures, 1 probed successfully.
	// round(40*0.75 + 40*0.5 + 20*0.25) = round(55) = 55
	ops := []api.Operation{
		op("a", api.RiskSafe, "does a", sig(param("x", api.TypeString))),
		op("b", api.RiskSafe, "does b", sig(param("y", api.TypeString))),
		op("c", api.RiskSafe, "does c", nil),
		op("d", api.RiskSafe, "", nil),
	}
	results := []api.TestResult{
		successfulResult("a"),
		{OperationID: "b", Outcome: api.ExecutionOutcome{Success: false}},
	}

	report := assessQuality(ops, results)

	assert.Equal(t, 55, report.OverallScore)
	assert.InDelta(t, 0.75, report.DescriptionCoverage, 1e-9)
	assert.InDelta(t, 0.5, report.SignatureCoverage, 1e-9)
	assert.InDelta(t, 0.25, report.ExampleCoverage, 1e-9)

	assert.Contains(t, report.Recommendations, "add descriptions to 1 operations")
	assert.Contains(t, report.Recommendations, "research signatures for 2 operations")
	assert.Contains(t, report.Recommendations, "probe 3 operations to capture successful examples")
}

func TestAssessQuality_FullCoverage(t *testing.T) {
	ops := []api.Operation{
		op("a", api.RiskSafe, "does a", sig(param("x", api.TypeString))),
	}
	report := assessQuality(ops, []api.TestResult{successfulResult("a")})

	assert.Equal(t, 100, report.OverallScore)
	assert.Empty(t, report.Recommendations)
}

func TestAssessQuality_FailedProbesDoNotCount(t *testing.T) {
	ops := []api.Operation{op("a", api.RiskSafe, "does a", sig(param("x", api.TypeString)))}
	failed := api.TestResult{
		OperationID: "a",
		Outcome:     api.ExecutionOutcome{Success: false},
	}

	report := assessQuality(ops, []api.TestResult{failed})

	assert.Zero(t, report.ExampleCoverage)
	assert.Equal(t, 80, report.OverallScore)
}
