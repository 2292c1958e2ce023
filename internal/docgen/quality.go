package docgen

import (
	"fmt"
	"math"

	"assay/internal/api"
)

// assessQuality scores documentation completeness across three coverage
// ratios: descriptions (40%), signatures (40%), successful examples
// (20%). The score is advisory triage only and never gates export.
func assessQuality(ops []api.Operation, results []api.TestResult) api.QualityReport {
	if len(ops) == 0 {
		return api.QualityReport{
			Recommendations: []string{"catalog is empty, run discovery before generating documentation"},
		}
	}

	succeeded := make(map[string]bool)
	for _, result := range results {
		if result.Outcome.Success {
			succeeded[result.OperationID] = true
		}
	}

	var withDescription, withSignature, withExample int
	for _, op := range ops {
		if op.Description != "" {
			withDescription++
		}
		if op.Signature != nil {
			withSignature++
		}
		if succeeded[op.ID] {
			withExample++
		}
	}

	total := float64(len(ops))
	report := api.QualityReport{
		DescriptionCoverage: float64(withDescription) / total,
		SignatureCoverage:   float64(withSignature) / total,
		ExampleCoverage:     float64(withExample) / total,
	}
	report.OverallScore = int(math.Round(
		40*report.DescriptionCoverage + 40*report.SignatureCoverage + 20*report.ExampleCoverage))

	if missing := len(ops) - withDescription; missing > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("add descriptions to %d operations", missing))
	}
	if missing := len(ops) - withSignature; missing > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("research signatures for %d operations", missing))
	}
	if missing := len(ops) - withExample; missing > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("probe %d operations to capture successful examples", missing))
	}

	return report
}
