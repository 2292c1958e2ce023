package docgen

import (
	"testing"
	"time"

	"assay/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func op(id string, risk api.RiskLevel, description string, sig *api.Signature) api.Operation {
	return api.Operation{
		ID:           id,
		Category:     "fs",
		Label:        id,
		Description:  description,
		RiskLevel:    risk,
		DiscoveredAt: time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC),
		Signature:    sig,
	}
}

func sig(params ...api.Parameter) *api.Signature {
	return &api.Signature{
		Parameters: params,
		Confidence: api.ConfidenceMedium,
	}
}

func param(name string, paramType api.ParameterType) api.Parameter {
	return api.Parameter{Name: name, Type: paramType, Required: true, Source: api.SourceTypes}
}

func previousPackage(version string, ops ...api.Operation) *api.DocumentationPackage {
	return &api.DocumentationPackage{
		Metadata:   api.PackageMetadata{Version: version},
		Operations: ops,
	}
}

func TestComputeChangeSummary_FirstGeneration(t *testing.T) {
	summary := computeChangeSummary(nil, []api.Operation{op("fs_read", api.RiskSafe, "", nil)})
	assert.Nil(t, summary)
}

func TestComputeChangeSummary_AddedAndRemoved(t *testing.T) {
	prev := previousPackage("0.1.0",
		op("fs_read", api.RiskSafe, "reads", nil),
		op("fs_delete", api.RiskDestructive, "deletes", nil),
	)
	current := []api.Operation{
		op("fs_read", api.RiskSafe, "reads", nil),
		op("net_ping", api.RiskSafe, "pings", nil),
	}

	summary := computeChangeSummary(prev, current)
	require.NotNil(t, summary)

	assert.Equal(t, "0.1.0", summary.PreviousVersion)
	assert.Equal(t, []string{"net_ping"}, summary.CommandsAdded)
	assert.Equal(t, []string{"fs_delete"}, summary.CommandsRemoved)
	assert.Empty(t, summary.CommandsModified)

	// a removed id never shows up in the other buckets
	assert.NotContains(t, summary.CommandsAdded, "fs_delete")
	assert.NotContains(t, summary.CommandsModified, "fs_delete")
	for _, change := range summary.SignatureChanges {
		assert.NotEqual(t, "fs_delete", change.OperationID)
	}
}

func TestComputeChangeSummary_RiskAndDescriptionMarkModified(t *testing.T) {
	prev := previousPackage("0.1.0",
		op("fs_read", api.RiskSafe, "reads", nil),
		op("fs_write", api.RiskModerate, "writes", nil),
		op("fs_stat", api.RiskSafe, "stats", nil),
	)
	current := []api.Operation{
		op("fs_read", api.RiskModerate, "reads", nil),
		op("fs_write", api.RiskModerate, "writes a file", nil),
		op("fs_stat", api.RiskSafe, "stats", nil),
	}

	summary := computeChangeSummary(prev, current)
	require.NotNil(t, summary)

	assert.Equal(t, []string{"fs_read", "fs_write"}, summary.CommandsModified)
	assert.Empty(t, summary.SignatureChanges, "metadata-only changes carry no signature diff")
}

func TestComputeChangeSummary_SignatureChangeMarksModified(t *testing.T) {
	prev := previousPackage("0.2.0",
		op("fs_read", api.RiskSafe, "reads", sig(param("path", api.TypeString))),
	)
	current := []api.Operation{
		op("fs_read", api.RiskSafe, "reads", sig(
			param("path", api.TypeString),
			param("offset", api.TypeNumber),
		)),
	}

	summary := computeChangeSummary(prev, current)
	require.NotNil(t, summary)

	assert.Equal(t, []string{"fs_read"}, summary.CommandsModified)
	require.Len(t, summary.SignatureChanges, 1)
	assert.Equal(t, "fs_read", summary.SignatureChanges[0].OperationID)
	assert.Equal(t, []string{"offset"}, summary.SignatureChanges[0].ParametersAdded)
}

func TestDiffSignatures_Equal(t *testing.T) {
	a := sig(param("path", api.TypeString))
	b := sig(param("path", api.TypeString))
	assert.Nil(t, diffSignatures("fs_read", a, b))
	assert.Nil(t, diffSignatures("fs_read", nil, nil))
}

func TestDiffSignatures_NilSides(t *testing.T) {
	researched := sig(param("path", api.TypeString), param("limit", api.TypeNumber))

	gained := diffSignatures("fs_read", nil, researched)
	require.NotNil(t, gained)
	assert.Equal(t, []string{"limit", "path"}, gained.ParametersAdded)
	assert.Empty(t, gained.ParametersRemoved)

	lost := diffSignatures("fs_read", researched, nil)
	require.NotNil(t, lost)
	assert.Equal(t, []string{"limit", "path"}, lost.ParametersRemoved)
	assert.Empty(t, lost.ParametersAdded)
}

func TestDiffSignatures_TypeChange(t *testing.T) {
	before := sig(param("count", api.TypeString))
	after := sig(param("count", api.TypeNumber))

	change := diffSignatures("queue_take", before, after)
	require.NotNil(t, change)
	require.Len(t, change.TypeChanges, 1)
	assert.Equal(t, "count", change.TypeChanges[0].Parameter)
	assert.Equal(t, "string", change.TypeChanges[0].OldType)
	assert.Equal(t, "number", change.TypeChanges[0].NewType)
}
