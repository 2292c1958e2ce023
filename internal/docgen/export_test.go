package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"assay/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_WritesDeclaredFormats(t *testing.T) {
	pkg := testPackage(t, nil)
	dir := t.TempDir()

	report, err := Export(context.Background(), pkg, dir, []string{"md", "json", "yaml", "txt"})
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	assert.ElementsMatch(t, []string{
		"overview.md", "reference.md", "api-guide.md", "examples.md",
		"schema.json", "api.json", "package.json",
		"schema.yaml", "api.yaml",
		"types.txt",
	}, report.Artifacts)

	for _, name := range report.Artifacts {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "artifact %s", name)
		assert.NotZero(t, info.Size(), "artifact %s", name)
	}
}

func TestExport_DefaultFormats(t *testing.T) {
	pkg := testPackage(t, nil)
	dir := t.TempDir()

	report, err := Export(context.Background(), pkg, dir, nil)
	require.NoError(t, err)

	assert.Contains(t, report.Artifacts, "overview.md")
	assert.Contains(t, report.Artifacts, "package.json")
	assert.NotContains(t, report.Artifacts, "types.txt")
}

func TestExport_UnknownFormatBecomesWarning(t *testing.T) {
	pkg := testPackage(t, nil)
	dir := t.TempDir()

	report, err := Export(context.Background(), pkg, dir, []string{"md", "pdf"})
	require.NoError(t, err)

	assert.Contains(t, report.Artifacts, "overview.md")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "pdf")
	assert.Contains(t, report.Warnings[0], "unknown export format")
}

func TestExport_FailingRendererDoesNotStopOthers(t *testing.T) {
	renderers["broken"] = func(pkg *api.DocumentationPackage) ([]artifact, error) {
		return nil, fmt.Errorf("render exploded")
	}
	defer delete(renderers, "broken")

	pkg := testPackage(t, nil)
	dir := t.TempDir()

	report, err := Export(context.Background(), pkg, dir, []string{"broken", "json"})
	require.NoError(t, err)

	assert.Contains(t, report.Artifacts, "package.json")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "render exploded")
}

func TestExport_FailsWhenNothingProduced(t *testing.T) {
	pkg := testPackage(t, nil)
	dir := t.TempDir()

	_, err := Export(context.Background(), pkg, dir, []string{"pdf", "docx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no artifacts produced")
}

func TestExport_NilPackage(t *testing.T) {
	_, err := Export(context.Background(), nil, t.TempDir(), nil)
	require.Error(t, err)
}
