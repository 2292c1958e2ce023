package docgen

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/sergi/go-diff/diffmatchpatch"
	"sigs.k8s.io/yaml"

	"assay/internal/api"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// artifact is one rendered export file.
type artifact struct {
	name string
	data []byte
}

// renderer turns a documentation package into artifacts. Renderers are
// projections: they must never mutate the package.
type renderer func(pkg *api.DocumentationPackage) ([]artifact, error)

// renderers maps export format names to their implementations.
var renderers = map[string]renderer{
	"md":   renderMarkdown,
	"json": renderJSON,
	"yaml": renderYAML,
	"txt":  renderTypedefs,
}

var markdownTemplates = template.Must(
	template.New("docs").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"sigline":        signatureLine,
			"sigdiff":        renderSignatureDiff,
			"categoryCounts": categoryCounts,
		}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// renderMarkdown produces the narrative pages. The changelog page is
// emitted only when the package carries a change summary.
func renderMarkdown(pkg *api.DocumentationPackage) ([]artifact, error) {
	pages := []struct {
		template string
		file     string
	}{
		{"overview.md.tmpl", "overview.md"},
		{"reference.md.tmpl", "reference.md"},
		{"api_guide.md.tmpl", "api-guide.md"},
		{"examples.md.tmpl", "examples.md"},
	}
	if pkg.Metadata.Changes != nil {
		pages = append(pages, struct{ template, file string }{"changelog.md.tmpl", "changelog.md"})
	}

	var artifacts []artifact
	for _, page := range pages {
		var buf bytes.Buffer
		if err := markdownTemplates.ExecuteTemplate(&buf, page.template, pkg); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", page.file, err)
		}
		artifacts = append(artifacts, artifact{name: page.file, data: buf.Bytes()})
	}
	return artifacts, nil
}

// renderJSON produces the machine-readable documents.
func renderJSON(pkg *api.DocumentationPackage) ([]artifact, error) {
	files := []struct {
		name  string
		value interface{}
	}{
		{"schema.json", pkg.Schema},
		{"api.json", pkg.API},
		{"package.json", pkg},
	}

	var artifacts []artifact
	for _, file := range files {
		data, err := json.MarshalIndent(file.value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", file.name, err)
		}
		artifacts = append(artifacts, artifact{name: file.name, data: append(data, '\n')})
	}
	return artifacts, nil
}

// renderYAML produces YAML variants of the schema and API documents.
func renderYAML(pkg *api.DocumentationPackage) ([]artifact, error) {
	files := []struct {
		name  string
		value interface{}
	}{
		{"schema.yaml", pkg.Schema},
		{"api.yaml", pkg.API},
	}

	var artifacts []artifact
	for _, file := range files {
		data, err := yaml.Marshal(file.value)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", file.name, err)
		}
		artifacts = append(artifacts, artifact{name: file.name, data: data})
	}
	return artifacts, nil
}

// renderTypedefs produces the language-neutral type definition text.
func renderTypedefs(pkg *api.DocumentationPackage) ([]artifact, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "// Assay type definitions, package version %s\n", pkg.Metadata.Version)

	for _, def := range pkg.TypeDefinitions {
		b.WriteString("\n")
		if def.Description != "" {
			fmt.Fprintf(&b, "// %s\n", def.Description)
		}
		if def.Kind == "enum" {
			fmt.Fprintf(&b, "enum %s { %s }\n", def.Name, strings.Join(def.Values, " | "))
			continue
		}
		fmt.Fprintf(&b, "%s %s {\n", def.Kind, def.Name)
		for _, field := range def.Fields {
			name := field.Name
			if !field.Required {
				name += "?"
			}
			fmt.Fprintf(&b, "  %s: %s", name, field.Type)
			if field.Description != "" {
				fmt.Fprintf(&b, "  // %s", field.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("}\n")
	}

	return []artifact{{name: "types.txt", data: []byte(b.String())}}, nil
}

// signatureLine renders an operation signature as a single call line.
func signatureLine(op api.Operation) string {
	if op.Signature == nil {
		return op.ID + "(?)"
	}

	parts := make([]string, 0, len(op.Signature.Parameters))
	for _, param := range op.Signature.Parameters {
		name := param.Name
		if !param.Required {
			name += "?"
		}
		parts = append(parts, name+": "+string(param.Type))
	}

	line := op.ID + "(" + strings.Join(parts, ", ") + ")"
	if op.Signature.ReturnType != "" {
		line += " -> " + op.Signature.ReturnType
	}
	if op.Signature.Async {
		line += " (async)"
	}
	return line
}

// renderSignatureDiff renders a signature change as an inline word diff,
// deletions struck through and insertions bold.
func renderSignatureDiff(change api.SignatureChange) string {
	before := signatureSide(change.OperationID, change.ParametersRemoved, change.TypeChanges, true)
	after := signatureSide(change.OperationID, change.ParametersAdded, change.TypeChanges, false)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("~~" + diff.Text + "~~")
		case diffmatchpatch.DiffInsert:
			b.WriteString("**" + diff.Text + "**")
		default:
			b.WriteString(diff.Text)
		}
	}
	return b.String()
}

// signatureSide synthesizes one side of a signature change: the parameters
// exclusive to that side plus the shared parameters whose type changed.
func signatureSide(operationID string, exclusive []string, typeChanges []api.TypeChange, old bool) string {
	parts := append([]string{}, exclusive...)
	for _, tc := range typeChanges {
		paramType := tc.NewType
		if old {
			paramType = tc.OldType
		}
		parts = append(parts, tc.Parameter+": "+paramType)
	}
	sort.Strings(parts)
	return operationID + "(" + strings.Join(parts, ", ") + ")"
}

// categoryCounts tallies operations per category for the overview page.
func categoryCounts(ops []api.Operation) map[string]int {
	counts := map[string]int{}
	for _, op := range ops {
		counts[op.Category]++
	}
	return counts
}
