package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func renderToLines(w *PlainTableWriter, buf *bytes.Buffer) []string {
	w.Render()
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestPlainTableWriter_RendersAlignedColumns(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"id", "risk"})
	w.AppendRow([]string{"fs.read", "safe"})
	w.AppendRow([]string{"net.fetch", "moderate"})

	lines := renderToLines(w, &buf)

	assert.Equal(t, []string{
		"ID          RISK",
		"fs.read     safe",
		"net.fetch   moderate",
	}, lines)
}

func TestPlainTableWriter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"id", "risk"})
	w.SetNoHeaders(true)
	w.AppendRow([]string{"fs.read", "safe"})

	lines := renderToLines(w, &buf)

	assert.Equal(t, []string{"fs.read   safe"}, lines)
}

func TestPlainTableWriter_NoRowsAndNoHeadersPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"id"})
	w.SetNoHeaders(true)

	w.Render()

	assert.Empty(t, buf.String())
}

func TestPlainTableWriter_NoHeadersConfiguredPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.AppendRow([]string{"orphan"})

	w.Render()

	assert.Empty(t, buf.String())
}

func TestPlainTableWriter_NormalizesRowLength(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"id", "risk", "category"})
	// Short row padded with blanks, long row truncated to the header count
	w.AppendRow([]string{"fs.read"})
	w.AppendRow([]string{"fs.write", "moderate", "filesystem", "extra"})

	lines := renderToLines(w, &buf)

	assert.Len(t, lines, 3)
	assert.Equal(t, "fs.read", lines[1])
	assert.Equal(t, "fs.write   moderate   filesystem", lines[2])
	assert.NotContains(t, lines[2], "extra")
}

func TestPlainTableWriter_TrimsTrailingWhitespace(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"id", "note"})
	w.AppendRow([]string{"fs.read", ""})

	lines := renderToLines(w, &buf)

	for _, line := range lines {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestPlainTableWriter_CountsRunesNotBytes(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"name", "note"})
	w.AppendRow([]string{"héllo", "x"})
	w.AppendRow([]string{"plain", "y"})

	lines := renderToLines(w, &buf)

	// Both rows occupy the same display width despite the multi-byte rune
	assert.Equal(t, "héllo   x", lines[1])
	assert.Equal(t, "plain   y", lines[2])
}
