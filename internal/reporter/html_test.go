package reporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLReporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	rep := &HTMLReporter{}
	require.NoError(t, rep.Generate(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Auto-Guardian Report")
	assert.Contains(t, out, "Scan time: 2024-06-01 12:00:00")
	assert.Contains(t, out, `<span class="severity-badge critical">CRITICAL</span>`)
	assert.Contains(t, out, "Files scanned")

	// markdown body rendered to HTML
	assert.Contains(t, out, "Quality Scan Report - Auto-Guardian")
	assert.Contains(t, out, "<table>")
}

func TestRenderMarkdown_Sanitizes(t *testing.T) {
	html, err := renderMarkdown("## Title\n\n<script>alert(1)</script>\n\n**bold**")
	require.NoError(t, err)

	assert.Contains(t, html, "Title")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}
