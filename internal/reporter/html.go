package reporter

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

// HTMLReporter renders a standalone HTML page: summary cards plus the
// Markdown report body converted with goldmark and sanitized with
// bluemonday.
type HTMLReporter struct{}

func (r *HTMLReporter) Generate(result *types.ScanResult, outputFile string) error {
	body, err := renderMarkdown(PRComment(result, time.Now()))
	if err != nil {
		return fmt.Errorf("render report body: %w", err)
	}

	page := buildPage(result, body)
	if outputFile != "" {
		return os.WriteFile(outputFile, []byte(page), 0o644)
	}
	fmt.Print(page)
	return nil
}

// renderMarkdown converts GitHub-flavored Markdown to sanitized HTML.
func renderMarkdown(md string) (string, error) {
	conv := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	var buf bytes.Buffer
	if err := conv.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return bluemonday.UGCPolicy().Sanitize(buf.String()), nil
}

func buildPage(result *types.ScanResult, body string) string {
	var html strings.Builder

	html.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Auto-Guardian Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
        .container { max-width: 1200px; margin: 0 auto; }
        .header { background: #2c3e50; color: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
        .summary { background: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .report { background: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .severity-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; color: white; font-size: 12px; font-weight: bold; }
        .critical { background-color: #e74c3c; }
        .high { background-color: #f39c12; }
        .medium { background-color: #3498db; }
        .low { background-color: #27ae60; }
        .info { background-color: #95a5a6; }
        .stats { display: flex; gap: 20px; flex-wrap: wrap; }
        .stat-card { background: #ecf0f1; padding: 15px; border-radius: 8px; flex: 1; min-width: 200px; }
        table { border-collapse: collapse; }
        th, td { border: 1px solid #ddd; padding: 8px 12px; }
        h1, h2, h3 { margin-top: 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Auto-Guardian Report</h1>
            <p>Scan time: ` + result.Timestamp.Format("2006-01-02 15:04:05") + `</p>
        </div>

        <div class="summary">
            <h2>Summary</h2>
            <div class="stats">
                <div class="stat-card">
                    <h3>` + fmt.Sprintf("%d", result.FilesScanned) + `</h3>
                    <p>Files scanned</p>
                </div>
                <div class="stat-card">
                    <h3>` + fmt.Sprintf("%d", result.IssuesFound) + `</h3>
                    <p>Issues found</p>
                </div>`)

	for _, sev := range types.SeverityOrder() {
		count := result.IssuesBySeverity[sev]
		if count == 0 {
			continue
		}
		html.WriteString(`
                <div class="stat-card">
                    <h3>` + fmt.Sprintf("%d", count) + `</h3>
                    <p><span class="severity-badge ` + sev.String() + `">` + strings.ToUpper(sev.String()) + `</span></p>
                </div>`)
	}

	html.WriteString(`
            </div>
        </div>

        <div class="report">
` + body + `
        </div>
    </div>
</body>
</html>`)

	return html.String()
}
