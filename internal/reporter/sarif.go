package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

const (
	sarifSchema = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	toolName    = "auto-guardian"
	toolVersion = "1.0.0"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Message   sarifMessage    `json:"message"`
	Level     string          `json:"level"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// SARIFReporter renders the result as a SARIF 2.1.0 log, the format GitHub
// code scanning ingests.
type SARIFReporter struct{}

func (r *SARIFReporter) Generate(result *types.ScanResult, outputFile string) error {
	results := make([]sarifResult, 0, len(result.Issues))
	for _, issue := range result.Issues {
		ruleID := issue.RuleID
		if ruleID == "" {
			// built-in detectors carry no tool rule code
			ruleID = issue.Type.String()
		}
		uri := toURI(issue.File)
		if uri == "" {
			uri = "UNKNOWN"
		}
		line := issue.Line
		if line <= 0 {
			line = 1
		}

		results = append(results, sarifResult{
			RuleID: ruleID,
			Level:  sevToLevel(issue.Severity),
			Message: sarifMessage{
				Text: strings.TrimSpace(issue.Message),
			},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: uri},
						Region:           sarifRegion{StartLine: line},
					},
				},
			},
		})
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  sarifSchema,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{Name: toolName, Version: toolVersion},
				},
				Results: results,
			},
		},
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sarif: %w", err)
	}

	if outputFile != "" {
		return os.WriteFile(outputFile, data, 0o644)
	}
	fmt.Println(string(data))
	return nil
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SeverityCritical, types.SeverityHigh:
		return "error"
	case types.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

// toURI normalizes a file path into a repo-relative SARIF artifact URI.
func toURI(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}
