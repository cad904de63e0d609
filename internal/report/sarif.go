package report

import (
	"encoding/json"
	"sort"

	"github.com/ruizrica/drift-sub012/internal/types"
	"github.com/ruizrica/drift-sub012/internal/version"
)

// SARIF 2.1.0 document structures (a minimal subset covering spec §8's
// "SARIF validity" testable property — schema + version + one run with
// rules and results).
type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
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
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID   string             `json:"id"`
	Name string             `json:"name,omitempty"`
	ShortDescription sarifText `json:"shortDescription"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations"`
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
	EndLine   int `json:"endLine,omitempty"`
}

// SARIFReporter renders SARIF 2.1.0 (spec §6 "sarif" format), for GitHub
// code scanning and any SARIF-consuming CI integration.
type SARIFReporter struct{}

// Format implements Reporter.
func (SARIFReporter) Format() string { return "sarif" }

// Render implements Reporter.
func (SARIFReporter) Render(result types.QualityGateResult) ([]byte, error) {
	ruleSet := make(map[string]bool)
	var rules []sarifRule
	var results []sarifResult

	for _, v := range result.Violations {
		if !ruleSet[v.PatternID] {
			ruleSet[v.PatternID] = true
			rules = append(rules, sarifRule{
				ID:               v.PatternID,
				ShortDescription: sarifText{Text: v.Message},
			})
		}
		endLine := v.EndLine
		if endLine < v.StartLine {
			endLine = v.StartLine
		}
		results = append(results, sarifResult{
			RuleID:  v.PatternID,
			Level:   sarifLevel(v.Severity),
			Message: sarifText{Text: v.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: v.File},
					Region:           sarifRegion{StartLine: v.StartLine, EndLine: endLine},
				},
			}},
		})
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           "Drift Quality Gates",
				Version:        version.Version,
				InformationURI: "https://github.com/ruizrica/drift-sub012",
				Rules:          rules,
			}},
			Results: results,
		}},
	}

	return json.MarshalIndent(log, "", "  ")
}

func sarifLevel(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return "error"
	case types.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
