package report

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// GitLab Code Quality's severity vocabulary (the format predates and
// differs from Drift's own Severity enum).
const (
	gitlabSeverityMinor    = "minor"
	gitlabSeverityMajor    = "major"
	gitlabSeverityCritical = "critical"
	gitlabSeverityInfo     = "info"
)

// gitlabIssue is one entry in a GitLab Code Quality report
// (https://docs.gitlab.com/ee/ci/testing/code_quality.html).
type gitlabIssue struct {
	Type        string         `json:"type"`
	Description string         `json:"description"`
	CheckName   string         `json:"check_name"`
	Fingerprint string         `json:"fingerprint"`
	Severity    string         `json:"severity"`
	Categories  []string       `json:"categories"`
	Location    gitlabLocation `json:"location"`
}

type gitlabLocation struct {
	Path  string      `json:"path"`
	Lines gitlabLines `json:"lines"`
}

type gitlabLines struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// GitLabReporter renders GitLab's Code Quality JSON format (spec §6
// "gitlab" format), fingerprinting each issue with an MD5 hash of its
// stable identity so GitLab can track the same issue across commits.
type GitLabReporter struct{}

// Format implements Reporter.
func (GitLabReporter) Format() string { return "gitlab" }

// Render implements Reporter.
func (GitLabReporter) Render(result types.QualityGateResult) ([]byte, error) {
	issues := make([]gitlabIssue, 0, len(result.Violations))
	for _, v := range result.Violations {
		endLine := v.EndLine
		if endLine < v.StartLine {
			endLine = v.StartLine
		}
		issues = append(issues, gitlabIssue{
			Type:        "issue",
			Description: v.Message,
			CheckName:   v.PatternID,
			Fingerprint: fingerprint(v),
			Severity:    gitlabSeverity(v.Severity),
			Categories:  []string{"Style"},
			Location: gitlabLocation{
				Path:  v.File,
				Lines: gitlabLines{Begin: v.StartLine, End: endLine},
			},
		})
	}
	return json.MarshalIndent(issues, "", "  ")
}

// fingerprint hashes a violation's stable identity so GitLab can track the
// same issue across commits (spec §6 "fingerprint (stable md5 of
// rule|file|line|message)").
func fingerprint(v types.Violation) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s|%s|%d|%s", v.PatternID, v.File, v.StartLine, v.Message)))
	return hex.EncodeToString(sum[:])
}

func gitlabSeverity(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return gitlabSeverityCritical
	case types.SeverityWarning:
		return gitlabSeverityMajor
	case types.SeverityHint:
		return gitlabSeverityMinor
	default:
		return gitlabSeverityInfo
	}
}
