package report

import (
	"fmt"
	"strings"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// GitHubReporter renders GitHub Actions workflow-command annotations
// (spec §6 "github" format): `::error file=...,line=...::message`, so a
// PR diff view surfaces violations inline without a custom Action.
type GitHubReporter struct{}

// Format implements Reporter.
func (GitHubReporter) Format() string { return "github" }

// Render implements Reporter.
func (GitHubReporter) Render(result types.QualityGateResult) ([]byte, error) {
	var sb strings.Builder
	for _, v := range result.Violations {
		sb.WriteString(fmt.Sprintf(
			"::%s file=%s,line=%d,endLine=%d,title=%s::%s\n",
			workflowCommand(v.Severity), v.File, v.StartLine, maxInt(v.EndLine, v.StartLine), escape(v.PatternID), escape(v.Message),
		))
	}
	for _, w := range result.Warnings {
		sb.WriteString(fmt.Sprintf("::warning::%s\n", escape(w)))
	}
	sb.WriteString(fmt.Sprintf("::notice title=drift gate::%s (%s)\n", escape(result.Summary), result.Status))
	return []byte(sb.String()), nil
}

func workflowCommand(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return "error"
	case types.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// escape neutralizes the characters GitHub's workflow-command parser
// treats specially so violation messages can't smuggle extra commands.
func escape(s string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return r.Replace(s)
}
