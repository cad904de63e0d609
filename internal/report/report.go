// Package report renders a QualityGateResult into the output formats
// spec §4.7/§6 names: human-readable text, machine JSON, GitHub Actions
// workflow-command annotations, GitLab Code Quality JSON, and SARIF 2.1.0.
package report

import "github.com/ruizrica/drift-sub012/internal/types"

// Reporter renders one QualityGateResult into a byte stream. Every
// reporter format named in spec §6 implements this (spec §8 "Reporter
// equivalence": every format surfaces the same violation set, only the
// envelope differs).
type Reporter interface {
	Format() string
	Render(result types.QualityGateResult) ([]byte, error)
}

// severityCounts tallies a flat violation list by severity (spec §8
// "Reporter equivalence": every format's totals must agree with this).
func severityCounts(violations []types.Violation) (errors, warnings, infos int) {
	for _, v := range violations {
		switch v.Severity {
		case types.SeverityError:
			errors++
		case types.SeverityWarning:
			warnings++
		case types.SeverityInfo, types.SeverityHint:
			infos++
		}
	}
	return errors, warnings, infos
}

// ByFormat resolves a reporter by its `--format` flag name.
func ByFormat(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	case "github":
		return &GitHubReporter{}
	case "gitlab":
		return &GitLabReporter{}
	case "sarif":
		return &SARIFReporter{}
	default:
		return &TextReporter{}
	}
}
