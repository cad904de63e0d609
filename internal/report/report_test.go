package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func sampleResult() types.QualityGateResult {
	return types.QualityGateResult{
		Passed:  false,
		Status:  types.RunFailed,
		Score:   0.6,
		Summary: "1 gate(s) run, 0 skipped, 1 violation(s)",
		Gates: map[types.GateName]*types.GateResult{
			types.GatePatternCompliance: {
				Name:     types.GatePatternCompliance,
				Status:   types.GateStatusFailed,
				Score:    0.5,
				Blocking: true,
				Warnings: []string{"heads up"},
			},
		},
		Violations: []types.Violation{
			{ID: "v1", PatternID: "pattern.logging.zap", Severity: types.SeverityError, File: "main.go", StartLine: 10, EndLine: 12, Message: "diverges from pattern"},
		},
		ExitCode: 1,
	}
}

func TestByFormatResolvesKnownFormats(t *testing.T) {
	require.Equal(t, "json", ByFormat("json").Format())
	require.Equal(t, "github", ByFormat("github").Format())
	require.Equal(t, "gitlab", ByFormat("gitlab").Format())
	require.Equal(t, "sarif", ByFormat("sarif").Format())
	require.Equal(t, "text", ByFormat("text").Format())
	require.Equal(t, "text", ByFormat("unknown-format").Format(), "an unrecognized format name falls back to text")
}

func TestTextReporterIncludesGateAndViolation(t *testing.T) {
	out, err := TextReporter{}.Render(sampleResult())
	require.NoError(t, err)
	require.Contains(t, string(out), "pattern-compliance")
	require.Contains(t, string(out), "main.go:10")
}

func TestTextReporterIncludesSeverityCountSummary(t *testing.T) {
	result := sampleResult()
	result.Violations = append(result.Violations,
		types.Violation{ID: "v2", Severity: types.SeverityWarning, File: "other.go", StartLine: 1},
		types.Violation{ID: "v3", Severity: types.SeverityInfo, File: "other.go", StartLine: 2},
	)
	out, err := TextReporter{}.Render(result)
	require.NoError(t, err)
	require.Contains(t, string(out), "1 errors, 1 warnings, 1 info (3 total)")
}

func TestJSONReporterRoundtrips(t *testing.T) {
	out, err := JSONReporter{}.Render(sampleResult())
	require.NoError(t, err)

	var decoded types.QualityGateResult
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, types.RunFailed, decoded.Status)
	require.Len(t, decoded.Violations, 1)
}

func TestGitHubReporterEmitsWorkflowCommands(t *testing.T) {
	out, err := GitHubReporter{}.Render(sampleResult())
	require.NoError(t, err)
	s := string(out)
	require.Contains(t, s, "::error file=main.go,line=10,endLine=12")
	require.Contains(t, s, "::notice title=drift gate::")
}

func TestGitHubReporterEscapesControlCharactersInMessage(t *testing.T) {
	result := sampleResult()
	result.Violations[0].Message = "line one\nline two % percent"
	out, err := GitHubReporter{}.Render(result)
	require.NoError(t, err)
	s := string(out)
	require.NotContains(t, s, "\nline two", "a raw newline in a violation message must not start a new workflow command line")
	require.Contains(t, s, "%0A")
	require.Contains(t, s, "%25")
}

func TestGitLabReporterProducesFingerprint(t *testing.T) {
	out, err := GitLabReporter{}.Render(sampleResult())
	require.NoError(t, err)

	var issues []gitlabIssue
	require.NoError(t, json.Unmarshal(out, &issues))
	require.Len(t, issues, 1)
	require.Equal(t, "issue", issues[0].Type)
	require.Equal(t, gitlabSeverityCritical, issues[0].Severity)
	require.NotEmpty(t, issues[0].Categories)
	require.Equal(t, 10, issues[0].Location.Lines.Begin)
	require.Equal(t, 12, issues[0].Location.Lines.End)
	require.Len(t, issues[0].Fingerprint, 32, "md5 hex digest is 32 characters")
}

func TestGitLabReporterFingerprintStableForSameViolation(t *testing.T) {
	v := types.Violation{PatternID: "p1", File: "main.go", StartLine: 5, Message: "msg"}
	require.Equal(t, fingerprint(v), fingerprint(v))
}

func TestGitLabReporterFingerprintIncludesMessage(t *testing.T) {
	base := types.Violation{PatternID: "p1", File: "main.go", StartLine: 5, Message: "msg-a"}
	changed := base
	changed.Message = "msg-b"
	require.NotEqual(t, fingerprint(base), fingerprint(changed), "the fingerprint must incorporate the violation message")
}

func TestSARIFReporterValidJSONWithRulesAndResults(t *testing.T) {
	out, err := SARIFReporter{}.Render(sampleResult())
	require.NoError(t, err)

	var log sarifLog
	require.NoError(t, json.Unmarshal(out, &log))
	require.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	require.Len(t, log.Runs[0].Tool.Driver.Rules, 1)
	require.Len(t, log.Runs[0].Results, 1)
	require.Equal(t, "error", log.Runs[0].Results[0].Level)
	require.Equal(t, "Drift Quality Gates", log.Runs[0].Tool.Driver.Name)
}

func TestSARIFReporterDedupesRulesByPatternID(t *testing.T) {
	result := sampleResult()
	result.Violations = append(result.Violations, types.Violation{
		ID: "v2", PatternID: "pattern.logging.zap", Severity: types.SeverityWarning, File: "other.go", StartLine: 1,
	})
	out, err := SARIFReporter{}.Render(result)
	require.NoError(t, err)

	var log sarifLog
	require.NoError(t, json.Unmarshal(out, &log))
	require.Len(t, log.Runs[0].Tool.Driver.Rules, 1, "two violations sharing a pattern id must collapse to one rule")
	require.Len(t, log.Runs[0].Results, 2)
}

func TestAllReportersRenderNonEmptyOutput(t *testing.T) {
	result := sampleResult()
	formats := []string{"text", "json", "github", "gitlab", "sarif"}
	for _, f := range formats {
		out, err := ByFormat(f).Render(result)
		require.NoError(t, err)
		require.NotEmpty(t, out, f)
	}
	require.True(t, strings.Contains(string(mustRender(t, "json", result)), "v1"))
}

func mustRender(t *testing.T, format string, result types.QualityGateResult) []byte {
	t.Helper()
	out, err := ByFormat(format).Render(result)
	require.NoError(t, err)
	return out
}
