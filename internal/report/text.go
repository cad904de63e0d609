package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// TextReporter renders a human-readable, ANSI-colored summary (spec §6
// "text" format), in the teacher's strings.Builder + per-line formatting
// style.
type TextReporter struct{}

// Format implements Reporter.
func (TextReporter) Format() string { return "text" }

// Render implements Reporter.
func (TextReporter) Render(result types.QualityGateResult) ([]byte, error) {
	var sb strings.Builder

	statusColor := color.New(color.FgGreen, color.Bold)
	switch result.Status {
	case types.RunWarned:
		statusColor = color.New(color.FgYellow, color.Bold)
	case types.RunFailed:
		statusColor = color.New(color.FgRed, color.Bold)
	}

	sb.WriteString(statusColor.Sprintf("drift gate: %s", strings.ToUpper(string(result.Status))))
	sb.WriteString(fmt.Sprintf(" (score %.2f, exit %d)\n", result.Score, result.ExitCode))
	sb.WriteString(result.Summary + "\n")

	errs, warns, infos := severityCounts(result.Violations)
	sb.WriteString(fmt.Sprintf("%d errors, %d warnings, %d info (%d total)\n\n", errs, warns, infos, errs+warns+infos))

	names := make([]types.GateName, 0, len(result.Gates))
	for n := range result.Gates {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		g := result.Gates[name]
		sb.WriteString(gateLine(g))
		for _, w := range g.Warnings {
			sb.WriteString(color.YellowString("    ! %s\n", w))
		}
	}

	if len(result.Violations) > 0 {
		sb.WriteString("\nViolations:\n")
		for _, v := range result.Violations {
			sb.WriteString(violationLine(v))
		}
	}

	return []byte(sb.String()), nil
}

func gateLine(g *types.GateResult) string {
	icon := color.GreenString("✓")
	switch g.Status {
	case types.GateStatusFailed:
		icon = color.RedString("✗")
	case types.GateStatusWarned:
		icon = color.YellowString("~")
	case types.GateStatusErrored:
		icon = color.RedString("!")
	case types.GateStatusSkipped:
		icon = color.New(color.Faint).Sprint("-")
	}
	blocking := ""
	if g.Blocking {
		blocking = " (blocking)"
	}
	return fmt.Sprintf("  %s %-28s %-8s score=%.2f%s\n", icon, g.Name, g.Status, g.Score, blocking)
}

func violationLine(v types.Violation) string {
	sev := color.New(color.FgRed)
	if v.Severity == types.SeverityWarning {
		sev = color.New(color.FgYellow)
	} else if v.Severity == types.SeverityInfo || v.Severity == types.SeverityHint {
		sev = color.New(color.FgCyan)
	}
	return fmt.Sprintf("  %s %s:%d  %s\n", sev.Sprintf("[%s]", v.Severity), v.File, v.StartLine, v.Message)
}
