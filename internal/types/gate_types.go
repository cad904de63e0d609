package types

import "time"

// GateName identifies one of the six built-in quality gates (spec §4.7).
type GateName string

const (
	GatePatternCompliance      GateName = "pattern-compliance"
	GateConstraintVerification GateName = "constraint-verification"
	GateRegressionDetection    GateName = "regression-detection"
	GateImpactSimulation       GateName = "impact-simulation"
	GateSecurityBoundary       GateName = "security-boundary"
	GateCustomRules            GateName = "custom-rules"
)

// GateStatus is the per-gate verdict.
type GateStatus string

const (
	GateStatusPassed  GateStatus = "passed"
	GateStatusWarned  GateStatus = "warned"
	GateStatusFailed  GateStatus = "failed"
	GateStatusErrored GateStatus = "errored"
	GateStatusSkipped GateStatus = "skipped"
)

// GateResult is one gate's outcome within a QualityGateResult. Score is
// fixed to [0,100] (spec §4.7 "score shape is fixed [0,100]").
type GateResult struct {
	Name       GateName    `json:"name"`
	Status     GateStatus  `json:"status"`
	Score      float64     `json:"score"`
	Blocking   bool        `json:"blocking"`
	Violations []Violation `json:"violations,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
	Reason     string      `json:"reason,omitempty"`
	DurationMs int64       `json:"durationMs"`
}

// OverallStatus is the run-level verdict (spec §4.7).
type OverallStatus string

const (
	RunPassed OverallStatus = "passed"
	RunWarned OverallStatus = "warned"
	RunFailed OverallStatus = "failed"
)

// ResultMetadata carries the run's execution context (spec §4.7 "Output").
type ResultMetadata struct {
	ExecutionTimeMs int64     `json:"executionTimeMs"`
	FilesChecked    int       `json:"filesChecked"`
	GatesRun        []GateName `json:"gatesRun"`
	GatesSkipped    []GateName `json:"gatesSkipped"`
	Timestamp       time.Time `json:"timestamp"`
	Branch          string    `json:"branch,omitempty"`
	CommitSha       string    `json:"commitSha,omitempty"`
	CI              bool      `json:"ci"`
}

// PolicyRef names the policy that produced a QualityGateResult.
type PolicyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QualityGateResult is the orchestrator's single structured verdict
// (spec §4.7). Score, like each GateResult.Score it's averaged from, is
// fixed to [0,100] — this is the exact shape external collaborators
// receive via the json reporter (spec §6 "json is the QualityGateResult
// verbatim").
type QualityGateResult struct {
	Passed    bool                     `json:"passed"`
	Status    OverallStatus            `json:"status"`
	Score     float64                  `json:"score"`
	Summary   string                   `json:"summary"`
	Gates     map[GateName]*GateResult `json:"gates"`
	Violations []Violation             `json:"violations"`
	Warnings   []string                `json:"warnings"`
	Policy     PolicyRef               `json:"policy"`
	Metadata   ResultMetadata          `json:"metadata"`
	ExitCode   int                     `json:"exitCode"`
}

// DecisionRecord is a long-lived architectural decision mined from commit
// history (SPEC_FULL §13 supplement).
type DecisionRecord struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Rationale     string    `json:"rationale"`
	FilesInvolved []string  `json:"filesInvolved"`
	FirstCommit   string    `json:"firstCommit"`
	PatternRefs   []string  `json:"patternRefs"`
	CreatedAt     time.Time `json:"createdAt"`
}
