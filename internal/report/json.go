package report

import (
	"encoding/json"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// JSONReporter renders the QualityGateResult verbatim as indented JSON
// (spec §6 "json" format — the canonical machine-readable shape every
// other reporter is a projection of).
type JSONReporter struct{}

// Format implements Reporter.
func (JSONReporter) Format() string { return "json" }

// Render implements Reporter.
func (JSONReporter) Render(result types.QualityGateResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
