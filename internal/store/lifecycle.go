package store

import (
	"time"

	"github.com/ruizrica/drift-sub012/internal/types"
)

// staleAfterDefault is how long an approved pattern can go unobserved
// before a rescan flags it stale (spec §4.5 rescan semantics).
const staleAfterDefault = 30 * 24 * time.Hour

// ApplyRescan merges a freshly observed pattern into an existing stored
// pattern per spec §4.5's rescan state machine:
//
//   - no existing record: the observed pattern is new, status discovered.
//   - existing discovered/approved, reobserved with confidence still at or
//     above confidenceFloor: locations/outliers/confidence/lastSeen refresh;
//     approved status is retained (approving never regresses on rescan).
//   - existing approved, confidence has dropped below confidenceFloor: the
//     pattern demotes back to discovered so a human re-reviews it.
//   - existing ignored: status is preserved regardless of what's observed
//     (only explicit Unignore changes it); locations still refresh so the
//     record doesn't go stale silently.
//   - existing approved record not reobserved at all (observed == nil) and
//     it's been longer than staleAfter since LastSeen: flagged via
//     Description suffix rather than a dedicated field, since spec's Pattern
//     has none; status is untouched. Discovered and ignored records that
//     are not reobserved are returned unchanged.
func ApplyRescan(existing, observed *types.Pattern, confidenceFloor float64, staleAfter time.Duration, now time.Time) *types.Pattern {
	if staleAfter <= 0 {
		staleAfter = staleAfterDefault
	}

	if existing == nil {
		observed.Status = types.StatusDiscovered
		observed.Severity = types.SeverityForStatus(observed.Status)
		observed.FirstSeen = now
		observed.LastSeen = now
		return observed
	}

	if observed == nil {
		stale := now.Sub(existing.LastSeen) > staleAfter
		if stale && existing.Status == types.StatusApproved {
			existing.Description = withStaleNote(existing.Description)
		}
		return existing
	}

	merged := *existing
	merged.Locations = observed.Locations
	merged.Outliers = observed.Outliers
	merged.Confidence = observed.Confidence
	merged.LastSeen = now
	merged.Description = observed.Description

	switch existing.Status {
	case types.StatusApproved:
		if observed.Confidence.Score < confidenceFloor {
			merged.Status = types.StatusDiscovered
		} else {
			merged.Status = types.StatusApproved
		}
	case types.StatusIgnored:
		merged.Status = types.StatusIgnored
	default:
		merged.Status = types.StatusDiscovered
	}
	merged.Severity = types.SeverityForStatus(merged.Status)

	return &merged
}

func withStaleNote(desc string) string {
	const note = " (stale: no longer observed in the latest scan)"
	if len(desc) >= len(note) && desc[len(desc)-len(note):] == note {
		return desc
	}
	return desc + note
}
