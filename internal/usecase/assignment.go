package usecase

import (
	"strings"

	"claimflow/internal/domain"
)

// BuildAssignmentMap ingests the uploaded assignment file. A row is accepted
// only when claim state, note text and assignee are all non-empty and the
// assignee is "Claims" or "PV" (case-insensitive); anything else is skipped
// and counted in rejected. Later rows overwrite earlier ones for the same
// (state, note) key.
func BuildAssignmentMap(rows []domain.AssignmentRow) (m domain.AssignmentMap, rejected int) {
	m = make(domain.AssignmentMap)
	for _, row := range rows {
		if row.ClaimState == "" || row.NoteText == "" || row.Assignee == "" {
			rejected++
			continue
		}
		var owner string
		switch strings.ToUpper(strings.TrimSpace(row.Assignee)) {
		case "CLAIMS":
			owner = domain.OwnerClaims
		case "PV":
			owner = domain.OwnerPV
		default:
			rejected++
			continue
		}
		m[domain.AssignmentKey(row.ClaimState, row.NoteText)] = owner
	}
	return m, rejected
}

// ApplyAssignments overlays the curated assignment map onto the claims'
// final owners. Only FinalOwner (and its mirror in ProcessedRow) changes:
// claims with no matching rule fall back to their default owner, which makes
// the operation idempotent.
func ApplyAssignments(claims []domain.ClassifiedClaim, m domain.AssignmentMap) (applied int) {
	for i := range claims {
		owner, ok := m[domain.AssignmentKey(claims[i].ClaimState, claims[i].NoteText)]
		if ok {
			applied++
		} else {
			owner = claims[i].DefaultOwner
		}
		claims[i].FinalOwner = owner
		if n := len(claims[i].ProcessedRow); n > 0 {
			claims[i].ProcessedRow[n-1] = owner
		}
	}
	return applied
}
