package usecase

import (
	"strings"

	"claimflow/internal/domain"
)

// Header names the snapshot loader requires. The age column is located by
// prefix so both "Clean Age" and "Clean Age (Days)" style headers resolve.
const (
	headerClaimNumber = "Claim Number"
	headerOwner       = "Added (Owner)"
	headerClaimState  = "Claim State"
)

var agePrefixes = []string{"Clean Age", "Age"}

// LoadSnapshot parses a prior-day report into a per-claim lookup plus
// aggregate per-state stats. A missing required column yields a
// *domain.SchemaError; the caller may still process today's export without
// day-over-day comparison.
func LoadSnapshot(header domain.Row, rows []domain.Row) (*domain.Snapshot, error) {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}

	claimIdx := indexOf(names, headerClaimNumber)
	ownerIdx := indexOf(names, headerOwner)
	stateIdx := indexOf(names, headerClaimState)
	ageIdx := -1
	for _, prefix := range agePrefixes {
		if ageIdx = indexOfPrefix(names, prefix); ageIdx != -1 {
			break
		}
	}

	var missing []string
	if claimIdx == -1 {
		missing = append(missing, headerClaimNumber)
	}
	if ownerIdx == -1 {
		missing = append(missing, headerOwner)
	}
	if ageIdx == -1 {
		missing = append(missing, "Clean Age/Age")
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Missing: missing}
	}

	snapshot := &domain.Snapshot{
		PerClaim: make(map[string]domain.SnapshotEntry),
		Stats:    emptyStats(),
	}
	for _, row := range rows {
		if row.IsEmpty() {
			continue
		}
		claimNumber := strings.TrimSpace(row.Cell(claimIdx))
		owner := strings.TrimSpace(row.Cell(ownerIdx))
		state := domain.NormalizeState(row.Cell(stateIdx))
		age, ageKnown := parseLeadingInt(row.Cell(ageIdx))

		// Rows without both claim number and owner still count toward the
		// aggregate stats; they just cannot participate in per-claim lookups.
		if claimNumber != "" && owner != "" {
			snapshot.PerClaim[claimNumber] = domain.SnapshotEntry{
				State:    state,
				Owner:    owner,
				CleanAge: age,
				AgeKnown: ageKnown,
			}
		}
		addToStats(snapshot.Stats, state, age, ageKnown)
	}
	return snapshot, nil
}

// StatsFromClaims aggregates today's classified claims the same way the
// snapshot loader aggregates yesterday's, so the email text can print the
// two side by side.
func StatsFromClaims(claims []domain.ClassifiedClaim) map[string]*domain.StateStats {
	stats := emptyStats()
	for _, c := range claims {
		addToStats(stats, c.ClaimState, c.CleanAge, c.AgeKnown)
	}
	return stats
}

func emptyStats() map[string]*domain.StateStats {
	stats := make(map[string]*domain.StateStats, len(domain.TrackedStates))
	for _, state := range domain.TrackedStates {
		stats[state] = domain.NewStateStats()
	}
	return stats
}

func addToStats(stats map[string]*domain.StateStats, state string, age int, ageKnown bool) {
	block, ok := stats[state]
	if !ok {
		return
	}
	block.Total++
	if r := domain.BucketFromAge(age, ageKnown).DayRange(); r != "" {
		block.Ranges[r]++
	}
}

func indexOf(names []string, want string) int {
	for i, n := range names {
		if n == want {
			return i
		}
	}
	return -1
}

func indexOfPrefix(names []string, prefix string) int {
	for i, n := range names {
		if strings.HasPrefix(n, prefix) {
			return i
		}
	}
	return -1
}
