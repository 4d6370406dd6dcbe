package usecase

import (
	"context"
	"sort"
	"strings"

	"claimflow/internal/domain"
)

// AnalyzeMovement compares yesterday's snapshot against today's classified
// claims. Every claim in yesterday's lookup is grouped into its (state,
// bucket) cohort; each cohort's claims are then accounted for exactly once
// as moved to prebatch, still present (with a destination), or resolved.
//
// The result is deterministic regardless of map iteration order: cohorts are
// walked in sorted order and all counters are order-independent sums. The
// context is checked between cohorts so a long run can be cancelled without
// changing the semantics of a completed result.
func AnalyzeMovement(ctx context.Context, snapshot *domain.Snapshot, today []domain.ClassifiedClaim, prebatch map[string]bool) (*domain.MovementAnalysis, error) {
	analysis := &domain.MovementAnalysis{
		Cohorts: make(map[string]map[domain.AgeBucket]*domain.CohortBreakdown),
	}
	if snapshot == nil {
		return analysis, nil
	}

	todayByNumber := make(map[string]domain.ClassifiedClaim, len(today))
	for _, c := range today {
		todayByNumber[c.ClaimNumber] = c
	}

	// Group yesterday's claims into cohorts and tally owner handoffs.
	cohorts := make(map[string]map[domain.AgeBucket][]string)
	for claimNumber, entry := range snapshot.PerClaim {
		state := domain.NormalizeState(entry.State)
		bucket := domain.BucketFromAge(entry.CleanAge, entry.AgeKnown)
		if cohorts[state] == nil {
			cohorts[state] = make(map[domain.AgeBucket][]string)
		}
		cohorts[state][bucket] = append(cohorts[state][bucket], claimNumber)

		if todayClaim, ok := todayByNumber[claimNumber]; ok {
			if entry.Owner == domain.OwnerPV && todayClaim.FinalOwner == domain.OwnerClaims {
				analysis.Workflow.PVToClaims++
			}
			if entry.Owner == domain.OwnerClaims && todayClaim.FinalOwner == domain.OwnerPV {
				analysis.Workflow.ClaimsToPV++
			}
		}
	}

	for _, state := range sortedCohortStates(cohorts) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		analysis.Cohorts[state] = make(map[domain.AgeBucket]*domain.CohortBreakdown)
		for bucket, claimNumbers := range cohorts[state] {
			breakdown := &domain.CohortBreakdown{
				TotalYesterday: len(claimNumbers),
				MovedTo:        make(map[string]int),
			}
			for _, claimNumber := range claimNumbers {
				switch {
				case prebatch[claimNumber]:
					breakdown.MovedToPrebatch++
				default:
					todayClaim, ok := todayByNumber[claimNumber]
					if !ok {
						breakdown.ResolvedOrRemoved++
						continue
					}
					dest := domain.DestinationKey(todayClaim.ClaimState, todayClaim.Bucket)
					breakdown.MovedTo[dest]++
				}
			}
			analysis.Cohorts[state][bucket] = breakdown
		}
	}

	deriveCriticalCounters(analysis)
	return analysis, nil
}

// deriveCriticalCounters computes how yesterday's critical PEND cohort fared:
// "worked" means resolved, moved to prebatch, or landed anywhere other than
// Critical or Backlog; aging into Backlog is counted separately.
func deriveCriticalCounters(analysis *domain.MovementAnalysis) {
	pend, ok := analysis.Cohorts[domain.StatePend]
	if !ok {
		return
	}
	critical, ok := pend[domain.BucketCritical]
	if !ok {
		return
	}
	worked := critical.ResolvedOrRemoved + critical.MovedToPrebatch
	toBacklog := 0
	for dest, count := range critical.MovedTo {
		switch {
		case strings.HasSuffix(dest, string(domain.BucketBacklog)):
			toBacklog += count
		case !strings.HasSuffix(dest, string(domain.BucketCritical)):
			worked += count
		}
	}
	analysis.Workflow.CriticalWorked = worked
	analysis.Workflow.CriticalToBacklog = toBacklog
}

func sortedCohortStates(cohorts map[string]map[domain.AgeBucket][]string) []string {
	states := make([]string, 0, len(cohorts))
	for state := range cohorts {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}
