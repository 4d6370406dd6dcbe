package usecase_test

import (
	"context"
	"testing"

	"claimflow/internal/domain"
	"claimflow/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWith(entries map[string]domain.SnapshotEntry) *domain.Snapshot {
	return &domain.Snapshot{PerClaim: entries}
}

func TestAnalyzeMovement_Destinations(t *testing.T) {
	snapshot := snapshotWith(map[string]domain.SnapshotEntry{
		"C1": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 29, AgeKnown: true},
		"C2": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 28, AgeKnown: true},
		"C3": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 30, AgeKnown: true},
	})
	today := []domain.ClassifiedClaim{
		// C1 moved PEND/Critical -> DENY/Critical.
		{ClaimNumber: "C1", ClaimState: domain.StateDeny, CleanAge: 30, AgeKnown: true, Bucket: domain.BucketCritical, FinalOwner: domain.OwnerClaims},
	}
	prebatch := map[string]bool{"C2": true}
	// C3 is absent from today's set and not in prebatch: resolved.

	analysis, err := usecase.AnalyzeMovement(context.Background(), snapshot, today, prebatch)
	require.NoError(t, err)

	critical := analysis.Cohorts[domain.StatePend][domain.BucketCritical]
	require.NotNil(t, critical)
	assert.Equal(t, 3, critical.TotalYesterday)
	assert.Equal(t, 1, critical.MovedToPrebatch)
	assert.Equal(t, 1, critical.ResolvedOrRemoved)
	assert.Equal(t, 1, critical.MovedTo["DENY_Critical"])
}

func TestAnalyzeMovement_CohortInvariant(t *testing.T) {
	snapshot := snapshotWith(map[string]domain.SnapshotEntry{
		"C1": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 29, AgeKnown: true},
		"C2": {State: domain.StatePend, Owner: domain.OwnerPV, CleanAge: 28, AgeKnown: true},
		"C3": {State: domain.StateDeny, Owner: domain.OwnerClaims, CleanAge: 5, AgeKnown: true},
		"C4": {State: "Management Review", Owner: domain.OwnerPV, CleanAge: 40, AgeKnown: true},
		"C5": {State: domain.StateOnHold, Owner: domain.OwnerPV, AgeKnown: false},
	})
	today := []domain.ClassifiedClaim{
		{ClaimNumber: "C1", ClaimState: domain.StatePend, CleanAge: 30, AgeKnown: true, Bucket: domain.BucketCritical, FinalOwner: domain.OwnerClaims},
		{ClaimNumber: "C4", ClaimState: domain.StateApproved, CleanAge: 41, AgeKnown: true, Bucket: domain.BucketBacklog, FinalOwner: domain.OwnerClaims},
	}
	prebatch := map[string]bool{"C3": true}

	analysis, err := usecase.AnalyzeMovement(context.Background(), snapshot, today, prebatch)
	require.NoError(t, err)

	// Yesterday's management-review spelling collapses into one cohort state.
	assert.Contains(t, analysis.Cohorts, domain.StateManagementReview)
	// Unknown ages form their own cohort bucket.
	assert.Contains(t, analysis.Cohorts[domain.StateOnHold], domain.BucketUnknown)

	total := 0
	for _, buckets := range analysis.Cohorts {
		for _, b := range buckets {
			accounted := b.MovedToPrebatch + b.ResolvedOrRemoved
			for _, count := range b.MovedTo {
				accounted += count
			}
			assert.Equal(t, b.TotalYesterday, accounted)
			total += b.TotalYesterday
		}
	}
	assert.Equal(t, len(snapshot.PerClaim), total)
}

func TestAnalyzeMovement_OwnerHandoffs(t *testing.T) {
	snapshot := snapshotWith(map[string]domain.SnapshotEntry{
		"C1": {State: domain.StatePend, Owner: domain.OwnerPV, CleanAge: 10, AgeKnown: true},
		"C2": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 10, AgeKnown: true},
		"C3": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 10, AgeKnown: true},
	})
	today := []domain.ClassifiedClaim{
		{ClaimNumber: "C1", ClaimState: domain.StatePend, CleanAge: 11, AgeKnown: true, Bucket: domain.BucketQueue, FinalOwner: domain.OwnerClaims},
		{ClaimNumber: "C2", ClaimState: domain.StatePend, CleanAge: 11, AgeKnown: true, Bucket: domain.BucketQueue, FinalOwner: domain.OwnerPV},
		{ClaimNumber: "C3", ClaimState: domain.StatePend, CleanAge: 11, AgeKnown: true, Bucket: domain.BucketQueue, FinalOwner: domain.OwnerClaims},
	}

	analysis, err := usecase.AnalyzeMovement(context.Background(), snapshot, today, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.Workflow.PVToClaims)
	assert.Equal(t, 1, analysis.Workflow.ClaimsToPV)
}

func TestAnalyzeMovement_CriticalCounters(t *testing.T) {
	snapshot := snapshotWith(map[string]domain.SnapshotEntry{
		"C1": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 28, AgeKnown: true}, // resolved
		"C2": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 29, AgeKnown: true}, // to prebatch
		"C3": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 30, AgeKnown: true}, // ages into backlog
		"C4": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 30, AgeKnown: true}, // stays critical
		"C5": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 28, AgeKnown: true}, // approved
	})
	today := []domain.ClassifiedClaim{
		{ClaimNumber: "C3", ClaimState: domain.StatePend, CleanAge: 31, AgeKnown: true, Bucket: domain.BucketBacklog, FinalOwner: domain.OwnerClaims},
		{ClaimNumber: "C4", ClaimState: domain.StatePend, CleanAge: 30, AgeKnown: true, Bucket: domain.BucketCritical, FinalOwner: domain.OwnerClaims},
		{ClaimNumber: "C5", ClaimState: domain.StateApproved, CleanAge: 15, AgeKnown: true, Bucket: domain.BucketQueue, FinalOwner: domain.OwnerClaims},
	}
	prebatch := map[string]bool{"C2": true}

	analysis, err := usecase.AnalyzeMovement(context.Background(), snapshot, today, prebatch)
	require.NoError(t, err)

	// Worked: resolved C1 + prebatch C2 + C5, which left the critical
	// bucket without aging into backlog. C4 stayed critical, C3 aged.
	assert.Equal(t, 3, analysis.Workflow.CriticalWorked)
	assert.Equal(t, 1, analysis.Workflow.CriticalToBacklog)
}

func TestAnalyzeMovement_NilSnapshot(t *testing.T) {
	analysis, err := usecase.AnalyzeMovement(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, analysis.Cohorts)
}

func TestAnalyzeMovement_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snapshot := snapshotWith(map[string]domain.SnapshotEntry{
		"C1": {State: domain.StatePend, Owner: domain.OwnerClaims, CleanAge: 10, AgeKnown: true},
	})
	_, err := usecase.AnalyzeMovement(ctx, snapshot, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
