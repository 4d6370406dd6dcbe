package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"claimflow/internal/domain"
)

// Column headers appended to every processed row.
const (
	headerYesterdayState = "Yest. Claim State"
	headerRootCause      = "Root Cause"
	headerAssignedTo     = "Assigned To"
)

// yesterdayStateNew marks claims that were not in yesterday's snapshot.
const yesterdayStateNew = "NEW"

// ReportUseCase runs the daily claim-status pipeline: classify today's
// export, overlay curated assignments, compare against yesterday's snapshot
// and assemble the report.
type ReportUseCase struct {
	repo TabularRepository
}

// NewReportUseCase creates a new instance of the usecase.
func NewReportUseCase(repo TabularRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// RunRequest carries everything one report run needs. YesterdayPath and
// AssignmentPath are optional; without them the report simply has no
// day-over-day comparison or owner overrides.
type RunRequest struct {
	Client         string
	TodayPath      string
	YesterdayPath  string
	AssignmentPath string
	Columns        domain.ColumnLetters
}

// Run executes one full report run. A configuration error is returned before
// any row is processed; a schema error on the yesterday file degrades to a
// report warning instead of aborting today's processing.
func (uc *ReportUseCase) Run(ctx context.Context, req RunRequest) (*domain.DailyReport, error) {
	mapping, err := domain.NewColumnMapping(req.Columns)
	if err != nil {
		return nil, err
	}

	header, rows, err := uc.repo.GetSheet(ctx, req.TodayPath)
	if err != nil {
		return nil, fmt.Errorf("could not read today's export: %w", err)
	}
	if mapping.MaxIndex() >= len(header) {
		return nil, &domain.ConfigurationError{
			Field:  "mapping",
			Reason: fmt.Sprintf("mapped column index %d is outside the report's %d columns", mapping.MaxIndex(), len(header)),
		}
	}

	report := &domain.DailyReport{
		RunID:       uuid.New(),
		GeneratedAt: time.Now(),
		Summary: domain.Summary{
			Client:    req.Client,
			TotalRows: len(rows),
		},
	}

	var snapshot *domain.Snapshot
	if req.YesterdayPath != "" {
		yestHeader, yestRows, err := uc.repo.GetSheet(ctx, req.YesterdayPath)
		if err != nil {
			return nil, fmt.Errorf("could not read yesterday's report: %w", err)
		}
		snapshot, err = LoadSnapshot(yestHeader, yestRows)
		if err != nil {
			var schemaErr *domain.SchemaError
			if !errors.As(err, &schemaErr) {
				return nil, err
			}
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("yesterday's report was ignored: %v; proceeding without day-over-day comparison", schemaErr))
			snapshot = nil
		}
	}

	var yesterdayLookup map[string]domain.SnapshotEntry
	if snapshot != nil {
		yesterdayLookup = snapshot.PerClaim
	}
	claims, prebatchRows := ClassifyRows(rows, mapping, yesterdayLookup)
	report.Summary.ClassifiedClaims = len(claims)
	report.Summary.PrebatchClaims = len(prebatchRows)
	report.PrebatchRows = prebatchRows

	if warning := noteQualityWarning(claims, req.Columns.Notes); warning != "" {
		report.Warnings = append(report.Warnings, warning)
	}

	processedHeader := buildProcessedRows(claims, header, mapping, snapshot)

	assignments := make(domain.AssignmentMap)
	if req.AssignmentPath != "" {
		assignmentRows, err := uc.repo.GetAssignmentRows(ctx, req.AssignmentPath)
		if err != nil {
			return nil, fmt.Errorf("could not read assignment file: %w", err)
		}
		var rejected int
		assignments, rejected = BuildAssignmentMap(assignmentRows)
		report.Summary.AssignmentsRejected = rejected
	}
	report.Summary.AssignmentsApplied = ApplyAssignments(claims, assignments)
	report.Claims = claims

	todayStats := StatsFromClaims(claims)
	report.TodayStats = todayStats
	report.CycleTime = CalculateCycleTime(claims)

	if snapshot != nil {
		prebatchNumbers := make(map[string]bool, len(prebatchRows))
		for _, row := range prebatchRows {
			if n := strings.TrimSpace(row.Cell(mapping.ClaimNumber)); n != "" {
				prebatchNumbers[n] = true
			}
		}
		analysis, err := AnalyzeMovement(ctx, snapshot, claims, prebatchNumbers)
		if err != nil {
			return nil, err
		}
		report.Summary.ComparisonAvailable = true
		report.YesterdayStats = snapshot.Stats
		report.Movement = analysis
		report.Metrics = BuildKeyMetrics(claims, snapshot, analysis, todayStats, snapshot.Stats)
		report.EmailText = BuildEmailText(req.Client, todayStats, snapshot.Stats)
	} else {
		report.EmailText = BuildEmailText(req.Client, todayStats, nil)
	}

	title := fmt.Sprintf("%s Daily Action Report", req.Client)
	report.Workbook = BuildWorkbookPlan(claims, prebatchRows, processedHeader, header, title, report.GeneratedAt)
	return report, nil
}

// buildProcessedRows fills in every claim's output row: the original cells,
// a yesterday-state column inserted at the claim-status position when a
// snapshot is present, and root cause plus owner appended. Returns the
// matching header row.
func buildProcessedRows(claims []domain.ClassifiedClaim, header domain.Row, mapping domain.ColumnMapping, snapshot *domain.Snapshot) domain.Row {
	hasYesterday := snapshot != nil
	processedHeader := insertAndAppend(header, mapping.ClaimStatus, headerYesterdayState, hasYesterday, headerRootCause, headerAssignedTo)
	for i := range claims {
		yesterdayState := yesterdayStateNew
		if hasYesterday {
			if entry, ok := snapshot.PerClaim[claims[i].ClaimNumber]; ok {
				yesterdayState = entry.State
			}
		}
		claims[i].ProcessedRow = insertAndAppend(
			claims[i].OriginalRow, mapping.ClaimStatus, yesterdayState, hasYesterday,
			claims[i].NoteCategory, claims[i].FinalOwner,
		)
	}
	return processedHeader
}

func insertAndAppend(row domain.Row, insertAt int, inserted string, doInsert bool, appended ...string) domain.Row {
	out := make(domain.Row, 0, len(row)+len(appended)+1)
	if doInsert && insertAt >= len(row) {
		out = append(out, row...)
		out = append(out, inserted)
	} else if doInsert {
		out = append(out, row[:insertAt]...)
		out = append(out, inserted)
		out = append(out, row[insertAt:]...)
	} else {
		out = append(out, row...)
	}
	return append(out, appended...)
}

// noteQualityWarning flags a likely misconfigured notes column: when almost
// every note lands in the catch-all category, the configured column usually
// points at the wrong data.
func noteQualityWarning(claims []domain.ClassifiedClaim, notesLetter string) string {
	withNotes, miscellaneous := 0, 0
	for _, c := range claims {
		if c.NoteText == "" {
			continue
		}
		withNotes++
		if c.NoteCategory == CategoryMiscellaneous {
			miscellaneous++
		}
	}
	if withNotes > 10 && float64(miscellaneous)/float64(withNotes) > 0.9 {
		return fmt.Sprintf(
			"over 90%% of notes were categorized as %q; the configured notes column (%s) may be wrong for this report",
			CategoryMiscellaneous, strings.ToUpper(notesLetter))
	}
	return ""
}
