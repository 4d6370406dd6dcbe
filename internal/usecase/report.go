package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"claimflow/internal/domain"
)

// Cycle-time goals in days: clean claims against 30, everything else 60.
const (
	cleanCycleGoalDays = 30
	otherCycleGoalDays = 60
)

// Sheet names with fixed positions in the workbook plan.
const (
	sheetCoverPage  = "Cover Page"
	sheetMaster     = "All Processed Data"
	sheetHighDollar = "High Dollar"
	sheetPrebatch   = "Prebatch Claims"
)

// BuildKeyMetrics derives the KPI-tile numbers. It needs the movement
// analysis and both stat sets, so it is only called when a yesterday
// snapshot was loaded.
func BuildKeyMetrics(
	claims []domain.ClassifiedClaim,
	snapshot *domain.Snapshot,
	analysis *domain.MovementAnalysis,
	todayStats, yesterdayStats map[string]*domain.StateStats,
) *domain.KeyMetrics {
	metrics := &domain.KeyMetrics{
		CriticalSuccessRate: "N/A",
		AveragePendAge:      "N/A",
		DenialOverturnRate:  "N/A",
		OutOfNetworkPercent: "N/A",
	}

	todayByNumber := make(map[string]domain.ClassifiedClaim, len(claims))
	for _, c := range claims {
		todayByNumber[c.ClaimNumber] = c
	}

	// Claims that reached a final adjudication status between snapshots.
	for _, buckets := range analysis.Cohorts {
		for _, breakdown := range buckets {
			for dest, count := range breakdown.MovedTo {
				if strings.HasPrefix(dest, domain.StateApproved) || strings.HasPrefix(dest, domain.StateDeny) {
					metrics.TotalClaimsProcessed += count
				}
			}
		}
	}

	// Revenue recovered from overturned denials.
	for claimNumber, entry := range snapshot.PerClaim {
		if domain.NormalizeState(entry.State) != domain.StateDeny {
			continue
		}
		if todayClaim, ok := todayByNumber[claimNumber]; ok && todayClaim.ClaimState == domain.StateApproved {
			metrics.ValueRecovered += todayClaim.TotalCharges
		}
	}

	if pend, ok := analysis.Cohorts[domain.StatePend]; ok {
		if critical, ok := pend[domain.BucketCritical]; ok && critical.TotalYesterday > 0 {
			rate := float64(analysis.Workflow.CriticalWorked) / float64(critical.TotalYesterday) * 100
			metrics.CriticalSuccessRate = fmt.Sprintf("%.1f%%", rate)
		}
	}

	metrics.BacklogDelta = todayStats[domain.StatePend].Ranges[domain.RangeBacklog] -
		yesterdayStats[domain.StatePend].Ranges[domain.RangeBacklog]

	pendAgeSum, pendAgeCount, oonCount := 0, 0, 0
	for _, c := range claims {
		if c.ClaimState == domain.StatePend {
			metrics.ValueInPend += c.TotalCharges
			if c.AgeKnown {
				pendAgeSum += c.CleanAge
				pendAgeCount++
			}
		}
		if c.ClaimState == domain.StateDeny {
			metrics.DeniedDollars += c.TotalCharges
		}
		if c.Network == domain.NetworkNonPar {
			oonCount++
		}
	}
	if pendAgeCount > 0 {
		metrics.AveragePendAge = fmt.Sprintf("%.1f Days", float64(pendAgeSum)/float64(pendAgeCount))
	}
	if len(claims) > 0 {
		metrics.OutOfNetworkPercent = fmt.Sprintf("%.1f%%", float64(oonCount)/float64(len(claims))*100)
	}

	deniedYesterday := yesterdayStats[domain.StateDeny].Total
	if deniedYesterday > 0 {
		overturned := 0
		for _, breakdown := range analysis.Cohorts[domain.StateDeny] {
			overturned += breakdown.MovedToPrebatch
			for dest, count := range breakdown.MovedTo {
				if strings.HasPrefix(dest, domain.StateApproved) {
					overturned += count
				}
			}
		}
		metrics.DenialOverturnRate = fmt.Sprintf("%.1f%%", float64(overturned)/float64(deniedYesterday)*100)
	}
	return metrics
}

// CalculateCycleTime measures contract cycle-time goal attainment. "Clean"
// means any state outside management review; unknown ages count toward the
// totals but never meet a goal.
func CalculateCycleTime(claims []domain.ClassifiedClaim) domain.CycleTimeMetrics {
	type tally struct{ total, met int }
	var cleanNonPar, otherNonPar, cleanPar, otherPar tally

	for _, c := range claims {
		clean := c.ClaimState != domain.StateManagementReview
		goal := otherCycleGoalDays
		if clean {
			goal = cleanCycleGoalDays
		}
		var t *tally
		switch {
		case c.Network == domain.NetworkNonPar && clean:
			t = &cleanNonPar
		case c.Network == domain.NetworkNonPar:
			t = &otherNonPar
		case clean:
			t = &cleanPar
		default:
			t = &otherPar
		}
		t.total++
		if c.AgeKnown && c.CleanAge <= goal {
			t.met++
		}
	}

	rate := func(t tally) string {
		if t.total == 0 {
			return "0.00%"
		}
		return fmt.Sprintf("%.2f%%", float64(t.met)/float64(t.total)*100)
	}
	return domain.CycleTimeMetrics{
		CleanNonPar30: rate(cleanNonPar),
		OtherNonPar60: rate(otherNonPar),
		CleanPar30:    rate(cleanPar),
		OtherPar60:    rate(otherPar),
	}
}

// FormatCurrency renders a compact dollar figure for KPI tiles and summary
// bullets: $950, $3.5K, $1.2M.
func FormatCurrency(v float64) string {
	switch {
	case v < 1000:
		return fmt.Sprintf("$%.0f", v)
	case v < 1000000:
		return fmt.Sprintf("$%.1fK", v/1000)
	default:
		return fmt.Sprintf("$%.1fM", v/1000000)
	}
}

// BuildEmailText composes the daily report email body. With a yesterday
// snapshot present it includes today-vs-yesterday stat blocks for the
// pending, on-hold and management-review inventories.
func BuildEmailText(client string, todayStats, yesterdayStats map[string]*domain.StateStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello Teams,\n\nAttached is today's Daily Action Report for %s.", client)

	if yesterdayStats != nil {
		b.WriteString("\n\nBelow are the detailed highlights from the report. For a full visual breakdown of claim movement, please see the attached 'Daily Claim-Flow Analysis' PDF.\n\n")
		blocks := []struct{ title, state string }{
			{"pending", domain.StatePend},
			{"On Hold", domain.StateOnHold},
			{"in Management Review", domain.StateManagementReview},
		}
		for i, block := range blocks {
			if i > 0 {
				b.WriteString("\n\n")
			}
			writeStatBlock(&b, block.title, todayStats[block.state], yesterdayStats[block.state])
		}
	}

	b.WriteString("\n\nPlease let me know if you have any questions.")
	return b.String()
}

func writeStatBlock(b *strings.Builder, title string, today, yesterday *domain.StateStats) {
	if today == nil {
		today = domain.NewStateStats()
	}
	if yesterday == nil {
		yesterday = domain.NewStateStats()
	}
	line := func(today, yest int) string { return fmt.Sprintf("%d (Yest. %d)", today, yest) }
	fmt.Fprintf(b, "Number of total claims %s: %s\n", title, line(today.Total, yesterday.Total))
	fmt.Fprintf(b, "CRITICAL (%s Days): %s\n", domain.RangeCritical, line(today.Ranges[domain.RangeCritical], yesterday.Ranges[domain.RangeCritical]))
	fmt.Fprintf(b, "PRIORITY (%s Days): %s\n", domain.RangePriority, line(today.Ranges[domain.RangePriority], yesterday.Ranges[domain.RangePriority]))
	fmt.Fprintf(b, "Backlog (%s Days): %s\n", domain.RangeBacklog, line(today.Ranges[domain.RangeBacklog], yesterday.Ranges[domain.RangeBacklog]))
	fmt.Fprintf(b, "Queue (%s Days): %s", domain.RangeQueue, line(today.Ranges[domain.RangeQueue], yesterday.Ranges[domain.RangeQueue]))
}

// FormatReportDate renders the human-facing report date ("3rd Sep 2026").
func FormatReportDate(t time.Time) string {
	day := t.Day()
	suffix := "th"
	switch {
	case day%10 == 1 && day != 11:
		suffix = "st"
	case day%10 == 2 && day != 12:
		suffix = "nd"
	case day%10 == 3 && day != 13:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s %s %d", day, suffix, t.Format("Jan"), t.Year())
}

// tabSpec accumulates one breakout tab while the plan is built.
type tabSpec struct {
	owner    string
	priority int
	rows     []domain.Row
}

// BuildWorkbookPlan partitions the processed claims into the daily action
// workbook's tab layout: a cover page, the High Dollar tab, breakout tabs by
// (bucket, network, status, DSNP), W9 task tabs driven by note text, the
// master data sheet and the prebatch sheet. Tabs are ordered by explicit
// (priority, name) keys so the workbook is reproducible run to run.
func BuildWorkbookPlan(
	claims []domain.ClassifiedClaim,
	prebatchRows []domain.Row,
	processedHeader, originalHeader domain.Row,
	title string,
	reportDate time.Time,
) *domain.WorkbookPlan {
	var masterRows, highDollarRows []domain.Row
	tabs := make(map[string]*tabSpec)
	summary := map[domain.NetworkType]*ageSummary{
		domain.NetworkPar:    {ranges: make(map[string]int)},
		domain.NetworkNonPar: {ranges: make(map[string]int)},
	}

	for _, claim := range claims {
		masterRows = append(masterRows, claim.ProcessedRow)

		summary[claim.Network].total++
		if r := claim.Bucket.DayRange(); r != "" {
			summary[claim.Network].ranges[r]++
		}

		if claim.HighCost {
			highDollarRows = append(highDollarRows, claim.ProcessedRow)
		} else if name, owner, priority := breakoutTab(claim); name != "" {
			addTabRow(tabs, name, owner, priority, claim.ProcessedRow)
		}

		if name, owner := w9Tab(claim.NoteText); name != "" {
			addTabRow(tabs, name, owner, 5, claim.ProcessedRow)
		}
	}

	cover := coverPage(title, reportDate, summary, tabs)

	plan := &domain.WorkbookPlan{Title: title, CoverPage: cover}
	plan.Sheets = append(plan.Sheets, domain.Sheet{Name: sheetCoverPage, Priority: 0, Rows: cover})
	if len(highDollarRows) > 0 {
		plan.Sheets = append(plan.Sheets, domain.Sheet{
			Name: sheetHighDollar, Owner: domain.OwnerClaims, Priority: 0,
			Header: processedHeader, Rows: highDollarRows,
		})
	}
	for _, name := range sortedTabNames(tabs) {
		tab := tabs[name]
		plan.Sheets = append(plan.Sheets, domain.Sheet{
			Name: name, Owner: tab.owner, Priority: tab.priority,
			Header: processedHeader, Rows: tab.rows,
		})
	}
	if len(masterRows) > 0 {
		plan.Sheets = append(plan.Sheets, domain.Sheet{
			Name: sheetMaster, Priority: 6, Header: processedHeader, Rows: masterRows,
		})
	}
	if len(prebatchRows) > 0 {
		plan.Sheets = append(plan.Sheets, domain.Sheet{
			Name: sheetPrebatch, Priority: 7, Header: originalHeader, Rows: prebatchRows,
		})
	}
	return plan
}

// breakoutTab names the working tab a claim belongs on. Claims missing a
// DSNP marker or in a state without a status tab are left on the master
// sheet only.
func breakoutTab(claim domain.ClassifiedClaim) (name, owner string, priority int) {
	var statusTab string
	switch claim.ClaimState {
	case domain.StateManagementReview:
		statusTab, owner = "MgmtRev", domain.OwnerPV
	case domain.StateOnHold:
		statusTab, owner = "OnHold", domain.OwnerPV
	case domain.StatePend:
		statusTab, owner = "Pend", domain.OwnerClaims
	case domain.StateDeny:
		statusTab, owner = "Deny", domain.OwnerClaims
	case domain.StatePayerReview:
		statusTab, owner = "PayerRev", domain.OwnerClaims
	default:
		return "", "", 0
	}
	if claim.DSNP == domain.DSNPUnknown {
		return "", "", 0
	}

	network := "Par"
	if claim.Network == domain.NetworkNonPar {
		network = "NonPar"
	}
	var label string
	switch claim.Bucket {
	case domain.BucketCritical:
		label, priority = "CRITICAL", 1
	case domain.BucketPriority:
		label, priority = "PRIORITY", 2
	case domain.BucketBacklog:
		label, priority = "Backlog", 3
	case domain.BucketQueue:
		label, priority = "Queue", 4
	default:
		return "", "", 0
	}
	name = fmt.Sprintf("%s (%sd) %s %s %s", label, claim.Bucket.DayRange(), network, statusTab, claim.DSNP)
	return sanitizeSheetName(name), owner, priority
}

func w9Tab(note string) (name, owner string) {
	lower := strings.ToLower(note)
	if !strings.Contains(lower, "w9") {
		return "", ""
	}
	switch {
	case strings.Contains(lower, "req"):
		return "W9 Follow-Up", domain.OwnerClaims
	case strings.Contains(lower, "denied") || strings.Contains(lower, "missing"):
		return "W9 Letter Needed", domain.OwnerPV
	case strings.Contains(lower, "received") || strings.Contains(lower, "reprocess"):
		return "W9 Received - Reprocess", domain.OwnerClaims
	}
	return "", ""
}

// sanitizeSheetName strips characters workbook formats reject and applies
// the 31-character tab-name limit.
func sanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, name)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func addTabRow(tabs map[string]*tabSpec, name, owner string, priority int, row domain.Row) {
	tab, ok := tabs[name]
	if !ok {
		tab = &tabSpec{owner: owner, priority: priority}
		tabs[name] = tab
	}
	tab.rows = append(tab.rows, row)
}

func sortedTabNames(tabs map[string]*tabSpec) []string {
	names := make([]string, 0, len(tabs))
	for name := range tabs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tabs[names[i]].priority != tabs[names[j]].priority {
			return tabs[names[i]].priority < tabs[names[j]].priority
		}
		return names[i] < names[j]
	})
	return names
}

// ageSummary tallies claims per day-range for one network type.
type ageSummary struct {
	ranges map[string]int
	total  int
}

func coverPage(title string, reportDate time.Time, summary map[domain.NetworkType]*ageSummary, tabs map[string]*tabSpec) []domain.Row {
	itoa := strconv.Itoa
	summaryRow := func(label string, s *ageSummary) domain.Row {
		return domain.Row{
			label,
			itoa(s.ranges[domain.RangeCritical]), itoa(s.ranges[domain.RangePriority]),
			itoa(s.ranges[domain.RangeBacklog]), itoa(s.ranges[domain.RangeQueue]),
			itoa(s.total),
		}
	}

	cover := []domain.Row{
		{title},
		{"Date: " + FormatReportDate(reportDate)},
		{},
		{"Overall Claim Summary"},
		{
			"Category",
			domain.RangeCritical + " Days (Critical)", domain.RangePriority + " Days (Priority)",
			domain.RangeBacklog + " Days (Backlog)", domain.RangeQueue + " Days (Queue)",
			"Total Active Claims",
		},
		summaryRow("Par Claims", summary[domain.NetworkPar]),
		summaryRow("Non-Par Claims", summary[domain.NetworkNonPar]),
		{},
		{"Core Strategy: Focus on claims nearing the 30-day threshold. Work tabs in priority order."},
		{},
	}

	sections := []struct {
		title    string
		priority int
	}{
		{fmt.Sprintf("Priority 1: CRITICAL (%s days)", domain.RangeCritical), 1},
		{fmt.Sprintf("Priority 2: PRIORITY (%s days)", domain.RangePriority), 2},
		{fmt.Sprintf("Priority 3: Backlog (%s days)", domain.RangeBacklog), 3},
		{"W9 and Other Tasks", 5},
	}
	names := sortedTabNames(tabs)
	for _, section := range sections {
		var sectionNames []string
		for _, name := range names {
			if tabs[name].priority == section.priority {
				sectionNames = append(sectionNames, name)
			}
		}
		if len(sectionNames) == 0 {
			continue
		}
		cover = append(cover, domain.Row{section.title}, domain.Row{"Tab Name", "Claim Count", "Assigned Owner"})
		for _, name := range sectionNames {
			pv, claimsTeam := 0, 0
			for _, row := range tabs[name].rows {
				switch row.Cell(len(row) - 1) {
				case domain.OwnerPV:
					pv++
				case domain.OwnerClaims:
					claimsTeam++
				}
			}
			cover = append(cover, domain.Row{
				name,
				itoa(len(tabs[name].rows)),
				fmt.Sprintf("PV (%d) Claims (%d)", pv, claimsTeam),
			})
		}
		cover = append(cover, domain.Row{})
	}
	return cover
}
