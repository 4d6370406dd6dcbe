package domain

import (
	"time"

	"github.com/google/uuid"
)

// Summary provides high-level counts for one report run.
type Summary struct {
	Client              string `json:"client"`
	TotalRows           int    `json:"total_rows"`
	ClassifiedClaims    int    `json:"classified_claims"`
	PrebatchClaims      int    `json:"prebatch_claims"`
	AssignmentsApplied  int    `json:"assignments_applied"`
	AssignmentsRejected int    `json:"assignments_rejected"`
	ComparisonAvailable bool   `json:"comparison_available"`
}

// KeyMetrics are the KPI-tile numbers derived from today's claims and the
// day-over-day movement analysis. Rate fields are pre-formatted strings
// ("82.4%", "N/A") since that is what the tiles display.
type KeyMetrics struct {
	TotalClaimsProcessed int     `json:"total_claims_processed"`
	ValueRecovered       float64 `json:"value_recovered"`
	ValueInPend          float64 `json:"value_in_pend"`
	DeniedDollars        float64 `json:"denied_dollars"`
	BacklogDelta         int     `json:"backlog_delta"`
	CriticalSuccessRate  string  `json:"critical_success_rate"`
	AveragePendAge       string  `json:"average_pend_age"`
	DenialOverturnRate   string  `json:"denial_overturn_rate"`
	OutOfNetworkPercent  string  `json:"out_of_network_percent"`
}

// CycleTimeMetrics are the contract cycle-time goal rates: clean claims are
// measured against a 30-day goal, everything else against 60 days, split by
// network type.
type CycleTimeMetrics struct {
	CleanNonPar30 string `json:"clean_nonpar_30"`
	OtherNonPar60 string `json:"other_nonpar_60"`
	CleanPar30    string `json:"clean_par_30"`
	OtherPar60    string `json:"other_par_60"`
}

// Sheet is one planned workbook tab: its rows plus the metadata the cover
// page needs (priority level and the team that works the tab).
type Sheet struct {
	Name     string `json:"name"`
	Owner    string `json:"owner,omitempty"`
	Priority int    `json:"priority"`
	Header   Row    `json:"-"`
	Rows     []Row  `json:"-"`
}

// WorkbookPlan is the ordered tab layout handed to the workbook writer.
// Ordering is by explicit (priority, name) sort keys, never map order.
type WorkbookPlan struct {
	Title     string  `json:"title"`
	CoverPage []Row   `json:"-"`
	Sheets    []Sheet `json:"sheets"`
}

// DailyReport is the top-level result of one pipeline run.
type DailyReport struct {
	RunID       uuid.UUID `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Summary        Summary                `json:"summary"`
	TodayStats     map[string]*StateStats `json:"today_stats"`
	YesterdayStats map[string]*StateStats `json:"yesterday_stats,omitempty"`
	Movement       *MovementAnalysis      `json:"movement,omitempty"`
	Metrics        *KeyMetrics            `json:"metrics,omitempty"`
	CycleTime      CycleTimeMetrics       `json:"cycle_time"`
	EmailText      string                 `json:"email_text"`
	Warnings       []string               `json:"warnings,omitempty"`

	// Bulky artifacts for the workbook writer; omitted from the JSON report.
	Claims       []ClassifiedClaim `json:"-"`
	PrebatchRows []Row             `json:"-"`
	Workbook     *WorkbookPlan     `json:"-"`
}
