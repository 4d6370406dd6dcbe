package domain

import "strings"

// Row is one ordered record from a tabular export, positional per the column
// mapping. An empty string stands for a blank cell.
type Row []string

// IsEmpty reports whether every cell in the row is blank.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Cell returns the cell at idx, or "" when the row is too short.
func (r Row) Cell(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Claim states tracked by the daily workflow.
const (
	StatePend             = "PEND"
	StateOnHold           = "ONHOLD"
	StateDeny             = "DENY"
	StateApproved         = "APPROVED"
	StatePayerReview      = "PR"
	StateManagementReview = "MANAGEMENTREVIEW"
	StatePrebatch         = "PREBATCH"
)

// TrackedStates is the fixed state set used for aggregate stats and the
// day-over-day email blocks.
var TrackedStates = []string{
	StatePend, StateOnHold, StateManagementReview,
	StateDeny, StatePayerReview, StateApproved,
}

// NormalizeState trims and uppercases a raw claim-state cell. Any state text
// carrying both "MANAGEMENT" and "REVIEW" collapses to the single logical
// MANAGEMENTREVIEW state so that variant spellings land in one cohort.
func NormalizeState(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if strings.Contains(s, "MANAGEMENT") && strings.Contains(s, "REVIEW") {
		return StateManagementReview
	}
	return s
}

// AgeBucket is the operational aging cohort of a claim.
type AgeBucket string

const (
	BucketCritical AgeBucket = "Critical"
	BucketPriority AgeBucket = "Priority"
	BucketBacklog  AgeBucket = "Backlog"
	BucketQueue    AgeBucket = "Queue"
	BucketUnknown  AgeBucket = "UNKNOWN"
)

// Day-range labels paired with each bucket, used for stats, the cover page
// and the email text.
const (
	RangeCritical = "28-30"
	RangePriority = "21-27"
	RangeBacklog  = "31+"
	RangeQueue    = "0-20"
)

// DayRanges lists the bucket day-range labels in priority order.
var DayRanges = []string{RangeCritical, RangePriority, RangeBacklog, RangeQueue}

// BucketFromAge maps a clean age onto its bucket. An unknown (non-numeric)
// age gets its own bucket and never counts as Queue.
func BucketFromAge(age int, known bool) AgeBucket {
	switch {
	case !known:
		return BucketUnknown
	case age >= 28 && age <= 30:
		return BucketCritical
	case age >= 31:
		return BucketBacklog
	case age >= 21 && age <= 27:
		return BucketPriority
	default:
		return BucketQueue
	}
}

// DayRange returns the bucket's day-range label, or "" for the unknown bucket.
func (b AgeBucket) DayRange() string {
	switch b {
	case BucketCritical:
		return RangeCritical
	case BucketPriority:
		return RangePriority
	case BucketBacklog:
		return RangeBacklog
	case BucketQueue:
		return RangeQueue
	}
	return ""
}

// NetworkType distinguishes in-network (par) from out-of-network (nonpar)
// providers.
type NetworkType string

const (
	NetworkPar    NetworkType = "par"
	NetworkNonPar NetworkType = "nonpar"
)

// DSNPStatus is the dual-eligible plan attribute used for tab partitioning.
// The empty value means the export did not carry a recognizable DSNP marker.
type DSNPStatus string

const (
	DSNPYes     DSNPStatus = "DSNP"
	DSNPNo      DSNPStatus = "NonDSNP"
	DSNPUnknown DSNPStatus = ""
)

// Owners a claim can be routed to. PR claims may instead be owned by the
// payer named on the row.
const (
	OwnerClaims = "Claims"
	OwnerPV     = "PV"
)

// ClassifiedClaim is the per-row derived entity produced by the classifier.
// FinalOwner starts equal to DefaultOwner and is rewritten at most once when
// the assignment overlay is applied.
type ClassifiedClaim struct {
	ClaimNumber  string      `json:"claim_number"`
	ClaimState   string      `json:"claim_state"`
	CleanAge     int         `json:"clean_age"`
	AgeKnown     bool        `json:"age_known"`
	Bucket       AgeBucket   `json:"bucket"`
	Network      NetworkType `json:"network"`
	DSNP         DSNPStatus  `json:"dsnp"`
	ClaimType    string      `json:"claim_type"`
	TotalCharges float64     `json:"total_charges"`
	HighCost     bool        `json:"high_cost"`
	NoteText     string      `json:"note_text,omitempty"`
	NoteCategory string      `json:"note_category"`
	DefaultOwner string      `json:"default_owner"`
	FinalOwner   string      `json:"final_owner"`

	// OriginalRow is the untouched source row; ProcessedRow is the output
	// copy with the yesterday-state column inserted and root cause plus
	// final owner appended.
	OriginalRow  Row `json:"-"`
	ProcessedRow Row `json:"-"`
}

// SnapshotEntry is yesterday's record of one claim.
type SnapshotEntry struct {
	State    string
	Owner    string
	CleanAge int
	AgeKnown bool
}

// StateStats counts yesterday's claims for one state, total and per
// day-range label.
type StateStats struct {
	Total  int            `json:"total"`
	Ranges map[string]int `json:"ranges"`
}

// NewStateStats returns zeroed stats with every day-range label present.
func NewStateStats() *StateStats {
	ranges := make(map[string]int, len(DayRanges))
	for _, r := range DayRanges {
		ranges[r] = 0
	}
	return &StateStats{Ranges: ranges}
}

// Snapshot is the loaded prior-day report: a per-claim lookup plus aggregate
// stats keyed by normalized state. Read-only after loading.
type Snapshot struct {
	PerClaim map[string]SnapshotEntry
	Stats    map[string]*StateStats
}

// AssignmentRow is one row of the uploaded assignment file.
type AssignmentRow struct {
	ClaimState string
	NoteText   string
	Assignee   string
}

// AssignmentMap maps AssignmentKey(state, note) to a case-normalized owner
// ("Claims" or "PV"). Later file rows overwrite earlier ones for the same key.
type AssignmentMap map[string]string

// AssignmentKey builds the overlay lookup key. Claims without a note share
// the literal "No Note" segment so the exported assignment report round-trips.
func AssignmentKey(state, note string) string {
	if note == "" {
		note = "No Note"
	}
	if state == "" {
		state = "UNKNOWN"
	}
	return state + "||" + note
}

// DestinationKey names where a claim landed today, for movement histograms.
func DestinationKey(state string, bucket AgeBucket) string {
	return state + "_" + string(bucket)
}

// CohortBreakdown records where one (state, bucket) cohort's claims went
// between yesterday and today. TotalYesterday always equals MovedToPrebatch +
// ResolvedOrRemoved + the sum of MovedTo counts.
type CohortBreakdown struct {
	TotalYesterday    int            `json:"total_yesterday"`
	MovedToPrebatch   int            `json:"moved_to_prebatch"`
	ResolvedOrRemoved int            `json:"resolved_or_removed"`
	MovedTo           map[string]int `json:"moved_to"`
}

// WorkflowMovement holds the secondary day-over-day counters backing the
// KPI tiles.
type WorkflowMovement struct {
	PVToClaims        int `json:"pv_to_claims"`
	ClaimsToPV        int `json:"claims_to_pv"`
	CriticalToBacklog int `json:"critical_to_backlog"`
	CriticalWorked    int `json:"critical_worked"`
}

// MovementAnalysis is the cohort analyzer's full result: breakdowns keyed by
// yesterday's normalized state and bucket, plus the workflow counters.
type MovementAnalysis struct {
	Cohorts  map[string]map[AgeBucket]*CohortBreakdown `json:"cohorts"`
	Workflow WorkflowMovement                          `json:"workflow"`
}
