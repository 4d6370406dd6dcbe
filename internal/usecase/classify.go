package usecase

import (
	"strconv"
	"strings"

	"claimflow/internal/domain"
)

// Note-derived root-cause categories, in rule order. The first matching rule
// wins; claims whose notes match nothing land in the catch-all.
const (
	CategoryW9            = "W9 Form Management"
	CategoryManualReview  = "Manual Review (Rachael/Payer)"
	CategoryAdjudication  = "Adjudication & Processing Errors"
	CategoryHighDollar    = "High-Dollar Amount Review"
	CategoryContractData  = "Contract & Provider Data Issues"
	CategorySystemActions = "System Actions & Reprocessing"
	CategoryAuthDuplicate = "Authorization & Duplicate Issues"
	CategoryMiscellaneous = "Miscellaneous"
)

// High-cost thresholds by claim type. A management-review claim above its
// type's threshold routes to the Claims team and the High Dollar tab.
const (
	professionalHighCost  = 3500
	institutionalHighCost = 6500
)

// ClassifyRow derives a ClassifiedClaim from one raw export row. The second
// return value is false when the row produces no claim: either every cell is
// blank or the claim state is a prebatch status, both of which are excluded
// from the working set without being errors.
func ClassifyRow(row domain.Row, m domain.ColumnMapping, yesterday map[string]domain.SnapshotEntry) (domain.ClassifiedClaim, bool) {
	if row.IsEmpty() {
		return domain.ClassifiedClaim{}, false
	}
	state := domain.NormalizeState(row.Cell(m.ClaimStatus))
	if strings.Contains(state, domain.StatePrebatch) {
		return domain.ClassifiedClaim{}, false
	}

	claimNumber := strings.TrimSpace(row.Cell(m.ClaimNumber))
	age, ageKnown := parseLeadingInt(row.Cell(m.CleanAge))
	noteText := row.Cell(m.Notes)
	charges := ParseCurrency(row.Cell(m.TotalCharges))
	claimType := strings.ToUpper(row.Cell(m.ClaimType))
	highCost := state == domain.StateManagementReview &&
		((strings.Contains(claimType, "PROFESSIONAL") && charges > professionalHighCost) ||
			(strings.Contains(claimType, "INSTITUTIONAL") && charges > institutionalHighCost))

	owner := defaultOwner(state, highCost, strings.TrimSpace(row.Cell(m.Payer)))
	if claimNumber != "" {
		// Owner continuity: whoever held the claim yesterday keeps it,
		// regardless of today's state-based rules.
		if prior, ok := yesterday[claimNumber]; ok {
			owner = prior.Owner
		}
	}

	return domain.ClassifiedClaim{
		ClaimNumber:  claimNumber,
		ClaimState:   state,
		CleanAge:     age,
		AgeKnown:     ageKnown,
		Bucket:       domain.BucketFromAge(age, ageKnown),
		Network:      networkType(row.Cell(m.NetworkStatus)),
		DSNP:         dsnpStatus(row.Cell(m.DSNP)),
		ClaimType:    claimType,
		TotalCharges: charges,
		HighCost:     highCost,
		NoteText:     noteText,
		NoteCategory: NoteCategory(noteText),
		DefaultOwner: owner,
		FinalOwner:   owner,
		OriginalRow:  row,
	}, true
}

// ClassifyRows classifies every data row of today's export. Prebatch rows are
// routed to the returned prebatch list instead of the working set.
func ClassifyRows(rows []domain.Row, m domain.ColumnMapping, yesterday map[string]domain.SnapshotEntry) (claims []domain.ClassifiedClaim, prebatch []domain.Row) {
	for _, row := range rows {
		if row.IsEmpty() {
			continue
		}
		if strings.Contains(domain.NormalizeState(row.Cell(m.ClaimStatus)), domain.StatePrebatch) {
			prebatch = append(prebatch, row)
			continue
		}
		if claim, ok := ClassifyRow(row, m, yesterday); ok {
			claims = append(claims, claim)
		}
	}
	return claims, prebatch
}

func defaultOwner(state string, highCost bool, payer string) string {
	switch {
	case highCost:
		return domain.OwnerClaims
	case state == domain.StateManagementReview || state == domain.StateOnHold:
		return domain.OwnerPV
	case state == domain.StatePend || state == domain.StateApproved || state == domain.StateDeny:
		return domain.OwnerClaims
	case state == domain.StatePayerReview:
		return payer
	default:
		return domain.OwnerPV
	}
}

func networkType(raw string) domain.NetworkType {
	if strings.Contains(strings.ToUpper(raw), "OUT") {
		return domain.NetworkNonPar
	}
	return domain.NetworkPar
}

func dsnpStatus(raw string) domain.DSNPStatus {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "NON DSNP"):
		return domain.DSNPNo
	case strings.Contains(s, "DSNP") || s == "Y":
		return domain.DSNPYes
	default:
		return domain.DSNPUnknown
	}
}

// noteRules drive NoteCategory; order matters, first match wins.
var noteRules = []struct {
	category string
	contains []string
	prefixes []string
}{
	{category: CategoryW9, contains: []string{"w9 req", "w9 requested", "w9 recvd", "w9 past due"}},
	{category: CategoryManualReview, contains: []string{"rachael", "payer review", "hold for", "red tab", "move to pr"}},
	{category: CategoryAdjudication, contains: []string{"incorrectly", "missed to"}, prefixes: []string{"error -", "error-"}},
	{category: CategoryHighDollar, contains: []string{"payment >", "net pay >", ">$10000", "exceeds total payment", "10k"}},
	{category: CategoryContractData, contains: []string{"contract", "provider not found", "no data for", "pay to name mismatch"}},
	{category: CategorySystemActions, contains: []string{"remap", "rerun", "reprocess", "pv updated"}},
	{category: CategoryAuthDuplicate, contains: []string{"auth", "duplicate"}},
}

// NoteCategory classifies free-form note text into one of the eight
// root-cause categories via case-insensitive substring matching.
func NoteCategory(note string) string {
	lower := strings.ToLower(note)
	for _, rule := range noteRules {
		for _, p := range rule.prefixes {
			if strings.HasPrefix(lower, p) {
				return rule.category
			}
		}
		for _, c := range rule.contains {
			if strings.Contains(lower, c) {
				return rule.category
			}
		}
	}
	return CategoryMiscellaneous
}

// ParseCurrency parses a currency cell such as "$3,500.00". Every character
// except digits, '.' and '-' is stripped first; anything unparseable becomes
// 0 rather than an error so one bad cell cannot abort a batch.
func ParseCurrency(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseLeadingInt reads an optionally signed integer prefix, mirroring how
// the export's age cells are written ("29", "29 days", "29.0"). The second
// return value is false when no digits are present; callers must treat that
// as an unknown age, never as zero.
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	v, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false
	}
	return v, true
}
