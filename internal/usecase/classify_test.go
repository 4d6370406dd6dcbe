package usecase_test

import (
	"testing"

	"claimflow/internal/domain"
	"claimflow/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMapping maps the nine fields onto columns A-I so rows can be written
// as [age, status, number, payer, network, dsnp, type, charges, notes].
func testMapping(t *testing.T) domain.ColumnMapping {
	t.Helper()
	m, err := domain.NewColumnMapping(domain.ColumnLetters{
		CleanAge: "A", ClaimStatus: "B", ClaimNumber: "C", Payer: "D",
		NetworkStatus: "E", DSNP: "F", ClaimType: "G", TotalCharges: "H", Notes: "I",
	})
	require.NoError(t, err)
	return m
}

func testRow(age, status, number, payer, network, dsnp, claimType, charges, notes string) domain.Row {
	return domain.Row{age, status, number, payer, network, dsnp, claimType, charges, notes}
}

func TestClassifyRow_SkipRules(t *testing.T) {
	m := testMapping(t)

	t.Run("all-empty row yields no claim", func(t *testing.T) {
		_, ok := usecase.ClassifyRow(domain.Row{"", "  ", ""}, m, nil)
		assert.False(t, ok)
	})

	t.Run("prebatch state yields no claim regardless of case", func(t *testing.T) {
		for _, status := range []string{"PREBATCH", " prebatch ", "Prebatch Claims"} {
			_, ok := usecase.ClassifyRow(testRow("12", status, "C9", "", "", "", "", "", ""), m, nil)
			assert.False(t, ok, "status %q", status)
		}
	})
}

func TestClassifyRow_Derivations(t *testing.T) {
	m := testMapping(t)

	claim, ok := usecase.ClassifyRow(
		testRow("29", " pend ", " C123 ", "Acme Health", "OUT OF NETWORK", "Non DSNP", "Professional", "$3,500.00", "W9 requested - due 5/1"),
		m, nil)
	require.True(t, ok)

	assert.Equal(t, "C123", claim.ClaimNumber)
	assert.Equal(t, domain.StatePend, claim.ClaimState)
	assert.Equal(t, 29, claim.CleanAge)
	assert.True(t, claim.AgeKnown)
	assert.Equal(t, domain.BucketCritical, claim.Bucket)
	assert.Equal(t, domain.NetworkNonPar, claim.Network)
	assert.Equal(t, domain.DSNPNo, claim.DSNP)
	assert.Equal(t, 3500.0, claim.TotalCharges)
	assert.False(t, claim.HighCost)
	assert.Equal(t, usecase.CategoryW9, claim.NoteCategory)
	assert.Equal(t, domain.OwnerClaims, claim.DefaultOwner)
	assert.Equal(t, claim.DefaultOwner, claim.FinalOwner)
}

func TestClassifyRow_MalformedNumbers(t *testing.T) {
	m := testMapping(t)

	claim, ok := usecase.ClassifyRow(
		testRow("N/A", "PEND", "C1", "", "PAR", "DSNP", "Institutional", "not a number", ""),
		m, nil)
	require.True(t, ok)

	assert.False(t, claim.AgeKnown)
	assert.Equal(t, domain.BucketUnknown, claim.Bucket)
	assert.Equal(t, 0.0, claim.TotalCharges)
	assert.Equal(t, domain.NetworkPar, claim.Network)
}

func TestClassifyRow_DefaultOwnerRules(t *testing.T) {
	m := testMapping(t)

	tests := []struct {
		name      string
		status    string
		claimType string
		charges   string
		payer     string
		want      string
	}{
		{name: "high-cost professional management review goes to Claims", status: "Management Review", claimType: "PROFESSIONAL", charges: "3501", want: domain.OwnerClaims},
		{name: "high-cost institutional management review goes to Claims", status: "Management Review", claimType: "INSTITUTIONAL", charges: "$6,500.01", want: domain.OwnerClaims},
		{name: "institutional at threshold is not high-cost", status: "Management Review", claimType: "INSTITUTIONAL", charges: "6500", want: domain.OwnerPV},
		{name: "management review goes to PV", status: "Management Review", claimType: "PROFESSIONAL", charges: "100", want: domain.OwnerPV},
		{name: "high charges without management review are not high-cost", status: "PEND", claimType: "PROFESSIONAL", charges: "9999", want: domain.OwnerClaims},
		{name: "onhold goes to PV", status: "ONHOLD", want: domain.OwnerPV},
		{name: "pend goes to Claims", status: "PEND", want: domain.OwnerClaims},
		{name: "approved goes to Claims", status: "APPROVED", want: domain.OwnerClaims},
		{name: "deny goes to Claims", status: "DENY", want: domain.OwnerClaims},
		{name: "payer review goes to the payer", status: "PR", payer: "Acme Health", want: "Acme Health"},
		{name: "payer review with blank payer keeps empty owner", status: "PR", payer: "", want: ""},
		{name: "unrecognized state falls back to PV", status: "ESCALATED", want: domain.OwnerPV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim, ok := usecase.ClassifyRow(
				testRow("5", tt.status, "C1", tt.payer, "", "", tt.claimType, tt.charges, ""),
				m, nil)
			require.True(t, ok)
			assert.Equal(t, tt.want, claim.DefaultOwner)
		})
	}
}

func TestClassifyRow_OwnerContinuity(t *testing.T) {
	m := testMapping(t)
	yesterday := map[string]domain.SnapshotEntry{
		"C123": {State: domain.StatePend, Owner: domain.OwnerPV, CleanAge: 29, AgeKnown: true},
	}

	// DENY would normally route to Claims; yesterday's owner wins.
	claim, ok := usecase.ClassifyRow(
		testRow("30", "DENY", "C123", "", "", "", "Professional", "4000", ""),
		m, yesterday)
	require.True(t, ok)
	assert.Equal(t, domain.OwnerPV, claim.DefaultOwner)

	// Unknown claim numbers still use the state rules.
	claim, ok = usecase.ClassifyRow(
		testRow("30", "DENY", "C999", "", "", "", "Professional", "4000", ""),
		m, yesterday)
	require.True(t, ok)
	assert.Equal(t, domain.OwnerClaims, claim.DefaultOwner)
}

func TestClassifyRows_RoutesPrebatch(t *testing.T) {
	m := testMapping(t)
	rows := []domain.Row{
		testRow("10", "PEND", "C1", "", "", "", "", "", ""),
		testRow("3", "PREBATCH", "C2", "", "", "", "", "", ""),
		{"", "", ""},
		testRow("25", "DENY", "C3", "", "", "", "", "", ""),
	}

	claims, prebatch := usecase.ClassifyRows(rows, m, nil)

	require.Len(t, claims, 2)
	assert.Equal(t, "C1", claims[0].ClaimNumber)
	assert.Equal(t, "C3", claims[1].ClaimNumber)
	require.Len(t, prebatch, 1)
	assert.Equal(t, "C2", prebatch[0].Cell(m.ClaimNumber))
}

func TestNoteCategory(t *testing.T) {
	tests := []struct {
		note string
		want string
	}{
		{note: "W9 requested - due 5/1", want: usecase.CategoryW9},
		{note: "w9 past due, escalate", want: usecase.CategoryW9},
		{note: "Hold for Rachael", want: usecase.CategoryManualReview},
		{note: "red tab - payer review", want: usecase.CategoryManualReview},
		{note: "Error - paid incorrectly", want: usecase.CategoryAdjudication},
		{note: "claim line missed to load", want: usecase.CategoryAdjudication},
		{note: "net pay > 10k needs signoff", want: usecase.CategoryHighDollar},
		{note: "exceeds total payment", want: usecase.CategoryHighDollar},
		{note: "provider not found in roster", want: usecase.CategoryContractData},
		{note: "pay to name mismatch", want: usecase.CategoryContractData},
		{note: "rerun after PV updated", want: usecase.CategorySystemActions},
		{note: "duplicate of C-100", want: usecase.CategoryAuthDuplicate},
		{note: "no auth on file", want: usecase.CategoryAuthDuplicate},
		{note: "called provider, waiting", want: usecase.CategoryMiscellaneous},
		{note: "", want: usecase.CategoryMiscellaneous},
	}

	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.NoteCategory(tt.note))
		})
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "$3,500.00", want: 3500},
		{raw: "N/A", want: 0},
		{raw: "", want: 0},
		{raw: "-125.50", want: -125.5},
		{raw: "USD 1,000", want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.ParseCurrency(tt.raw))
		})
	}
}
