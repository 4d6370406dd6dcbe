package domain

import (
	"fmt"
	"strings"
)

// ColumnLetters is the user-facing column configuration: for each required
// field, the Excel-style column letter (A, B, ..., AA, ...) it lives in.
type ColumnLetters struct {
	CleanAge      string
	ClaimStatus   string
	ClaimNumber   string
	Payer         string
	NetworkStatus string
	DSNP          string
	ClaimType     string
	TotalCharges  string
	Notes         string
}

// ColumnMapping holds the resolved zero-based column indices for one report
// run. Construct it with NewColumnMapping; a value that came from anywhere
// else is not guaranteed to be valid.
type ColumnMapping struct {
	CleanAge      int
	ClaimStatus   int
	ClaimNumber   int
	Payer         int
	NetworkStatus int
	DSNP          int
	ClaimType     int
	TotalCharges  int
	Notes         int
}

// NewColumnMapping resolves every column letter to an index. Validation is
// all-or-nothing: any empty or non-alphabetic letter fails the whole mapping
// with a *ConfigurationError.
func NewColumnMapping(letters ColumnLetters) (ColumnMapping, error) {
	var m ColumnMapping
	fields := []struct {
		name   string
		letter string
		dst    *int
	}{
		{"cleanAge", letters.CleanAge, &m.CleanAge},
		{"claimStatus", letters.ClaimStatus, &m.ClaimStatus},
		{"claimNumber", letters.ClaimNumber, &m.ClaimNumber},
		{"payer", letters.Payer, &m.Payer},
		{"networkStatus", letters.NetworkStatus, &m.NetworkStatus},
		{"dsnp", letters.DSNP, &m.DSNP},
		{"claimType", letters.ClaimType, &m.ClaimType},
		{"totalCharges", letters.TotalCharges, &m.TotalCharges},
		{"notes", letters.Notes, &m.Notes},
	}
	for _, f := range fields {
		idx, err := ColumnLetterToIndex(f.letter)
		if err != nil {
			return ColumnMapping{}, &ConfigurationError{Field: f.name, Letter: f.letter, Reason: err.Error()}
		}
		*f.dst = idx
	}
	return m, nil
}

// ColumnLetterToIndex converts an Excel-style column letter to its zero-based
// index: A=0, Z=25, AA=26 and so on (base-26 with 1-indexed digits).
func ColumnLetterToIndex(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return -1, fmt.Errorf("column letter is empty")
	}
	col := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return -1, fmt.Errorf("column letter %q contains non-alphabetic characters", letter)
		}
		col = col*26 + int(r-'A') + 1
	}
	return col - 1, nil
}

// MaxIndex returns the largest mapped index; the pipeline checks it against
// the width of the header row before processing any data rows.
func (m ColumnMapping) MaxIndex() int {
	max := m.CleanAge
	for _, idx := range []int{
		m.ClaimStatus, m.ClaimNumber, m.Payer, m.NetworkStatus,
		m.DSNP, m.ClaimType, m.TotalCharges, m.Notes,
	} {
		if idx > max {
			max = idx
		}
	}
	return max
}
