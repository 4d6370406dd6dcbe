package domain_test

import (
	"errors"
	"testing"

	"claimflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLetters() domain.ColumnLetters {
	return domain.ColumnLetters{
		CleanAge:      "Q",
		ClaimStatus:   "I",
		ClaimNumber:   "C",
		Payer:         "A",
		NetworkStatus: "V",
		DSNP:          "Y",
		ClaimType:     "B",
		TotalCharges:  "T",
		Notes:         "AA",
	}
}

func TestColumnLetterToIndex(t *testing.T) {
	tests := []struct {
		letter  string
		want    int
		wantErr bool
	}{
		{letter: "A", want: 0},
		{letter: "Z", want: 25},
		{letter: "AA", want: 26},
		{letter: "AZ", want: 51},
		{letter: "BA", want: 52},
		{letter: "q", want: 16},
		{letter: " T ", want: 19},
		{letter: "", wantErr: true},
		{letter: "A1", wantErr: true},
		{letter: "A B", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			got, err := domain.ColumnLetterToIndex(tt.letter)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewColumnMapping(t *testing.T) {
	t.Run("valid preset resolves every index", func(t *testing.T) {
		m, err := domain.NewColumnMapping(validLetters())
		require.NoError(t, err)

		assert.Equal(t, 16, m.CleanAge)
		assert.Equal(t, 8, m.ClaimStatus)
		assert.Equal(t, 2, m.ClaimNumber)
		assert.Equal(t, 0, m.Payer)
		assert.Equal(t, 21, m.NetworkStatus)
		assert.Equal(t, 24, m.DSNP)
		assert.Equal(t, 1, m.ClaimType)
		assert.Equal(t, 19, m.TotalCharges)
		assert.Equal(t, 26, m.Notes)
		assert.Equal(t, 26, m.MaxIndex())
	})

	t.Run("one bad letter fails the whole mapping", func(t *testing.T) {
		letters := validLetters()
		letters.DSNP = "3"

		_, err := domain.NewColumnMapping(letters)
		require.Error(t, err)

		var configErr *domain.ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "dsnp", configErr.Field)
	})

	t.Run("empty letter fails the whole mapping", func(t *testing.T) {
		letters := validLetters()
		letters.Notes = ""

		_, err := domain.NewColumnMapping(letters)
		var configErr *domain.ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "notes", configErr.Field)
	})
}

func TestBucketFromAge(t *testing.T) {
	tests := []struct {
		name  string
		age   int
		known bool
		want  domain.AgeBucket
	}{
		{name: "age 20 is queue", age: 20, known: true, want: domain.BucketQueue},
		{name: "age 21 is priority", age: 21, known: true, want: domain.BucketPriority},
		{name: "age 27 is priority", age: 27, known: true, want: domain.BucketPriority},
		{name: "age 28 is critical", age: 28, known: true, want: domain.BucketCritical},
		{name: "age 30 is critical", age: 30, known: true, want: domain.BucketCritical},
		{name: "age 31 is backlog", age: 31, known: true, want: domain.BucketBacklog},
		{name: "age 0 is queue", age: 0, known: true, want: domain.BucketQueue},
		{name: "unknown age is its own bucket, never queue", age: 0, known: false, want: domain.BucketUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.BucketFromAge(tt.age, tt.known))
		})
	}
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "PEND", domain.NormalizeState("  pend "))
	assert.Equal(t, domain.StateManagementReview, domain.NormalizeState("Management Review"))
	assert.Equal(t, domain.StateManagementReview, domain.NormalizeState("IN MANAGEMENT - REVIEW"))
	assert.Equal(t, "MANAGEMENT", domain.NormalizeState("management"))
}
