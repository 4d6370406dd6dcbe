package usecase

import (
	"context"

	"claimflow/internal/domain"
)

// TabularRepository is the file-reading boundary. The pipeline depends on
// this interface, not on a concrete workbook or CSV implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TabularRepository
type TabularRepository interface {
	// GetSheet returns the header row and the ordered data rows of one
	// tabular export, positionally aligned with the header.
	GetSheet(ctx context.Context, path string) (header domain.Row, rows []domain.Row, err error)
	// GetAssignmentRows reads the curated assignment file by its named
	// columns ("Claim State", "Note / Edit Text", "Assign To (Claims or PV)").
	GetAssignmentRows(ctx context.Context, path string) ([]domain.AssignmentRow, error)
}
