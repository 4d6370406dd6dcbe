package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"claimflow/internal/domain"
)

// Assignment-file column headers, matching the layout of the assignment
// report the tool itself generates.
const (
	assignmentStateHeader    = "Claim State"
	assignmentNoteHeader     = "Note / Edit Text"
	assignmentAssigneeHeader = "Assign To (Claims or PV)"
)

// CSVTabularRepository implements the TabularRepository interface for CSV
// exports.
type CSVTabularRepository struct{}

// NewCSVTabularRepository creates a new repository instance.
func NewCSVTabularRepository() *CSVTabularRepository {
	return &CSVTabularRepository{}
}

// GetSheet reads one CSV export and returns its header row plus data rows.
// Ragged rows are tolerated; the domain treats missing cells as blank.
func (r *CSVTabularRepository) GetSheet(ctx context.Context, path string) (domain.Row, []domain.Row, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file %s has no header row", path)
	}
	header := domain.Row(records[0])
	rows := make([]domain.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, domain.Row(record))
	}
	return header, rows, nil
}

// GetAssignmentRows reads the curated assignment file by its named columns.
func (r *CSVTabularRepository) GetAssignmentRows(ctx context.Context, path string) ([]domain.AssignmentRow, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("assignment file %s has no header row", path)
	}

	stateIdx, noteIdx, assigneeIdx := -1, -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case assignmentStateHeader:
			stateIdx = i
		case assignmentNoteHeader:
			noteIdx = i
		case assignmentAssigneeHeader:
			assigneeIdx = i
		}
	}
	if stateIdx == -1 || noteIdx == -1 || assigneeIdx == -1 {
		return nil, fmt.Errorf("assignment file %s must contain %q, %q and %q columns",
			path, assignmentStateHeader, assignmentNoteHeader, assignmentAssigneeHeader)
	}

	rows := make([]domain.AssignmentRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := domain.Row(record)
		rows = append(rows, domain.AssignmentRow{
			ClaimState: strings.TrimSpace(row.Cell(stateIdx)),
			NoteText:   row.Cell(noteIdx),
			Assignee:   row.Cell(assigneeIdx),
		})
	}
	return rows, nil
}

func readAll(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		records = append(records, record)
	}
	return records, nil
}
