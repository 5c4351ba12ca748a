package issuer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ArielAmzalak/SenhasGF4/internal/models"
	"github.com/ArielAmzalak/SenhasGF4/pkg/sheets"
)

// assignNumber appends the row to the area's sheet (creating the sheet and
// its header on demand) and derives the ticket number from the row position
// the store acknowledges. The header occupies row 1, so data row N maps to
// ticket N-1. The number is then written back into the row's leading cell.
func (s *Service) assignNumber(ctx context.Context, sheetTitle string, row []string) (int, error) {
	if err := s.ensureSheet(ctx, sheetTitle); err != nil {
		return 0, err
	}

	writtenRange, err := s.store.AppendRow(ctx, sheetTitle+"!A1", row)
	if err != nil {
		return 0, fmt.Errorf("%w: append to %q: %v", models.ErrPersistence, sheetTitle, err)
	}
	rowIdx, err := sheets.RowFromRange(writtenRange)
	if err != nil {
		// Guessing a number here risks a collision with a later append, so
		// fail without retrying.
		return 0, fmt.Errorf("%w: could not detect inserted row in %q: %v", models.ErrPersistence, writtenRange, err)
	}

	number := rowIdx - 1
	if number < 1 {
		number = 1
	}
	cell := sheets.CellRange(sheetTitle, 0, rowIdx)
	if err := s.store.WriteRange(ctx, cell, [][]string{{strconv.Itoa(number)}}); err != nil {
		return 0, fmt.Errorf("%w: write ticket number to %s: %v", models.ErrPersistence, cell, err)
	}
	return number, nil
}

// ensureSheet guarantees the destination tab exists and carries the fixed
// header row. A populated header is never overwritten.
func (s *Service) ensureSheet(ctx context.Context, sheetTitle string) error {
	titles, err := s.store.SheetTitles(ctx)
	if err != nil {
		return fmt.Errorf("%w: list sheets: %v", models.ErrPersistence, err)
	}
	exists := false
	for _, t := range titles {
		if t == sheetTitle {
			exists = true
			break
		}
	}

	if !exists {
		if err := s.store.CreateSheet(ctx, sheetTitle); err != nil {
			return fmt.Errorf("%w: create sheet %q: %v", models.ErrPersistence, sheetTitle, err)
		}
		return s.writeHeader(ctx, sheetTitle)
	}

	rows, err := s.store.ReadRange(ctx, sheetTitle+"!1:1")
	if err != nil {
		return fmt.Errorf("%w: read header of %q: %v", models.ErrPersistence, sheetTitle, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return s.writeHeader(ctx, sheetTitle)
	}
	return nil
}

func (s *Service) writeHeader(ctx context.Context, sheetTitle string) error {
	rng := sheets.HeaderRange(sheetTitle, len(models.SheetHeaders))
	if err := s.store.WriteRange(ctx, rng, [][]string{models.SheetHeaders}); err != nil {
		return fmt.Errorf("%w: write header of %q: %v", models.ErrPersistence, sheetTitle, err)
	}
	return nil
}
