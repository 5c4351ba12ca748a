// Package issuer implements the ticket issuing workflow: resolve the active
// areas, normalize the attendee, append one row per requested area to the
// spreadsheet-backed store, recover the sequential ticket number from each
// append acknowledgement, enforce per-area quotas and render the batch PDF.
package issuer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ArielAmzalak/SenhasGF4/internal/areas"
	"github.com/ArielAmzalak/SenhasGF4/internal/clock"
	"github.com/ArielAmzalak/SenhasGF4/internal/format"
	"github.com/ArielAmzalak/SenhasGF4/internal/models"
	"github.com/ArielAmzalak/SenhasGF4/pkg/sheets"
)

// timeLayout is the registration timestamp format written to the sheet and
// printed on tickets.
const timeLayout = "02/01/2006 15:04:05"

// RowStore is the spreadsheet collaborator the issuer appends to. The
// implementation must report the written range on append; ticket numbers are
// derived from it and never invented locally.
type RowStore interface {
	ReadRange(ctx context.Context, a1 string) ([][]string, error)
	AppendRow(ctx context.Context, a1 string, row []string) (string, error)
	WriteRange(ctx context.Context, a1 string, values [][]string) error
	SheetTitles(ctx context.Context) ([]string, error)
	CreateSheet(ctx context.Context, title string) error
}

// Renderer produces the printable document for a batch of registrations.
type Renderer interface {
	RenderBatch(regs []models.Registration) ([]byte, error)
}

// Config holds the issuer's sheet names and timestamp location.
type Config struct {
	AreasSheet         string
	NeighborhoodsSheet string
	Location           *time.Location
}

// Service orchestrates ticket submissions. Appends within one submission are
// strictly sequential; serialization across concurrent submissions is
// delegated to the store's append consistency.
type Service struct {
	store    RowStore
	renderer Renderer
	clock    clock.Clock
	cfg      Config
	logger   *zap.Logger
}

// NewService creates the issuing service.
func NewService(store RowStore, renderer Renderer, clk clock.Clock, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Service{store: store, renderer: renderer, clock: clk, cfg: cfg, logger: logger}
}

// ActiveAreas re-reads the configuration sheet and returns the enabled areas.
// Never cached: the operator edits the sheet between submissions.
func (s *Service) ActiveAreas(ctx context.Context) ([]models.Area, error) {
	rows, err := s.store.ReadRange(ctx, sheets.RowRange(s.cfg.AreasSheet))
	if err != nil {
		return nil, fmt.Errorf("%w: read areas sheet %q: %v", models.ErrPersistence, s.cfg.AreasSheet, err)
	}
	return areas.ResolveActive(rows)
}

// Neighborhoods re-reads the neighborhood sheet's first column.
func (s *Service) Neighborhoods(ctx context.Context) ([]string, error) {
	rows, err := s.store.ReadRange(ctx, sheets.FirstColumnRange(s.cfg.NeighborhoodsSheet))
	if err != nil {
		return nil, fmt.Errorf("%w: read neighborhoods sheet %q: %v", models.ErrPersistence, s.cfg.NeighborhoodsSheet, err)
	}
	return areas.Neighborhoods(rows), nil
}

// SubmitInput is one attendee submission for one or more areas.
type SubmitInput struct {
	Areas        []string
	Name         string
	Phone        string
	Neighborhood string
	SocialHandle string
	Email        string
}

// SubmitResult carries the persisted registrations, any quota excesses and
// the rendered PDF. PDF is nil when any quota was exceeded, even though the
// registrations stay persisted.
type SubmitResult struct {
	SubmissionID  uuid.UUID             `json:"submission_id"`
	Registrations []models.Registration `json:"registrations"`
	Exceeded      []models.QuotaExcess  `json:"exceeded,omitempty"`
	PDF           []byte                `json:"pdf,omitempty"`
}

// Submit issues one ticket per requested area, in the caller-supplied order.
// Name and phone are validated before any store mutation. A persistence
// failure aborts the remaining areas but keeps the registrations already
// written; the partial result is returned alongside the error.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if len(in.Areas) == 0 {
		return nil, fmt.Errorf("%w: select at least one active area", models.ErrValidation)
	}
	name := format.Name(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	phone, err := format.Phone(in.Phone)
	if err != nil {
		return nil, err
	}

	active, err := s.ActiveAreas(ctx)
	if err != nil {
		return nil, err
	}
	sheetByArea := make(map[string]string, len(active))
	limitByArea := make(map[string]int, len(active))
	for _, a := range active {
		sheetByArea[a.Name] = a.Sheet
		limitByArea[a.Name] = a.MaxTickets
	}

	result := &SubmitResult{SubmissionID: uuid.New()}
	for _, area := range in.Areas {
		sheetTitle := sheetByArea[area]
		if sheetTitle == "" {
			sheetTitle = area
		}
		reg := models.Registration{
			Area:         area,
			Sheet:        sheetTitle,
			Name:         name,
			Phone:        phone,
			Neighborhood: strings.TrimSpace(in.Neighborhood),
			SocialHandle: strings.TrimSpace(in.SocialHandle),
			Email:        strings.TrimSpace(in.Email),
			RegisteredAt: s.clock.Now().In(s.cfg.Location).Format(timeLayout),
		}
		number, err := s.assignNumber(ctx, sheetTitle, reg.Row())
		if err != nil {
			// Already-issued registrations are not rolled back; surface
			// exactly which areas succeeded alongside the failure.
			return result, fmt.Errorf("area %q: %w", area, err)
		}
		reg.Number = number
		result.Registrations = append(result.Registrations, reg)
		s.logger.Info("ticket issued",
			zap.String("submission_id", result.SubmissionID.String()),
			zap.String("area", area),
			zap.Int("number", number),
		)

		if limit := limitByArea[area]; limit > 0 && number > limit {
			result.Exceeded = append(result.Exceeded, models.QuotaExcess{Area: area, Limit: limit, Number: number})
		}
	}

	if len(result.Exceeded) == 0 && len(result.Registrations) > 0 {
		pdf, err := s.renderer.RenderBatch(result.Registrations)
		if err != nil {
			return result, fmt.Errorf("render tickets: %w", err)
		}
		result.PDF = pdf
	}
	return result, nil
}

// SubmitOne issues a ticket for a single area, turning a quota excess into an
// error since there is no partial batch to report.
func (s *Service) SubmitOne(ctx context.Context, area string, in SubmitInput) (*SubmitResult, error) {
	in.Areas = []string{area}
	result, err := s.Submit(ctx, in)
	if err != nil {
		return result, err
	}
	if len(result.Exceeded) > 0 {
		e := result.Exceeded[0]
		return result, fmt.Errorf("area %q exceeded the limit of %d tickets (issued %d)", e.Area, e.Limit, e.Number)
	}
	return result, nil
}
