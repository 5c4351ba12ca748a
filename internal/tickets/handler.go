// Package tickets exposes the issuing workflow over HTTP: list areas and
// neighborhoods, submit a registration for one or more areas, and preview the
// normalized attendee fields.
package tickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ArielAmzalak/SenhasGF4/internal/format"
	"github.com/ArielAmzalak/SenhasGF4/internal/issuer"
	"github.com/ArielAmzalak/SenhasGF4/internal/models"
	"github.com/ArielAmzalak/SenhasGF4/pkg/queue"
	"github.com/ArielAmzalak/SenhasGF4/pkg/response"
)

// Issuer is the slice of the issuing service the handlers need.
type Issuer interface {
	ActiveAreas(ctx context.Context) ([]models.Area, error)
	Neighborhoods(ctx context.Context) ([]string, error)
	Submit(ctx context.Context, in issuer.SubmitInput) (*issuer.SubmitResult, error)
}

// PrintQueue enqueues rendered submissions for the print worker.
type PrintQueue interface {
	EnqueueTicketPrint(ctx context.Context, payload queue.TicketPrintPayload) error
}

// Handler handles the ticket HTTP endpoints.
type Handler struct {
	svc        Issuer
	printQueue PrintQueue // nil when print forwarding is disabled
	logger     *zap.Logger
}

// NewHandler creates a tickets handler. printQueue may be nil.
func NewHandler(svc Issuer, printQueue PrintQueue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, printQueue: printQueue, logger: logger}
}

// ListAreas handles GET /areas.
func (h *Handler) ListAreas(c *gin.Context) {
	areas, err := h.svc.ActiveAreas(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"areas": areas})
}

// ListNeighborhoods handles GET /neighborhoods.
func (h *Handler) ListNeighborhoods(c *gin.Context) {
	hoods, err := h.svc.Neighborhoods(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{"neighborhoods": hoods})
}

// SubmitRequest is the body for POST /tickets.
type SubmitRequest struct {
	Areas        []string `json:"areas" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Phone        string   `json:"phone" binding:"required"`
	Neighborhood string   `json:"neighborhood"`
	SocialHandle string   `json:"social_handle"`
	Email        string   `json:"email"`
}

// Submit handles POST /tickets. Issues one ticket per requested area and
// enqueues the rendered PDF for printing when forwarding is configured.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), issuer.SubmitInput{
		Areas:        req.Areas,
		Name:         req.Name,
		Phone:        req.Phone,
		Neighborhood: req.Neighborhood,
		SocialHandle: req.SocialHandle,
		Email:        req.Email,
	})
	if err != nil {
		if result != nil && len(result.Registrations) > 0 {
			// Partial completion: some areas were persisted before the
			// failure; tell the caller which ones.
			issued := make([]string, 0, len(result.Registrations))
			for _, r := range result.Registrations {
				issued = append(issued, fmt.Sprintf("%s #%d", r.Area, r.Number))
			}
			h.logger.Error("submission partially completed", zap.Error(err), zap.Strings("issued", issued))
			response.Internal(c, fmt.Sprintf("%v (already issued: %v)", err, issued))
			return
		}
		h.fail(c, err)
		return
	}

	if result.PDF != nil && h.printQueue != nil {
		payload := queue.TicketPrintPayload{
			SubmissionID: result.SubmissionID,
			Areas:        req.Areas,
			PDF:          result.PDF,
		}
		if err := h.printQueue.EnqueueTicketPrint(c.Request.Context(), payload); err != nil {
			// Printing is optional; the caller still gets the PDF bytes.
			h.logger.Error("enqueue print job failed", zap.Error(err),
				zap.String("submission_id", result.SubmissionID.String()))
		}
	}

	response.Created(c, result)
}

// PreviewRequest is the body for POST /tickets/preview.
type PreviewRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Preview handles POST /tickets/preview: returns the normalized name and
// phone so the form can show them before submitting.
func (h *Handler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	phone, err := format.Phone(req.Phone)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"name":  format.Name(req.Name),
		"phone": phone,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, models.ErrConfiguration):
		h.logger.Error("configuration error", zap.Error(err))
		response.ServiceUnavailable(c, err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		response.Internal(c, err.Error())
	}
}
