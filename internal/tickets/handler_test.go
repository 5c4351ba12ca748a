package tickets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ArielAmzalak/SenhasGF4/internal/issuer"
	"github.com/ArielAmzalak/SenhasGF4/internal/models"
	"github.com/ArielAmzalak/SenhasGF4/pkg/queue"
)

type fakeIssuer struct {
	areas  []models.Area
	hoods  []string
	result *issuer.SubmitResult
	err    error
	gotIn  issuer.SubmitInput
}

func (f *fakeIssuer) ActiveAreas(context.Context) ([]models.Area, error) { return f.areas, f.err }
func (f *fakeIssuer) Neighborhoods(context.Context) ([]string, error)    { return f.hoods, f.err }
func (f *fakeIssuer) Submit(_ context.Context, in issuer.SubmitInput) (*issuer.SubmitResult, error) {
	f.gotIn = in
	return f.result, f.err
}

type fakePrintQueue struct {
	payloads []queue.TicketPrintPayload
	err      error
}

func (f *fakePrintQueue) EnqueueTicketPrint(_ context.Context, p queue.TicketPrintPayload) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, p)
	return nil
}

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/areas", h.ListAreas)
	r.GET("/neighborhoods", h.ListNeighborhoods)
	r.POST("/tickets", h.Submit)
	r.POST("/tickets/preview", h.Preview)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmit(t *testing.T) {
	submitBody := map[string]interface{}{
		"areas": []string{"A"},
		"name":  "maria",
		"phone": "92981231234",
	}

	t.Run("issues tickets and enqueues the print job", func(t *testing.T) {
		result := &issuer.SubmitResult{
			SubmissionID:  uuid.New(),
			Registrations: []models.Registration{{Area: "A", Number: 1}},
			PDF:           []byte("%PDF-fake"),
		}
		svc := &fakeIssuer{result: result}
		pq := &fakePrintQueue{}
		r := newRouter(NewHandler(svc, pq, nil))

		w := doJSON(t, r, http.MethodPost, "/tickets", submitBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if len(pq.payloads) != 1 {
			t.Fatalf("expected 1 print job, got %d", len(pq.payloads))
		}
		if pq.payloads[0].SubmissionID != result.SubmissionID {
			t.Fatalf("print job submission id mismatch")
		}
		if svc.gotIn.Name != "maria" || svc.gotIn.Phone != "92981231234" {
			t.Fatalf("unexpected service input %+v", svc.gotIn)
		}
	})

	t.Run("does not enqueue when the pdf was withheld", func(t *testing.T) {
		result := &issuer.SubmitResult{
			SubmissionID:  uuid.New(),
			Registrations: []models.Registration{{Area: "B", Number: 2}},
			Exceeded:      []models.QuotaExcess{{Area: "B", Limit: 1, Number: 2}},
		}
		pq := &fakePrintQueue{}
		r := newRouter(NewHandler(&fakeIssuer{result: result}, pq, nil))

		w := doJSON(t, r, http.MethodPost, "/tickets", submitBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		if len(pq.payloads) != 0 {
			t.Fatalf("expected no print job, got %d", len(pq.payloads))
		}
		var envelope struct {
			Data issuer.SubmitResult `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(envelope.Data.Exceeded) != 1 || envelope.Data.PDF != nil {
			t.Fatalf("unexpected result %+v", envelope.Data)
		}
	})

	t.Run("validation errors map to 400", func(t *testing.T) {
		svc := &fakeIssuer{err: fmt.Errorf("%w: phone must contain 11 digits", models.ErrValidation)}
		r := newRouter(NewHandler(svc, nil, nil))

		w := doJSON(t, r, http.MethodPost, "/tickets", submitBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("partial completion reports the issued areas", func(t *testing.T) {
		svc := &fakeIssuer{
			result: &issuer.SubmitResult{
				Registrations: []models.Registration{{Area: "A", Number: 3}},
			},
			err: fmt.Errorf("area \"B\": %w: append failed", models.ErrPersistence),
		}
		r := newRouter(NewHandler(svc, nil, nil))

		w := doJSON(t, r, http.MethodPost, "/tickets", submitBody)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "A #3") {
			t.Fatalf("expected issued areas in response, got %s", w.Body.String())
		}
	})

	t.Run("missing body fields map to 400", func(t *testing.T) {
		r := newRouter(NewHandler(&fakeIssuer{}, nil, nil))
		w := doJSON(t, r, http.MethodPost, "/tickets", map[string]interface{}{"areas": []string{"A"}})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestListAreas(t *testing.T) {
	svc := &fakeIssuer{areas: []models.Area{{Name: "A", Sheet: "A", Active: true}}}
	r := newRouter(NewHandler(svc, nil, nil))

	w := doJSON(t, r, http.MethodGet, "/areas", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"name":"A"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestListAreasConfigurationError(t *testing.T) {
	svc := &fakeIssuer{err: fmt.Errorf("%w: area column not found", models.ErrConfiguration)}
	r := newRouter(NewHandler(svc, nil, nil))

	w := doJSON(t, r, http.MethodGet, "/areas", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestPreview(t *testing.T) {
	r := newRouter(NewHandler(&fakeIssuer{}, nil, nil))

	t.Run("returns normalized fields", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/tickets/preview", map[string]string{
			"name":  " maria ",
			"phone": "5592981231234",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, "MARIA") || !strings.Contains(body, "(92) 98123-1234") {
			t.Fatalf("unexpected body %s", body)
		}
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/tickets/preview", map[string]string{
			"name":  "maria",
			"phone": "123",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}
