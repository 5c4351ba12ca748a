package printer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendPDF(t *testing.T) {
	t.Parallel()

	t.Run("posts pdf with token header", func(t *testing.T) {
		var gotPath, gotToken, gotType string
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotToken = r.Header.Get("X-Token")
			gotType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := New(srv.URL+"/", "secret", nil)
		if err := c.SendPDF(context.Background(), []byte("%PDF-fake")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotPath != "/print/pdf" {
			t.Fatalf("expected /print/pdf, got %q", gotPath)
		}
		if gotToken != "secret" || gotType != "application/pdf" {
			t.Fatalf("unexpected headers token=%q type=%q", gotToken, gotType)
		}
		if string(gotBody) != "%PDF-fake" {
			t.Fatalf("unexpected body %q", gotBody)
		}
	})

	t.Run("non-2xx surfaces the response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("printer offline"))
		}))
		defer srv.Close()

		c := New(srv.URL, "secret", nil)
		err := c.SendPDF(context.Background(), []byte("%PDF-fake"))
		if err == nil {
			t.Fatalf("expected error")
		}
		if !strings.Contains(err.Error(), "printer offline") || !strings.Contains(err.Error(), "503") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing configuration is a no-op", func(t *testing.T) {
		if c := New("", "token", nil); c != nil {
			t.Fatalf("expected nil client without server url")
		}
		if c := New("http://example", "", nil); c != nil {
			t.Fatalf("expected nil client without token")
		}
		var c *Client
		if err := c.SendPDF(context.Background(), []byte("x")); err != nil {
			t.Fatalf("nil client must be a no-op, got %v", err)
		}
	})
}
