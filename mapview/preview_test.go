package mapview

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestPreview_ServesPublishedPage tests publish-then-serve and the
// 404 before anything is published.
func TestPreview_ServesPublishedPage(t *testing.T) {
	p := NewPreview(0)

	rec := httptest.NewRecorder()
	p.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("empty preview status = %d, want 404", rec.Code)
	}

	p.Publish("<html><body>mapa</body></html>")
	rec = httptest.NewRecorder()
	p.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "mapa") {
		t.Errorf("body = %q", rec.Body.String())
	}

	// Publishing again replaces the page.
	p.Publish("<html><body>nuevo</body></html>")
	rec = httptest.NewRecorder()
	p.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), "nuevo") {
		t.Error("publish did not replace the page")
	}
}
