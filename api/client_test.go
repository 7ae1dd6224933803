package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nextapp/fleetview/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(config.ServerConfig{
		BaseURL:       srv.URL,
		AuthPath:      "/Authentication/TokenApp",
		VehiclesPath:  "/Vehiculos",
		PositionsPath: "/Vehiculos/UltimasPosiciones",
		TimeoutMS:     2000,
	}, "client-1")
	return c, srv
}

// TestClient_RequestHeaders tests that the bearer token, content type
// and installation id travel on every request.
func TestClient_RequestHeaders(t *testing.T) {
	var got http.Header
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`[]`))
	}))

	if _, err := c.FetchVehicles(context.Background(), "tok-123"); err != nil {
		t.Fatalf("FetchVehicles: %v", err)
	}
	if h := got.Get("Authorization"); h != "Bearer tok-123" {
		t.Errorf("Authorization = %q", h)
	}
	if h := got.Get("Content-Type"); h != "application/json" {
		t.Errorf("Content-Type = %q", h)
	}
	if h := got.Get("X-Client-Id"); h != "client-1" {
		t.Errorf("X-Client-Id = %q", h)
	}
}

// TestClient_Created tests that 201 counts as success.
func TestClient_Created(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"placas":"ABC"}]`))
	}))
	records, err := c.FetchVehicles(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FetchVehicles: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
}

// TestClient_StatusErrorMining tests the error-message synonym probe
// on non-2xx bodies and the status-code fallback.
func TestClient_StatusErrorMining(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{"lowercase message", 401, `{"message":"Credenciales inválidas"}`, "Credenciales inválidas"},
		{"capitalized Message", 400, `{"Message":"Solicitud inválida"}`, "Solicitud inválida"},
		{"error key", 403, `{"error":"Prohibido"}`, "Prohibido"},
		{"no body", 500, ``, "HTTP 500"},
		{"non-json body", 502, `<html>bad gateway</html>`, "HTTP 502"},
		{"blank message falls back", 500, `{"message":"  "}`, "HTTP 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			_, err := c.FetchVehicles(context.Background(), "tok")
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if se.Code != tt.code {
				t.Errorf("Code = %d, want %d", se.Code, tt.code)
			}
			if se.Message != tt.want {
				t.Errorf("Message = %q, want %q", se.Message, tt.want)
			}
		})
	}
}

// TestClient_DecodeError tests that a 2xx unparseable body classifies
// as a decode failure, not a transport one.
func TestClient_DecodeError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	_, err := c.FetchVehicles(context.Background(), "tok")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

// TestClient_Timeout tests that a slow server classifies as timeout.
func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()
	c := NewClient(config.ServerConfig{BaseURL: srv.URL, VehiclesPath: "/Vehiculos", TimeoutMS: 50}, "")

	_, err := c.FetchVehicles(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("IsTimeout(%v) = false", err)
	}
	if got := UserMessage(err); got != "Tiempo de espera agotado. El servidor tardó demasiado en responder." {
		t.Errorf("UserMessage = %q", got)
	}
}

// TestClient_ConnectionRefused tests the generic no-connection
// classification.
func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore
	c := NewClient(config.ServerConfig{BaseURL: srv.URL, VehiclesPath: "/Vehiculos", TimeoutMS: 2000}, "")

	_, err := c.FetchVehicles(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected connection error")
	}
	if IsTimeout(err) {
		t.Errorf("connection refusal misclassified as timeout: %v", err)
	}
	msg := UserMessage(err)
	if len(msg) < len("Sin conexión") || msg[:len("Sin conexión")] != "Sin conexión" {
		t.Errorf("UserMessage = %q, want Sin conexión prefix", msg)
	}
}

// TestUserMessage tests the error-to-text table.
func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"status error verbatim", &StatusError{Code: 401, Message: "Credenciales inválidas"}, "Credenciales inválidas"},
		{"decode error", &DecodeError{Err: errors.New("unexpected token")}, "Error al procesar respuesta: unexpected token"},
		{"deadline", context.DeadlineExceeded, "Tiempo de espera agotado. El servidor tardó demasiado en responder."},
		{"other", errors.New("dial tcp: refused"), "Sin conexión (dial tcp: refused)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage = %q, want %q", got, tt.want)
			}
		})
	}
}
