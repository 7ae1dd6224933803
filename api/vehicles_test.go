package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/nextapp/fleetview/fleet"
)

// TestFetchVehicleLocation_ChainOrder tests that the candidate
// endpoints are tried in order and the first good answer wins.
func TestFetchVehicleLocation_ChainOrder(t *testing.T) {
	var hits []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.RequestURI())
		if r.URL.Path == "/Ubicaciones/7" {
			_, _ = w.Write([]byte(`{"latitud":19.4,"longitud":-99.1}`))
			return
		}
		http.Error(w, "not here", http.StatusNotFound)
	}))

	rec, err := c.FetchVehicleLocation(context.Background(), "tok", "7", "860000000000001")
	if err != nil {
		t.Fatalf("FetchVehicleLocation: %v", err)
	}
	lat, lon, ok := rec.Location()
	if !ok || lat != 19.4 || lon != -99.1 {
		t.Errorf("location = (%v, %v, %v)", lat, lon, ok)
	}

	want := []string{
		"/Vehiculos/7/Ubicacion",
		"/Vehiculos/7/Location",
		"/Ubicaciones/7",
	}
	if len(hits) != len(want) {
		t.Fatalf("hits = %v", hits)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("hit %d = %q, want %q", i, hits[i], want[i])
		}
	}
}

// TestFetchVehicleLocation_IMEIFallback tests that the imei query
// endpoints are reached after the id ones exhaust.
func TestFetchVehicleLocation_IMEIFallback(t *testing.T) {
	var hits []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.RequestURI())
		if r.URL.RequestURI() == "/Ubicaciones?imei=860" {
			_, _ = w.Write([]byte(`[{"lat":1.0,"lng":2.0}]`))
			return
		}
		http.Error(w, "no", http.StatusNotFound)
	}))

	rec, err := c.FetchVehicleLocation(context.Background(), "tok", "7", "860")
	if err != nil {
		t.Fatalf("FetchVehicleLocation: %v", err)
	}
	if _, _, ok := rec.Location(); !ok {
		t.Error("expected a located record")
	}
	if hits[len(hits)-1] != "/Ubicaciones?imei=860" {
		t.Errorf("last hit = %q", hits[len(hits)-1])
	}
}

// TestFetchVehicleLocation_Exhausted tests the terminal error when
// every candidate fails.
func TestFetchVehicleLocation_Exhausted(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusNotFound)
	}))
	_, err := c.FetchVehicleLocation(context.Background(), "tok", "7", "860")
	if !errors.Is(err, ErrNoLocationEndpoint) {
		t.Errorf("err = %v, want ErrNoLocationEndpoint", err)
	}
}

// TestFetchVehicleLocation_NoIdentifiers tests that a vehicle without
// id or imei exhausts immediately, no requests made.
func TestFetchVehicleLocation_NoIdentifiers(t *testing.T) {
	requests := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	_, err := c.FetchVehicleLocation(context.Background(), "tok", "", "")
	if !errors.Is(err, ErrNoLocationEndpoint) {
		t.Errorf("err = %v", err)
	}
	if requests != 0 {
		t.Errorf("requests = %d, want 0", requests)
	}
}

type stubSource struct {
	name    string
	records []fleet.Record
	err     error
	calls   int
}

func (s *stubSource) Name() string { return s.name }
func (s *stubSource) Fetch(ctx context.Context, token string) ([]fleet.Record, error) {
	s.calls++
	return s.records, s.err
}

// TestSourceChain_FirstSuccessWins tests that later sources are not
// consulted once one answers.
func TestSourceChain_FirstSuccessWins(t *testing.T) {
	first := &stubSource{name: "last-positions", records: []fleet.Record{{"placas": "A"}}}
	second := &stubSource{name: "roster", records: []fleet.Record{{"placas": "B"}}}
	chain := SourceChain{Sources: []PositionSource{first, second}}

	records, source, err := chain.Fetch(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if source != "last-positions" || len(records) != 1 {
		t.Errorf("source = %q, records = %d", source, len(records))
	}
	if second.calls != 0 {
		t.Errorf("roster consulted %d times, want 0", second.calls)
	}
}

// TestSourceChain_FallsBackOnError tests degradation to the roster
// when positions fail.
func TestSourceChain_FallsBackOnError(t *testing.T) {
	first := &stubSource{name: "last-positions", err: errors.New("boom")}
	second := &stubSource{name: "roster", records: []fleet.Record{{"placas": "B"}}}
	chain := SourceChain{Sources: []PositionSource{first, second}}

	records, source, err := chain.Fetch(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if source != "roster" || len(records) != 1 {
		t.Errorf("source = %q, records = %d", source, len(records))
	}
}

// TestSourceChain_FallsBackOnEmpty tests that a dry positions endpoint
// advances to the roster.
func TestSourceChain_FallsBackOnEmpty(t *testing.T) {
	first := &stubSource{name: "last-positions"}
	second := &stubSource{name: "roster", records: []fleet.Record{{"placas": "B"}}}
	chain := SourceChain{Sources: []PositionSource{first, second}}

	_, source, err := chain.Fetch(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if source != "roster" {
		t.Errorf("source = %q", source)
	}
}

// TestSourceChain_AllFail tests that the last error is surfaced.
func TestSourceChain_AllFail(t *testing.T) {
	errLast := errors.New("roster down")
	chain := SourceChain{Sources: []PositionSource{
		&stubSource{name: "last-positions", err: errors.New("positions down")},
		&stubSource{name: "roster", err: errLast},
	}}
	_, _, err := chain.Fetch(context.Background(), "tok")
	if !errors.Is(err, errLast) {
		t.Errorf("err = %v, want last source's error", err)
	}
}

// TestSourceChain_AllEmpty tests that an empty fleet is a success, not
// an error.
func TestSourceChain_AllEmpty(t *testing.T) {
	chain := SourceChain{Sources: []PositionSource{
		&stubSource{name: "last-positions"},
		&stubSource{name: "roster"},
	}}
	records, source, err := chain.Fetch(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 0 || source != "roster" {
		t.Errorf("records = %d, source = %q", len(records), source)
	}
}

// TestAllVehicleLocations tests the roster fan-out keyed by id with
// imei fallback, skipping unresolvable vehicles.
func TestAllVehicleLocations(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Vehiculos/1/Ubicacion":
			_, _ = w.Write([]byte(`{"latitud":10.0,"longitud":20.0}`))
		default:
			if r.URL.Query().Get("imei") == "860" || r.URL.Query().Get("IMEI") == "860" {
				_, _ = w.Write([]byte(`{"latitud":11.0,"longitud":21.0}`))
				return
			}
			http.Error(w, "no", http.StatusNotFound)
		}
	}))

	vehicles := []fleet.Record{
		{"id": "1"},
		{"imei": "860"},
		{"placas": "sin-id"}, // no identifiers, skipped
		{"id": "99"},         // chain exhausts, absent from result
	}
	out := c.AllVehicleLocations(context.Background(), "tok", vehicles)
	if len(out) != 2 {
		t.Fatalf("resolved = %d, want 2", len(out))
	}
	if _, ok := out["1"]; !ok {
		t.Error("vehicle 1 missing")
	}
	if _, ok := out["860"]; !ok {
		t.Error("imei-keyed vehicle missing")
	}
}
