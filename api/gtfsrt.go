package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/nextapp/fleetview/fleet"
)

// GTFSRTSource reads a GTFS-Realtime VehiclePositions protobuf feed
// and normalizes each entity into a fleet.Record, for deployments that
// publish tracker positions through a transit feed instead of the REST
// endpoint. The feed is public, so the bearer token is ignored.
type GTFSRTSource struct {
	url        string
	httpClient *http.Client
}

func NewGTFSRTSource(url string, timeout time.Duration) *GTFSRTSource {
	return &GTFSRTSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *GTFSRTSource) Name() string { return "gtfsrt" }

func (s *GTFSRTSource) Fetch(ctx context.Context, _ string) ([]fleet.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gtfsrt feed: HTTP %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(raw, &fm); err != nil {
		return nil, &DecodeError{Err: err}
	}

	records := make([]fleet.Record, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		if e.Vehicle == nil || e.Vehicle.Position == nil {
			continue
		}
		pos := e.Vehicle.Position
		if pos.Latitude == nil || pos.Longitude == nil {
			continue
		}
		rec := fleet.Record{
			"lat": float64(*pos.Latitude),
			"lon": float64(*pos.Longitude),
		}
		if e.Vehicle.Vehicle != nil {
			if e.Vehicle.Vehicle.Id != nil {
				rec["id"] = *e.Vehicle.Vehicle.Id
			}
			if e.Vehicle.Vehicle.LicensePlate != nil {
				rec["placas"] = *e.Vehicle.Vehicle.LicensePlate
			} else if e.Vehicle.Vehicle.Label != nil {
				rec["nombre"] = *e.Vehicle.Vehicle.Label
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
